package skifft

import (
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// FindFiles lists the files in dir with one of exts, sorted by name. When
// several files share a name, the one whose extension comes first in exts
// is kept.
func FindFiles(dir string, exts []string) ([]string, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", dir)
	}

	rank := map[string]int{}
	for i, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if _, ok := rank[ext]; !ok {
			rank[ext] = i
		}
	}

	best := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))

		r, ok := rank[ext]
		if !ok {
			continue
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if prev, ok := best[stem]; ok {
			prevExt := strings.ToLower(strings.TrimPrefix(filepath.Ext(prev), "."))
			if rank[prevExt] <= r {
				continue
			}
		}

		best[stem] = name
	}

	out := make([]string, 0, len(best))
	for _, name := range best {
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)

	return out, nil
}

// ParseIDs takes the record and accelerometer ids from a file name of the
// form <accel>_<record>.<ext>, as in ac2_9.dat. A name without an
// underscore is all record id.
func ParseIDs(path string) (record, accel string) {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	if idx := strings.Index(stem, "_"); idx > 0 && idx < len(stem)-1 {
		return stem[idx+1:], stem[:idx]
	}

	return stem, ""
}
