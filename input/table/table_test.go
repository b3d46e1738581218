package table

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skilab/skifft/input"
)

func TestWriteHeader(t *testing.T) {
	buf := &bytes.Buffer{}

	if err := Write(buf, input.Table{{X: 1, Y: 0, Z: -1}}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	if lines[0] != "X (g),Y (g),Z (g),X (m/s²),Y (m/s²),Z (m/s²)" {
		t.Errorf("unexpected header %q", lines[0])
	}

	if lines[1] != "1,0,-1,9.81,0,-9.81" {
		t.Errorf("unexpected row %q", lines[1])
	}
}

func TestReadWriteFile(t *testing.T) {
	want := input.Table{
		{X: 0.5, Y: -0.25, Z: 1},
		{X: 0.00048828125, Y: 0, Z: 0.999},
	}

	path := filepath.Join(t.TempDir(), "ac1_3.csv")
	if err := WriteFile(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := input.LoadFile(path, input.SourceConfig{})
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReadErrors(t *testing.T) {
	for name, data := range map[string]string{
		"empty":       "",
		"header only": strings.Join(Header, ",") + "\n",
		"missing z":   "X (g),Y (g)\n1,2\n",
		"not numeric": "X (g),Y (g),Z (g)\n1,two,3\n",
	} {
		if _, err := Read(strings.NewReader(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestReadReorderedColumns(t *testing.T) {
	got, err := Read(strings.NewReader("Z (g), X (g), Y (g)\n3, 1, 2\n"))
	if err != nil {
		t.Fatal(err)
	}

	if got[0] != (input.Reading{X: 1, Y: 2, Z: 3}) {
		t.Errorf("got %+v", got[0])
	}
}

func TestPathFor(t *testing.T) {
	if got := PathFor("data/ac2_9.dat"); got != "data/ac2_9.csv" {
		t.Errorf("got %q", got)
	}
}
