// Package all registers every input source.
package all

import (
	_ "github.com/skilab/skifft/input/raw"
	_ "github.com/skilab/skifft/input/table"
)
