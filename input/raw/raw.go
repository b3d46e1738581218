// Package raw decodes KX132 binary dumps.
//
// A dump is a headerless run of 6 byte frames, each holding the x, y and z
// readings as little-endian signed 16 bit integers.
package raw

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/skilab/skifft/input"
)

func init() {
	input.RegisterSource("dat", Source{})
}

// FrameSize is the number of bytes per sample.
const FrameSize = 6

// DecodeError is returned when the byte stream cannot be framed into
// 16 bit groups.
type DecodeError struct {
	Offset int64 // byte offset of the frame being read
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failed at byte %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoder converts raw frames into readings in g.
type Decoder struct {
	Range input.Range
	// Log receives diagnostics. nil uses the standard logger.
	Log *log.Logger

	dropped int
}

// NewDecoder returns a decoder for samples recorded at rng.
func NewDecoder(rng input.Range, logger *log.Logger) *Decoder {
	return &Decoder{Range: rng, Log: logger}
}

// Dropped returns the number of trailing bytes discarded by the last decode.
func (d *Decoder) Dropped() int {
	return d.dropped
}

// Decode decodes a whole buffer. A trailing partial frame is dropped with a
// warning.
func (d *Decoder) Decode(data []byte) (input.Table, error) {
	return d.DecodeReader(bytes.NewReader(data))
}

// DecodeReader decodes frames until r is exhausted.
func (d *Decoder) DecodeReader(r io.Reader) (input.Table, error) {
	d.dropped = 0

	sensitivity, err := d.Range.Sensitivity()
	if err != nil {
		return nil, err
	}

	reader := frameReader{
		order: binary.LittleEndian,
		buf:   make([]byte, FrameSize),
	}

	br := bufio.NewReader(r)

	var (
		table  input.Table
		offset int64
	)

	for {
		n, err := io.ReadFull(br, reader.buf)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return d.finish(table, offset), nil

			case errors.Is(err, io.ErrUnexpectedEOF):
				d.dropped = n
				return d.finish(table, offset+int64(n)), nil

			default:
				return nil, &DecodeError{Offset: offset, Err: err}
			}
		}

		reader.reset()
		table = append(table, input.Reading{
			X: float64(reader.next()) / sensitivity,
			Y: float64(reader.next()) / sensitivity,
			Z: float64(reader.next()) / sensitivity,
		})

		offset += FrameSize
	}
}

func (d *Decoder) finish(table input.Table, size int64) input.Table {
	if d.dropped > 0 {
		d.logf("warning: file size (%d bytes) is not a multiple of %d, dropped %d trailing bytes",
			size, FrameSize, d.dropped)
	}
	return table
}

func (d *Decoder) logf(format string, args ...interface{}) {
	if d.Log != nil {
		d.Log.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// Load decodes the file at path.
func (d *Decoder) Load(path string) (input.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open raw file")
	}
	defer f.Close()

	return d.DecodeReader(f)
}

// Encode packs raw x, y, z triples into the dump layout.
func Encode(samples [][input.AxisCount]int16) []byte {
	out := make([]byte, len(samples)*FrameSize)
	for i, s := range samples {
		frame := out[i*FrameSize:]
		for axis, v := range s {
			binary.LittleEndian.PutUint16(frame[axis*2:], uint16(v))
		}
	}
	return out
}

// Source loads .dat files.
type Source struct{}

func (Source) Load(path string, cfg input.SourceConfig) (input.Table, error) {
	return NewDecoder(cfg.Range, cfg.Log).Load(path)
}

type frameReader struct {
	order binary.ByteOrder
	buf   []byte
	pos   int
}

func (f *frameReader) reset() {
	f.pos = 0
}

func (f *frameReader) next() int16 {
	v := int16(f.order.Uint16(f.buf[f.pos:]))
	f.pos += 2
	return v
}
