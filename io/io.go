// Package io persists arrays in the .agz binary format: a fixed 8-byte
// magic tag, a uint32 little-endian length-prefixed JSON metadata block
// (shape, dtype name, element count), then the raw elements packed
// little-endian per dtype in flat row-major order.
package io

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/arrgo-ml/arrgo/array"
)

// Magic identifies an arrgo array file; it doubles as a format version.
const Magic = "ARRGO001"

// metadata is the JSON block between the magic tag and the payload.
type metadata struct {
	Shape []int  `json:"shape"`
	DType string `json:"dtype"`
	Size  int    `json:"size"`
}

// Save writes the array to path.
func Save(path string, a *array.NDArray) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := write(w, a); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Sync()
}

func write(w io.Writer, a *array.NDArray) error {
	if _, err := w.Write([]byte(Magic)); err != nil {
		return err
	}

	meta, err := json.Marshal(metadata{
		Shape: a.Shape(),
		DType: a.DType().String(),
		Size:  a.NumElements(),
	})
	if err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(meta))); err != nil {
		return err
	}
	if _, err := w.Write(meta); err != nil {
		return err
	}

	// The buffer is already flat row-major little-endian on every
	// platform this library targets.
	_, err = w.Write(a.Bytes())
	return err
}

// Load reads an array previously written by Save. The magic tag, dtype
// name and payload size are all validated before the array is built.
func Load(path string) (*array.NDArray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()

	a, err := read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return a, nil
}

func read(r io.Reader) (*array.NDArray, error) {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("reading magic tag: %w", err)
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("got %q: %w", magic, ErrInvalidMagic)
	}

	var metaLen uint32
	if err := binary.Read(r, binary.LittleEndian, &metaLen); err != nil {
		return nil, fmt.Errorf("reading metadata length: %w", err)
	}
	metaBuf := make([]byte, metaLen)
	if _, err := io.ReadFull(r, metaBuf); err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	var meta metadata
	if err := json.Unmarshal(metaBuf, &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMetadata, err)
	}

	dtype, err := array.ParseDType(meta.DType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMetadata, err)
	}
	shape := array.Shape(meta.Shape)
	if shape.NumElements() != meta.Size {
		return nil, fmt.Errorf("shape %v holds %d elements, metadata says %d: %w",
			shape, shape.NumElements(), meta.Size, ErrSizeMismatch)
	}

	a, err := array.Empty(shape, dtype)
	if err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, a.Bytes()); err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return a, nil
}
