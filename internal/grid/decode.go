package grid

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// shapeFieldWidth is the width of the ASCII dimension fields in self-describing headers.
const shapeFieldWidth = 4

func open(op, path string) (*os.File, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &DecodeError{Op: op, Path: path, Err: ErrNotFound}
	}
	return nil, &DecodeError{Op: op, Path: path, Err: err}
}

// DecodeFlatBinary reads the uint8 samples of path after skipping offset
// header bytes and reshapes them into shape. The remaining byte count must
// equal rows*cols.
func DecodeFlatBinary(path string, shape Shape, offset int64) (*Grid, error) {
	const op = "decode binary"
	if !shape.Valid() {
		return nil, &DecodeError{Op: op, Path: path, Err: fmt.Errorf("%w: %s", ErrInvalidShape, shape)}
	}
	if offset < 0 {
		return nil, &DecodeError{Op: op, Path: path, Err: fmt.Errorf("negative header offset %d", offset)}
	}

	f, err := open(op, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &DecodeError{Op: op, Path: path, Err: err}
	}
	if info.Size() < offset {
		return nil, &DecodeError{Op: op, Path: path,
			Err: fmt.Errorf("%w: %d bytes is shorter than the %d byte header", ErrCorrupt, info.Size(), offset)}
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, &DecodeError{Op: op, Path: path, Err: err}
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &DecodeError{Op: op, Path: path, Err: err}
	}
	g, err := FromBytes(shape, data)
	if err != nil {
		return nil, &DecodeError{Op: op, Path: path, Err: err}
	}
	return g, nil
}

// DecodeImage loads a PNG, GIF or JPEG file and reduces it to an 8-bit
// luminance grid with one row per image row.
func DecodeImage(path string) (*Grid, error) {
	const op = "decode image"
	f, err := open(op, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &DecodeError{Op: op, Path: path, Err: fmt.Errorf("%w: %v", ErrCorrupt, err)}
	}

	b := img.Bounds()
	gray, ok := img.(*image.Gray)
	if !ok || b.Min != (image.Point{}) || gray.Stride != b.Dx() {
		gray = image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	}
	return &Grid{Rows: b.Dy(), Cols: b.Dx(), Pix: gray.Pix}, nil
}

// ProbeShape reads the grid dimensions a file declares in its header as two
// 4-character ASCII decimal fields: the column count at colOffset and the row
// count at rowOffset. The legacy viewer read these two offsets the other way
// round; callers porting its offsets must swap them.
func ProbeShape(path string, colOffset, rowOffset int64) (Shape, error) {
	const op = "probe shape"
	f, err := open(op, path)
	if err != nil {
		return Shape{}, err
	}
	defer f.Close()

	cols, err := readField(f, colOffset)
	if err != nil {
		return Shape{}, &DecodeError{Op: op, Path: path, Err: fmt.Errorf("columns: %w", err)}
	}
	rows, err := readField(f, rowOffset)
	if err != nil {
		return Shape{}, &DecodeError{Op: op, Path: path, Err: fmt.Errorf("rows: %w", err)}
	}
	return Shape{Rows: rows, Cols: cols}, nil
}

func readField(r io.ReaderAt, offset int64) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("%w: negative offset %d", ErrCorrupt, offset)
	}
	buf := make([]byte, shapeFieldWidth)
	if _, err := r.ReadAt(buf, offset); err != nil {
		return 0, fmt.Errorf("%w: header too short at offset %d", ErrCorrupt, offset)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(buf)))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: bad dimension field %q", ErrCorrupt, buf)
	}
	return n, nil
}
