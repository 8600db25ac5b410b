package fontsrc

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// maxUnzippedSize bounds the decompressed size of a zipped font.
const maxUnzippedSize = 10 << 20

// zipSignatures are the records a ZIP archive can open with: a local file
// header, the end of central directory of an empty archive, and the marker
// of a spanned archive.
var zipSignatures = [][]byte{
	[]byte("PK\x03\x04"),
	[]byte("PK\x05\x06"),
	[]byte("PK\x07\x08"),
}

// IsZip reports whether data starts with a ZIP signature.
func IsZip(data []byte) bool {
	for _, sig := range zipSignatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// Unzip returns data unchanged unless it is a ZIP archive, in which case it
// returns the contents of the first regular file in the archive. FIGlet
// distributes some fonts compressed this way.
func Unzip(data []byte) ([]byte, error) {
	if !IsZip(data) {
		return data, nil
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading compressed font: %w", err)
	}
	if len(zr.File) == 0 {
		return nil, errors.New("compressed font archive is empty")
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s in compressed font: %w", f.Name, err)
		}
		out, err := io.ReadAll(io.LimitReader(rc, maxUnzippedSize+1))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s in compressed font: %w", f.Name, err)
		}
		if len(out) > maxUnzippedSize {
			return nil, fmt.Errorf("compressed font %s exceeds %d bytes", f.Name, maxUnzippedSize)
		}
		return out, nil
	}
	return nil, errors.New("compressed font archive only contains directories")
}
