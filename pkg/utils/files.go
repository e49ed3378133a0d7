package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultMaxSourceBytes bounds how much of an input file ReadSource accepts.
const DefaultMaxSourceBytes int64 = 1 << 20

var ErrSourceTooLarge = errors.New("source file too large")

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReadSource reads the whole file at path. A limit <= 0 disables the size
// check; otherwise files longer than limit bytes fail with ErrSourceTooLarge.
// Open failures are returned unwrapped so errors.Is(err, fs.ErrNotExist) holds.
func ReadSource(path string, limit int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrSourceTooLarge, path, limit)
	}
	return string(data), nil
}
