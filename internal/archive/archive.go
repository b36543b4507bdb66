package archive

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Ext is the suffix of compressed Claude Code logs.
const Ext = ".zst"

// IsCompressed reports whether name refers to a zstd-compressed log.
func IsCompressed(name string) bool {
	return strings.HasSuffix(name, ".jsonl"+Ext)
}

// IsLog reports whether name is a plain or compressed JSONL log.
func IsLog(name string) bool {
	return strings.HasSuffix(name, ".jsonl") || IsCompressed(name)
}

// Reader wraps r with a zstd decoder when name is a compressed log.
// The caller must Close the returned reader; it does not close r.
func Reader(r io.Reader, name string) (io.ReadCloser, error) {
	if !IsCompressed(name) {
		return io.NopCloser(r), nil
	}
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return decoder.IOReadCloser(), nil
}

// Compress writes srcPath to srcPath+".zst" and returns the new path.
// The source file is left in place.
func Compress(srcPath string) (string, error) {
	if !strings.HasSuffix(srcPath, ".jsonl") {
		return "", fmt.Errorf("not a jsonl log: %s", srcPath)
	}
	destPath := srcPath + Ext

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer dest.Close()

	encoder, err := zstd.NewWriter(dest)
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	if _, err := io.Copy(encoder, src); err != nil {
		encoder.Close()
		return "", fmt.Errorf("compress: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("finalize compression: %w", err)
	}

	return destPath, nil
}
