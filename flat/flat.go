// Package flat persists whole files atomically.
// Files are written to a temporary sibling and renamed over the target,
// so readers see either the previous file or the complete new one.
package flat

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"github.com/rotblauer/drivecycle/params"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const GZExt = ".gz"

// IsGZ reports whether path names a gzip file.
func IsGZ(path string) bool {
	return strings.HasSuffix(path, GZExt)
}

type WriterConfig struct {
	CompressionLevel int
	FilePerm         os.FileMode
	DirPerm          os.FileMode
}

func DefaultWriterConfig() *WriterConfig {
	return &WriterConfig{
		CompressionLevel: params.DefaultGZipCompressionLevel,
		FilePerm:         params.DefaultFilePerm,
		DirPerm:          params.DefaultDirPerm,
	}
}

// WriteAtomic creates path (and its parent directories), overwriting any existing file,
// with the bytes fn writes. Paths ending in .gz are gzip compressed.
// If fn or any write fails, the target is left untouched and the error names the path.
func WriteAtomic(path string, config *WriterConfig, fn func(w io.Writer) error) error {
	if config == nil {
		config = DefaultWriterConfig()
	}
	if err := os.MkdirAll(filepath.Dir(path), config.DirPerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := writeAndSync(tmp, IsGZ(path), config, fn); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeAndSync(f *os.File, gz bool, config *WriterConfig, fn func(w io.Writer) error) error {
	if err := f.Chmod(config.FilePerm); err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	var w io.Writer = bw
	var gzw *gzip.Writer
	if gz {
		var err error
		gzw, err = gzip.NewWriterLevel(bw, config.CompressionLevel)
		if err != nil {
			return err
		}
		w = gzw
	}
	if err := fn(w); err != nil {
		return err
	}
	if gzw != nil {
		if err := gzw.Close(); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// Reader reads a flat file, decompressing gzip files.
type Reader struct {
	f      *os.File
	gzr    *gzip.Reader
	closed bool
}

// Open opens path for reading. Paths ending in .gz are decompressed.
func Open(path string) (*Reader, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := &Reader{f: fi}
	if IsGZ(path) {
		r.gzr, err = gzip.NewReader(fi)
		if err != nil {
			_ = fi.Close()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
	}
	return r, nil
}

// Read satisfies the io.Reader interface.
func (r *Reader) Read(p []byte) (int, error) {
	if r.gzr != nil {
		return r.gzr.Read(p)
	}
	return r.f.Read(p)
}

// Path is the path the reader was opened with.
func (r *Reader) Path() string {
	return r.f.Name()
}

// Close satisfies the io.Closer interface.
// It closes the gzip reader, if any, and the file.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	defer func() {
		r.closed = true
	}()
	if r.gzr != nil {
		if err := r.gzr.Close(); err != nil {
			_ = r.f.Close()
			return err
		}
	}
	return r.f.Close()
}
