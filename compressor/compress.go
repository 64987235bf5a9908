// Package compressor gzips archived files after rotation. Wire it into an
// appendorr.Config through the PostRotate hook:
//
//	appendorr.Config{PostRotate: compressor.PostRotate(logger)}
//
// Compression runs in its own go routine so the appender's write path is
// never blocked behind gzip.
package compressor

import (
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golift.io/appendorr/filer"
)

// SuffixGZ is appended to an archive name to make the compressed file name.
const SuffixGZ = ".gz"

// Compressor gzips files. The zero value compresses at the default level
// with default file system procedures.
type Compressor struct {
	Level int // gzip compression level. 0 means gzip.DefaultCompression.
	filer.Filer
}

// Report describes one finished compression.
// Always check Error before trusting the New* members.
type Report struct {
	OldFile string
	NewFile string
	OldSize int64
	NewSize int64
	Elapsed time.Duration
	Error   error
}

// PostRotate returns a hook for appendorr.Config that compresses every
// archive in the background and logs a report when each one finishes.
func PostRotate(logger *slog.Logger) func(fileName, newFile string) {
	if logger == nil {
		logger = slog.Default()
	}

	// Filer set up front: hook invocations may overlap.
	comp := &Compressor{Filer: filer.Default()}

	return func(_, newFile string) {
		go func() {
			report := comp.Compress(newFile)
			report.Log(logger)
		}()
	}
}

// Compress gzips a file, removes the original and returns a report.
// Blocks until finished.
func (c *Compressor) Compress(fileName string) *Report {
	if c.Filer == nil {
		c.Filer = filer.Default()
	}

	report := &Report{OldFile: fileName, NewFile: fileName + SuffixGZ}

	info, err := c.Stat(report.OldFile)
	if err != nil {
		report.Error = fmt.Errorf("stating old file: %w", err)

		return report
	}

	report.OldSize = info.Size()
	start := time.Now()
	report.NewSize, report.Error = c.compress(report.OldFile, report.NewFile, info.Mode())
	report.Elapsed = time.Since(start)

	return report
}

// Log writes the report to a structured logger.
func (r *Report) Log(logger *slog.Logger) {
	if r.Error != nil {
		logger.Error("compressor: archive compression failed",
			"file", r.OldFile, "elapsed", r.Elapsed, "error", r.Error)

		return
	}

	logger.Info("compressor: archive compressed",
		"file", r.NewFile, "oldSize", r.OldSize, "newSize", r.NewSize, "elapsed", r.Elapsed)
}

// compress does the "hard" work: open the old file, open the new file, copy
// through a gzip writer, close everything, and lastly delete one of the two.
// On success the original goes; on failure the partial gz file goes.
func (c *Compressor) compress(oldFile, newFile string, mode os.FileMode) (size int64, err error) {
	defer func() { // First, so it executes last.
		if err != nil {
			_ = c.Remove(newFile)
		} else {
			_ = c.Remove(oldFile)
		}
	}()

	src, err := c.OpenFile(oldFile, os.O_RDONLY, 0)
	if err != nil {
		return 0, fmt.Errorf("opening source file: %w", err)
	}
	defer src.Close()

	dst, err := c.OpenFile(newFile, os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		return 0, fmt.Errorf("opening gz file: %w", err)
	}

	defer func() {
		dst.Close()
		// Report the on-disk size of the compressed file.
		if info, serr := c.Stat(newFile); serr == nil {
			size = info.Size()
		}
	}()

	level := c.Level
	if level < gzip.HuffmanOnly || level > gzip.BestCompression || level == 0 {
		level = gzip.DefaultCompression
	}

	gzw, _ := gzip.NewWriterLevel(dst, level)
	defer gzw.Close()

	size, err = io.Copy(gzw, src)
	if err != nil {
		return size, fmt.Errorf("%s -> %s: %w", oldFile, newFile, err)
	}

	return size, nil
}
