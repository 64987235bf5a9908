package appendorr

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golift.io/appendorr/filer"
)

// These are the default directory and log file POSIX modes.
const (
	FileMode os.FileMode = 0o600
	DirMode  os.FileMode = 0o750
)

// DefaultBufferSize is used when the Config struct member BufferSize is omitted.
const DefaultBufferSize = 8192

// Custom errors returned by this package.
var (
	ErrNilSource  = errors.New("nil Source reader provided")
	ErrNoFilepath = errors.New("no destination Filepath provided")
)

// Config is the data needed to create a new Appender.
type Config struct {
	Source        io.Reader     // REQUIRED: Stream to drain. Usually a child process's stdout or stderr pipe.
	Filepath      string        // REQUIRED: Full path to the destination file.
	BufferSize    int           // Read buffer size in bytes. Default: 8192.
	FileMode      os.FileMode   // POSIX mode for new files.
	DirMode       os.FileMode   // POSIX mode for new folders.
	Policy        Policy        // Rotation policy. Nil means the file never rotates.
	MaxArchives   int           // Maximum number of archived files kept. 0 keeps all.
	MaxArchiveAge time.Duration // Maximum age of archived files. 0 keeps all.
	Logger        *slog.Logger  // Where the appender reports its own problems. Default: slog.Default().
	Filer         filer.Filer   // Overridable file system procedures. Default: filer.Default().
	// PostRotate is an optional hook, called after each rotation completes
	// with the live path and the archive path. It blocks the write path, so
	// anything slow belongs in a go routine.
	PostRotate func(fileName, newFile string)
}

// Appender is what you get in return for providing a Config. The background
// go routine is already running when New returns. Use Stop and Wait to shut
// it down. You must obtain an Appender by calling New().
type Appender struct {
	config      *Config       // incoming configuration.
	buf         []byte        // fixed reusable read buffer.
	file        *os.File      // the active open file. owned by the go routine.
	policy      Policy        // copied from config for brevity.
	log         *slog.Logger  // copied from config for brevity.
	stopped     atomic.Bool   // advisory stop flag, observed by the go routine.
	done        chan struct{} // closed when the go routine has fully exited.
	filer.Filer               // overridable file system procedures.
}

// New takes in your configuration, starts the background drain go routine
// and returns an Appender. The destination file is opened lazily by the go
// routine; directories are created here so construction fails fast on a
// bad path.
func New(config *Config) (*Appender, error) {
	switch {
	case config.Source == nil:
		return nil, ErrNilSource
	case config.Filepath == "":
		return nil, ErrNoFilepath
	}

	app := &Appender{
		config: config,
		policy: config.Policy,
		log:    config.Logger,
		Filer:  config.Filer,
		done:   make(chan struct{}),
	}

	if err := app.setConfigDefaults(); err != nil {
		return nil, err
	}

	go app.run()

	return app, nil
}

// setConfigDefaults does exactly what it says. Sets missing values.
func (a *Appender) setConfigDefaults() error {
	if a.config.BufferSize <= 0 {
		a.config.BufferSize = DefaultBufferSize
	}

	a.buf = make([]byte, a.config.BufferSize)

	if a.config.DirMode == 0 {
		a.config.DirMode = DirMode
	}

	if a.config.FileMode == 0 {
		a.config.FileMode = FileMode
	}

	if a.log == nil {
		a.log = slog.Default()
	}

	if a.Filer == nil {
		a.Filer = filer.Default()
	}

	err := a.MkdirAll(filepath.Dir(a.config.Filepath), a.config.DirMode)
	if err != nil {
		return fmt.Errorf("making directories for destination file: %w", err)
	}

	return nil
}

// Stop asks the background go routine to exit. It does not block, does not
// close the source stream, and does not interrupt an in-flight blocking
// read. A read that never returns keeps the appender alive; close the
// underlying stream to unblock it.
func (a *Appender) Stop() {
	a.stopped.Store(true)
}

// Wait blocks until the background go routine has fully exited and the
// destination file is closed. Safe to call from any go routine, any number
// of times.
func (a *Appender) Wait() {
	<-a.done
}

// run is the entire life of the appender: open, drain, close.
// Every exit path releases the file exactly once.
func (a *Appender) run() {
	defer close(a.done)
	defer func() {
		if err := a.closeFile(); err != nil {
			a.log.Error("appender: releasing destination file", "error", err)
		}
	}()

	if err := a.openFile(); err != nil {
		a.log.Error("appender: opening destination file", "path", a.config.Filepath, "error", err)

		return
	}

	for !a.stopped.Load() {
		n, err := a.config.Source.Read(a.buf)
		if n > 0 {
			if werr := a.append(a.buf[:n]); werr != nil {
				a.log.Error("appender: writing to destination file", "path", a.config.Filepath, "error", werr)

				return
			}
		}

		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				// Producer closed the stream. Normal end of input.
			case a.stopped.Load():
				// Shutdown race: the stream died while we were stopping. Expected noise.
				a.log.Debug("appender: read error during shutdown", "error", err)
			default:
				a.log.Error("appender: reading source stream", "path", a.config.Filepath, "error", err)
			}

			return
		}
	}
}

// openFile opens the destination file for appending, creating it if needed.
func (a *Appender) openFile() error {
	var err error

	a.file, err = a.OpenFile(a.config.Filepath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, a.config.FileMode)
	if err != nil {
		return fmt.Errorf("opening destination file: %w", err)
	}

	return nil
}

// closeFile closes the active destination file.
func (a *Appender) closeFile() error {
	if a.file == nil {
		return nil
	}

	err := a.file.Close()
	a.file = nil

	if err != nil {
		return fmt.Errorf("closing destination file %s: %w", a.config.Filepath, err)
	}

	return nil
}

// append writes one read's worth of bytes, rotating first when the policy
// says so. Rotation and write happen as one step on the single go routine,
// so nothing can interleave with them.
func (a *Appender) append(b []byte) error {
	if a.policy != nil && a.policy.Rotate(int64(len(b))) {
		if err := a.rotate(); err != nil {
			return err
		}
	}

	n, err := a.file.Write(b)

	if a.policy != nil {
		a.policy.Wrote(int64(n))
	}

	if err != nil {
		return fmt.Errorf("writing %d bytes: %w", len(b), err)
	}

	return nil
}
