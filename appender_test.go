package appendorr_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golift.io/appendorr"
	"golift.io/appendorr/sizepolicy"
)

func TestNewErrors(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, err := appendorr.New(&appendorr.Config{Filepath: "somefile.log"})
	assert.ErrorIs(err, appendorr.ErrNilSource, "a nil source must be rejected")

	_, err = appendorr.New(&appendorr.Config{Source: strings.NewReader("")})
	assert.ErrorIs(err, appendorr.ErrNoFilepath, "an empty file path must be rejected")
}

// Ten bytes through a tiny buffer must land byte-identical, no matter how the
// reads chunk them.
func TestAppendNoRotation(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	dest := filepath.Join(t.TempDir(), "capture.log")
	app, err := appendorr.New(&appendorr.Config{
		Source:     strings.NewReader("abcdefghij"),
		Filepath:   dest,
		BufferSize: 8,
	})
	require.NoError(err)

	app.Wait()

	body, err := os.ReadFile(dest)
	require.NoError(err)
	require.Equal("abcdefghij", string(body))
}

// Wait must be safe to call from several go routines, several times.
func TestWaitIdempotent(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "capture.log")
	app, err := appendorr.New(&appendorr.Config{Source: strings.NewReader("x"), Filepath: dest})
	require.NoError(t, err)

	var wg sync.WaitGroup

	for i := 0; i < 3; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			app.Wait()
		}()
	}

	wg.Wait()
	app.Wait()
}

// A stream error that lands after Stop is shutdown noise, not a failure.
func TestStopSuppressesReadError(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	var logBuf bytes.Buffer

	dest := filepath.Join(t.TempDir(), "capture.log")
	pipeR, pipeW := io.Pipe()

	app, err := appendorr.New(&appendorr.Config{
		Source:   pipeR,
		Filepath: dest,
		Logger:   slog.New(slog.NewTextHandler(&logBuf, nil)),
	})
	require.NoError(err)

	_, err = pipeW.Write([]byte("hello"))
	require.NoError(err)

	app.Stop()
	pipeW.CloseWithError(errors.New("producer died"))
	app.Wait()

	body, err := os.ReadFile(dest)
	require.NoError(err)
	require.Equal("hello", string(body))
	require.NotContains(logBuf.String(), "level=ERROR", "a post-stop read error must not be surfaced")
}

// The same stream error without a Stop is appender-fatal and must be logged.
func TestReadErrorFatal(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	var logBuf bytes.Buffer

	dest := filepath.Join(t.TempDir(), "capture.log")
	pipeR, pipeW := io.Pipe()

	app, err := appendorr.New(&appendorr.Config{
		Source:   pipeR,
		Filepath: dest,
		Logger:   slog.New(slog.NewTextHandler(&logBuf, nil)),
	})
	require.NoError(err)

	_, err = pipeW.Write([]byte("partial"))
	require.NoError(err)

	pipeW.CloseWithError(errors.New("producer died"))
	app.Wait()

	body, err := os.ReadFile(dest)
	require.NoError(err)
	require.Equal("partial", string(body), "bytes read before the error must be on disk")
	require.Contains(logBuf.String(), "level=ERROR")
	require.Contains(logBuf.String(), "producer died")
}

// Threshold 10, then 10 bytes and 5 more: the archive holds exactly the
// first ten, the live file exactly the next five.
func TestSizeRotationScenario(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	policy, err := sizepolicy.New(10)
	require.NoError(err)

	dest := filepath.Join(t.TempDir(), "capture.log")
	pipeR, pipeW := io.Pipe()

	app, err := appendorr.New(&appendorr.Config{
		Source:   pipeR,
		Filepath: dest,
		Policy:   policy,
	})
	require.NoError(err)

	_, err = pipeW.Write([]byte("0123456789"))
	require.NoError(err)
	_, err = pipeW.Write([]byte("abcde"))
	require.NoError(err)
	require.NoError(pipeW.Close())
	app.Wait()

	archived, err := os.ReadFile(dest + "--000001")
	require.NoError(err)
	require.Equal("0123456789", string(archived))

	current, err := os.ReadFile(dest)
	require.NoError(err)
	require.Equal("abcde", string(current))
}

// Every archive stays at or under the threshold and nothing is lost.
func TestSizeRotationBound(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	const threshold = 32

	policy, err := sizepolicy.New(threshold)
	require.NoError(err)

	dest := filepath.Join(t.TempDir(), "capture.log")
	pipeR, pipeW := io.Pipe()

	app, err := appendorr.New(&appendorr.Config{
		Source:   pipeR,
		Filepath: dest,
		Policy:   policy,
	})
	require.NoError(err)

	var total int

	for chunk := 0; chunk < 20; chunk++ {
		b := bytes.Repeat([]byte{byte('a' + chunk)}, 1+chunk%7)
		total += len(b)

		_, err = pipeW.Write(b)
		require.NoError(err)
	}

	require.NoError(pipeW.Close())
	app.Wait()

	files, err := filepath.Glob(dest + "*")
	require.NoError(err)

	var onDisk int

	for _, file := range files {
		info, err := os.Stat(file)
		require.NoError(err)

		if file != dest {
			require.LessOrEqual(info.Size(), int64(threshold), "archive over threshold: %s", file)
		}

		onDisk += int(info.Size())
	}

	require.Equal(total, onDisk, "bytes written must equal bytes on disk")
}

// Old archives are deleted once the retention count is exceeded.
func TestPruneByCount(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	policy, err := sizepolicy.New(10)
	require.NoError(err)

	dest := filepath.Join(t.TempDir(), "capture.log")
	pipeR, pipeW := io.Pipe()

	app, err := appendorr.New(&appendorr.Config{
		Source:      pipeR,
		Filepath:    dest,
		Policy:      policy,
		MaxArchives: 1,
	})
	require.NoError(err)

	for _, chunk := range []string{"AAAAAAAAAA", "BBBBBBBBBB", "CCCCCCCCCC"} {
		_, err = pipeW.Write([]byte(chunk))
		require.NoError(err)
	}

	require.NoError(pipeW.Close())
	app.Wait()

	_, err = os.Stat(dest + "--000001")
	require.ErrorIs(err, os.ErrNotExist, "the oldest archive must be pruned")

	archived, err := os.ReadFile(dest + "--000002")
	require.NoError(err)
	require.Equal("BBBBBBBBBB", string(archived))

	current, err := os.ReadFile(dest)
	require.NoError(err)
	require.Equal("CCCCCCCCCC", string(current))
}
