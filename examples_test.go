package appendorr_test

import (
	"log/slog"
	"os/exec"
	"time"

	"golift.io/appendorr"
	"golift.io/appendorr/compressor"
	"golift.io/appendorr/rotation"
	"golift.io/appendorr/timepolicy"
)

// Capture a child process's stdout into a single growing file.
// Closing the pipe (the child exiting) ends the appender; Wait blocks until
// the last byte is on disk and the file is closed.
func ExampleNew() {
	cmd := exec.Command("some-chatty-service")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		panic(err)
	}

	if err := cmd.Start(); err != nil {
		panic(err)
	}

	app, err := appendorr.New(&appendorr.Config{
		Source:   stdout,
		Filepath: "/var/log/some-chatty-service.log",
	})
	if err != nil {
		panic(err)
	}

	_ = cmd.Wait()
	app.Wait()
}

// Rotate the capture file every hour and gzip each archive in the
// background. All of the Config struct members are shown.
func Example_hourlyRotation() {
	policy, err := timepolicy.New(timepolicy.Hourly)
	if err != nil {
		panic(err)
	}

	cmd := exec.Command("some-chatty-service")

	stderr, err := cmd.StderrPipe()
	if err != nil {
		panic(err)
	}

	if err := cmd.Start(); err != nil {
		panic(err)
	}

	app, err := appendorr.New(&appendorr.Config{
		Source:        stderr,                            // required.
		Filepath:      "/var/log/service.log",            // required.
		BufferSize:    appendorr.DefaultBufferSize,       // default: 8192.
		FileMode:      appendorr.FileMode,                // default: 0600.
		DirMode:       appendorr.DirMode,                 // default: 0750.
		Policy:        policy,                            // nil means never rotate.
		PostRotate:    compressor.PostRotate(nil),        // optional post-rotate hook.
		MaxArchives:   24,                                // keep one day of archives.
		MaxArchiveAge: 7 * 24 * time.Hour,                // and nothing older than a week.
		Logger:        slog.Default(),                    // where appender errors go.
		Filer:         nil,                               // use default os procedures.
	})
	if err != nil {
		panic(err)
	}

	_ = cmd.Wait()
	app.Wait()
}

// Rotation settings usually arrive as raw strings from a settings store.
// rotation.Select turns them into a policy, falling back to no rotation when
// the strings are malformed. Capture never stops over a config typo.
func Example_configuredRotation() {
	logger := slog.Default()

	cmd := exec.Command("some-chatty-service")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		panic(err)
	}

	if err := cmd.Start(); err != nil {
		panic(err)
	}

	app, err := appendorr.New(&appendorr.Config{
		Source:   stdout,
		Filepath: "/var/log/service.log",
		Policy:   rotation.Select(logger, rotation.Size, "10485760"),
		Logger:   logger,
	})
	if err != nil {
		panic(err)
	}

	// Advisory stop: a blocked read is only released when the child exits
	// and the pipe closes. That is the caller's side of the contract.
	app.Stop()
	_ = cmd.Wait()
	app.Wait()
}
