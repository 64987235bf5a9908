// Command appendorr runs a child command and captures its stdout and stderr
// into rotating files.
//
// Usage:
//
//	appendorr --output /var/log/svc.log --strategy size --value 10485760 -- some-service --flag
//
// Stdout lands in --output; stderr lands in --stderr, or next to --output
// with an .err extension when unset. Rotation settings may also come from a
// YAML or JSON file via --config; command-line flags win over the file.
// Malformed rotation settings disable rotation with a warning, they never
// stop capture. The exit code is the child's exit code.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/urfave/cli/v3"
	"golift.io/appendorr"
	"golift.io/appendorr/compressor"
	"golift.io/appendorr/rotation"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "appendorr",
		Usage:     "run a command and capture its output into rotating files",
		ArgsUsage: "-- command [args...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML or JSON config `FILE`"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "destination `FILE` for the child's stdout"},
			&cli.StringFlag{Name: "stderr", Usage: "destination `FILE` for the child's stderr"},
			&cli.IntFlag{Name: "buffer", Usage: "read buffer size in `BYTES`"},
			&cli.StringFlag{Name: "strategy", Usage: "rotation strategy: none, time or size"},
			&cli.StringFlag{Name: "value", Usage: "rotation value: interval spec for time, max bytes for size"},
			&cli.IntFlag{Name: "max-archives", Usage: "archived files kept per destination, 0 keeps all"},
			&cli.DurationFlag{Name: "max-age", Usage: "maximum archived file age, 0 keeps all"},
			&cli.BoolFlag{Name: "compress", Usage: "gzip archived files"},
		},
		Action: capture,
	}
}

// capture wires the child process to two appenders and waits everything out.
func capture(ctx context.Context, cmd *cli.Command) error {
	conf, err := gatherConfig(cmd)
	if err != nil {
		return err
	}

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return errors.New("no command given; pass one after --")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	child := exec.CommandContext(ctx, args[0], args[1:]...)

	stdout, err := child.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}

	stderr, err := child.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := child.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", args[0], err)
	}

	outApp, err := newAppender(logger, conf, conf.Output, stdout)
	if err != nil {
		_ = child.Process.Kill()
		_ = child.Wait()

		return err
	}

	errApp, err := newAppender(logger, conf, conf.StderrPath(), stderr)
	if err != nil {
		_ = child.Process.Kill()
		outApp.Wait()
		_ = child.Wait()

		return err
	}

	// The appenders reach end-of-input when the child exits and its pipe
	// ends close. Drain both fully before reaping the child, or tail bytes
	// could be lost to the pipes being torn down.
	outApp.Wait()
	errApp.Wait()

	if err := child.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return cli.Exit(err, exitErr.ExitCode())
		}

		return fmt.Errorf("running %s: %w", args[0], err)
	}

	return nil
}

// newAppender builds one appender for one stream. Each destination gets its
// own policy instance: rotation counters are per file, never shared.
func newAppender(logger *slog.Logger, conf *config, path string, src io.Reader) (*appendorr.Appender, error) {
	appConfig := &appendorr.Config{
		Source:        src,
		Filepath:      path,
		BufferSize:    conf.BufferSize,
		Policy:        rotation.Select(logger, conf.Strategy, conf.Value),
		MaxArchives:   conf.MaxArchives,
		MaxArchiveAge: conf.MaxAge,
		Logger:        logger,
	}

	if conf.Compress {
		appConfig.PostRotate = compressor.PostRotate(logger)
	}

	app, err := appendorr.New(appConfig)
	if err != nil {
		return nil, fmt.Errorf("appender for %s: %w", path, err)
	}

	return app, nil
}
