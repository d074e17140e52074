package bench

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Runner executes an external process to completion and returns its exit
// status together with the combined stdout/stderr output. The error return
// is reserved for processes that could not be started at all; a process
// that ran and exited nonzero yields a nil error and the exit code.
type Runner interface {
	Run(name string, args []string, capturePath string) (exitCode int, output string, err error)
}

type execRunner struct {
	log logrus.FieldLogger
}

// NewRunner creates a Runner backed by os/exec.
func NewRunner(log logrus.FieldLogger) Runner {
	return &execRunner{
		log: log.WithField("component", "runner"),
	}
}

// Run executes the command synchronously. No timeout is applied: if the
// external invocation hangs, the caller hangs with it. When capturePath is
// non-empty the combined output is also written there; a capture failure is
// logged but does not fail the run.
func (r *execRunner) Run(name string, args []string, capturePath string) (int, string, error) {
	r.log.WithField("command", name+" "+strings.Join(args, " ")).Debug("running command")

	cmd := exec.Command(name, args...) //nolint:gosec // G204: command and args are built from fixed per-benchmark tables

	// Stdout and Stderr share one buffer so the combined output keeps
	// whatever interleaving the OS delivers.
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	runErr := cmd.Run()
	output := combined.String()

	if capturePath != "" {
		if err := writeCapture(capturePath, output); err != nil {
			r.log.WithError(err).WithField("path", capturePath).Warn("failed to write capture file")
		}
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return exitErr.ExitCode(), output, nil
		}

		return -1, output, fmt.Errorf("starting %s: %w", name, runErr)
	}

	return 0, output, nil
}

// writeCapture writes the combined output to path. The file handle is
// released whether or not the write succeeds.
func writeCapture(path, output string) error {
	file, err := os.Create(path) //nolint:gosec // G304: capture path is a fixed filename inside the run's output directory
	if err != nil {
		return fmt.Errorf("creating capture file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if _, err := file.WriteString(output); err != nil {
		return fmt.Errorf("writing capture file: %w", err)
	}

	return nil
}

// Compile-time interface compliance check
var _ Runner = (*execRunner)(nil)
