package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/slardar/uptest/logging"
)

// processOutputDelay bounds how long we keep reading output after the shell exits. A server
// that daemonizes may hold on to the output pipe after its parent has finished; that is not a
// failure as long as the shell itself exited successfully.
const processOutputDelay = time.Second

// Runner runs one shell command line in the given directory.
type Runner interface {
	Run(ctx context.Context, dir string, command string) error
}

// ShellRunner runs commands with "sh -c" and logs each command together with its output.
type ShellRunner struct {
	Shell  string
	Logger logging.Logger
}

func (r ShellRunner) Run(ctx context.Context, dir string, command string) error {
	shell := r.Shell
	if shell == "" {
		shell = "sh"
	}
	logger := r.Logger
	if logger == nil {
		logger = logging.NullLogger()
	}

	logger.Printf("$ %s", command)
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Dir = dir
	cmd.WaitDelay = processOutputDelay
	out, err := cmd.CombinedOutput()
	if text := strings.TrimSpace(string(out)); text != "" {
		logger.Printf("%s", text)
	}
	if errors.Is(err, exec.ErrWaitDelay) {
		logger.Printf("Output still held open by a child process; stopped reading")
		err = nil
	}
	if err != nil {
		return fmt.Errorf("command failed (%s): %w", command, err)
	}
	return nil
}
