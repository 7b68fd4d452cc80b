package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/slardar/uptest/logging"
)

// ErrInvalidTransition is returned when an operation is not allowed in the current state.
var ErrInvalidTransition = errors.New("invalid service instance transition")

type State int

const (
	Stopped State = iota
	Assembled
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "STOPPED"
	case Assembled:
		return "ASSEMBLED"
	case Running:
		return "RUNNING"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ServiceInstance runs the lifecycle commands for one disposable service instance and keeps
// track of its state. It is not safe for concurrent use; the harness drives it from a single
// goroutine during setup and between test cases.
type ServiceInstance struct {
	root     string
	layout   Layout
	commands Commands
	runner   Runner
	logger   logging.Logger
	state    State
}

// NewServiceInstance creates a ServiceInstance for the given harness root. The instance starts
// out in the Stopped state; since some other process may have left a server running, callers
// normally call Stop first anyway.
func NewServiceInstance(root string, layout Layout, runner Runner, logger logging.Logger) *ServiceInstance {
	if logger == nil {
		logger = logging.NullLogger()
	}
	if runner == nil {
		runner = ShellRunner{Logger: logger}
	}
	return &ServiceInstance{
		root:     root,
		layout:   layout,
		commands: layout.Commands(),
		runner:   runner,
		logger:   logger,
	}
}

func (s *ServiceInstance) State() State { return s.state }

func (s *ServiceInstance) Commands() Commands { return s.commands }

func (s *ServiceInstance) Layout() Layout { return s.layout }

// ServerRoot returns the absolute path of the assembled server root.
func (s *ServiceInstance) ServerRoot() string {
	return filepath.Join(s.root, filepath.FromSlash(s.layout.ServerRoot))
}

// LogPath returns the absolute path of the instance's error log.
func (s *ServiceInstance) LogPath() string {
	return filepath.Join(s.root, filepath.FromSlash(s.layout.LogPath()))
}

// ConfigPath returns the absolute path of the instance's live configuration file.
func (s *ServiceInstance) ConfigPath() string {
	return filepath.Join(s.root, filepath.FromSlash(s.layout.ConfigPath()))
}

// Stop kills any running server processes. Finding nothing to kill is not an error. It only
// fails if the command could not be run at all.
func (s *ServiceInstance) Stop(ctx context.Context) error {
	err := s.run(ctx, "stop", s.commands.Stop)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return err
	}
	if err != nil {
		s.logger.Printf("Stop found nothing to stop (%s)", exitErr)
	}
	s.state = Stopped
	return nil
}

// Assemble builds a fresh server root, replacing any previous one. If it fails, the server
// root may be incomplete and the instance is left Stopped.
func (s *ServiceInstance) Assemble(ctx context.Context) error {
	if err := s.requireState("assemble", Stopped, Assembled); err != nil {
		return err
	}
	if err := s.run(ctx, "assemble", s.commands.Assemble); err != nil {
		s.state = Stopped
		return err
	}
	s.state = Assembled
	return nil
}

// Start launches the server against the assembled root. It does not wait for the server to
// accept requests; see AwaitReachable.
func (s *ServiceInstance) Start(ctx context.Context) error {
	if err := s.requireState("start", Assembled); err != nil {
		return err
	}
	if err := s.run(ctx, "start", s.commands.Start); err != nil {
		return err
	}
	s.state = Running
	return nil
}

// Reload tells the running server to reread its configuration.
func (s *ServiceInstance) Reload(ctx context.Context) error {
	if err := s.requireState("reload", Running); err != nil {
		return err
	}
	return s.run(ctx, "reload", s.commands.Reload)
}

func (s *ServiceInstance) requireState(op string, allowed ...State) error {
	for _, a := range allowed {
		if s.state == a {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot %s when %s", ErrInvalidTransition, op, s.state)
}

func (s *ServiceInstance) run(ctx context.Context, op, command string) error {
	s.logger.Printf("Service instance %s (state %s)", op, s.state)
	if err := s.runner.Run(ctx, s.root, command); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
