// Package restart terminates and relaunches the host application so a
// fresh config takes effect. Everything here is best-effort: failures
// are downgraded to a reported Outcome and never escape the package.
package restart

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"

	"github.com/desktopcommander/setupctl/pkg/platform"
)

const (
	// DefaultSettleDelay is the pause between terminating the host app
	// and relaunching it, letting the OS release resources.
	DefaultSettleDelay = 3 * time.Second
	// DefaultCommandTimeout bounds each kill/relaunch sub-command.
	DefaultCommandTimeout = 10 * time.Second
)

// Outcome reports what the restart attempt did. A failed sub-step never
// fails the overall setup run.
type Outcome struct {
	Attempted       bool
	Killed          bool
	NoProcess       bool
	KillFailure     string
	Relaunched      bool
	RelaunchSkipped bool
	RelaunchFailure string
}

// Coordinator drives the kill/settle/relaunch sequence through a
// Runner.
type Coordinator struct {
	runner     Runner
	logger     *slog.Logger
	settle     time.Duration
	cmdTimeout time.Duration
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithSettleDelay overrides the pause between kill and relaunch.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Coordinator) { c.settle = d }
}

// WithCommandTimeout overrides the per-sub-command timeout.
func WithCommandTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.cmdTimeout = d }
}

// NewCoordinator returns a Coordinator using the given runner.
func NewCoordinator(runner Runner, logger *slog.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		runner:     runner,
		logger:     logger,
		settle:     DefaultSettleDelay,
		cmdTimeout: DefaultCommandTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restart terminates the host application, waits for the settle delay,
// and relaunches it. On platforms without automated relaunch the
// relaunch is marked skipped and the user restarts manually.
func (c *Coordinator) Restart(ctx context.Context, ec platform.ExecutionContext) Outcome {
	var out Outcome

	killName, killArgs, ok := killCommand(ec.OS)
	if !ok {
		c.logger.Warn("host app restart not supported on this platform", "os", ec.OS)
		out.RelaunchSkipped = true
		return out
	}
	out.Attempted = true

	_, stderr, err := c.run(ctx, killName, killArgs...)
	switch {
	case err == nil:
		out.Killed = true
		c.logger.Info("terminated host app")
	case isNoProcessExit(ec.OS, err):
		out.NoProcess = true
		c.logger.Info("host app not running, nothing to terminate")
	default:
		out.KillFailure = failureText(err, stderr)
		c.logger.Warn("terminating host app failed", "error", out.KillFailure)
	}

	c.wait(ctx)

	relaunchName, relaunchArgs, ok := relaunchCommand(ec.OS)
	if !ok {
		out.RelaunchSkipped = true
		c.logger.Info("automated relaunch unavailable, start the host app manually")
		return out
	}

	_, stderr, err = c.run(ctx, relaunchName, relaunchArgs...)
	if err != nil {
		out.RelaunchFailure = failureText(err, stderr)
		c.logger.Warn("relaunching host app failed", "error", out.RelaunchFailure)
		return out
	}
	out.Relaunched = true
	c.logger.Info("relaunched host app")
	return out
}

func (c *Coordinator) run(ctx context.Context, name string, args ...string) (string, string, error) {
	runCtx, cancel := context.WithTimeout(ctx, c.cmdTimeout)
	defer cancel()
	return c.runner.Run(runCtx, name, args...)
}

// wait sleeps for the settle delay, cut short if ctx is canceled.
func (c *Coordinator) wait(ctx context.Context) {
	if c.settle <= 0 {
		return
	}
	t := time.NewTimer(c.settle)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// killCommand returns the platform-specific termination command for the
// host application. ok is false when the platform is unknown.
func killCommand(osFamily platform.OS) (string, []string, bool) {
	switch osFamily {
	case platform.OSMacOS:
		return "pkill", []string{"-x", "Claude"}, true
	case platform.OSWindows:
		return "taskkill", []string{"/F", "/IM", "Claude.exe"}, true
	case platform.OSLinux:
		return "pkill", []string{"-f", "claude-desktop"}, true
	default:
		return "", nil, false
	}
}

// relaunchCommand returns the platform-specific relaunch command. Linux
// has no official host app launcher, so relaunch is unsupported there.
func relaunchCommand(osFamily platform.OS) (string, []string, bool) {
	switch osFamily {
	case platform.OSMacOS:
		return "open", []string{"-a", "Claude"}, true
	case platform.OSWindows:
		return "cmd", []string{"/c", "start", "", "Claude"}, true
	default:
		return "", nil, false
	}
}

// isNoProcessExit reports whether err is the kill command's "no
// matching process" exit: status 1 from pkill, 128 from taskkill.
func isNoProcessExit(osFamily platform.OS, err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	if osFamily == platform.OSWindows {
		return exitErr.ExitCode() == 128
	}
	return exitErr.ExitCode() == 1
}

func failureText(err error, stderr string) string {
	if stderr != "" {
		return err.Error() + ": " + stderr
	}
	return err.Error()
}
