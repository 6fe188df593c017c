// Package setup sequences the full first-run flow: classify the
// environment, load or create the host config, merge in the
// desktop-commander entry, persist atomically, then best-effort restart
// the host application.
package setup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/desktopcommander/setupctl/pkg/hostconfig"
	"github.com/desktopcommander/setupctl/pkg/logging"
	"github.com/desktopcommander/setupctl/pkg/platform"
	"github.com/desktopcommander/setupctl/pkg/restart"
	"github.com/desktopcommander/setupctl/pkg/steps"
)

// Restarter is the restart capability consumed by the orchestrator.
type Restarter interface {
	Restart(ctx context.Context, ec platform.ExecutionContext) restart.Outcome
}

// Orchestrator runs the setup phases in strict order. Phases before the
// restart are hard-fail: the first error aborts the run. The restart is
// soft-fail: once the merged config is persisted the run is a success
// regardless of what the host application does.
type Orchestrator struct {
	logger      *slog.Logger
	tracker     *steps.Tracker
	restarter   Restarter
	redactor    *logging.Redactor
	configPath  string
	skipRestart bool
	debug       bool
	runID       string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithConfigPath overrides the platform-default host config location.
func WithConfigPath(path string) Option {
	return func(o *Orchestrator) { o.configPath = path }
}

// WithRestarter substitutes the restart capability.
func WithRestarter(r Restarter) Option {
	return func(o *Orchestrator) { o.restarter = r }
}

// WithSkipRestart disables the restart phase.
func WithSkipRestart(skip bool) Option {
	return func(o *Orchestrator) { o.skipRestart = skip }
}

// New builds an orchestrator. Each run carries a short unique ID on
// every log line so interleaved runs in the diagnostic log stay
// distinguishable.
func New(logger *slog.Logger, debug bool, opts ...Option) *Orchestrator {
	runID := uuid.NewString()[:8]
	o := &Orchestrator{
		logger:   logger.With("run_id", runID),
		tracker:  steps.NewTracker(),
		redactor: logging.NewRedactor(),
		debug:    debug,
		runID:    runID,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.restarter == nil {
		o.restarter = restart.NewCoordinator(restart.NewRunner(), o.logger)
	}
	return o
}

// Steps returns the diagnostic step log accumulated so far.
func (o *Orchestrator) Steps() []steps.Step {
	return o.tracker.Steps()
}

// Run executes the phase sequence. The returned error is the first
// hard-phase failure, already logged with paths redacted.
func (o *Orchestrator) Run(ctx context.Context) error {
	// DetectEnvironment: pure computation, cannot fail.
	h := o.tracker.Begin("detect_environment")
	ec := platform.Detect(o.debug)
	o.tracker.Update(h, steps.StatusCompleted)
	o.logger.Info("detected environment",
		"os", ec.OS,
		"shell", ec.Shell,
		"run_method", ec.RunMethod,
		"ci", ec.IsCI,
		"debug", ec.Debug,
	)

	// EnsureConfigDir.
	h = o.tracker.Begin("ensure_config_dir")
	path, err := o.resolveConfigPath()
	if err == nil {
		err = hostconfig.EnsureDir(path)
	}
	if err != nil {
		return o.abort(h, steps.StatusCreateFailed, err)
	}
	o.tracker.Update(h, steps.StatusCompleted)

	// LoadOrCreateHostConfig.
	h = o.tracker.Begin("load_host_config")
	cfg, state, err := hostconfig.LoadOrDefault(path, ec.OS)
	if err != nil {
		return o.abort(h, steps.StatusFailed, err)
	}
	if state == hostconfig.LoadCreated {
		o.tracker.Update(h, steps.StatusCreated)
		o.logger.Info("no host config found, starting from defaults")
	} else {
		o.tracker.Update(h, steps.StatusExists)
		o.logger.Info("loaded existing host config")
	}

	// BuildServerSpec: pure computation, cannot fail.
	h = o.tracker.Begin("build_server_spec")
	spec := BuildServerSpec(ec)
	o.tracker.Update(h, steps.StatusCompleted)
	o.logger.Debug("built server spec", "command", spec.Command, "args", spec.Args)

	// MergeAndPersist.
	h = o.tracker.Begin("merge_and_persist")
	merged := hostconfig.Merge(cfg, hostconfig.ServerName, spec)
	if err := hostconfig.Persist(path, merged); err != nil {
		return o.abort(h, steps.StatusFailed, err)
	}
	o.tracker.Update(h, steps.StatusCompleted)
	o.logger.Info("host config updated", "server", hostconfig.ServerName)

	// Restart: best-effort, never changes the run result.
	o.runRestart(ctx, ec)

	o.logger.Info("setup complete")
	return nil
}

func (o *Orchestrator) resolveConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	path, err := hostconfig.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("resolving config path: %w", err)
	}
	return path, nil
}

// abort finalizes a failed hard phase: record it, log a clean redacted
// message, and hand the error back to the caller.
func (o *Orchestrator) abort(h steps.Handle, status steps.Status, err error) error {
	o.tracker.Finish(h, status, err)
	o.logger.Error(o.redactor.Redact(err.Error()))
	return err
}

// runRestart drives the kill/relaunch sequence and records one tracker
// step per sub-command. Failures are absorbed here.
func (o *Orchestrator) runRestart(ctx context.Context, ec platform.ExecutionContext) {
	hKill := o.tracker.Begin("terminate_host_app")
	hRelaunch := o.tracker.Begin("relaunch_host_app")

	if o.skipRestart {
		o.tracker.Update(hKill, steps.StatusSkipped)
		o.tracker.Update(hRelaunch, steps.StatusSkipped)
		o.logger.Info("restart disabled, restart the host app manually")
		return
	}

	out := o.restarter.Restart(ctx, ec)

	switch {
	case !out.Attempted:
		o.tracker.Update(hKill, steps.StatusSkipped)
	case out.Killed:
		o.tracker.Update(hKill, steps.StatusCompleted)
	case out.NoProcess:
		o.tracker.Update(hKill, steps.StatusNoProcessFound)
	default:
		o.tracker.Finish(hKill, steps.StatusFailed, fmt.Errorf("%s", out.KillFailure))
	}

	switch {
	case out.Relaunched:
		o.tracker.Update(hRelaunch, steps.StatusCompleted)
	case out.RelaunchSkipped:
		o.tracker.Update(hRelaunch, steps.StatusSkipped)
	default:
		o.tracker.Finish(hRelaunch, steps.StatusFailed, fmt.Errorf("%s", out.RelaunchFailure))
	}
}
