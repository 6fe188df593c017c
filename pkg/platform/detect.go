package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// OS is the coarse operating system family the setup runs on.
type OS string

const (
	OSWindows OS = "windows"
	OSMacOS   OS = "macos"
	OSLinux   OS = "linux"
	OSOther   OS = "other"
)

// RunMethod classifies how the current invocation of the tool was started.
type RunMethod string

const (
	RunNpx    RunMethod = "npx"
	RunGlobal RunMethod = "global"
	RunScript RunMethod = "script"
	RunDirect RunMethod = "direct"
)

// ExecutionContext is the one-shot classification of the process
// environment. It is derived once per run and never mutated afterwards;
// every component that needs platform knowledge receives it explicitly.
type ExecutionContext struct {
	OS        OS
	Shell     string
	RunMethod RunMethod
	IsCI      bool
	Debug     bool
}

// knownShells are matched as substrings against the basename of $SHELL.
// Order matters: more specific names come before "sh".
var knownShells = []string{"bash", "zsh", "fish", "tcsh", "csh", "ksh", "dash", "pwsh", "nu", "sh"}

// Detect classifies the current process environment. It never fails;
// missing signals degrade to labeled unknown categories.
func Detect(debug bool) ExecutionContext {
	exe, _ := os.Executable()
	return detect(runtime.GOOS, os.Getenv, exe, debug)
}

func detect(goos string, getenv func(string) string, exePath string, debug bool) ExecutionContext {
	return ExecutionContext{
		OS:        osFamily(goos),
		Shell:     detectShell(goos, getenv),
		RunMethod: detectRunMethod(getenv, exePath),
		IsCI:      getenv("CI") != "" || getenv("GITHUB_ACTIONS") != "",
		Debug:     debug,
	}
}

func osFamily(goos string) OS {
	switch goos {
	case "windows":
		return OSWindows
	case "darwin":
		return OSMacOS
	case "linux":
		return OSLinux
	default:
		return OSOther
	}
}

// detectShell identifies the user's shell on a best-effort basis.
// On Windows there is no $SHELL, so terminal and WSL markers are
// checked instead.
func detectShell(goos string, getenv func(string) string) string {
	if goos == "windows" {
		switch {
		case strings.EqualFold(getenv("TERM_PROGRAM"), "vscode"):
			return "vscode-terminal"
		case getenv("WT_SESSION") != "":
			return "windows-terminal"
		case getenv("WSL_DISTRO_NAME") != "" || getenv("WSL_INTEROP") != "":
			return "wsl"
		default:
			return "windows-unknown"
		}
	}

	if sh := getenv("SHELL"); sh != "" {
		base := filepath.Base(sh)
		for _, name := range knownShells {
			if strings.Contains(base, name) {
				return name
			}
		}
	}

	if tp := getenv("TERM_PROGRAM"); tp != "" {
		return strings.ToLower(tp)
	}

	return "unknown-shell"
}

// detectRunMethod infers how this process was launched. Heuristics are
// priority-ordered; the first match wins.
func detectRunMethod(getenv func(string) string, exePath string) RunMethod {
	if getenv("npm_command") == "exec" || strings.Contains(getenv("npm_execpath"), "npx") {
		return RunNpx
	}
	if getenv("npm_config_global") == "true" {
		return RunGlobal
	}
	if prefix := getenv("npm_config_prefix"); prefix != "" && exePath != "" && strings.HasPrefix(exePath, prefix) {
		return RunGlobal
	}
	if getenv("npm_lifecycle_event") != "" {
		return RunScript
	}
	return RunDirect
}
