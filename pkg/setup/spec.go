package setup

import (
	"os"
	"path/filepath"

	"github.com/desktopcommander/setupctl/pkg/hostconfig"
	"github.com/desktopcommander/setupctl/pkg/platform"
)

const (
	serverPackage = "@desktop-commander/mcp-server@latest"

	// Debugger-attach flags, both targeting the node inspector on 9229.
	inspectFlag     = "--inspect-brk=9229"
	nodeOptionsFlag = "--node-options=--inspect-brk=9229"
)

// Swappable in tests.
var executablePath = os.Executable

// BuildServerSpec computes the server-launch entry for the detected
// environment. Pure computation, cannot fail. Debug mode injects the
// debugger-attach flag and diagnostic environment variables; otherwise
// the minimal command/args pair for the run method is emitted.
func BuildServerSpec(ec platform.ExecutionContext) hostconfig.ServerSpec {
	var spec hostconfig.ServerSpec

	switch ec.RunMethod {
	case platform.RunNpx:
		args := []string{"-y"}
		if ec.Debug {
			args = append(args, nodeOptionsFlag)
		}
		args = append(args, serverPackage)
		if ec.OS == platform.OSWindows {
			// npx is a .cmd shim on Windows and needs the shell.
			spec = hostconfig.ServerSpec{
				Command: "cmd.exe",
				Args:    append([]string{"/c", "npx"}, args...),
			}
		} else {
			spec = hostconfig.ServerSpec{Command: "npx", Args: args}
		}
	default:
		// Global, script, and direct installs ship the server next to
		// this binary; invoke it by local path.
		var args []string
		if ec.Debug {
			args = append(args, inspectFlag)
		}
		args = append(args, localServerScript())
		spec = hostconfig.ServerSpec{Command: "node", Args: args}
	}

	if ec.Debug {
		spec.Env = map[string]string{
			"DC_DEBUG":      "1",
			"MCP_LOG_LEVEL": "debug",
		}
	}
	return spec
}

// localServerScript resolves the bundled server entry point relative to
// the running program's own install location.
func localServerScript() string {
	exe, err := executablePath()
	if err != nil {
		return filepath.Join("server", "index.js")
	}
	return filepath.Join(filepath.Dir(exe), "server", "index.js")
}
