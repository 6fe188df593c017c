package setup

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/desktopcommander/setupctl/pkg/steps"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// RenderSummary prints the step log as a table followed by a result
// banner. colored selects the styled banner; callers pass false when
// stdout is not a terminal.
func RenderSummary(w io.Writer, stepList []steps.Step, ok bool, colored bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Step", "Status", "Elapsed", "Detail"})
	for _, st := range stepList {
		t.AppendRow(table.Row{st.Name, string(st.Status), formatElapsed(st.Elapsed), st.Err})
	}
	t.Render()

	banner := "Setup complete. Your MCP server is registered with Claude Desktop."
	style := successStyle
	if !ok {
		banner = "Setup failed. See the log above for details."
		style = failureStyle
	}
	if colored {
		banner = style.Render(banner)
	}
	fmt.Fprintln(w, banner)
}

func formatElapsed(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}
