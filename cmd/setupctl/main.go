package main

import (
	"fmt"
	"os"
	"time"

	"github.com/desktopcommander/setupctl/pkg/logging"
)

// Set via -ldflags at release time.
var version = "dev"

// failExitDelay gives the user a moment to read the failure message
// before the window closes when launched from an installer.
const failExitDelay = 2 * time.Second

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", logging.NewRedactor().Redact(err.Error()))
		time.Sleep(failExitDelay)
		os.Exit(1)
	}
}
