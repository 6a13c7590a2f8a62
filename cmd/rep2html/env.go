package main

import (
	"io"
	"os"
	"time"

	"github.com/go-rod/rod/lib/launcher"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// OpenBrowser shows a URL in the desktop browser.
	OpenBrowser func(url string)
	// LookBrowser locates a browser binary for doctor and --browse.
	LookBrowser func() (string, bool)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		OpenBrowser: launcher.Open,
		LookBrowser: lookBrowser,
	}
}

// lookBrowser honors ROD_BROWSER_BIN before searching the usual locations.
func lookBrowser() (string, bool) {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		_, err := os.Stat(bin)
		return bin, err == nil
	}
	return launcher.LookPath()
}
