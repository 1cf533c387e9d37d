// Package core holds process-level helpers shared by every other
// package: panic recovery that restores the terminal, and a goroutine
// wrapper that routes panics through it.
package core

import (
	"fmt"
	"os"
	"runtime/debug"
)

// Finalizer restores a screen to its pre-raw state. Satisfied by
// tcell.Screen.
type Finalizer interface {
	Fini()
}

// crashScreen is the screen to restore before printing a crash report.
// Registered once during startup, before any goroutine can panic.
var crashScreen Finalizer

// RegisterCrashScreen records the live screen so a panic anywhere can
// restore the terminal before the stack trace is printed
func RegisterCrashScreen(s Finalizer) {
	crashScreen = s
}

// HandleCrash is the unified panic handler that resets the terminal and
// prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if crashScreen != nil {
		crashScreen.Fini()
	}

	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
