// Package system abstracts process execution so probing and installing can be
// tested without spawning real commands.
package system

import (
	"context"
	"os"
	"os/exec"
)

// CommandExecutor abstracts command lookup and execution.
type CommandExecutor interface {
	// LookPath resolves name against the executable search path.
	LookPath(name string) (string, error)

	// Execute runs a command and returns its combined output.
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)

	// ExecuteInteractive runs a command attached to the terminal.
	ExecuteInteractive(ctx context.Context, name string, args ...string) error
}

var defaultExecutor CommandExecutor = &osExecutor{}

// DefaultExecutor returns the executor backed by the real OS.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

// SetDefaultExecutor replaces the default executor.
func SetDefaultExecutor(e CommandExecutor) {
	defaultExecutor = e
}

// ResetDefaults restores the OS executor.
func ResetDefaults() {
	defaultExecutor = &osExecutor{}
}

type osExecutor struct{}

func (e *osExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (e *osExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

func (e *osExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
