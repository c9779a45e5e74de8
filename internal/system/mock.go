package system

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockExecutor implements CommandExecutor for tests.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records every executed command.
	Commands []MockCommand

	// Paths maps executable names to the path LookPath reports. Names that
	// are absent are treated as not installed.
	Paths map[string]string

	// Responses maps "name" or "name arg0" to a canned response.
	Responses map[string]MockResponse

	// DefaultResponse is returned when no response matches.
	DefaultResponse MockResponse

	// InteractiveErr is returned by ExecuteInteractive if set.
	InteractiveErr error
}

// MockCommand records an executed command.
type MockCommand struct {
	Name string
	Args []string
}

// String renders the command as a single space-separated line.
func (c MockCommand) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// MockResponse is a canned command result.
type MockResponse struct {
	Output []byte
	Err    error
}

// NewMockExecutor creates an executor with nothing installed.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Paths:     make(map[string]string),
		Responses: make(map[string]MockResponse),
	}
}

// Install marks the named executables as present on the search path.
func (m *MockExecutor) Install(names ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range names {
		m.Paths[n] = "/usr/bin/" + n
	}
}

// AddResponse sets the response for a command pattern.
func (m *MockExecutor) AddResponse(pattern string, output []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = MockResponse{Output: output, Err: err}
}

func (m *MockExecutor) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args})

	key := name
	if len(args) > 0 {
		key = name + " " + args[0]
	}
	if resp, ok := m.Responses[key]; ok {
		return resp.Output, resp.Err
	}
	if resp, ok := m.Responses[name]; ok {
		return resp.Output, resp.Err
	}
	return m.DefaultResponse.Output, m.DefaultResponse.Err
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args})
	return m.InteractiveErr
}

// CommandLines returns every recorded command rendered by MockCommand.String.
func (m *MockExecutor) CommandLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Commands))
	for _, c := range m.Commands {
		out = append(out, c.String())
	}
	return out
}
