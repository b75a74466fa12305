package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// StdioTransport talks to an MCP server spawned as a child process, one
// JSON message per line.
type StdioTransport struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	lines chan []byte
	done  chan struct{} // Closed when stdout ends
	quit  chan struct{} // Closed by Close
	mu    sync.Mutex
}

// NewStdioTransport prepares the child process. env entries are KEY=VALUE
// and override the current environment. The child's stderr goes to stderr,
// or is discarded when stderr is nil. Call Start to spawn it.
func NewStdioTransport(command string, args, env []string, stderr io.Writer) *StdioTransport {
	cmd := exec.Command(command, args...)
	cmd.Env = mergeEnv(os.Environ(), env)
	if stderr != nil {
		cmd.Stderr = stderr
	}
	return &StdioTransport{cmd: cmd}
}

// Start spawns the child process.
func (t *StdioTransport) Start() error {
	var err error
	if t.stdin, err = t.cmd.StdinPipe(); err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := t.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	if err := t.cmd.Start(); err != nil {
		return fmt.Errorf("start process: %w", err)
	}

	t.lines = make(chan []byte)
	t.done = make(chan struct{})
	t.quit = make(chan struct{})
	go t.readLoop(stdout)
	return nil
}

func (t *StdioTransport) readLoop(r io.Reader) {
	defer close(t.done)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := append([]byte(nil), scanner.Bytes()...)
		select {
		case t.lines <- line:
		case <-t.quit:
			return
		}
	}
}

func (t *StdioTransport) write(req *JSONRPCRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	if _, err := t.stdin.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write to stdin: %w", err)
	}
	return nil
}

// Send writes req and waits for the response carrying its ID. Server
// notifications received meanwhile are skipped.
func (t *StdioTransport) Send(ctx context.Context, req *JSONRPCRequest) (*JSONRPCResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.write(req); err != nil {
		return nil, err
	}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.done:
			return nil, errors.New("server closed stdout")
		case line := <-t.lines:
			var resp JSONRPCResponse
			if err := json.Unmarshal(line, &resp); err != nil {
				return nil, fmt.Errorf("unmarshal response: %w", err)
			}
			if resp.ID == req.ID {
				return &resp, nil
			}
		}
	}
}

// Notify writes a notification.
func (t *StdioTransport) Notify(_ context.Context, req *JSONRPCRequest) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.write(req)
}

// Close closes stdin, kills the process and reaps it.
func (t *StdioTransport) Close() error {
	if t.stdin != nil {
		t.stdin.Close()
	}
	if t.quit != nil {
		close(t.quit)
	}
	if t.cmd.Process != nil {
		_ = t.cmd.Process.Kill()
	}
	_ = t.cmd.Wait()
	return nil
}

// mergeEnv applies overrides to base. An override replaces the base entry
// with the same key and keeps its position.
func mergeEnv(base, overrides []string) []string {
	env := make(map[string]string, len(base)+len(overrides))
	order := make([]string, 0, len(base)+len(overrides))

	add := func(entries []string) {
		for _, entry := range entries {
			key, _, found := strings.Cut(entry, "=")
			if !found {
				continue
			}
			if _, exists := env[key]; !exists {
				order = append(order, key)
			}
			env[key] = entry
		}
	}
	add(base)
	add(overrides)

	result := make([]string, 0, len(order))
	for _, key := range order {
		result = append(result, env[key])
	}
	return result
}
