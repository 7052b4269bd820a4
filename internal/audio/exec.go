package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	DefaultPlayerCommand = "mpv"
	probeTimeout         = 10 * time.Second
)

// DefaultPlayerArgs are passed to the player before the URI
var DefaultPlayerArgs = []string{"--no-video", "--really-quiet"}

// ExecBackend plays each resource in an external player process.
type ExecBackend struct {
	command string
	args    []string
	probe   *http.Client
	logger  *slog.Logger
}

// NewExecBackend creates a backend running command with args followed by the URI.
func NewExecBackend(command string, args []string, logger *slog.Logger) *ExecBackend {
	if command == "" {
		command = DefaultPlayerCommand
		if args == nil {
			args = DefaultPlayerArgs
		}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ExecBackend{
		command: command,
		args:    slices.Clone(args),
		logger:  logger,
	}
}

// WithProbe makes Open check that http(s) URIs are reachable before starting
// the player, so a missing recitation is reported as a playback error.
func (b *ExecBackend) WithProbe(client *http.Client) *ExecBackend {
	if client == nil {
		client = &http.Client{Timeout: probeTimeout}
	}
	b.probe = client
	return b
}

// Open starts the player for uri.
func (b *ExecBackend) Open(ctx context.Context, uri string) (Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := exec.LookPath(b.command)
	if err != nil {
		return nil, fmt.Errorf("player %q not found: %w", b.command, err)
	}

	if b.probe != nil && (strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")) {
		if err := b.checkReachable(ctx, uri); err != nil {
			return nil, err
		}
	}

	cmd := exec.Command(path, append(slices.Clone(b.args), uri)...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start player: %w", err)
	}

	p := &process{cmd: cmd, done: make(chan struct{})}
	go func() {
		// Exit status is irrelevant: killed and finished both end playback.
		_ = cmd.Wait()
		close(p.done)
	}()

	b.logger.Debug("player started", "pid", cmd.Process.Pid, "uri", uri)
	return p, nil
}

func (b *ExecBackend) checkReachable(ctx context.Context, uri string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, uri, nil)
	if err != nil {
		return fmt.Errorf("bad audio uri: %w", err)
	}
	resp, err := b.probe.Do(req)
	if err != nil {
		return fmt.Errorf("audio unreachable: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("audio unavailable: HTTP %d", resp.StatusCode)
	}
	return nil
}

// process is a running player.
type process struct {
	cmd  *exec.Cmd
	done chan struct{}
	mu   sync.Mutex
}

func (p *process) Done() <-chan struct{} {
	return p.done
}

// Close kills the player and waits for it to exit.
func (p *process) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	default:
	}

	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill player: %w", err)
	}
	<-p.done
	return nil
}
