package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (stderr string, err error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Request describes a single transcode invocation.
type Request struct {
	// Input is the primary input path. Directives may declare further inputs.
	Input string
	// Directives is the metadata/artwork argument fragment inserted between
	// the primary input and the codec arguments.
	Directives []string
	// CodecArgs selects the output codec and its parameters.
	CodecArgs []string
	// Output is the destination path.
	Output string
}

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary string
	exec   Executor
}

// New constructs an ffmpeg client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Available reports whether the configured binary resolves on PATH.
func (c *Client) Available() error {
	if _, err := exec.LookPath(c.binary); err != nil {
		return fmt.Errorf("binary %q not found", c.binary)
	}
	return nil
}

// Transcode runs a single conversion. Argument order is load-bearing: the
// directive fragment sits between the primary input and the overwrite flag
// so its -i donor input precedes any output options, and codec arguments
// come last before the output path.
func (c *Client) Transcode(ctx context.Context, req Request) error {
	if strings.TrimSpace(req.Input) == "" {
		return errors.New("transcode: input path required")
	}
	if strings.TrimSpace(req.Output) == "" {
		return errors.New("transcode: output path required")
	}

	args := Arguments(req)
	stderr, err := c.exec.Run(ctx, c.binary, args)
	if err != nil {
		detail := strings.TrimSpace(stderr)
		if detail == "" {
			return fmt.Errorf("ffmpeg: %w", err)
		}
		return fmt.Errorf("ffmpeg: %w: %s", err, detail)
	}
	return nil
}

// Arguments assembles the full argument slice for a request.
func Arguments(req Request) []string {
	args := make([]string, 0, 8+len(req.Directives)+len(req.CodecArgs))
	args = append(args, "-i", req.Input)
	args = append(args, req.Directives...)
	args = append(args, "-y")
	args = append(args, req.CodecArgs...)
	args = append(args, req.Output)
	return args
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}
