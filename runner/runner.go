package runner

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/projecteru2/core/log"
	"golang.org/x/sync/errgroup"
)

// Runner executes the external tools this program orchestrates. Stdout is
// captured and returned to the caller; stderr is drained line-by-line while
// the child runs so operators see tool output as it happens. There is no
// retry and no internal timeout — cancellation comes from ctx only.
type Runner struct {
	// Debug echoes every command line and forwards stderr at info level.
	// Tool() additionally appends --debug for platform admin tools.
	Debug bool
}

// New creates a Runner.
func New(debug bool) *Runner {
	return &Runner{Debug: debug}
}

// Output runs name with args and returns its stdout. A non-zero exit yields
// an error carrying the combined output of both streams.
func (r *Runner) Output(ctx context.Context, name string, args ...string) (string, error) {
	logger := log.WithFunc("runner.Output")
	if r.Debug {
		logger.Infof(ctx, "+ %s %s", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // fixed tool names, args built internally
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("pipe stderr of %s: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start %s: %w", name, err)
	}

	var stderr bytes.Buffer
	g := &errgroup.Group{}
	g.Go(func() error {
		sc := bufio.NewScanner(stderrPipe)
		for sc.Scan() {
			line := sc.Text()
			stderr.WriteString(line)
			stderr.WriteByte('\n')
			if r.Debug {
				logger.Infof(ctx, "%s: %s", name, line)
			}
		}
		return sc.Err()
	})

	// The stderr pipe must be fully drained before Wait closes it.
	drainErr := g.Wait()
	if err := cmd.Wait(); err != nil {
		return stdout.String(), fmt.Errorf("%s %s: %w\n%s%s",
			name, strings.Join(args, " "), err, stdout.String(), stderr.String())
	}
	if drainErr != nil {
		logger.Warnf(ctx, "drain stderr of %s: %v", name, drainErr)
	}
	return stdout.String(), nil
}

// Tool runs a platform admin tool. In debug mode the tool's own --debug
// flag is appended on top of the Runner's echo behavior.
func (r *Runner) Tool(ctx context.Context, name string, args ...string) (string, error) {
	if r.Debug {
		args = append(append([]string{}, args...), "--debug")
	}
	return r.Output(ctx, name, args...)
}
