// Package runner provides subprocess execution with captured output.
// Every external tool the pipeline touches goes through a Runner, so
// tests can substitute a fake and assert exact invocation sequences.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result holds the captured output of a finished command.
type Result struct {
	Stdout string
	Stderr string
}

// Runner executes an external command described by argv (argv[0] is the
// binary). desc is the human-readable step name used in progress output
// and diagnostics.
type Runner interface {
	Run(ctx context.Context, desc string, argv ...string) (Result, error)
}

// ExecError describes an external command that exited non-zero. It carries
// the captured output so the top-level driver can show full diagnostics.
type ExecError struct {
	Desc   string
	Argv   []string
	Stdout string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v", e.Desc, e.Err)
	if out := strings.TrimSpace(e.Stdout); out != "" {
		fmt.Fprintf(&b, "\nSTDOUT: %s", out)
	}
	if errOut := strings.TrimSpace(e.Stderr); errOut != "" {
		fmt.Fprintf(&b, "\nSTDERR: %s", errOut)
	}
	return b.String()
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec in a fixed working directory.
type ExecRunner struct {
	dir     string
	verbose bool
	out     io.Writer
}

// New creates an ExecRunner rooted at dir. In verbose mode subprocess
// output streams straight through instead of being captured.
func New(dir string, verbose bool) *ExecRunner {
	return &ExecRunner{
		dir:     dir,
		verbose: verbose,
		out:     os.Stdout,
	}
}

// SetOutput redirects progress output (used by tests).
func (r *ExecRunner) SetOutput(w io.Writer) {
	r.out = w
}

// Run executes argv, printing progress and the command's stdout on success.
// A non-zero exit returns an *ExecError with the captured output attached.
func (r *ExecRunner) Run(ctx context.Context, desc string, argv ...string) (Result, error) {
	fmt.Fprintf(r.out, "🔄 %s\n", desc)
	fmt.Fprintf(r.out, "Running: %s\n", strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.dir

	if r.verbose {
		cmd.Stdout = r.out
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return Result{}, &ExecError{Desc: desc, Argv: argv, Err: err}
		}
		return Result{}, nil
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Result{}, &ExecError{
			Desc:   desc,
			Argv:   argv,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if out := strings.TrimSpace(res.Stdout); out != "" {
		fmt.Fprintln(r.out, out)
	}
	return res, nil
}
