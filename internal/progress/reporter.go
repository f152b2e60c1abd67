// Package progress reports batch render progress on the terminal or in CI logs.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while a batch of treemaps renders.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	// Fail notes a render that did not produce output.
	Fail(name string, err error)
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive terminal,
// or a CIReporter if the CI environment variable is set. Both write to stderr
// so rendered output on stdout stays clean.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{Out: os.Stderr}
}

// TerminalReporter draws a progress bar. Failures are held back until Finish
// so they do not break up the bar.
type TerminalReporter struct {
	Out      io.Writer
	bar      *progressbar.ProgressBar
	failures []string
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Rendering treemaps"),
		progressbar.OptionSetWriter(r.out()),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Fail(name string, err error) {
	r.failures = append(r.failures, fmt.Sprintf("%s: %v", name, err))
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	for _, f := range r.failures {
		fmt.Fprintf(r.out(), "Failed %s\n", f)
	}
}

func (r *TerminalReporter) out() io.Writer {
	if r.Out == nil {
		return os.Stderr
	}
	return r.Out
}

// CIReporter prints one line per step, suitable for CI logs.
type CIReporter struct {
	Out    io.Writer
	total  int
	failed int
}

func (r *CIReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.Out, "Rendering %d treemaps\n", total)
}

func (r *CIReporter) Update(current int, message string) {
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Fail(name string, err error) {
	r.failed++
	fmt.Fprintf(r.Out, "Failed %s: %v\n", name, err)
}

func (r *CIReporter) Finish() {
	if r.failed > 0 {
		fmt.Fprintf(r.Out, "Rendering complete, %d failed\n", r.failed)
		return
	}
	fmt.Fprintln(r.Out, "Rendering complete")
}
