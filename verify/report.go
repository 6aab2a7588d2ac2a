package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/moosim/core"
	"github.com/sarchlab/moosim/isa"
)

// Report summarizes a program and its lint issues.
type Report struct {
	Name         string
	Size         int
	Histogram    [isa.NumCodes]int
	Issues       []Issue
	StructIssues []Issue
	FlowIssues   []Issue
	HaltIssues   []Issue
}

// GenerateReport counts the opcodes of the program and runs the lint.
func GenerateReport(name string, p core.Program) *Report {
	r := &Report{Name: name}

	for _, op := range p.Ops() {
		if code, ok := op.Code(); ok {
			r.Histogram[code]++
			r.Size++
		}
	}

	r.Issues = RunLint(p)
	for _, issue := range r.Issues {
		switch issue.Type {
		case IssueStruct:
			r.StructIssues = append(r.StructIssues, issue)
		case IssueFlow:
			r.FlowIssues = append(r.FlowIssues, issue)
		case IssueHalt:
			r.HaltIssues = append(r.HaltIssues, issue)
		}
	}

	return r
}

// Clean reports whether the lint found nothing.
func (r *Report) Clean() bool {
	return len(r.Issues) == 0
}

// WriteReport writes a formatted report to a writer
func (r *Report) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "PROGRAM REPORT: %s\n", r.Name)
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Instructions: %d\n\n", r.Size)

	hist := table.NewWriter()
	hist.SetOutputMirror(w)
	hist.SetTitle("OPCODES")
	hist.AppendHeader(table.Row{"Code", "Mnemonic", "Role", "Count"})
	for code, n := range r.Histogram {
		if n == 0 {
			continue
		}
		op := isa.Opcode(code)
		hist.AppendRow(table.Row{code, op.String(), op.Role(), n})
	}
	hist.Render()

	fmt.Fprintln(w)
	if r.Clean() {
		fmt.Fprintln(w, "No lint issues found.")
		return
	}

	fmt.Fprintf(w, "Lint issues: %d (%d STRUCT, %d FLOW, %d HALT)\n",
		len(r.Issues), len(r.StructIssues), len(r.FlowIssues), len(r.HaltIssues))
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "  %s\n", issue)
	}
}

// SaveReportToFile saves the report to a file.
func (r *Report) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)

	return nil
}
