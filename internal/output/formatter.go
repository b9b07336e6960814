package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/corpus/internal/domain"
)

// Report pairs a plan with its calculated result. Formatters read the
// assumptions from the plan and everything else from the result.
type Report struct {
	Plan   *domain.Plan
	Result *domain.Result
}

// NewReport creates a report for a calculated plan
func NewReport(plan *domain.Plan, result *domain.Result) *Report {
	return &Report{Plan: plan, Result: result}
}

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{}

var aliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"summary":         "console-lite",
	"md":              "markdown",
	"matrix":          "csv",
}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(ConsoleVerboseFormatter{})
	register(CSVMatrixFormatter{})
	register(CSVSummarizer{})
	register(JSONFormatter{Pretty: true})
	register(MarkdownFormatter{})
}

// GetFormatterByName returns the formatter for a name or alias, or nil
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists the registered formatter names in order
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases in order
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted formats the report and writes it to a timestamped file in
// the working directory, returning the file name.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("corpus_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return filename, nil
}
