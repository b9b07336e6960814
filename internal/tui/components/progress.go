package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/corpus/internal/tui/tuistyles"
)

var hundred = decimal.NewFromInt(100)

// FundedBar shows how much of the required corpus the projection covers.
// The bar saturates at 100%; the label keeps the real ratio.
type FundedBar struct {
	Ratio decimal.Decimal // projected / required, percent
	Width int
}

func NewFundedBar(ratio decimal.Decimal) *FundedBar {
	return &FundedBar{Ratio: ratio, Width: 40}
}

func (b *FundedBar) WithWidth(width int) *FundedBar {
	b.Width = width
	return b
}

// Filled returns the number of bar cells covered by the ratio
func (b *FundedBar) Filled() int {
	ratio := decimal.Max(decimal.Zero, decimal.Min(hundred, b.Ratio))
	return int(ratio.Mul(decimal.NewFromInt(int64(b.Width))).Div(hundred).IntPart())
}

// Funded reports whether the projection meets the requirement
func (b *FundedBar) Funded() bool {
	return b.Ratio.GreaterThanOrEqual(hundred)
}

func (b *FundedBar) Render() string {
	color := tuistyles.ColorAccent
	if b.Funded() {
		color = tuistyles.ColorSuccess
	} else if b.Ratio.LessThan(decimal.NewFromInt(50)) {
		color = tuistyles.ColorDanger
	}
	filled := b.Filled()
	label := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Bold(true).
		Render(fmt.Sprintf("Funded %s%%", b.Ratio.Round(0).String()))
	return label + "\n[" +
		lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", b.Width-filled)) +
		"]"
}

// RunStatus is the state of one calculation in a ProgressPanel
type RunStatus int

const (
	RunPending RunStatus = iota
	RunRunning
	RunDone
	RunFailed
)

func (s RunStatus) icon() (string, lipgloss.Color) {
	switch s {
	case RunRunning:
		return "◐", tuistyles.ColorInfo
	case RunDone:
		return "●", tuistyles.ColorSuccess
	case RunFailed:
		return "✗", tuistyles.ColorDanger
	}
	return "○", tuistyles.ColorMuted
}

type progressItem struct {
	label  string
	status RunStatus
}

// ProgressPanel lists the plans being projected by a comparison
type ProgressPanel struct {
	Title string
	Width int
	items []progressItem
}

func NewProgressPanel(title string) *ProgressPanel {
	return &ProgressPanel{Title: title, Width: 60}
}

// AddPlan appends a plan with its run status
func (p *ProgressPanel) AddPlan(label string, status RunStatus) *ProgressPanel {
	p.items = append(p.items, progressItem{label: label, status: status})
	return p
}

func (p *ProgressPanel) Render() string {
	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(p.Title))
	content.WriteString("\n")
	for _, item := range p.items {
		icon, color := item.status.icon()
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(color).Render(icon))
		content.WriteString(" ")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(item.label))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(p.Width).
		Render(content.String())
}

// Spinner is the loading indicator shown while a plan is recalculated
type Spinner struct {
	frame   int
	message string
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func NewSpinner() *Spinner {
	return &Spinner{}
}

func (s *Spinner) WithMessage(message string) *Spinner {
	s.message = message
	return s
}

// Next advances one frame per tick
func (s *Spinner) Next() {
	s.frame = (s.frame + 1) % len(spinnerFrames)
}

func (s *Spinner) Render() string {
	rendered := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true).Render(spinnerFrames[s.frame])
	if s.message != "" {
		rendered += " " + lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(s.message)
	}
	return rendered
}
