package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/corpus/internal/output"
	"github.com/rgehrsitz/corpus/internal/tui/tuistyles"
)

// SliderKind selects how a planning assumption is displayed
type SliderKind int

const (
	// SliderRate is a yearly rate in percent
	SliderRate SliderKind = iota
	// SliderAge is an age or a span in whole years
	SliderAge
	// SliderRupees is a monthly amount shown in lakh/crore shorthand
	SliderRupees
	// SliderYearIndex is a projection year counted from today
	SliderYearIndex
)

// ParameterSlider edits one planning assumption within a range. Values
// snap to the step grid anchored at Min so repeated presses never drift.
type ParameterSlider struct {
	Label       string
	Description string
	Kind        SliderKind
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Width       int
	IsFocused   bool
}

// NewParameterSlider creates a rate slider; use WithKind for other values
func NewParameterSlider(label string, value, min, max, step float64) *ParameterSlider {
	s := &ParameterSlider{Label: label, Min: min, Max: max, Step: step, Width: 30}
	s.SetValue(value)
	return s
}

// WithKind sets the display kind
func (p *ParameterSlider) WithKind(kind SliderKind) *ParameterSlider {
	p.Kind = kind
	return p
}

func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

func (p *ParameterSlider) Increment() { p.SetValue(p.Value + p.Step) }

func (p *ParameterSlider) Decrement() { p.SetValue(p.Value - p.Step) }

// SetValue clamps to the range and snaps to the nearest step
func (p *ParameterSlider) SetValue(value float64) {
	v := math.Max(p.Min, math.Min(p.Max, value))
	if p.Step > 0 {
		v = p.Min + math.Round((v-p.Min)/p.Step)*p.Step
		v = math.Min(p.Max, v)
	}
	p.Value = v
}

// Percentage returns the position of the value within the range, 0 to 1
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// FormatValue renders a value of this slider's kind
func (p *ParameterSlider) FormatValue(v float64) string {
	switch p.Kind {
	case SliderAge:
		return fmt.Sprintf("%.0f yrs", v)
	case SliderRupees:
		return output.FormatCompactINR(decimal.NewFromFloat(v)) + "/mo"
	case SliderYearIndex:
		if v == 0 {
			return "this year"
		}
		return fmt.Sprintf("year %.0f", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// Render returns the expanded view used for the focused assumption
func (p *ParameterSlider) Render() string {
	labelStyle, valueStyle := p.styles()
	lines := []string{
		labelStyle.Render(p.Label),
		valueStyle.Render(p.FormatValue(p.Value)),
		p.bar(p.Width),
		lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
			Render(fmt.Sprintf("%s  ─  %s   step %s", p.FormatValue(p.Min), p.FormatValue(p.Max), p.stepText())),
	}
	if p.Description != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(p.Description))
	}
	return strings.Join(lines, "\n")
}

// RenderCompact returns a single line for unfocused assumptions
func (p *ParameterSlider) RenderCompact() string {
	labelStyle, valueStyle := p.styles()
	return fmt.Sprintf("%s %s %s", labelStyle.Render(p.Label+":"), valueStyle.Render(p.FormatValue(p.Value)), p.bar(10))
}

func (p *ParameterSlider) stepText() string {
	switch p.Kind {
	case SliderRupees:
		return output.FormatCompactINR(decimal.NewFromFloat(p.Step))
	case SliderRate:
		return fmt.Sprintf("%.1f%%", p.Step)
	}
	return fmt.Sprintf("%.0f", p.Step)
}

func (p *ParameterSlider) styles() (lipgloss.Style, lipgloss.Style) {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	return labelStyle, valueStyle
}

// bar draws the track with the thumb at the value's position
func (p *ParameterSlider) bar(width int) string {
	if width < 2 {
		width = 2
	}
	thumb := int(math.Round(float64(width-1) * p.Percentage()))
	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}
	return "[" +
		thumbStyle.Render(strings.Repeat("━", thumb)+"●") +
		tuistyles.SliderTrackStyle.Render(strings.Repeat("─", width-1-thumb)) +
		"]"
}
