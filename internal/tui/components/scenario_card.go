package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/drawdown/internal/tui/tuistyles"
)

// ScenarioCard summarizes one runnable scenario.
type ScenarioCard struct {
	Name       string
	Strategy   string
	Highlights []string
	IsSelected bool
	Width      int
}

func NewScenarioCard(name, strategy string) *ScenarioCard {
	return &ScenarioCard{Name: name, Strategy: strategy, Width: 48}
}

// AddHighlight adds a key parameter line.
func (s *ScenarioCard) AddHighlight(highlight string) *ScenarioCard {
	s.Highlights = append(s.Highlights, highlight)
	return s
}

func (s *ScenarioCard) SetSelected(selected bool) *ScenarioCard {
	s.IsSelected = selected
	return s
}

// Render returns the bordered card, highlighted when selected.
func (s *ScenarioCard) Render() string {
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render(s.Name))
	if s.Strategy != "" {
		b.WriteString("\n" + tuistyles.SubtitleStyle.Render("→ "+s.Strategy))
	}
	for _, h := range s.Highlights {
		b.WriteString("\n" + tuistyles.MetricLabelStyle.Render("• "+h))
	}
	style := tuistyles.BorderStyle
	if s.IsSelected {
		style = tuistyles.ActiveBorderStyle
	}
	return style.Width(s.Width).Render(b.String())
}

// RenderCompact returns a single-line version for lists.
func (s *ScenarioCard) RenderCompact() string {
	line := s.Name
	if s.Strategy != "" {
		line += " (" + s.Strategy + ")"
	}
	return line
}

// ScenarioListCompact renders cards as a selectable list.
func ScenarioListCompact(cards []*ScenarioCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios available")
	}
	rendered := make([]string, len(cards))
	for i, card := range cards {
		if i == selectedIndex {
			rendered[i] = tuistyles.SelectedItemStyle.Render("▸ " + card.RenderCompact())
		} else {
			rendered[i] = tuistyles.UnselectedItemStyle.Render("  " + card.RenderCompact())
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
