package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gleam/internal/palette"
)

var (
	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(statsWidth - 1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

func subtleStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

func buttonStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(0, 3)
}

func keyHintStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted).Italic(true)
}

// GradientText colors each rune along a gradient from start to end.
// Colors that do not parse as hex render the text unstyled.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, errA := palette.ParseHex(string(start))
	b, errB := palette.ParseHex(string(end))
	if errA != nil || errB != nil {
		return text
	}

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		col := lipgloss.Color(palette.Lerp(a, b, t).Hex())
		result.WriteString(lipgloss.NewStyle().Bold(true).Foreground(col).Render(string(c)))
	}

	return result.String()
}
