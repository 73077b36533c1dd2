package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmerkulov/tui-reflex/internal/geom"
	"github.com/dmerkulov/tui-reflex/internal/trial"
)

// Board glyphs
const (
	glyphBackslash = '\\'
	glyphSlash     = '/'
	glyphPath      = '·'
	glyphEmpty     = ' '
	glyphZoneIdle  = '·'
	glyphZoneEntry = '●'
	glyphZoneHit   = '◉'
	glyphZoneMiss  = '✗'
	cellWidth      = 3
)

// Zone and cell styles
var (
	styleMirror    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	stylePath      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleBounce    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleBorder    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleZoneIdle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleZoneEntry = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	styleCursor    = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true)
	styleZoneHit   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleZoneMiss  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// RenderBoard draws the grid, its perimeter zones, and whatever the current
// phase allows to be visible. cursor is the zone the player is pointing at,
// or -1 when zone selection is inactive.
func RenderBoard(v trial.View, cursor int) string {
	n := v.GridSize
	if n <= 0 {
		return ""
	}

	mirrors := make(map[geom.Coord]geom.ReflectorType, len(v.Reflectors))
	for _, r := range v.Reflectors {
		mirrors[r.Cell] = r.Type
	}
	type pathMark struct {
		bounce bool
		mirror geom.ReflectorType
	}
	path := make(map[geom.Coord]pathMark, len(v.Path))
	for _, w := range v.Path {
		// A bounce mark wins over a plain pass-through of the same cell.
		if prev, ok := path[w.Cell]; !ok || (!prev.bounce && w.Bounce) {
			path[w.Cell] = pathMark{bounce: w.Bounce, mirror: w.Mirror}
		}
	}

	var b strings.Builder

	// Top zones: zone ids [0, n) left to right.
	b.WriteString(strings.Repeat(" ", cellWidth+1))
	for i := 0; i < n; i++ {
		b.WriteString(centerGlyph(zoneGlyph(v, i, cursor), cellWidth))
	}
	b.WriteString("\n")

	// Top border
	b.WriteString(strings.Repeat(" ", cellWidth))
	b.WriteString(styleBorder.Render("┌" + strings.Repeat("─", n*cellWidth) + "┐"))
	b.WriteString("\n")

	for row := 0; row < n; row++ {
		// Left zone column runs top to bottom: [3n, 4n).
		leftZone := 3*n + row
		rightZone := n + row

		b.WriteString(centerGlyph(zoneGlyph(v, leftZone, cursor), cellWidth))
		b.WriteString(styleBorder.Render("│"))

		for col := 0; col < n; col++ {
			cell := geom.At(row, col)
			var rendered string
			if t, ok := mirrors[cell]; ok {
				g := glyphBackslash
				if t == geom.Slash {
					g = glyphSlash
				}
				style := styleMirror
				if mark, onPath := path[cell]; onPath && mark.bounce {
					style = styleBounce
				}
				rendered = style.Render(string(g))
			} else if mark, onPath := path[cell]; onPath {
				g := glyphPath
				style := stylePath
				if mark.bounce {
					// Reveal shows the mirror that caused the bounce even
					// when it is not in the visible reflector list.
					g = glyphBackslash
					if mark.mirror == geom.Slash {
						g = glyphSlash
					}
					style = styleBounce
				}
				rendered = style.Render(string(g))
			} else {
				rendered = string(glyphEmpty)
			}
			b.WriteString(centerGlyph(rendered, cellWidth))
		}

		b.WriteString(styleBorder.Render("│"))
		b.WriteString(centerGlyph(zoneGlyph(v, rightZone, cursor), cellWidth))
		b.WriteString("\n")
	}

	// Bottom border
	b.WriteString(strings.Repeat(" ", cellWidth))
	b.WriteString(styleBorder.Render("└" + strings.Repeat("─", n*cellWidth) + "┘"))
	b.WriteString("\n")

	// Bottom zones: [2n, 3n) left to right.
	b.WriteString(strings.Repeat(" ", cellWidth+1))
	for i := 0; i < n; i++ {
		b.WriteString(centerGlyph(zoneGlyph(v, 2*n+i, cursor), cellWidth))
	}
	b.WriteString("\n")

	return b.String()
}

// zoneGlyph picks the styled marker for one perimeter zone.
func zoneGlyph(v trial.View, zone, cursor int) string {
	switch v.ZoneStatus(zone) {
	case trial.ZoneCorrect:
		return styleZoneHit.Render(string(glyphZoneHit))
	case trial.ZoneIncorrect:
		return styleZoneMiss.Render(string(glyphZoneMiss))
	}

	if zone == cursor {
		return styleCursor.Render(string(glyphZoneEntry))
	}
	if zone == v.EntryZone {
		return styleZoneEntry.Render(string(glyphZoneEntry))
	}
	return styleZoneIdle.Render(string(glyphZoneIdle))
}

// centerGlyph pads a single styled glyph to the cell width.
func centerGlyph(s string, width int) string {
	left := (width - 1) / 2
	right := width - 1 - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
