package tui

import (
	"strings"
	"testing"

	"github.com/dmerkulov/tui-reflex/internal/geom"
	"github.com/dmerkulov/tui-reflex/internal/scenario"
	"github.com/dmerkulov/tui-reflex/internal/trial"
)

func revealView() trial.View {
	return trial.View{
		Phase:       trial.PhaseReveal,
		GridSize:    4,
		Trial:       1,
		TotalTrials: 10,
		EntryZone:   14, // Left edge, row 2
		Reflectors: []scenario.Reflector{
			{Cell: geom.At(2, 1), Type: geom.Slash},
		},
		Path: []scenario.Waypoint{
			{Cell: geom.At(2, 0)},
			{Cell: geom.At(2, 1), Bounce: true, Mirror: geom.Slash},
			{Cell: geom.At(1, 1)},
			{Cell: geom.At(0, 1)},
		},
		AnswerZone: 1,
		GuessZone:  3,
	}
}

func TestRenderBoardShape(t *testing.T) {
	out := RenderBoard(revealView(), -1)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Top zones, top border, 4 rows, bottom border, bottom zones.
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines for a 4x4 board, got %d:\n%s", len(lines), out)
	}
}

func TestRenderBoardShowsMirrorsAndPath(t *testing.T) {
	out := RenderBoard(revealView(), -1)

	if !strings.ContainsRune(out, glyphSlash) {
		t.Error("reveal board missing the mirror glyph")
	}
	if !strings.ContainsRune(out, glyphPath) {
		t.Error("reveal board missing path cells")
	}
	if !strings.ContainsRune(out, glyphZoneHit) {
		t.Error("reveal board missing the answer zone marker")
	}
	if !strings.ContainsRune(out, glyphZoneMiss) {
		t.Error("reveal board missing the wrong-guess marker")
	}
}

func TestRenderBoardHidesMirrorsDuringPredict(t *testing.T) {
	v := revealView()
	v.Phase = trial.PhasePredict
	v.Reflectors = nil
	v.Path = nil
	v.AnswerZone = -1
	v.GuessZone = -1

	out := RenderBoard(v, 5)

	if strings.ContainsRune(out, glyphSlash) || strings.ContainsRune(out, glyphBackslash) {
		t.Error("predict board leaked mirror glyphs")
	}
	if strings.ContainsRune(out, glyphZoneHit) || strings.ContainsRune(out, glyphZoneMiss) {
		t.Error("predict board leaked verdict markers")
	}
}

func TestRenderBoardEmptyOnZeroGrid(t *testing.T) {
	if out := RenderBoard(trial.View{}, -1); out != "" {
		t.Errorf("expected empty render for zero grid, got %q", out)
	}
}
