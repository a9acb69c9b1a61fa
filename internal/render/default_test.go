package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"git.lost.host/meutraa/eotm/internal/game"
	"git.lost.host/meutraa/eotm/internal/preview"
	"git.lost.host/meutraa/eotm/internal/score"
	"git.lost.host/meutraa/eotm/internal/session"
	"git.lost.host/meutraa/eotm/internal/theme"
)

func newTestRenderer() (*DefaultRenderer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	r := NewRenderer(out, &theme.DefaultTheme{})
	r.Layout(80, 28, 4, 480)
	return r, out
}

func TestLayout(t *testing.T) {
	r, _ := newTestRenderer()
	if r.fieldRows != 24 {
		t.Log("field rows", r.fieldRows)
		t.Fail()
	}
	expected := []int{32, 36, 40, 44}
	for i, col := range expected {
		if r.laneCols[i] != col {
			t.Log("lane", i, "at", r.laneCols[i], "expected", col)
			t.Fail()
		}
	}
}

func TestSurface(t *testing.T) {
	r, _ := newTestRenderer()

	var surface session.NoteSurface = r
	h := surface.Spawn(1, session.TapNote)
	surface.Reposition(h, 240)
	if r.notes[h].row != fieldTop+12 {
		t.Log("row", r.notes[h].row)
		t.Fail()
	}
	surface.Reposition(h, -10)
	if r.inField(r.notes[h].row) {
		t.Log("note above the lane is drawn")
		t.Fail()
	}

	other := surface.Spawn(2, session.HeadNote)
	if other == h {
		t.Log("handles are reused")
		t.Fail()
	}
	surface.Destroy(h)
	surface.Destroy(h)
	if len(r.notes) != 1 {
		t.Log("notes", len(r.notes))
		t.Fail()
	}
}

func TestFill(t *testing.T) {
	r, out := newTestRenderer()
	r.Fill(3, 7, "x")
	r.flush()
	if out.String() != "\033[3;7Hx" {
		t.Logf("%q", out.String())
		t.Fail()
	}
}

func TestDecorations(t *testing.T) {
	r, out := newTestRenderer()
	name, c := r.theme.Judgement(game.Ok)
	r.AddDecoration(5, 6, colored(c, name), 1)
	r.tickDecorations()
	if len(r.decorations) != 1 {
		t.Fail()
	}
	r.flush()
	out.Reset()

	r.tickDecorations()
	r.flush()
	if len(r.decorations) != 0 || out.String() != "\033[6;5H"+strings.Repeat(" ", 9) {
		t.Logf("%q", out.String())
		t.Fail()
	}
}

func TestDrawField(t *testing.T) {
	r, out := newTestRenderer()
	h := r.Spawn(0, session.TapNote)
	r.Reposition(h, 460)
	r.DrawField([]bool{false, true, false, false})
	r.flush()

	s := out.String()
	if !strings.Contains(s, "\033[25;32H\033[38;2;236;236;236m ⬤ ") {
		t.Log("tap not drawn at the judgement line")
		t.Fail()
	}
	if !strings.Contains(s, "\033[27;36H ▬ ") || !strings.Contains(s, "\033[27;32H - ") {
		t.Log("hit bar not drawn")
		t.Fail()
	}
}

func TestDrawHUD(t *testing.T) {
	r, out := newTestRenderer()
	c := &game.Chart{Metadata: game.Metadata{Title: "Song", Artist: "Someone", Difficulty: "Hard", TotalLanes: 4}}
	s := score.Summary{Score: 1234567, Combo: 1200, Accuracy: math.NaN()}
	s.Counts[game.Miss] = 3

	r.DrawHUD(c, s, 2)
	r.flush()

	expected := []string{"1,234,567", "1,200", "--", "Miss:", "Song", "Someone [Hard]", "H2"}
	for _, e := range expected {
		if !strings.Contains(out.String(), e) {
			t.Log("missing", e)
			t.Fail()
		}
	}
}

func TestDrawPreview(t *testing.T) {
	r, out := newTestRenderer()
	v := preview.NewViewer(&game.Chart{Metadata: game.Metadata{TotalLanes: 4}})
	v.Score = 5000
	v.Notes[3] = preview.Entry{Lane: 2, PerMille: 500, Kind: preview.KindTap, ID: 3}
	v.Notes[4] = preview.Entry{Lane: 9, PerMille: 500, Kind: preview.KindTap, ID: 4}

	r.DrawPreview(v)
	r.flush()
	if !strings.Contains(out.String(), "\033[14;54H•") || strings.Count(out.String(), "•") != 1 {
		t.Logf("%q", out.String())
		t.Fail()
	}
	if !strings.Contains(out.String(), "5,000") {
		t.Fail()
	}
}
