package theme

import (
	"image/color"

	"git.lost.host/meutraa/eotm/internal/game"
	"git.lost.host/meutraa/eotm/internal/session"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) Note(lane, lanes int, kind session.Kind) (string, color.RGBA) {
	c := laneColor(lane, lanes)
	switch kind {
	case session.HeadNote:
		return headSym, c
	case session.TailNote:
		return tailSym, c
	}
	return noteSym, c
}

func (t *DefaultTheme) HitField(lane, lanes int, pressed bool) string {
	if pressed {
		return pressedSym
	}
	return barSym
}

func (t *DefaultTheme) Judgement(j game.Judgement) (string, color.RGBA) {
	return judgementNames[j], judgementColors[j]
}

// BarTheme draws notes as flat bars, the usual mania look
type BarTheme struct {
	DefaultTheme
}

func (t *BarTheme) Note(lane, lanes int, kind session.Kind) (string, color.RGBA) {
	c := laneColor(lane, lanes)
	if kind == session.TailNote {
		return "▔▔▔", c
	}
	return "▁▁▁", c
}

func (t *BarTheme) HitField(lane, lanes int, pressed bool) string {
	if pressed {
		return "███"
	}
	return "───"
}

const (
	noteSym    = " ⬤ "
	headSym    = " ◉ "
	tailSym    = " ◯ "
	barSym     = " - "
	pressedSym = " ▬ "
)

var (
	judgementNames = [game.JudgementCount]string{
		"Marvelous",
		"  Perfect",
		"    Great",
		"       Ok",
		"      Bad",
		"     Miss",
	}
	judgementColors = [game.JudgementCount]color.RGBA{
		{153, 204, 255, 255}, // light blue
		{255, 204, 0, 255},   // gold
		{0, 236, 128, 255},   // green
		{0, 118, 236, 255},   // blue
		{106, 0, 236, 255},   // purple
		{236, 30, 0, 255},    // red
	}
	outer  = color.RGBA{236, 236, 236, 255}
	inner  = color.RGBA{0, 118, 236, 255}
	centre = color.RGBA{236, 195, 0, 255}
)

// laneColor alternates from the outside in, with a middle lane of its own
func laneColor(lane, lanes int) color.RGBA {
	if lanes%2 == 1 && lane == lanes/2 {
		return centre
	}
	fromEdge := lane
	if mirror := lanes - 1 - lane; mirror < fromEdge {
		fromEdge = mirror
	}
	if fromEdge%2 == 0 {
		return outer
	}
	return inner
}
