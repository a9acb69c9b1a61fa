package theme

import (
	"image/color"

	"git.lost.host/meutraa/eotm/internal/game"
	"git.lost.host/meutraa/eotm/internal/session"
)

type Theme interface {
	Note(lane, lanes int, kind session.Kind) (string, color.RGBA)
	HitField(lane, lanes int, pressed bool) string
	Judgement(j game.Judgement) (string, color.RGBA)
}

// For returns the theme a skin name selects, the default for unknown names
func For(skin string) Theme {
	if skin == "Bars" {
		return &BarTheme{}
	}
	return &DefaultTheme{}
}

var (
	_ Theme = &DefaultTheme{}
	_ Theme = &BarTheme{}
)
