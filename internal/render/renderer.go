package render

import (
	"image/color"
	"time"

	"git.lost.host/meutraa/eotm/internal/game"
	"git.lost.host/meutraa/eotm/internal/preview"
	"git.lost.host/meutraa/eotm/internal/score"
	"git.lost.host/meutraa/eotm/internal/session"
)

type Renderer interface {
	session.NoteSurface

	Init() error
	Deinit() error
	Layout(columns, rows, lanes int, laneHeight float64)
	AddDecoration(col, row int, content string, frames int)
	RenderLoop(framePeriod time.Duration, render func(now time.Time) bool)
	Fill(row, column int, message string)
	FillColor(row, column int, color color.RGBA, message string)

	DrawField(pressed []bool)
	DrawHUD(chart *game.Chart, summary score.Summary, countdown int)
	DrawPreview(v *preview.Viewer)
	Flash(j game.Judgement)
}
