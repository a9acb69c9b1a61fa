// Package testdata holds chart fixtures shared by package tests
package testdata

import (
	_ "embed"

	"git.lost.host/meutraa/eotm/internal/game"
	"git.lost.host/meutraa/eotm/internal/parser"
)

//go:embed chart.json
var chartData []byte

//go:embed beatmap.osu
var Beatmap string

// GetChart returns the hand authored four lane test chart. One of its notes
// is in an invalid lane.
func GetChart() (*game.Chart, error) {
	p := parser.JSONParser{}
	return p.ParseBytes(chartData)
}
