package score

import (
	"time"

	"git.lost.host/meutraa/eotm/internal/game"
)

// Scorer keeps finished plays so they can be listed and replayed
type Scorer interface {
	Close() error

	// Save the inputs and outcome of this performance
	Save(chart *game.Chart, inputs []game.Input, summary Summary) error

	// Load up previous plays of the chart, oldest first
	Load(chart *game.Chart) ([]History, error)
}

type History struct {
	Sum      string
	PlayedAt time.Time
	Inputs   []game.Input
	Summary  Summary
}
