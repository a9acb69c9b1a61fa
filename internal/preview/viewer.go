package preview

import (
	"log"
	"math"

	"git.lost.host/meutraa/eotm/internal/game"
)

// Viewer is what an observer knows about one remote session
type Viewer struct {
	chart *game.Chart

	Score    int
	Accuracy float64
	Misses   int
	Combo    int
	Skin     string
	Notes    map[int]Entry // by note id
}

func NewViewer(chart *game.Chart) *Viewer {
	return &Viewer{
		chart:    chart,
		Accuracy: math.NaN(),
		Notes:    map[int]Entry{},
	}
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Apply replaces the viewer state with a received payload. A payload that
// does not decode is dropped and the previous state kept.
func (v *Viewer) Apply(payload []byte) bool {
	s, err := Unpack(payload)
	if nil != err {
		log.Println("dropping preview update:", err)
		return false
	}

	total := len(v.chart.Notes)
	v.Score = clamp(s.Score, 0, v.chart.MaxScore())
	v.Misses = clamp(s.Misses, 0, total)
	v.Combo = clamp(s.Combo, 0, v.chart.MaxCombo())
	v.Accuracy = s.Accuracy
	if !math.IsNaN(v.Accuracy) {
		v.Accuracy = math.Max(0, math.Min(100, v.Accuracy))
	}
	v.Skin = s.Skin

	notes := make(map[int]Entry, len(s.Notes))
	for _, n := range s.Notes {
		if n.Lane < 0 || n.Lane >= v.chart.Metadata.TotalLanes {
			continue
		}
		notes[n.ID] = n
	}
	v.Notes = notes
	return true
}
