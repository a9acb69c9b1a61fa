// Package timing maps elapsed time to note positions inside a lane, following
// every tempo and scroll speed change between now and the note.
package timing

import (
	"math"

	"git.lost.host/meutraa/eotm/internal/game"
)

// pixelScale calibrates note speed to the reference skin
const pixelScale = 25

// DefaultHitPosition is the judgement line as a fraction of lane height
const DefaultHitPosition = 460.0 / 480.0

// Speed is the scroll state in effect at the start of a calculation
type Speed struct {
	Base        float64 // user note speed
	BPM         float64
	ScrollSpeed float64
}

type Lane struct {
	Height      float64
	HitPosition float64 // fraction of Height where the judgement line sits
}

func (l Lane) MovementHeight() float64 {
	return l.Height * l.HitPosition
}

// PixelsPerSecond is the scroll rate for a tempo and scroll speed
func PixelsPerSecond(base, bpm, scrollSpeed float64) float64 {
	return scrollSpeed * (bpm / 60) * base * pixelScale
}

func (s Speed) PixelsPerSecond() float64 {
	return PixelsPerSecond(s.Base, s.BPM, s.ScrollSpeed)
}

// TravelTime is how many milliseconds a note takes to scroll from the top of
// the lane to the judgement line at a constant speed
func TravelTime(s Speed, l Lane) float64 {
	pps := s.PixelsPerSecond()
	if pps == 0 {
		return math.Inf(1)
	}
	return l.MovementHeight() / pps * 1000
}

// Position returns the offset from the top of the lane for a note due at
// noteMs. It is the movement height at noteMs and decreases by the distance
// still to travel before it, integrated segment by segment over the pending
// timeline entries. Entries must be in ascending order.
func Position(elapsed, noteMs float64, s Speed, l Lane, timeline []game.TimingPoint) float64 {
	movementHeight := l.MovementHeight()
	bpm, scrollSpeed := s.BPM, s.ScrollSpeed
	travelled := 0.0

	for i := 0; ; i++ {
		remaining := noteMs - elapsed
		current := PixelsPerSecond(s.Base, bpm, scrollSpeed) / 1000

		untilPoint := math.Inf(1)
		if i < len(timeline) {
			untilPoint = timeline[i].Millisecond - elapsed
		}
		if remaining < untilPoint {
			travelled += remaining * current
			return movementHeight - travelled
		}

		travelled += untilPoint * current
		if travelled > movementHeight {
			return movementHeight - travelled
		}

		bpm, scrollSpeed = timeline[i].Apply(bpm, scrollSpeed)
		elapsed += untilPoint
	}
}
