package score

import (
	"math"

	"git.lost.host/meutraa/eotm/internal/game"
)

// Hit offsets are noteTime - inputTime, positive when early
const (
	MaxWindow = 200.0
	MinWindow = -200.0
)

var tiers = [...]struct {
	below     float64
	judgement game.Judgement
}{
	{0.125, game.Marvelous},
	{0.3, game.Perfect},
	{0.6, game.Great},
	{0.7, game.Ok},
	{0.85, game.Bad},
}

// Fraction scales an offset by the window on its side, 0 is exact and 1 is
// the edge of the window
func Fraction(offset float64) float64 {
	if offset > 0 {
		return offset / MaxWindow
	}
	return offset / MinWindow
}

// InWindow reports whether an input this far from a note may judge it
func InWindow(offset float64) bool {
	return offset > MinWindow && offset < MaxWindow
}

func Judge(offset float64) game.Judgement {
	return JudgeFraction(Fraction(offset))
}

func JudgeFraction(fraction float64) game.Judgement {
	fraction = math.Abs(fraction)
	for _, t := range tiers {
		if fraction < t.below {
			return t.judgement
		}
	}
	return game.Miss
}

// Accuracy is osu!mania's accuracy in percent. With nothing judged it is NaN.
func Accuracy(marvelous, perfect, great, ok, bad, miss int) float64 {
	total := marvelous + perfect + great + ok + bad + miss
	if total == 0 {
		return math.NaN()
	}
	points := 300*(marvelous+perfect) + 200*great + 100*ok + 50*bad
	return 100 * float64(points) / float64(300*total)
}

type Grade string

const (
	GradeX Grade = "X"
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

func GradeFor(accuracy float64) Grade {
	switch {
	case accuracy == 100:
		return GradeX
	case accuracy >= 95:
		return GradeS
	case accuracy >= 90:
		return GradeA
	case accuracy >= 80:
		return GradeB
	case accuracy >= 70:
		return GradeC
	}
	return GradeD
}
