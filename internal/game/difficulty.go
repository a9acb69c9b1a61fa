package game

import "math"

type Difficulty struct {
	DamageRate        float64 `json:"damageRate"`
	MaxHealth         float64 `json:"maxHealth"`
	OverallDifficulty float64 `json:"overallDifficulty"`
}

const densityWindow = 5000.0

// Rate gives a star rating and its label, derived from note density in five
// second windows, health and overall difficulty
func Rate(c *Chart) (float64, string) {
	length := 0.0
	for _, n := range c.Notes {
		if n.Millisecond > length {
			length = n.Millisecond
		}
	}
	if len(c.Notes) == 0 {
		return 0, label(0)
	}

	average := -1.0
	highest := math.Inf(-1)
	for i := 0.0; i <= length; i += densityWindow {
		density := 0.0
		for _, n := range c.Notes {
			if n.Millisecond >= i && n.Millisecond <= i+densityWindow {
				density++
			} else if n.Millisecond > i+densityWindow {
				break
			}
		}
		if density > highest {
			highest = density
		}
		// This is a running halving, not a true mean
		if average >= 0 {
			average = (average + density) / 2
		} else {
			average = density
		}
	}

	if highest <= 0 {
		return 0, label(0)
	}

	health := c.Difficulty.MaxHealth
	if health <= 0 {
		health = 10
	}
	od := math.Max(c.Difficulty.OverallDifficulty, 0)

	base := math.Sqrt(10/health) * math.Pow(od, 2.0/3) * math.Cbrt(1+float64(c.MaxCombo())/10)
	rating := 3 * math.Pow(base, 1+average/(10*highest))
	return rating, label(rating)
}

func label(rating float64) string {
	switch {
	case rating > 20:
		return "???"
	case rating >= 15:
		return "Expert+"
	case rating >= 12.5:
		return "Expert"
	case rating >= 10:
		return "Insane"
	case rating >= 5:
		return "Hard"
	case rating >= 2.5:
		return "Normal"
	}
	return "Easy"
}
