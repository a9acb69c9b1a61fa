package game

// Judgement is the tier given to a hit or a miss, best first
type Judgement uint8

const (
	Marvelous Judgement = iota
	Perfect
	Great
	Ok
	Bad
	Miss
)

// JudgementCount is the number of tiers, Miss included
const JudgementCount = 6

var judgementNames = [JudgementCount]string{"Marvelous", "Perfect", "Great", "Ok", "Bad", "Miss"}

func (j Judgement) String() string {
	if int(j) < len(judgementNames) {
		return judgementNames[j]
	}
	return "Unknown"
}

// Score is the amount added to the total for this tier
func (j Judgement) Score() int {
	switch j {
	case Marvelous, Perfect:
		return 300
	case Great:
		return 200
	case Ok:
		return 100
	case Bad:
		return 50
	}
	return 0
}

func (j Judgement) BreaksCombo() bool {
	return j == Miss
}
