package score

import "git.lost.host/meutraa/eotm/internal/game"

type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m mean) value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

// Stats is the running tally of one play session
type Stats struct {
	MaxScore     int
	Score        int
	Counts       [game.JudgementCount]int
	Combo        int
	HighestCombo int

	early, late mean
}

func (s *Stats) Reset(maxScore int) {
	*s = Stats{MaxScore: maxScore}
}

// Hit judges a press or release that landed offset milliseconds early
func (s *Stats) Hit(offset float64) game.Judgement {
	if offset > 0 {
		s.early.add(offset)
	} else {
		s.late.add(offset)
	}

	j := Judge(offset)
	s.Counts[j]++
	s.Score += j.Score()
	if j.BreaksCombo() {
		s.Combo = 0
	} else {
		s.Combo++
	}
	s.track()
	return j
}

// Miss records a note that was never hit, or a hold let go too early
func (s *Stats) Miss() {
	s.Counts[game.Miss]++
	s.Combo = 0
}

// Confirm counts the press of a hold head towards the combo only
func (s *Stats) Confirm() {
	s.Combo++
	s.track()
}

func (s *Stats) track() {
	if s.Combo > s.HighestCombo {
		s.HighestCombo = s.Combo
	}
}

func (s *Stats) Judged() int {
	return Summary{Counts: s.Counts}.Judged()
}

func (s *Stats) Accuracy() float64 {
	c := s.Counts
	return Accuracy(c[game.Marvelous], c[game.Perfect], c[game.Great], c[game.Ok], c[game.Bad], c[game.Miss])
}

func (s *Stats) Misses() int {
	return s.Counts[game.Miss]
}

// Summary is a read only copy of the final numbers
type Summary struct {
	MaxScore     int
	Score        int
	Counts       [game.JudgementCount]int
	Combo        int
	HighestCombo int
	EarlyError   float64 // mean offset of early hits, ms
	LateError    float64 // mean offset of late hits, ms, never positive
	Accuracy     float64
	Grade        Grade
}

func (s *Stats) Summary() Summary {
	accuracy := s.Accuracy()
	return Summary{
		MaxScore:     s.MaxScore,
		Score:        s.Score,
		Counts:       s.Counts,
		Combo:        s.Combo,
		HighestCombo: s.HighestCombo,
		EarlyError:   s.early.value(),
		LateError:    s.late.value(),
		Accuracy:     accuracy,
		Grade:        GradeFor(accuracy),
	}
}

func (s Summary) Judged() int {
	total := 0
	for _, c := range s.Counts {
		total += c
	}
	return total
}
