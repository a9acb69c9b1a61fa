package session

import (
	"sort"
	"time"

	"git.lost.host/meutraa/eotm/internal/game"
	"git.lost.host/meutraa/eotm/internal/score"
)

// Replay plays chart headlessly with the recorded inputs, one frame per
// millisecond, and returns the resulting summary.
func Replay(chart *game.Chart, inputs []game.Input, cfg Config) (score.Summary, error) {
	cfg.Autoplay = false
	s := New(cfg, Collaborators{})

	origin := time.Unix(0, 0)
	if err := s.Start(chart, origin); err != nil {
		return score.Summary{}, err
	}

	inputs = append([]game.Input(nil), inputs...)
	sort.SliceStable(inputs, func(i, j int) bool { return inputs[i].Time < inputs[j].Time })

	start := origin.Add(s.cfg.LeadIn)
	at := func(ms float64) time.Time {
		return start.Add(time.Duration(ms * float64(time.Millisecond)))
	}

	limit := s.endTime + float64((s.cfg.FinishDelay+10*time.Second)/time.Millisecond)
	next := 0
	for ms := -float64(s.cfg.LeadIn / time.Millisecond); ms <= limit; ms++ {
		for ; next < len(inputs) && inputs[next].Time <= ms; next++ {
			in := inputs[next]
			if in.Release {
				s.Release(in.Lane, at(in.Time))
			} else {
				s.Press(in.Lane, at(in.Time))
			}
		}
		if !s.Update(at(ms)) {
			break
		}
	}
	return s.Finish(), nil
}
