package session

import (
	"time"

	"git.lost.host/meutraa/eotm/internal/game"
	"git.lost.host/meutraa/eotm/internal/score"
)

func (s *Session) record(lane int, at time.Time, release bool) {
	s.inputs = append(s.inputs, game.Input{Lane: lane, Time: s.elapsed(at), Release: release})
}

// press handles a lane going down. Only the first note in spawn order whose
// window contains the press is judged, or held if it is a hold head.
func (s *Session) press(lane int, at time.Time, auto bool) {
	if s.state == Idle || lane < 0 || lane >= s.lanes {
		return
	}
	if (s.cfg.Autoplay && !auto) || s.keys[lane] {
		return
	}
	s.keys[lane] = true
	s.record(lane, at, false)

	elapsed := s.elapsed(at)
	for _, idx := range s.active {
		n := &s.arena[idx]
		if n.note.Lane != lane || n.kind == TailNote || n.held || n.released {
			continue
		}
		offset := n.note.Millisecond - elapsed
		if !score.InWindow(offset) {
			continue
		}
		if n.kind == HeadNote {
			s.held[lane] = idx
			n.held = true
			s.stats.Confirm()
		} else {
			s.hit(offset, idx)
		}
		break
	}
}

// release handles a lane going up, which only matters for a held hold
func (s *Session) release(lane int, at time.Time, auto bool) {
	if s.state == Idle || lane < 0 || lane >= s.lanes {
		return
	}
	if (s.cfg.Autoplay && !auto) || !s.keys[lane] {
		return
	}
	s.keys[lane] = false
	s.record(lane, at, true)

	idx, ok := s.held[lane]
	if !ok {
		return
	}
	delete(s.held, lane)
	head := &s.arena[idx]
	if head.released {
		return
	}

	tail := &s.arena[head.pair]
	offset := tail.note.Millisecond - s.elapsed(at)
	if score.InWindow(offset) {
		s.hit(offset, head.pair)
		head.pressed = true
		tail.pressed = true
	} else {
		head.held = false
		s.stats.Miss()
	}
	head.released = true
}

// hit judges a tap or a tail and takes it off the lane. A tail takes its
// head with it. Nothing belonging to a released hold is judged again.
func (s *Session) hit(offset float64, idx int) {
	n := &s.arena[idx]
	if n.kind == HeadNote && n.released {
		return
	}
	if n.kind == TailNote && s.arena[n.pair].released {
		return
	}

	s.stats.Hit(offset)
	n.pressed = true
	s.remove(idx)
	if n.kind == TailNote {
		s.remove(n.pair)
	}
}

// autoplay presses for a note that is about to be exact. Taps get a full
// release, press, release cycle in the same frame.
func (s *Session) autoplay(idx int, at time.Time) {
	n := &s.arena[idx]
	lane := n.note.Lane
	switch n.kind {
	case TapNote:
		s.release(lane, at, true)
		s.press(lane, at, true)
		s.release(lane, at, true)
	case HeadNote:
		if !n.autoPressed {
			s.release(lane, at, true)
			s.press(lane, at, true)
			n.autoPressed = true
		}
	case TailNote:
		if !n.autoPressed {
			s.release(lane, at, true)
			n.autoPressed = true
		}
	}
}
