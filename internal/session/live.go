package session

import "git.lost.host/meutraa/eotm/internal/game"

// liveNote is a note that has scrolled into view. Holds are two entries, a
// head and a tail, pointing at each other by arena index.
type liveNote struct {
	note   game.Note // for tails, Millisecond is the release time
	kind   Kind
	id     int
	pair   int
	handle Handle
	y      float64

	held        bool
	released    bool
	pressed     bool
	autoPressed bool
	removed     bool
}

func (s *Session) spawn(n game.Note) {
	if n.Type != game.Hold {
		s.arena = append(s.arena, liveNote{
			note:   n,
			kind:   TapNote,
			id:     s.nextID,
			pair:   -1,
			handle: s.surface.Spawn(n.Lane, TapNote),
		})
		s.nextID++
		s.active = append(s.active, len(s.arena)-1)
		return
	}

	head, tail := len(s.arena), len(s.arena)+1
	tailNote := n
	tailNote.Millisecond = n.End()
	s.arena = append(s.arena,
		liveNote{
			note:   n,
			kind:   HeadNote,
			id:     s.nextID,
			pair:   tail,
			handle: s.surface.Spawn(n.Lane, HeadNote),
		},
		liveNote{
			note:   tailNote,
			kind:   TailNote,
			id:     s.nextID + 1,
			pair:   head,
			handle: s.surface.Spawn(n.Lane, TailNote),
		},
	)
	s.nextID += 2
	s.active = append(s.active, head, tail)
}

func (s *Session) remove(idx int) {
	n := &s.arena[idx]
	if n.removed {
		return
	}
	n.removed = true
	s.surface.Destroy(n.handle)
	for i, a := range s.active {
		if a == idx {
			s.active = append(s.active[:i], s.active[i+1:]...)
			break
		}
	}
}
