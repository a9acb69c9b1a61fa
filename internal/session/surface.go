package session

import "git.lost.host/meutraa/eotm/internal/preview"

// Kind is the part of a note a live entry represents
type Kind uint8

const (
	TapNote Kind = iota
	HeadNote
	TailNote
)

func (k Kind) wire() preview.Kind {
	switch k {
	case HeadNote:
		return preview.KindHead
	case TailNote:
		return preview.KindTail
	}
	return preview.KindTap
}

type Handle int

// NoteSurface draws notes. Offsets are from the top of the lane, in the same
// unit as Config.LaneHeight.
type NoteSurface interface {
	Spawn(lane int, kind Kind) Handle
	Reposition(h Handle, offset float64)
	Destroy(h Handle)
}

// Audio is the song, started once when the countdown reaches zero
type Audio interface {
	Play()
}

// Broadcaster sends preview payloads to observers without blocking
type Broadcaster interface {
	Broadcast(payload []byte)
}

type Collaborators struct {
	Surface     NoteSurface
	Audio       Audio
	Broadcaster Broadcaster
}

type nopSurface struct{ next Handle }

func (s *nopSurface) Spawn(int, Kind) Handle {
	s.next++
	return s.next
}
func (s *nopSurface) Reposition(Handle, float64) {}
func (s *nopSurface) Destroy(Handle)             {}

type nopAudio struct{}

func (nopAudio) Play() {}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast([]byte) {}
