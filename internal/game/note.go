package game

type NoteType uint8

const (
	Tap NoteType = iota
	Hold
)

func (t NoteType) String() string {
	if t == Hold {
		return "hold"
	}
	return "tap"
}

type Note struct {
	Millisecond float64  `json:"millisecond"`
	Lane        int      `json:"lane"` // The chart column, 0 indexed
	Type        NoteType `json:"type"`
	HoldLength  float64  `json:"holdLength,omitempty"`
}

// End is the time the note should be released, equal to Millisecond for taps
func (n Note) End() float64 {
	if n.Type == Hold {
		return n.Millisecond + n.HoldLength
	}
	return n.Millisecond
}

// Input is a single lane event, as an offset from the session start
type Input struct {
	Lane    int
	Time    float64 // milliseconds
	Release bool
}
