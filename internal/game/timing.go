package game

// TimingPoint changes the tempo, the scroll speed, or both, from Millisecond
// onwards. A nil field keeps the previous value.
type TimingPoint struct {
	Millisecond float64  `json:"millisecond"`
	BPM         *float64 `json:"bpm,omitempty"`
	ScrollSpeed *float64 `json:"scrollSpeed,omitempty"`
	Volume      float64  `json:"volume,omitempty"`
}

const (
	DefaultBPM         = 60.0
	DefaultScrollSpeed = 1.0
)

func Float(v float64) *float64 {
	return &v
}

// Apply returns bpm and scrollSpeed after this point has taken effect
func (t TimingPoint) Apply(bpm, scrollSpeed float64) (float64, float64) {
	if t.BPM != nil {
		bpm = *t.BPM
	}
	if t.ScrollSpeed != nil {
		scrollSpeed = *t.ScrollSpeed
	}
	return bpm, scrollSpeed
}
