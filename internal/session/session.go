// Package session runs one play of a chart: the countdown, note spawning and
// scrolling, judgement of lane presses, hold bookkeeping and the preview
// stream. Every exported method is safe to call from any goroutine.
package session

import (
	"math"
	"sort"
	"sync"
	"time"

	"git.lost.host/meutraa/eotm/internal/game"
	"git.lost.host/meutraa/eotm/internal/preview"
	"git.lost.host/meutraa/eotm/internal/score"
	"git.lost.host/meutraa/eotm/internal/timing"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

type State uint8

const (
	Idle State = iota
	Countdown
	Active
	Finishing
)

func (s State) String() string {
	switch s {
	case Countdown:
		return "countdown"
	case Active:
		return "active"
	case Finishing:
		return "finishing"
	}
	return "idle"
}

type Config struct {
	NoteSpeed   float64 // user scroll multiplier
	LaneHeight  float64
	HitPosition float64 // fraction of LaneHeight
	LeadIn      time.Duration
	Autoplay    bool
	Skin        string

	SpawnLimit      int // notes spawned per frame at most
	PreviewInterval time.Duration
	FinishDelay     time.Duration
}

func (c Config) withDefaults() Config {
	if c.NoteSpeed <= 0 {
		c.NoteSpeed = 10
	}
	if c.LaneHeight <= 0 {
		c.LaneHeight = 480
	}
	if c.HitPosition <= 0 || c.HitPosition > 1 {
		c.HitPosition = timing.DefaultHitPosition
	}
	if c.LeadIn <= 0 {
		c.LeadIn = 3 * time.Second
	}
	if c.Skin == "" {
		c.Skin = "CirclesV1"
	}
	if c.SpawnLimit <= 0 {
		c.SpawnLimit = 100
	}
	if c.PreviewInterval <= 0 {
		c.PreviewInterval = 67 * time.Millisecond
	}
	if c.FinishDelay <= 0 {
		c.FinishDelay = time.Second
	}
	return c
}

type Session struct {
	mu sync.Mutex

	cfg         Config
	lane        timing.Lane
	surface     NoteSurface
	audio       Audio
	broadcaster Broadcaster
	limiter     *rate.Limiter

	state     State
	chart     *game.Chart
	lanes     int
	start     time.Time
	countdown int
	playing   bool
	finishAt  float64
	endTime   float64

	bpm, scrollSpeed float64
	pending          []game.Note
	timeline         []game.TimingPoint

	arena  []liveNote
	active []int
	held   map[int]int
	keys   []bool
	nextID int

	stats  score.Stats
	last   score.Summary
	inputs []game.Input
}

func New(cfg Config, c Collaborators) *Session {
	cfg = cfg.withDefaults()
	s := &Session{
		cfg:         cfg,
		lane:        timing.Lane{Height: cfg.LaneHeight, HitPosition: cfg.HitPosition},
		surface:     c.Surface,
		audio:       c.Audio,
		broadcaster: c.Broadcaster,
		held:        map[int]int{},
	}
	if s.surface == nil {
		s.surface = &nopSurface{}
	}
	if s.audio == nil {
		s.audio = nopAudio{}
	}
	if s.broadcaster == nil {
		s.broadcaster = nopBroadcaster{}
	}
	s.last = s.stats.Summary()
	return s
}

// Start begins a new play of chart with the clock at. The first note can be
// hit Config.LeadIn after at. A session still running is finished first.
func (s *Session) Start(chart *game.Chart, at time.Time) error {
	if chart == nil {
		return errors.New("no chart to play")
	}
	if chart.Metadata.TotalLanes < 1 {
		return errors.Errorf("chart has %d lanes", chart.Metadata.TotalLanes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle {
		s.finish()
	}

	notes := chart.Playable()
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Millisecond < notes[j].Millisecond
	})
	timeline := append([]game.TimingPoint(nil), chart.Timings...)
	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Millisecond < timeline[j].Millisecond
	})

	s.bpm, s.scrollSpeed = game.DefaultBPM, game.DefaultScrollSpeed
	if len(timeline) > 0 {
		s.bpm, s.scrollSpeed = timeline[0].Apply(s.bpm, s.scrollSpeed)
	}

	s.chart = chart
	s.lanes = chart.Metadata.TotalLanes
	s.pending = notes
	s.timeline = timeline
	s.endTime = chart.EndTime()
	s.arena = s.arena[:0]
	s.active = s.active[:0]
	s.held = map[int]int{}
	s.keys = make([]bool, s.lanes)
	s.inputs = nil
	s.nextID = 0
	s.playing = false
	s.countdown = 3
	s.stats.Reset(len(notes) * game.Marvelous.Score())
	s.start = at.Add(s.cfg.LeadIn)
	s.limiter = rate.NewLimiter(rate.Every(s.cfg.PreviewInterval), 1)
	s.state = Countdown

	s.broadcast()
	return nil
}

func (s *Session) elapsed(at time.Time) float64 {
	return float64(at.Sub(s.start)) / float64(time.Millisecond)
}

func (s *Session) position(elapsed, ms float64) float64 {
	speed := timing.Speed{Base: s.cfg.NoteSpeed, BPM: s.bpm, ScrollSpeed: s.scrollSpeed}
	return timing.Position(elapsed, ms, speed, s.lane, s.timeline)
}

// Update advances the session to at. It returns false once the session is
// idle and no more frames are needed.
func (s *Session) Update(at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Idle {
		return false
	}
	elapsed := math.Floor(s.elapsed(at))

	if s.state == Finishing {
		if elapsed >= s.finishAt {
			s.finish()
			return false
		}
		return true
	}

	if s.countdown == 3 && elapsed >= -2000 {
		s.countdown = 2
	}
	if s.countdown == 2 && elapsed >= -1000 {
		s.countdown = 1
	}
	if s.countdown == 1 && elapsed >= 0 {
		s.countdown = 0
		s.state = Active
	}

	if elapsed >= 0 {
		if len(s.pending) == 0 && len(s.active) == 0 {
			s.state = Finishing
			s.finishAt = elapsed + float64(s.cfg.FinishDelay/time.Millisecond)
			return true
		}
		if !s.playing {
			s.playing = true
			s.audio.Play()
		}
	}

	for spawned := 0; spawned < s.cfg.SpawnLimit && len(s.pending) > 0; spawned++ {
		n := s.pending[0]
		if s.position(elapsed, n.Millisecond) < 0 {
			break
		}
		s.spawn(n)
		s.pending = s.pending[1:]
	}

	s.step(elapsed, at)

	for len(s.timeline) > 0 && elapsed >= s.timeline[0].Millisecond {
		s.bpm, s.scrollSpeed = s.timeline[0].Apply(s.bpm, s.scrollSpeed)
		s.timeline = s.timeline[1:]
	}

	if s.limiter.AllowN(at, 1) {
		s.broadcast()
	}
	return true
}

// step moves every live note and resolves holds and timeouts
func (s *Session) step(elapsed float64, at time.Time) {
	movementHeight := s.lane.MovementHeight()

	for _, idx := range append([]int(nil), s.active...) {
		n := &s.arena[idx]
		if n.removed {
			continue
		}
		if n.pressed {
			s.remove(idx)
			continue
		}

		if s.cfg.Autoplay && score.Fraction(n.note.Millisecond-elapsed) <= 0.1 {
			s.autoplay(idx, at)
			if n.removed {
				continue
			}
		}

		n.y = s.position(elapsed, n.note.Millisecond)
		lane := n.note.Lane

		switch n.kind {
		case HeadNote:
			if n.held && !n.released {
				n.y = movementHeight
			} else if !n.released && elapsed >= n.note.Millisecond+score.MaxWindow {
				n.released = true
				s.stats.Miss()
			}
		case TailNote:
			if s.arena[n.pair].held && n.y >= movementHeight {
				s.surface.Reposition(n.handle, n.y)
				s.hit(0, idx)
				delete(s.held, lane)
				continue
			}
		}
		s.surface.Reposition(n.handle, n.y)

		expires := n.kind == TapNote || (n.kind == TailNote && s.arena[n.pair].released)
		if !expires || elapsed < n.note.Millisecond+score.MaxWindow {
			continue
		}
		if s.cfg.Autoplay {
			s.release(lane, at, true)
		}
		if n.kind == TailNote {
			s.remove(n.pair)
		} else {
			s.stats.Miss()
		}
		s.remove(idx)
	}
}

func (s *Session) snapshot() preview.Snapshot {
	snap := preview.Snapshot{
		Score:    s.stats.Score,
		Accuracy: s.stats.Accuracy(),
		Misses:   s.stats.Misses(),
		Combo:    s.stats.Combo,
		Skin:     s.cfg.Skin,
		Notes:    make([]preview.Entry, 0, len(s.active)),
	}
	for _, idx := range s.active {
		n := &s.arena[idx]
		snap.Notes = append(snap.Notes, preview.Entry{
			Lane:     n.note.Lane,
			PerMille: int(math.Round(n.y / s.cfg.LaneHeight * 1000)),
			Kind:     n.kind.wire(),
			ID:       n.id,
		})
	}
	return snap
}

func (s *Session) broadcast() {
	s.broadcaster.Broadcast(preview.Pack(s.snapshot()))
}

func (s *Session) Press(lane int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.press(lane, at, false)
}

func (s *Session) Release(lane int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.release(lane, at, false)
}

// Finish ends the session and returns its summary. Calling it again, or on a
// session that never started, returns the last summary.
func (s *Session) Finish() score.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finish()
}

func (s *Session) finish() score.Summary {
	if s.state == Idle {
		return s.last
	}
	for _, idx := range append([]int(nil), s.active...) {
		s.remove(idx)
	}
	s.pending = nil
	s.timeline = nil
	s.held = map[int]int{}
	s.last = s.stats.Summary()
	s.state = Idle
	return s.last
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Countdown is 3, 2, 1 during the lead-in and 0 afterwards
func (s *Session) Countdown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdown
}

// Stats is the live tally, or the final one once finished
func (s *Session) Stats() score.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Idle {
		return s.last
	}
	return s.stats.Summary()
}

// Inputs are the presses and releases that took effect, in order
func (s *Session) Inputs() []game.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]game.Input(nil), s.inputs...)
}

func (s *Session) Chart() *game.Chart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chart
}

// Elapsed is the chart time at at, negative during the lead-in
func (s *Session) Elapsed(at time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return at.Sub(s.start)
}

// Tempo is the bpm and scroll speed currently in effect
func (s *Session) Tempo() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bpm, s.scrollSpeed
}

// Held reports which lanes are down
func (s *Session) Held() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.keys...)
}
