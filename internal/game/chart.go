package game

import (
	"log"
	"sort"
)

type Metadata struct {
	Title       string   `json:"title"`
	AudioName   string   `json:"audioName"`
	SetName     string   `json:"setName"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Source      string   `json:"source"`
	Artist      string   `json:"artist"`
	Mappers     []string `json:"mappers"`
	SearchTags  []string `json:"searchTags"`
	TotalLanes  int      `json:"totalLanes"`
}

type Chart struct {
	Metadata   Metadata      `json:"metadata"`
	Difficulty Difficulty    `json:"difficulty"`
	Timings    []TimingPoint `json:"timings"`
	Notes      []Note        `json:"notes"`
}

// Sort orders timings and notes by millisecond, keeping the authored order
// of equal timestamps
func (c *Chart) Sort() {
	sort.SliceStable(c.Timings, func(i, j int) bool {
		return c.Timings[i].Millisecond < c.Timings[j].Millisecond
	})
	sort.SliceStable(c.Notes, func(i, j int) bool {
		return c.Notes[i].Millisecond < c.Notes[j].Millisecond
	})
}

// Playable returns the notes that sit in a valid lane. Others are logged and
// left out, they never fail the chart.
func (c *Chart) Playable() []Note {
	notes := make([]Note, 0, len(c.Notes))
	for i, n := range c.Notes {
		if n.Lane < 0 || n.Lane >= c.Metadata.TotalLanes {
			log.Printf("dropping note #%d: lane %d is not within 0 and %d\n", i, n.Lane, c.Metadata.TotalLanes-1)
			continue
		}
		notes = append(notes, n)
	}
	return notes
}

// EndTime is the later of the last note release and the last timing point
func (c *Chart) EndTime() float64 {
	end := 0.0
	for _, t := range c.Timings {
		if t.Millisecond > end {
			end = t.Millisecond
		}
	}
	for _, n := range c.Notes {
		if n.End() > end {
			end = n.End()
		}
	}
	return end
}

// MaxScore counts every note, hold or tap, once at 300
func (c *Chart) MaxScore() int {
	return len(c.Notes) * Marvelous.Score()
}

// MaxCombo counts holds twice, for the press and the release
func (c *Chart) MaxCombo() int {
	combo := 0
	for _, n := range c.Notes {
		if n.Type == Hold {
			combo += 2
		} else {
			combo++
		}
	}
	return combo
}

func (c *Chart) HoldCount() int {
	count := 0
	for _, n := range c.Notes {
		if n.Type == Hold {
			count++
		}
	}
	return count
}
