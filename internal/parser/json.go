package parser

import (
	"os"

	"git.lost.host/meutraa/eotm/internal/game"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// JSONParser reads the chart asset format. Missing fields keep their zero
// value and a bpm or scrollSpeed of -1 means unset.
type JSONParser struct{}

func (p *JSONParser) Parse(file string) (*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to read chart %s", file)
	}
	return p.ParseBytes(data)
}

func optional(r gjson.Result) *float64 {
	if !r.Exists() || r.Type != gjson.Number || r.Float() == -1 {
		return nil
	}
	return game.Float(r.Float())
}

func strs(r gjson.Result) []string {
	out := []string{}
	r.ForEach(func(_, v gjson.Result) bool {
		// Mappers may be user ids or names
		out = append(out, v.String())
		return true
	})
	return out
}

func (p *JSONParser) ParseBytes(data []byte) (*game.Chart, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("chart is not valid json")
	}
	root := gjson.ParseBytes(data)

	meta := root.Get("metadata")
	diff := root.Get("difficulty")
	chart := &game.Chart{
		Metadata: game.Metadata{
			Title:       meta.Get("title").String(),
			AudioName:   meta.Get("audioName").String(),
			SetName:     meta.Get("setName").String(),
			Description: meta.Get("description").String(),
			Difficulty:  meta.Get("difficulty").String(),
			Source:      meta.Get("source").String(),
			Artist:      meta.Get("artist").String(),
			Mappers:     strs(meta.Get("mappers")),
			SearchTags:  strs(meta.Get("searchTags")),
			TotalLanes:  int(meta.Get("totalLanes").Int()),
		},
		Difficulty: game.Difficulty{
			DamageRate:        diff.Get("damageRate").Float(),
			MaxHealth:         diff.Get("maxHealth").Float(),
			OverallDifficulty: diff.Get("overallDifficulty").Float(),
		},
		Timings: []game.TimingPoint{},
		Notes:   []game.Note{},
	}

	root.Get("timings").ForEach(func(_, t gjson.Result) bool {
		chart.Timings = append(chart.Timings, game.TimingPoint{
			Millisecond: t.Get("millisecond").Float(),
			BPM:         optional(t.Get("bpm")),
			ScrollSpeed: optional(t.Get("scrollSpeed")),
			Volume:      t.Get("volume").Float(),
		})
		return true
	})

	root.Get("notes").ForEach(func(_, n gjson.Result) bool {
		note := game.Note{
			Millisecond: n.Get("millisecond").Float(),
			Lane:        int(n.Get("lane").Int()),
		}
		if n.Get("type").Int() == int64(game.Hold) {
			note.Type = game.Hold
			note.HoldLength = n.Get("holdLength").Float()
		}
		chart.Notes = append(chart.Notes, note)
		return true
	})

	chart.Sort()
	return chart, nil
}
