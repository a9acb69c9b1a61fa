package parser

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"git.lost.host/meutraa/eotm/internal/game"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Hit object type bits
const (
	normalNote = 1 << 0
	holdNote   = 1 << 7
)

// playfieldWidth is the x range hit objects are placed in
const playfieldWidth = 512

// OsuParser converts osu!mania beatmaps. It never fails on content, numbers
// that do not parse are read as 0.
type OsuParser struct{}

func (p *OsuParser) Parse(file string) (*game.Chart, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to open beatmap %s", file)
	}
	defer f.Close()
	return p.ParseReader(f)
}

func number(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if nil != err {
		return fallback
	}
	return v
}

func numbers(line string) []float64 {
	fields := strings.Split(line, ",")
	ns := make([]float64, len(fields))
	for i, f := range fields {
		ns[i] = number(f, 0)
	}
	return ns
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

func newChart() *game.Chart {
	return &game.Chart{
		Metadata: game.Metadata{
			Title:       "--",
			AudioName:   "--",
			SetName:     "--",
			Description: "--",
			Difficulty:  "--",
			Source:      "--",
			Artist:      "--",
			Mappers:     []string{},
			SearchTags:  []string{},
			TotalLanes:  -1,
		},
		Difficulty: game.Difficulty{
			DamageRate:        -1,
			MaxHealth:         10,
			OverallDifficulty: -1,
		},
		Timings: []game.TimingPoint{},
		Notes:   []game.Note{},
	}
}

func (p *OsuParser) ParseReader(r io.Reader) (*game.Chart, error) {
	// Beatmaps from some editors carry a byte order mark
	r = transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	chart := newChart()
	section := ""
	hasTitleUnicode, hasArtistUnicode := false, false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			continue
		}

		name, value := line, ""
		if i := strings.IndexByte(line, ':'); i >= 0 {
			name, value = strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
		}

		switch section {
		case "General":
			if name == "AudioFilename" {
				chart.Metadata.AudioName = value
			}
		case "Metadata":
			switch name {
			case "TitleUnicode":
				chart.Metadata.Title = value
				hasTitleUnicode = true
			case "Title":
				if !hasTitleUnicode {
					chart.Metadata.Title = value
				}
			case "ArtistUnicode":
				chart.Metadata.Artist = value
				hasArtistUnicode = true
			case "Artist":
				if !hasArtistUnicode {
					chart.Metadata.Artist = value
				}
			case "Creator":
				chart.Metadata.Mappers = append(chart.Metadata.Mappers, value)
			case "Version":
				chart.Metadata.Difficulty = value
			case "Source":
				if value != "" {
					chart.Metadata.Source = value
				}
			case "Tags":
				chart.Metadata.SearchTags = append(chart.Metadata.SearchTags, strings.Fields(value)...)
			}
		case "Difficulty":
			switch name {
			case "HPDrainRate":
				chart.Difficulty.DamageRate = clamp(number(value, 0), 0, 10)
			case "OverallDifficulty":
				chart.Difficulty.OverallDifficulty = clamp(number(value, 0), 0, 10)
			case "CircleSize":
				chart.Metadata.TotalLanes = int(math.Round(number(value, 5)))
			}
		case "TimingPoints":
			chart.Timings = append(chart.Timings, timingPoint(line))
		case "HitObjects":
			if note, ok := hitObject(line, chart.Metadata.TotalLanes); ok {
				chart.Notes = append(chart.Notes, note)
			}
		}
	}
	if err := scanner.Err(); nil != err {
		return nil, errors.Wrap(err, "unable to read beatmap")
	}

	chart.Sort()
	return chart, nil
}

// time,beatLength,meter,sampleSet,sampleIndex,volume,uninherited,effects
func timingPoint(line string) game.TimingPoint {
	fields := numbers(line)
	get := func(i int, fallback float64) float64 {
		if i < len(fields) {
			return fields[i]
		}
		return fallback
	}

	t := game.TimingPoint{
		Millisecond: get(0, 0),
		Volume:      get(5, 0),
	}
	beatLength := get(1, 0)
	if beatLength == 0 {
		return t
	}
	// Old beatmaps leave out the flag, their points are all uninherited
	if get(6, 1) == 1 {
		t.BPM = game.Float(60000 / beatLength)
	} else {
		// Inherited points store a negative inverse percentage
		t.ScrollSpeed = game.Float(-100 / beatLength)
	}
	return t
}

// x,y,time,type,hitSound,endTime:hitSample
func hitObject(line string, lanes int) (game.Note, bool) {
	fields := numbers(strings.ReplaceAll(line, ":", ","))
	for len(fields) < 6 {
		fields = append(fields, 0)
	}
	x, millisecond, kind, end := fields[0], fields[2], int(fields[3]), fields[5]

	lane := 0
	if lanes > 0 {
		lane = int(clamp(math.Floor(x*float64(lanes)/playfieldWidth), 0, float64(lanes-1)))
	}

	switch {
	case kind&holdNote != 0:
		return game.Note{
			Millisecond: millisecond,
			Lane:        lane,
			Type:        game.Hold,
			HoldLength:  end - millisecond,
		}, true
	case kind&normalNote != 0:
		return game.Note{Millisecond: millisecond, Lane: lane, Type: game.Tap}, true
	}
	return game.Note{}, false
}
