package parser_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.lost.host/meutraa/eotm/internal/game"
	"git.lost.host/meutraa/eotm/internal/parser"
	"git.lost.host/meutraa/eotm/internal/testdata"
)

func parse(t *testing.T, beatmap string) *game.Chart {
	p := parser.OsuParser{}
	chart, err := p.ParseReader(strings.NewReader(beatmap))
	if nil != err {
		t.Fatal(err)
	}
	return chart
}

func TestSingleHitObject(t *testing.T) {
	chart := parse(t, "[Difficulty]\nCircleSize: 4\n\n[HitObjects]\n64,192,1000,1,0,1500\n")
	if len(chart.Notes) != 1 {
		t.Log("notes", chart.Notes)
		t.FailNow()
	}
	n := chart.Notes[0]
	if n.Lane != 0 || n.Type != game.Tap || n.Millisecond != 1000 {
		t.Log("note", n)
		t.Fail()
	}
}

func TestBeatmap(t *testing.T) {
	chart := parse(t, testdata.Beatmap)

	m := chart.Metadata
	if m.Title != "テスト" || m.Artist != "Someone" || m.AudioName != "audio.mp3" {
		t.Log("metadata", m)
		t.Fail()
	}
	if m.Difficulty != "4K Hard" || m.Source != "--" || m.TotalLanes != 4 {
		t.Log("metadata", m)
		t.Fail()
	}
	if len(m.Mappers) != 1 || m.Mappers[0] != "mapper" {
		t.Log("mappers", m.Mappers)
		t.Fail()
	}
	if strings.Join(m.SearchTags, ",") != "test,mania,keys" {
		t.Log("tags", m.SearchTags)
		t.Fail()
	}
	if chart.Difficulty.DamageRate != 10 || chart.Difficulty.OverallDifficulty != 8 {
		t.Log("difficulty", chart.Difficulty)
		t.Fail()
	}

	expected := []game.Note{
		{Millisecond: 0, Lane: 2, Type: game.Tap},
		{Millisecond: 1000, Lane: 0, Type: game.Tap},
		{Millisecond: 1500, Lane: 1, Type: game.Hold, HoldLength: 1000},
		{Millisecond: 3000, Lane: 3, Type: game.Tap},
		{Millisecond: 4000, Lane: 3, Type: game.Tap},
	}
	if len(chart.Notes) != len(expected) {
		t.Log("notes", chart.Notes)
		t.FailNow()
	}
	for i, n := range chart.Notes {
		if n != expected[i] {
			t.Log("note    ", i, n)
			t.Log("expected", expected[i])
			t.Fail()
		}
	}
}

func TestTimingPoints(t *testing.T) {
	chart := parse(t, testdata.Beatmap)
	if len(chart.Timings) != 3 {
		t.Log("timings", chart.Timings)
		t.FailNow()
	}

	// Sorted ascending even though the file is not
	for i, ms := range []float64{0, 1000, 2000} {
		if chart.Timings[i].Millisecond != ms {
			t.Log("timing", i, chart.Timings[i].Millisecond)
			t.Fail()
		}
	}

	first := chart.Timings[0]
	if first.BPM == nil || *first.BPM != 120 || first.ScrollSpeed != nil || first.Volume != 70 {
		t.Log("uninherited point", first)
		t.Fail()
	}
	if malformed := chart.Timings[1]; malformed.BPM != nil || malformed.ScrollSpeed != nil {
		t.Log("malformed beat length should be a no-op", malformed)
		t.Fail()
	}
	inherited := chart.Timings[2]
	if inherited.ScrollSpeed == nil || *inherited.ScrollSpeed != 2 || inherited.BPM != nil {
		t.Log("inherited point", inherited)
		t.Fail()
	}
}

func TestLegacyTimingPoint(t *testing.T) {
	chart := parse(t, "[TimingPoints]\n100,250\n")
	if len(chart.Timings) != 1 || chart.Timings[0].BPM == nil || *chart.Timings[0].BPM != 240 {
		t.Log("timings", chart.Timings)
		t.Fail()
	}
}

func TestLaneMapping(t *testing.T) {
	tests := map[string]int{
		"0,0,0,1,0":   0,
		"127,0,0,1,0": 0,
		"128,0,0,1,0": 1,
		"511,0,0,1,0": 3,
		"900,0,0,1,0": 3,
		"-40,0,0,1,0": 0,
		"zz,0,0,1,0":  0,
	}
	for line, lane := range tests {
		chart := parse(t, "[Difficulty]\nCircleSize:4\n[HitObjects]\n"+line+"\n")
		if len(chart.Notes) != 1 || chart.Notes[0].Lane != lane {
			t.Log("line", line, "notes", chart.Notes, "expected lane", lane)
			t.Fail()
		}
	}
}

func TestCRLF(t *testing.T) {
	chart := parse(t, "[Difficulty]\r\nCircleSize:7\r\n\r\n[HitObjects]\r\n256,192,10,1,0\r\n")
	if chart.Metadata.TotalLanes != 7 || len(chart.Notes) != 1 || chart.Notes[0].Lane != 3 {
		t.Log("chart", chart.Metadata.TotalLanes, chart.Notes)
		t.Fail()
	}
}

func TestFor(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "map.osu")
	if err := os.WriteFile(file, []byte(testdata.Beatmap), 0o644); nil != err {
		t.Fatal(err)
	}
	chart, err := parser.Parse(file)
	if nil != err || len(chart.Notes) != 5 {
		t.Log(err)
		t.Fail()
	}

	if _, err := parser.For("song.sm"); err == nil {
		t.Log("expected no parser for .sm")
		t.Fail()
	}
	if _, err := parser.Parse(filepath.Join(dir, "missing.json")); err == nil {
		t.Fail()
	}
}
