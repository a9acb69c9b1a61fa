package score

import (
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/eotm/internal/game"
)

func TestStatsHit(t *testing.T) {
	var s Stats
	s.Reset(1500)

	offsets := []float64{0, 30, -70, 130, -150}
	expected := []game.Judgement{game.Marvelous, game.Perfect, game.Great, game.Ok, game.Bad}
	for i, offset := range offsets {
		if j := s.Hit(offset); j != expected[i] {
			t.Log("offset", offset, "judged", j, "expected", expected[i])
			t.Fail()
		}
	}

	if s.Score != 300+300+200+100+50 {
		t.Log("score", s.Score)
		t.Fail()
	}
	if s.Combo != 5 || s.HighestCombo != 5 {
		t.Log("combo", s.Combo, s.HighestCombo)
		t.Fail()
	}

	if j := s.Hit(190); j != game.Miss {
		t.Log("expected a miss", j)
		t.Fail()
	}
	if s.Combo != 0 || s.HighestCombo != 5 || s.Misses() != 1 {
		t.Log("combo after miss", s.Combo, s.HighestCombo, s.Misses())
		t.Fail()
	}
	if s.Judged() != 6 {
		t.Log("judged", s.Judged())
		t.Fail()
	}

	sum := s.Summary()
	// early: 30, 130, 190; late: 0, -70, -150
	if sum.EarlyError != 350.0/3 || sum.LateError != -220.0/3 {
		t.Log("errors", sum.EarlyError, sum.LateError)
		t.Fail()
	}
	if sum.MaxScore != 1500 {
		t.Fail()
	}
}

func TestStatsConfirmAndMiss(t *testing.T) {
	var s Stats
	s.Confirm()
	s.Confirm()
	s.Miss()
	s.Confirm()

	if s.Combo != 1 || s.HighestCombo != 2 {
		t.Log("combo", s.Combo, s.HighestCombo)
		t.Fail()
	}
	if s.Score != 0 || s.Misses() != 1 || s.Judged() != 1 {
		t.Log("confirm should not score", s.Score, s.Judged())
		t.Fail()
	}

	s.Reset(300)
	if s.Combo != 0 || s.HighestCombo != 0 || s.Judged() != 0 || s.MaxScore != 300 {
		t.Log("reset", s)
		t.Fail()
	}
	if s.Summary().Grade != GradeD {
		t.Fail()
	}
}

func TestScorerRoundTrip(t *testing.T) {
	scorer, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	if nil != err {
		t.Fatal(err)
	}
	defer scorer.Close()

	chart := &game.Chart{
		Metadata: game.Metadata{Title: "a", TotalLanes: 4},
		Notes:    []game.Note{{Millisecond: 500, Lane: 1}},
	}
	other := &game.Chart{Metadata: game.Metadata{Title: "b", TotalLanes: 4}}

	var s Stats
	s.Reset(chart.MaxScore())
	s.Hit(10)
	inputs := []game.Input{{Lane: 1, Time: 490}, {Lane: 1, Time: 560, Release: true}}

	if err := scorer.Save(chart, inputs, s.Summary()); nil != err {
		t.Fatal(err)
	}
	// Nothing judged must still save
	var empty Stats
	if err := scorer.Save(other, nil, empty.Summary()); nil != err {
		t.Fatal(err)
	}

	histories, err := scorer.Load(chart)
	if nil != err {
		t.Fatal(err)
	}
	if len(histories) != 1 {
		t.Log("histories", histories)
		t.FailNow()
	}
	h := histories[0]
	if h.Summary.Score != 300 || h.Summary.Counts[game.Marvelous] != 1 {
		t.Log("summary", h.Summary)
		t.Fail()
	}
	if len(h.Inputs) != 2 || h.Inputs[0] != inputs[0] || h.Inputs[1] != inputs[1] {
		t.Log("inputs", h.Inputs)
		t.Fail()
	}
	if h.Sum != HashChart(chart) || HashChart(chart) == HashChart(other) {
		t.Fail()
	}
}
