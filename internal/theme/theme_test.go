package theme

import (
	"testing"

	"git.lost.host/meutraa/eotm/internal/game"
	"git.lost.host/meutraa/eotm/internal/session"
)

func TestLaneColor(t *testing.T) {
	expected := map[int][]string{
		4: {"outer", "inner", "inner", "outer"},
		5: {"outer", "inner", "centre", "inner", "outer"},
		7: {"outer", "inner", "outer", "centre", "outer", "inner", "outer"},
	}
	names := map[interface{}]string{outer: "outer", inner: "inner", centre: "centre"}
	for lanes, colors := range expected {
		for lane, name := range colors {
			if got := names[laneColor(lane, lanes)]; got != name {
				t.Log(lanes, "lanes, lane", lane, "is", got, "expected", name)
				t.Fail()
			}
		}
	}
}

func TestFor(t *testing.T) {
	if _, ok := For("Bars").(*BarTheme); !ok {
		t.Fail()
	}
	if _, ok := For("CirclesV1").(*DefaultTheme); !ok {
		t.Fail()
	}

	th := For("Bars")
	if s, _ := th.Note(0, 4, session.TailNote); s != "▔▔▔" {
		t.Log("tail", s)
		t.Fail()
	}
	if s, c := th.Judgement(game.Miss); s != "     Miss" || c.R != 236 {
		t.Log("miss", s, c)
		t.Fail()
	}
}
