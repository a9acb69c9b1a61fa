package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParsePlay(t *testing.T) {
	c, err := Parse([]string{"play", "song", "-a", "--speed", "12", "--lead-in", "2s"})
	if nil != err {
		t.Fatal(err)
	}
	if c.Name != "play" || c.Play.Path != "song" || !c.Play.Autoplay {
		t.Log("parsed", c.Name, c.Play)
		t.Fail()
	}
	if c.Play.Speed != 12 || c.Play.LeadIn != 2*time.Second || c.Play.FramePeriod != 4*time.Millisecond {
		t.Log("flags", c.Play)
		t.Fail()
	}
}

func TestParseDefaultCommand(t *testing.T) {
	c, err := Parse([]string{"song"})
	if nil != err {
		t.Fatal(err)
	}
	if c.Name != "play" || c.Play.Path != "song" {
		t.Log("parsed", c.Name, c.Play.Path)
		t.Fail()
	}
}

func TestParseConvert(t *testing.T) {
	dir := t.TempDir()
	beatmap := filepath.Join(dir, "a.osu")
	if err := os.WriteFile(beatmap, []byte("osu file format v14\n"), 0o644); nil != err {
		t.Fatal(err)
	}

	c, err := Parse([]string{"convert", beatmap, "--out", dir, "-j", "2"})
	if nil != err {
		t.Fatal(err)
	}
	if c.Name != "convert" || len(c.Convert.Beatmaps) != 1 || c.Convert.Out != dir || c.Convert.Workers != 2 {
		t.Log("parsed", c.Name, c.Convert)
		t.Fail()
	}

	if _, err := Parse([]string{"convert", filepath.Join(dir, "missing.osu")}); nil == err {
		t.Log("missing beatmap accepted")
		t.Fail()
	}
}

func TestDefaultSettings(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "none.ini"))
	if nil != err {
		t.Fatal(err)
	}
	if s.NoteSpeed != 10 || s.LaneHeight != 480 || s.Skin != "CirclesV1" || s.Device != "" {
		t.Log("settings", s)
		t.Fail()
	}

	expected := map[int]string{
		1: " ",
		4: "dfjk",
		7: "sdf jkl",
		8: "asdfjkl;",
	}
	for lanes, keys := range expected {
		if string(s.Keys(lanes)) != keys {
			t.Log(lanes, "lanes bound to", string(s.Keys(lanes)), "expected", keys)
			t.Fail()
		}
	}
	if s.Keys(11) != nil {
		t.Log("no binding expected for 11 lanes")
		t.Fail()
	}
	if s.KeyLane('j', 4) != 2 || s.KeyLane('x', 4) != -1 {
		t.Log("key lanes", s.KeyLane('j', 4), s.KeyLane('x', 4))
		t.Fail()
	}
}

func TestUserSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	user := "[Gameplay]\nnote_speed = 14\nskin = Bars\n\n[keys]\n4 = zx./\n5 = toolong\n"
	if err := os.WriteFile(path, []byte(user), 0o644); nil != err {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if nil != err {
		t.Fatal(err)
	}
	if s.NoteSpeed != 14 || s.Skin != "Bars" || s.LaneHeight != 480 {
		t.Log("settings", s)
		t.Fail()
	}
	if string(s.Keys(4)) != "zx./" || s.Keys(5) != nil || string(s.Keys(6)) != "sdfjkl" {
		t.Log("keys", string(s.Keys(4)), s.Keys(5), string(s.Keys(6)))
		t.Fail()
	}

	bad := filepath.Join(t.TempDir(), "bad.ini")
	os.WriteFile(bad, []byte("[gameplay]\nhit_position = 2\n"), 0o644)
	if _, err := LoadSettings(bad); nil == err {
		t.Log("hit position outside the lane accepted")
		t.Fail()
	}
}
