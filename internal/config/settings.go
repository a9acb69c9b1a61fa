package config

import (
	"os"
	"path/filepath"
	"strconv"

	"git.lost.host/meutraa/eotm/internal/timing"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

const defaultSettings = `
[gameplay]
note_speed   = 10
hit_position = 0.958333
lane_height  = 480
skin         = CirclesV1
device       =

[keys]
1 = space
2 = fj
3 = f j
4 = dfjk
5 = df jk
6 = sdfjkl
7 = sdf jkl
8 = asdfjkl;
9 = asdf jkl;
10 = asdfvnjkl;
`

type Settings struct {
	NoteSpeed   float64
	HitPosition float64
	LaneHeight  float64
	Skin        string
	Device      string
	keys        map[int][]rune
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if nil != err {
		return "."
	}
	return filepath.Join(dir, "eotm")
}

func DefaultSettingsPath() string {
	return filepath.Join(configDir(), "settings.ini")
}

func DefaultDatabasePath() string {
	return filepath.Join(configDir(), "scores.db")
}

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		Loose:                   true,
		InsensitiveSections:     true,
		InsensitiveKeys:         true,
		SkipUnrecognizableLines: true,
		IgnoreInlineComment:     true,
	}
}

// LoadSettings reads the settings file over the defaults. A missing file is
// not an error.
func LoadSettings(path string) (*Settings, error) {
	f, err := ini.LoadSources(loadOptions(), []byte(defaultSettings), path)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to load settings %s", path)
	}

	gameplay := f.Section("gameplay")
	s := &Settings{
		NoteSpeed:   gameplay.Key("note_speed").MustFloat64(10),
		HitPosition: gameplay.Key("hit_position").MustFloat64(timing.DefaultHitPosition),
		LaneHeight:  gameplay.Key("lane_height").MustFloat64(480),
		Skin:        gameplay.Key("skin").MustString("CirclesV1"),
		Device:      gameplay.Key("device").String(),
		keys:        map[int][]rune{},
	}
	if s.HitPosition <= 0 || s.HitPosition > 1 {
		return nil, errors.Errorf("hit_position %v is not within (0, 1]", s.HitPosition)
	}

	for _, key := range f.Section("keys").Keys() {
		lanes, err := strconv.Atoi(key.Name())
		if nil != err || lanes < 1 {
			continue
		}
		value := key.String()
		if value == "space" {
			value = " "
		}
		s.keys[lanes] = []rune(value)
	}
	return s, nil
}

// Keys returns the key for each lane, or nil when no binding has one rune per
// lane
func (s *Settings) Keys(lanes int) []rune {
	keys := s.keys[lanes]
	if len(keys) != lanes {
		return nil
	}
	return keys
}

// KeyLane is the lane bound to r, or -1
func (s *Settings) KeyLane(r rune, lanes int) int {
	for i, c := range s.Keys(lanes) {
		if r == c {
			return i
		}
	}
	return -1
}
