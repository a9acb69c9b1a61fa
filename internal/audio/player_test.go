package audio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSupported(t *testing.T) {
	files := map[string]bool{
		"song.mp3":     true,
		"SONG.OGG":     true,
		"dir/a.wav":    true,
		"chart.osu":    false,
		"no extension": false,
	}
	for file, expected := range files {
		if Supported(file) != expected {
			t.Log(file, "supported should be", expected)
			t.Fail()
		}
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open("song.flac"); nil == err {
		t.Log("flac accepted")
		t.Fail()
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing.mp3")); nil == err {
		t.Log("missing file accepted")
		t.Fail()
	}

	garbage := filepath.Join(t.TempDir(), "garbage.wav")
	os.WriteFile(garbage, []byte("not a wave file"), 0o644)
	if _, err := Open(garbage); nil == err {
		t.Log("garbage decoded")
		t.Fail()
	}
}
