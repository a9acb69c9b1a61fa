// Package audio plays the song of a chart
package audio

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

type decodeFunc func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".mp3": mp3.Decode,
	".ogg": vorbis.Decode,
	".wav": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(rc)
	},
}

// Supported reports whether file has an extension Open can decode
func Supported(file string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(file))]
	return ok
}

type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	once     sync.Once
}

func Open(file string) (*Player, error) {
	decode, ok := decoders[strings.ToLower(filepath.Ext(file))]
	if !ok {
		return nil, errors.Errorf("unsupported audio file %s", file)
	}
	f, err := os.Open(file)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to open %s", file)
	}
	streamer, format, err := decode(f)
	if nil != err {
		f.Close()
		return nil, errors.Wrapf(err, "unable to decode %s", file)
	}
	return &Player{
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer},
	}, nil
}

func (p *Player) Length() time.Duration {
	return p.format.SampleRate.D(p.streamer.Len())
}

// Play starts the song. Later calls do nothing.
func (p *Player) Play() {
	p.once.Do(func() {
		if err := speaker.Init(p.format.SampleRate, p.format.SampleRate.N(time.Second/60)); nil != err {
			log.Println("unable to open speaker:", err)
			return
		}
		speaker.Play(p.ctrl)
	})
}

func (p *Player) Close() error {
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	return p.streamer.Close()
}
