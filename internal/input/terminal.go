package input

import (
	"log"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
)

// Terminal reads keys from the controlling terminal. Terminals do not report
// releases, so every press is followed by an immediate release and holds
// can only be played from a Device.
type Terminal struct {
	events chan Event
	done   chan struct{}
	once   sync.Once
}

func OpenTerminal(keys []rune) (*Terminal, error) {
	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open keyboard")
	}
	t := newTerminal()
	go t.pump(keyChannel, keys)
	return t, nil
}

func newTerminal() *Terminal {
	return &Terminal{
		events: make(chan Event, 128),
		done:   make(chan struct{}),
	}
}

// pump forwards lane events until the keyboard channel ends or t is closed
func (t *Terminal) pump(keyChannel <-chan keyboard.KeyEvent, keys []rune) {
	defer close(t.events)
	for {
		var key keyboard.KeyEvent
		var ok bool
		select {
		case key, ok = <-keyChannel:
			if !ok {
				return
			}
		case <-t.done:
			return
		}
		if nil != key.Err {
			log.Println("keyboard:", key.Err)
			continue
		}
		for _, ev := range translate(key, keys, time.Now()) {
			select {
			case t.events <- ev:
			case <-t.done:
				return
			}
		}
	}
}

func translate(key keyboard.KeyEvent, keys []rune, at time.Time) []Event {
	switch key.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return []Event{{Quit: true, Time: at}}
	case keyboard.KeySpace:
		key.Rune = ' '
	}
	lane := laneOf(keys, key.Rune)
	if lane < 0 {
		return nil
	}
	return []Event{
		{Lane: lane, Pressed: true, Time: at},
		{Lane: lane, Pressed: false, Time: at},
	}
}

func (t *Terminal) Events() <-chan Event {
	return t.events
}

func (t *Terminal) stop() {
	t.once.Do(func() { close(t.done) })
}

func (t *Terminal) Close() error {
	t.stop()
	return keyboard.Close()
}
