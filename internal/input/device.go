package input

// #include <linux/input-event-codes.h>
// #include <linux/input.h>
import "C"

import (
	"encoding/binary"
	"io"
	"log"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

//https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
var codes = map[rune]uint16{
	'1': C.KEY_1, '2': C.KEY_2, '3': C.KEY_3, '4': C.KEY_4, '5': C.KEY_5,
	'6': C.KEY_6, '7': C.KEY_7, '8': C.KEY_8, '9': C.KEY_9, '0': C.KEY_0,
	'q': C.KEY_Q, 'w': C.KEY_W, 'e': C.KEY_E, 'r': C.KEY_R, 't': C.KEY_T,
	'y': C.KEY_Y, 'u': C.KEY_U, 'i': C.KEY_I, 'o': C.KEY_O, 'p': C.KEY_P,
	'a': C.KEY_A, 's': C.KEY_S, 'd': C.KEY_D, 'f': C.KEY_F, 'g': C.KEY_G,
	'h': C.KEY_H, 'j': C.KEY_J, 'k': C.KEY_K, 'l': C.KEY_L, ';': C.KEY_SEMICOLON,
	'z': C.KEY_Z, 'x': C.KEY_X, 'c': C.KEY_C, 'v': C.KEY_V, 'b': C.KEY_B,
	'n': C.KEY_N, 'm': C.KEY_M, ',': C.KEY_COMMA, '.': C.KEY_DOT, '/': C.KEY_SLASH,
	'[': C.KEY_LEFTBRACE, ']': C.KEY_RIGHTBRACE, '\'': C.KEY_APOSTROPHE,
	'-': C.KEY_MINUS, '=': C.KEY_EQUAL, ' ': C.KEY_SPACE,
}

// Device reads an evdev keyboard, which unlike a terminal reports releases
type Device struct {
	file   *os.File
	events chan Event
	done   chan struct{}
	once   sync.Once
	lanes  map[uint16]int
}

func OpenDevice(path string, keys []rune) (*Device, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	d := newDevice(keys)
	d.file = file
	go d.read(file)
	return d, nil
}

func newDevice(keys []rune) *Device {
	d := &Device{
		events: make(chan Event, 128),
		done:   make(chan struct{}),
		lanes:  map[uint16]int{},
	}
	for lane, r := range keys {
		code, ok := codes[r]
		if !ok {
			log.Printf("key %q has no evdev code, lane %d is unbound\n", r, lane)
			continue
		}
		d.lanes[code] = lane
	}
	return d
}

func (d *Device) read(r io.Reader) {
	defer close(d.events)

	var ev keyEvent
	for {
		if err := binary.Read(r, binary.LittleEndian, &ev); nil != err {
			if err != io.EOF && !errors.Is(err, os.ErrClosed) {
				log.Println(err, "unable to read keyboard input")
			}
			return
		}
		// value 2 is autorepeat
		if ev.Type != C.EV_KEY || ev.Value == 2 {
			continue
		}
		at := time.Unix(ev.Time.Unix())
		if ev.Code == C.KEY_ESC {
			if !d.send(Event{Quit: true, Time: at}) {
				return
			}
			continue
		}
		lane, ok := d.lanes[ev.Code]
		if !ok {
			continue
		}
		if !d.send(Event{Lane: lane, Pressed: ev.Value == 1, Time: at}) {
			return
		}
	}
}

// send gives up once the device is closed
func (d *Device) send(ev Event) bool {
	select {
	case d.events <- ev:
		return true
	case <-d.done:
		return false
	}
}

func (d *Device) Events() <-chan Event {
	return d.events
}

func (d *Device) Close() error {
	d.once.Do(func() { close(d.done) })
	if nil == d.file {
		return nil
	}
	return d.file.Close()
}
