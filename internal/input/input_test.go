package input

import (
	"bytes"
	"encoding/binary"
	"syscall"
	"testing"
	"time"

	"github.com/eiannone/keyboard"
)

// linux/input-event-codes.h
const (
	evKey  = 1
	evSyn  = 0
	keyEsc = 1
	keyD   = 32
	keyF   = 33
	keyJ   = 36
)

func TestDeviceRead(t *testing.T) {
	var buf bytes.Buffer
	write := func(typ, code uint16, value int32, sec int64) {
		binary.Write(&buf, binary.LittleEndian, keyEvent{
			Time:  syscall.NsecToTimeval(sec * int64(time.Second)),
			Type:  typ,
			Code:  code,
			Value: value,
		})
	}
	write(evKey, keyF, 1, 10)
	write(evSyn, 0, 0, 10)
	write(evKey, keyF, 2, 10)
	write(evKey, keyJ, 1, 11)
	write(evKey, keyF, 0, 12)
	write(evKey, 30, 1, 12)
	write(evKey, keyEsc, 1, 13)

	d := newDevice([]rune("dfjk"))
	go d.read(&buf)

	expected := []Event{
		{Lane: 1, Pressed: true, Time: time.Unix(10, 0)},
		{Lane: 2, Pressed: true, Time: time.Unix(11, 0)},
		{Lane: 1, Pressed: false, Time: time.Unix(12, 0)},
		{Quit: true, Time: time.Unix(13, 0)},
	}
	i := 0
	for ev := range d.Events() {
		if i >= len(expected) {
			t.Log("unexpected event", ev)
			t.Fail()
			continue
		}
		e := expected[i]
		if ev.Lane != e.Lane || ev.Pressed != e.Pressed || ev.Quit != e.Quit || !ev.Time.Equal(e.Time) {
			t.Log("event", i, ev, "expected", e)
			t.Fail()
		}
		i++
	}
	if i != len(expected) {
		t.Log("read", i, "events")
		t.Fail()
	}
}

func TestDeviceCodes(t *testing.T) {
	d := newDevice([]rune("d😀j"))
	if d.lanes[keyD] != 0 || d.lanes[keyJ] != 2 || len(d.lanes) != 2 {
		t.Log("lanes", d.lanes)
		t.Fail()
	}
}

func TestTranslate(t *testing.T) {
	keys := []rune("f j")
	at := time.Unix(5, 0)

	events := translate(keyboard.KeyEvent{Key: keyboard.KeySpace}, keys, at)
	if len(events) != 2 || events[0].Lane != 1 || !events[0].Pressed || events[1].Pressed {
		t.Log("space", events)
		t.Fail()
	}
	if events := translate(keyboard.KeyEvent{Rune: 'j'}, keys, at); len(events) != 2 || events[0].Lane != 2 {
		t.Log("j", events)
		t.Fail()
	}
	if events := translate(keyboard.KeyEvent{Rune: 'x'}, keys, at); len(events) != 0 {
		t.Log("unbound key", events)
		t.Fail()
	}
	if events := translate(keyboard.KeyEvent{Key: keyboard.KeyEsc}, keys, at); len(events) != 1 || !events[0].Quit {
		t.Log("escape", events)
		t.Fail()
	}
}

func TestDeviceCloseUnblocks(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 300; i++ {
		binary.Write(&buf, binary.LittleEndian, keyEvent{Type: evKey, Code: keyF, Value: int32(1 - i%2)})
	}

	d := newDevice([]rune("dfjk"))
	finished := make(chan struct{})
	go func() {
		d.read(&buf)
		close(finished)
	}()
	for deadline := time.Now().Add(time.Second); len(d.events) < cap(d.events); {
		if time.Now().After(deadline) {
			t.Log("buffer never filled", len(d.events))
			t.FailNow()
		}
		time.Sleep(time.Millisecond)
	}

	d.Close()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Log("reader still blocked after close")
		t.FailNow()
	}
	if err := d.Close(); nil != err {
		t.Log("second close", err)
		t.Fail()
	}
}

func TestTerminalCloseUnblocks(t *testing.T) {
	keyChannel := make(chan keyboard.KeyEvent, 100)
	for i := 0; i < cap(keyChannel); i++ {
		keyChannel <- keyboard.KeyEvent{Rune: 'f'}
	}

	term := newTerminal()
	finished := make(chan struct{})
	go func() {
		term.pump(keyChannel, []rune("dfjk"))
		close(finished)
	}()
	for deadline := time.Now().Add(time.Second); len(term.events) < cap(term.events); {
		if time.Now().After(deadline) {
			t.Log("buffer never filled", len(term.events))
			t.FailNow()
		}
		time.Sleep(time.Millisecond)
	}

	term.stop()
	term.stop()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Log("pump still blocked after stop")
		t.FailNow()
	}
}

func TestTerminalChannelEnds(t *testing.T) {
	keyChannel := make(chan keyboard.KeyEvent, 1)
	keyChannel <- keyboard.KeyEvent{Rune: 'j'}
	close(keyChannel)

	term := newTerminal()
	go term.pump(keyChannel, []rune("dfjk"))
	n := 0
	for ev := range term.Events() {
		if ev.Lane != 2 {
			t.Log("event", ev)
			t.Fail()
		}
		n++
	}
	if n != 2 {
		t.Log("events", n)
		t.Fail()
	}
}
