// Package input turns key presses into lane presses and releases
package input

import "time"

type Event struct {
	Lane    int
	Pressed bool
	Quit    bool
	Time    time.Time
}

type Source interface {
	Events() <-chan Event
	Close() error
}

func laneOf(keys []rune, r rune) int {
	for i, k := range keys {
		if k == r {
			return i
		}
	}
	return -1
}
