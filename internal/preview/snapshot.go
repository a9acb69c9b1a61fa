// Package preview is the compact state stream sent to players watching a
// session from a distance. A snapshot is a header record followed by one
// record per visible note, each terminated by a pipe:
//
//	score,accuracyTimes100,misses,combo,skin|lane,perMille,kind,id|...
package preview

import (
	"math"
	"strconv"
	"strings"

	"git.lost.host/meutraa/eotm/internal/lzw"
	"github.com/pkg/errors"
)

type Kind int

const (
	KindTap Kind = iota
	KindTail
	KindHead
)

type Entry struct {
	Lane     int
	PerMille int // offset from the top of the lane, in thousandths of its height
	Kind     Kind
	ID       int
}

type Snapshot struct {
	Score    int
	Accuracy float64 // percent, NaN before the first judgement
	Misses   int
	Combo    int
	Skin     string
	Notes    []Entry
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func Encode(s Snapshot) string {
	var b strings.Builder
	accuracy := "nan"
	if !math.IsNaN(s.Accuracy) {
		accuracy = itoa(int(math.Round(s.Accuracy * 100)))
	}
	b.WriteString(itoa(s.Score))
	b.WriteByte(',')
	b.WriteString(accuracy)
	b.WriteByte(',')
	b.WriteString(itoa(s.Misses))
	b.WriteByte(',')
	b.WriteString(itoa(s.Combo))
	b.WriteByte(',')
	b.WriteString(s.Skin)
	b.WriteByte('|')
	for _, n := range s.Notes {
		b.WriteString(itoa(n.Lane))
		b.WriteByte(',')
		b.WriteString(itoa(n.PerMille))
		b.WriteByte(',')
		b.WriteString(itoa(int(n.Kind)))
		b.WriteByte(',')
		b.WriteString(itoa(n.ID))
		b.WriteByte('|')
	}
	return b.String()
}

func number(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if nil != err {
		return 0
	}
	return v
}

// Decode reads a snapshot. Numbers that do not parse are 0, like the
// observers this format was written for. Only a missing header is an error.
func Decode(data string) (Snapshot, error) {
	records := strings.Split(data, "|")
	if len(records) < 2 {
		return Snapshot{}, errors.New("snapshot has no header record")
	}
	header := strings.Split(records[0], ",")
	if len(header) < 5 {
		return Snapshot{}, errors.Errorf("snapshot header has %d fields", len(header))
	}

	s := Snapshot{
		Score:    int(number(header[0])),
		Accuracy: math.NaN(),
		Misses:   int(number(header[2])),
		Combo:    int(number(header[3])),
		Skin:     header[4],
	}
	if a, err := strconv.ParseFloat(header[1], 64); nil == err {
		s.Accuracy = a / 100
	}

	for _, record := range records[1:] {
		if record == "" {
			continue
		}
		fields := strings.Split(record, ",")
		for len(fields) < 4 {
			fields = append(fields, "")
		}
		s.Notes = append(s.Notes, Entry{
			Lane:     int(number(fields[0])),
			PerMille: int(number(fields[1])),
			Kind:     Kind(number(fields[2])),
			ID:       int(number(fields[3])),
		})
	}
	return s, nil
}

// Pack encodes and compresses a snapshot for the wire
func Pack(s Snapshot) []byte {
	return lzw.Compress(Encode(s))
}

func Unpack(data []byte) (Snapshot, error) {
	text, err := lzw.Decompress(data)
	if nil != err {
		return Snapshot{}, err
	}
	return Decode(text)
}
