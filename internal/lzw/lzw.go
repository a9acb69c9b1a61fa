// Package lzw is a string oriented LZW codec. The dictionary starts from the
// 256 single byte strings and is rebuilt on every call, so encoder and
// decoder share no state.
package lzw

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/pkg/errors"
)

const alphabet = 256

// maxDecoded bounds the output and dictionary bytes of one Decode call. A
// hostile code stream can grow every entry by one byte, which is quadratic.
const maxDecoded = 1 << 20

var ErrCorrupt = errors.New("lzw: corrupt input")

func seed() map[string]int {
	dict := make(map[string]int, alphabet)
	for i := 0; i < alphabet; i++ {
		dict[string([]byte{byte(i)})] = i
	}
	return dict
}

// Encode emits the dictionary code of each longest known prefix
func Encode(s string) []int {
	codes := []int{}
	if len(s) == 0 {
		return codes
	}

	dict := seed()
	next := alphabet
	start := 0
	for i := 1; i < len(s); i++ {
		if _, ok := dict[s[start:i+1]]; ok {
			continue
		}
		codes = append(codes, dict[s[start:i]])
		dict[s[start:i+1]] = next
		next++
		start = i
	}
	return append(codes, dict[s[start:]])
}

// Decode rebuilds the encoder's dictionary while consuming codes
func Decode(codes []int) (string, error) {
	if len(codes) == 0 {
		return "", nil
	}
	if codes[0] < 0 || codes[0] >= alphabet {
		return "", errors.Wrapf(ErrCorrupt, "first code %d is not a single byte", codes[0])
	}

	dict := make([]string, alphabet, alphabet+len(codes))
	for i := range dict {
		dict[i] = string([]byte{byte(i)})
	}

	var b strings.Builder
	w := dict[codes[0]]
	b.WriteString(w)
	entries := 0
	for i, k := range codes[1:] {
		var entry string
		switch {
		case k >= 0 && k < len(dict):
			entry = dict[k]
		case k == len(dict):
			// The code being defined by this very step
			entry = w + w[:1]
		default:
			return "", errors.Wrapf(ErrCorrupt, "code %d at %d is undefined", k, i+1)
		}
		entries += len(w) + 1
		if b.Len()+len(entry)+entries > maxDecoded {
			return "", errors.Wrap(ErrCorrupt, "decoded snapshot too large")
		}
		b.WriteString(entry)
		dict = append(dict, w+entry[:1])
		w = entry
	}
	return b.String(), nil
}

// Compress encodes s and packs the codes as unsigned varints
func Compress(s string) []byte {
	codes := Encode(s)
	out := make([]byte, 0, len(codes)*2)
	for _, c := range codes {
		out = binary.AppendUvarint(out, uint64(c))
	}
	return out
}

func Decompress(data []byte) (string, error) {
	codes := make([]int, 0, len(data))
	for len(data) > 0 {
		v, n := binary.Uvarint(data)
		if n <= 0 || v > math.MaxInt32 {
			return "", errors.Wrap(ErrCorrupt, "bad varint")
		}
		codes = append(codes, int(v))
		data = data[n:]
	}
	return Decode(codes)
}
