package parser

import (
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/eotm/internal/game"
	"github.com/pkg/errors"
)

type Parser interface {
	Parse(file string) (*game.Chart, error)
}

// For picks a parser by file extension
func For(file string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".osu":
		return &OsuParser{}, nil
	case ".json":
		return &JSONParser{}, nil
	}
	return nil, errors.Errorf("no parser for %s", file)
}

// Parse reads a chart from any supported file
func Parse(file string) (*game.Chart, error) {
	p, err := For(file)
	if nil != err {
		return nil, err
	}
	return p.Parse(file)
}
