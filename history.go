package main

import (
	"fmt"
	"io"
	"log"

	"git.lost.host/meutraa/eotm/internal/config"
	"git.lost.host/meutraa/eotm/internal/parser"
	"git.lost.host/meutraa/eotm/internal/score"
	"git.lost.host/meutraa/eotm/internal/session"
	"github.com/dustin/go-humanize"
)

// history lists stored plays of a chart, each scored again from its inputs
func history(c config.History, w io.Writer) error {
	chart, err := parser.Parse(c.Chart)
	if nil != err {
		return err
	}
	settings, err := config.LoadSettings(c.Settings)
	if nil != err {
		return err
	}
	scorer, err := score.Open(c.Database)
	if nil != err {
		return err
	}
	defer scorer.Close()

	plays, err := scorer.Load(chart)
	if nil != err {
		return err
	}
	if len(plays) == 0 {
		fmt.Fprintf(w, "no plays of %s\n", chart.Metadata.Title)
		return nil
	}

	cfg := session.Config{
		NoteSpeed:   settings.NoteSpeed,
		LaneHeight:  settings.LaneHeight,
		HitPosition: settings.HitPosition,
	}
	for _, play := range plays {
		replayed, err := session.Replay(chart, play.Inputs, cfg)
		if nil != err {
			return err
		}
		s := play.Summary
		if replayed.Score != s.Score {
			log.Printf("play at %v replays to %v, stored %v\n", play.PlayedAt, replayed.Score, s.Score)
		}
		fmt.Fprintf(w, "%-16s %12s %8s %2s %6s combo %4d inputs\n",
			humanize.Time(play.PlayedAt),
			humanize.Comma(int64(replayed.Score)),
			accuracy(replayed.Accuracy),
			replayed.Grade,
			humanize.Comma(int64(replayed.HighestCombo)),
			len(play.Inputs),
		)
	}
	return nil
}
