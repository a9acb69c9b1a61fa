package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"git.lost.host/meutraa/eotm/internal/config"
	"git.lost.host/meutraa/eotm/internal/game"
	"git.lost.host/meutraa/eotm/internal/parser"
	"github.com/hako/durafmt"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

func duration(ms float64) string {
	d := time.Duration(ms) * time.Millisecond
	if d <= 0 {
		return "0s"
	}
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}

func accuracy(a float64) string {
	if math.IsNaN(a) {
		return "--"
	}
	return fmt.Sprintf("%.2f%%", a)
}

func info(c config.Info, w io.Writer) error {
	for i, file := range c.Charts {
		chart, err := parser.Parse(file)
		if nil != err {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		describe(w, file, chart)
	}
	return nil
}

func describe(w io.Writer, file string, c *game.Chart) {
	m := c.Metadata
	rating, label := game.Rate(c)
	fmt.Fprintf(w, "%s\n", file)
	fmt.Fprintf(w, "      Title:  %s\n", m.Title)
	fmt.Fprintf(w, "     Artist:  %s\n", m.Artist)
	fmt.Fprintf(w, " Difficulty:  %s\n", m.Difficulty)
	fmt.Fprintf(w, "    Mappers:  %s\n", strings.Join(m.Mappers, ", "))
	fmt.Fprintf(w, "      Lanes:  %d\n", m.TotalLanes)
	fmt.Fprintf(w, "      Notes:  %d (%d holds)\n", len(c.Notes), c.HoldCount())
	fmt.Fprintf(w, "     Length:  %s\n", duration(c.EndTime()))
	fmt.Fprintf(w, "     Rating:  %.2f %s\n", rating, label)
}
