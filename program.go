package main

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.lost.host/meutraa/eotm/internal/audio"
	"git.lost.host/meutraa/eotm/internal/config"
	"git.lost.host/meutraa/eotm/internal/game"
	"git.lost.host/meutraa/eotm/internal/input"
	"git.lost.host/meutraa/eotm/internal/parser"
	"git.lost.host/meutraa/eotm/internal/preview"
	"git.lost.host/meutraa/eotm/internal/render"
	"git.lost.host/meutraa/eotm/internal/score"
	"git.lost.host/meutraa/eotm/internal/session"
	"git.lost.host/meutraa/eotm/internal/theme"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// Program plays one chart in the terminal
type Program struct {
	Config config.Play

	settings *config.Settings
	scorer   score.Scorer
	renderer *render.DefaultRenderer
	source   input.Source
	player   *audio.Player
	session  *session.Session

	chartFile, audioFile string
	chart                *game.Chart

	channel *preview.Channel
	viewer  *preview.Viewer
	counts  [game.JudgementCount]int
}

func isChart(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".osu", ".json":
		return true
	}
	return false
}

// find resolves a chart file or song directory to a chart and its audio. The
// chart's own audio name wins over any other audio file nearby.
func find(path string) (chartFile, audioFile string, err error) {
	info, err := os.Stat(path)
	if nil != err {
		return "", "", errors.Wrap(err, "unable to find song")
	}

	if info.IsDir() {
		if err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if nil != err {
				return err
			}
			if !d.IsDir() && chartFile == "" && isChart(p) {
				chartFile = p
			}
			return nil
		}); nil != err {
			return "", "", errors.Wrap(err, "unable to walk song directory")
		}
		if chartFile == "" {
			return "", "", errors.Errorf("no .osu or .json chart in %s", path)
		}
	} else {
		chartFile = path
	}
	dir := filepath.Dir(chartFile)

	entries, err := os.ReadDir(dir)
	if nil != err {
		return "", "", errors.Wrap(err, "unable to read song directory")
	}
	for _, e := range entries {
		if !e.IsDir() && audio.Supported(e.Name()) {
			audioFile = filepath.Join(dir, e.Name())
			break
		}
	}
	return chartFile, audioFile, nil
}

func (p *Program) Init() error {
	var err error
	p.chartFile, p.audioFile, err = find(p.Config.Path)
	if nil != err {
		return err
	}

	p.chart, err = parser.Parse(p.chartFile)
	if nil != err {
		return err
	}
	if name := p.chart.Metadata.AudioName; name != "" && audio.Supported(name) {
		candidate := filepath.Join(filepath.Dir(p.chartFile), name)
		if _, err := os.Stat(candidate); nil == err {
			p.audioFile = candidate
		}
	}

	p.settings, err = config.LoadSettings(p.Config.Settings)
	if nil != err {
		return err
	}
	lanes := p.chart.Metadata.TotalLanes
	keys := p.settings.Keys(lanes)
	if nil == keys && !p.Config.Autoplay {
		return errors.Errorf("no key binding for %d lanes in %s", lanes, p.Config.Settings)
	}

	if err := os.MkdirAll(filepath.Dir(p.Config.Database), 0o755); nil != err {
		return errors.Wrap(err, "unable to create score directory")
	}
	p.scorer, err = score.Open(p.Config.Database)
	if nil != err {
		return err
	}

	device := p.Config.Device
	if device == "" {
		device = p.settings.Device
	}
	if device != "" {
		p.source, err = input.OpenDevice(device, keys)
	} else {
		p.source, err = input.OpenTerminal(keys)
	}
	if nil != err {
		return err
	}

	if p.audioFile != "" {
		log.Printf("Opening %v (%v)\n", p.audioFile, p.chartFile)
		p.player, err = audio.Open(p.audioFile)
		if nil != err {
			return err
		}
	} else {
		log.Printf("Opening %v without audio\n", p.chartFile)
	}

	p.renderer = render.NewRenderer(os.Stdout, theme.For(p.settings.Skin))
	columns, rows := p.renderer.Size()
	p.renderer.Layout(columns, rows, lanes, p.settings.LaneHeight)

	speed := p.settings.NoteSpeed
	if p.Config.Speed > 0 {
		speed = p.Config.Speed
	}
	collaborators := session.Collaborators{Surface: p.renderer}
	if nil != p.player {
		collaborators.Audio = p.player
	}
	if p.Config.Spectate {
		p.channel = preview.NewChannel(8)
		p.viewer = preview.NewViewer(p.chart)
		collaborators.Broadcaster = p.channel
	}
	p.session = session.New(session.Config{
		NoteSpeed:   speed,
		LaneHeight:  p.settings.LaneHeight,
		HitPosition: p.settings.HitPosition,
		LeadIn:      p.Config.LeadIn,
		Autoplay:    p.Config.Autoplay,
		Skin:        p.settings.Skin,
	}, collaborators)
	return nil
}

func (p *Program) Deinit() {
	if nil != p.source {
		if err := p.source.Close(); nil != err {
			log.Println("unable to close input", err)
		}
	}
	if nil != p.player {
		p.player.Close()
	}
	if nil != p.scorer {
		p.scorer.Close()
	}
}

func (p *Program) Run() error {
	defer p.Deinit()
	if err := p.Init(); nil != err {
		return err
	}

	if err := p.renderer.Init(); nil != err {
		return err
	}
	if err := p.session.Start(p.chart, time.Now()); nil != err {
		p.renderer.Deinit()
		return err
	}
	p.renderer.RenderLoop(p.Config.FramePeriod, p.Update)
	p.renderer.Deinit()

	summary := p.session.Finish()
	if !p.Config.Autoplay && summary.Judged() > 0 {
		if err := p.scorer.Save(p.chart, p.session.Inputs(), summary); nil != err {
			log.Println("unable to save score:", err)
		}
	}
	printSummary(os.Stdout, p.chart, summary)
	return nil
}

// Update is one frame: inputs, then the session, then drawing
func (p *Program) Update(now time.Time) bool {
	for drained := false; !drained; {
		select {
		case ev, ok := <-p.source.Events():
			if !ok {
				drained = true
				break
			}
			switch {
			case ev.Quit:
				p.session.Finish()
			case ev.Pressed:
				p.session.Press(ev.Lane, ev.Time)
			default:
				p.session.Release(ev.Lane, ev.Time)
			}
		default:
			drained = true
		}
	}

	cont := p.session.Update(now)

	summary := p.session.Stats()
	for j, count := range summary.Counts {
		if count > p.counts[j] {
			p.renderer.Flash(game.Judgement(j))
		}
	}
	p.counts = summary.Counts

	p.renderer.DrawField(p.session.Held())
	p.renderer.DrawHUD(p.chart, summary, p.session.Countdown())
	if nil != p.channel {
		for drained := false; !drained; {
			select {
			case payload := <-p.channel.C:
				p.viewer.Apply(payload)
			default:
				drained = true
			}
		}
		p.renderer.DrawPreview(p.viewer)
	}
	return cont
}

func printSummary(w io.Writer, c *game.Chart, s score.Summary) {
	fmt.Fprintf(w, "%s - %s [%s]\n", c.Metadata.Artist, c.Metadata.Title, c.Metadata.Difficulty)
	fmt.Fprintf(w, "%12s / %s\n", humanize.Comma(int64(s.Score)), humanize.Comma(int64(s.MaxScore)))
	fmt.Fprintf(w, "%12s  %s\n", accuracy(s.Accuracy), s.Grade)
	fmt.Fprintf(w, "%12s  max combo\n", humanize.Comma(int64(s.HighestCombo)))
	for j := game.Marvelous; j <= game.Miss; j++ {
		fmt.Fprintf(w, "%12v  %v\n", s.Counts[j], j)
	}
}
