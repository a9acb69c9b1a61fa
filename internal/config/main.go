package config

import (
	"time"

	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

type Play struct {
	Path        string
	Autoplay    bool
	Speed       float64
	LeadIn      time.Duration
	Device      string
	Settings    string
	Database    string
	FramePeriod time.Duration
	Spectate    bool
}

type Convert struct {
	Beatmaps []string
	Out      string
	Workers  int
}

type Info struct {
	Charts []string
}

type History struct {
	Chart    string
	Database string
	Settings string
}

// Command is one parsed invocation. Only the section named by Name is set.
type Command struct {
	Name    string
	Play    Play
	Convert Convert
	Info    Info
	History History
}

func Application() (*kingpin.Application, *Command) {
	c := &Command{}
	app := kingpin.New("eotm", "A vertical scrolling rhythm game for the terminal")
	app.Version(Version)

	play := app.Command("play", "Play a chart").Default()
	play.Arg("path", "Chart file or song directory").Required().StringVar(&c.Play.Path)
	play.Flag("autoplay", "Let the game press the keys").Short('a').BoolVar(&c.Play.Autoplay)
	play.Flag("speed", "Note speed, 0 uses the settings file").Default("0").Short('s').Float64Var(&c.Play.Speed)
	play.Flag("lead-in", "Time before the first beat").Default("3s").Short('l').DurationVar(&c.Play.LeadIn)
	play.Flag("device", "evdev keyboard device, reads the terminal when empty").Short('d').StringVar(&c.Play.Device)
	play.Flag("settings", "Settings file").Default(DefaultSettingsPath()).StringVar(&c.Play.Settings)
	play.Flag("db", "Score database").Default(DefaultDatabasePath()).StringVar(&c.Play.Database)
	play.Flag("frame-period", "Render frame period").Default("4ms").Short('p').DurationVar(&c.Play.FramePeriod)
	play.Flag("spectate", "Show the preview stream next to the lanes").BoolVar(&c.Play.Spectate)

	convert := app.Command("convert", "Convert .osu beatmaps to json charts")
	convert.Arg("beatmaps", "Beatmap files").Required().ExistingFilesVar(&c.Convert.Beatmaps)
	convert.Flag("out", "Output directory").Default(".").Short('o').ExistingDirVar(&c.Convert.Out)
	convert.Flag("workers", "Beatmaps converted at once, 0 for one per cpu").Default("0").Short('j').IntVar(&c.Convert.Workers)

	info := app.Command("info", "Describe charts")
	info.Arg("charts", "Chart files").Required().ExistingFilesVar(&c.Info.Charts)

	history := app.Command("history", "List and replay stored plays of a chart")
	history.Arg("chart", "Chart file").Required().ExistingFileVar(&c.History.Chart)
	history.Flag("db", "Score database").Default(DefaultDatabasePath()).StringVar(&c.History.Database)
	history.Flag("settings", "Settings file").Default(DefaultSettingsPath()).StringVar(&c.History.Settings)

	return app, c
}

func Parse(args []string) (*Command, error) {
	app, c := Application()
	name, err := app.Parse(args)
	if nil != err {
		return nil, err
	}
	c.Name = name
	return c, nil
}
