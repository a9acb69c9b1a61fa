package main

import (
	"log"
	"os"

	"git.lost.host/meutraa/eotm/internal/config"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	c, err := config.Parse(args)
	if nil != err {
		return err
	}

	switch c.Name {
	case "convert":
		return convert(c.Convert)
	case "info":
		return info(c.Info, os.Stdout)
	case "history":
		return history(c.History, os.Stdout)
	}

	p := &Program{Config: c.Play}
	return p.Run()
}
