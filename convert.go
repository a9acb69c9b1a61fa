package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"git.lost.host/meutraa/eotm/internal/config"
	"git.lost.host/meutraa/eotm/internal/parser"
	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
)

// convert imports beatmaps in parallel and writes each as a json chart
func convert(c config.Convert) error {
	workers := c.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	var mu sync.Mutex
	failed := 0
	wg := sizedwaitgroup.New(workers)
	for _, file := range c.Beatmaps {
		wg.Add()
		go func(file string) {
			defer wg.Done()
			out, err := convertOne(file, c.Out)
			if nil != err {
				log.Println(err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			log.Printf("%v -> %v\n", file, out)
		}(file)
	}
	wg.Wait()

	if failed > 0 {
		return errors.Errorf("%d of %d beatmaps failed to convert", failed, len(c.Beatmaps))
	}
	return nil
}

func convertOne(file, dir string) (string, error) {
	chart, err := parser.Parse(file)
	if nil != err {
		return "", errors.Wrapf(err, "unable to convert %s", file)
	}
	data, err := json.MarshalIndent(chart, "", "\t")
	if nil != err {
		return "", errors.Wrapf(err, "unable to encode %s", file)
	}

	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + ".json"
	out := filepath.Join(dir, name)
	if err := os.WriteFile(out, data, 0o644); nil != err {
		return "", errors.Wrapf(err, "unable to write %s", out)
	}
	return out, nil
}
