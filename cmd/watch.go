package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli"
)

// Delay between the last change of a file and its reload.
const watchDebounce = 100 * time.Millisecond

// sceneWatcher reports a scene file once it stopped changing. The parent
// directory is watched so that editors replacing the file are noticed.
type sceneWatcher struct {
	file    string
	Changes <-chan string

	changes chan string
	done    chan struct{}
	watcher *fsnotify.Watcher
}

func newSceneWatcher(file string) (*sceneWatcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	ch := make(chan string, 1)
	w := &sceneWatcher{
		file:    abs,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	go w.loop()
	return w, nil
}

func (w *sceneWatcher) Close() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *sceneWatcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.Now()
			}
		case now := <-ticker.C:
			if !pending.IsZero() && now.Sub(pending) >= watchDebounce {
				pending = time.Time{}
				select {
				case w.changes <- w.file:
				default:
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warningf("watching %s: %v", w.file, err)
		}
	}
}

// Reload a scene whenever it changes and print its statistics.
func WatchScene(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file")
	}
	sceneFile := ctx.Args().First()

	report := func() {
		sc, stats, err := loadScene(cfg, sceneFile)
		if err != nil {
			logger.Errorf("%v", err)
			return
		}
		fmt.Fprintf(ctx.App.Writer, "%s\n%s\n%s", sceneFile, stats.Table(), sc.Root().Statistics().Table())
	}

	w, err := newSceneWatcher(sceneFile)
	if err != nil {
		return err
	}
	defer w.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	report()
	logger.Noticef("watching %s for changes", sceneFile)
	for {
		select {
		case <-w.Changes:
			report()
		case <-interrupt:
			return nil
		}
	}
}
