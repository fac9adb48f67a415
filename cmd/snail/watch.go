package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/fsnotify/fsnotify"

	"snail/interpreter-go/pkg/driver"
)

var hostLog = log.New(os.Stderr, "snail: ", log.LstdFlags)

// watchSettle is how long a burst of write events must go quiet before the
// program is rerun, so a half-written file is not read.
const watchSettle = 10 * time.Millisecond

func runWatch(args []string, opts cliOptions) int {
	src, ok := loadForInspection("watch", args)
	if !ok {
		return 1
	}
	path := src.Path

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "snail watch: %v\n", err)
		return 1
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		fmt.Fprintf(os.Stderr, "snail watch: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hostLog.Printf("watching %s", displayPath(path))
	executeSource(src, opts)
	watchLoop(ctx, watcher.Events, watcher.Errors, watchSettle, func() {
		// editors replace the file on save, which drops the watch
		if err := watcher.Add(path); err != nil {
			hostLog.Printf("rewatch %s: %v", displayPath(path), err)
		}
		next, err := driver.LoadSource("", path)
		if err != nil {
			hostLog.Printf("reload %s: %v", displayPath(path), err)
			return
		}
		hostLog.Printf("%s changed, rerunning", displayPath(path))
		executeSource(next, opts)
	})
	return 0
}

// watchLoop calls rerun once per burst of events. It returns when ctx is done
// or the event channel closes.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, settle time.Duration, rerun func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			hostLog.Printf("watch error: %v", err)
		case _, ok := <-events:
			if !ok {
				return
			}
			if !drainEvents(ctx, events, settle) {
				return
			}
			rerun()
		}
	}
}

// drainEvents swallows events until none arrive for settle. It reports false
// when the loop should stop.
func drainEvents(ctx context.Context, events <-chan fsnotify.Event, settle time.Duration) bool {
	timer := time.NewTimer(settle)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-events:
			if !ok {
				return false
			}
			timer.Reset(settle)
		case <-timer.C:
			return true
		}
	}
}
