package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher monitors the input table using filesystem events or polling.
type FileWatcher struct {
	watcher      *fsnotify.Watcher
	debouncer    *Debouncer
	path         string
	parentDir    string
	pollingMode  bool
	lastModTime  time.Time
	lastExists   bool
	lastSize     int64
	pollInterval time.Duration
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	// Log deduplication: editors fire several writes per save
	lastLogTime     time.Time
	logDedupeWindow time.Duration
	logMu           sync.Mutex
}

// NewFileWatcher creates a watcher for path. onChanged is called when the
// file changes, after debouncing. Falls back to polling if fsnotify fails,
// unless FOSSIL_WATCHER_FALLBACK is false.
func NewFileWatcher(path string, debounce, pollInterval time.Duration, onChanged func()) (*FileWatcher, error) {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	fw := &FileWatcher{
		path:            path,
		parentDir:       filepath.Dir(path),
		debouncer:       NewDebouncer(debounce, onChanged),
		pollInterval:    pollInterval,
		logDedupeWindow: 500 * time.Millisecond,
	}

	if stat, err := os.Stat(path); err == nil {
		fw.lastModTime = stat.ModTime()
		fw.lastExists = true
		fw.lastSize = stat.Size()
	}

	fallbackEnv := os.Getenv("FOSSIL_WATCHER_FALLBACK")
	fallbackDisabled := fallbackEnv == "false" || fallbackEnv == "0"

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		if fallbackDisabled {
			return nil, fmt.Errorf("fsnotify.NewWatcher() failed and FOSSIL_WATCHER_FALLBACK is disabled: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: fsnotify.NewWatcher() failed (%v), falling back to polling mode (%v interval)\n", err, fw.pollInterval)
		fw.pollingMode = true
		return fw, nil
	}
	fw.watcher = watcher

	// The parent directory catches creates and atomic replaces
	if err := watcher.Add(fw.parentDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to watch directory %s: %v\n", fw.parentDir, err)
	}

	if err := watcher.Add(path); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Info: %s doesn't exist yet, watching %s\n", path, fw.parentDir)
		} else {
			_ = watcher.Close()
			if fallbackDisabled {
				return nil, fmt.Errorf("failed to watch %s and FOSSIL_WATCHER_FALLBACK is disabled: %w", path, err)
			}
			fmt.Fprintf(os.Stderr, "Warning: failed to watch %s (%v), falling back to polling mode (%v interval)\n", path, err, fw.pollInterval)
			fw.pollingMode = true
			fw.watcher = nil
		}
	}

	return fw, nil
}

func (fw *FileWatcher) shouldLogChange() bool {
	fw.logMu.Lock()
	defer fw.logMu.Unlock()
	now := time.Now()
	if now.Sub(fw.lastLogTime) >= fw.logDedupeWindow {
		fw.lastLogTime = now
		return true
	}
	return false
}

// Start begins monitoring in a background goroutine until ctx is canceled.
// Should only be called once per FileWatcher.
func (fw *FileWatcher) Start(ctx context.Context, log runLogger) {
	ctx, cancel := context.WithCancel(ctx)
	fw.cancel = cancel

	if fw.pollingMode {
		fw.startPolling(ctx, log)
		return
	}

	fw.wg.Add(1)
	go func() {
		defer fw.wg.Done()
		base := filepath.Base(fw.path)

		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}

				// Created or replaced in the parent directory
				if event.Name == filepath.Join(fw.parentDir, base) && event.Op&fsnotify.Create != 0 {
					log.log("input created: %s", event.Name)
					_ = fw.watcher.Add(fw.path)
					fw.debouncer.Trigger()
					continue
				}

				if event.Name == fw.path && event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod) != 0 {
					if fw.shouldLogChange() {
						log.log("input change detected: %s", event.Name)
					}
					fw.debouncer.Trigger()
					continue
				}

				if event.Name == fw.path && event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
					log.log("input removed or renamed, re-establishing watch")
					_ = fw.watcher.Remove(fw.path)
					fw.reEstablishWatch(ctx, log)
					continue
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				log.warn("watcher error: %v", err)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// reEstablishWatch re-adds the file watch with exponential backoff.
func (fw *FileWatcher) reEstablishWatch(ctx context.Context, log runLogger) {
	delays := []time.Duration{50 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}

	for _, delay := range delays {
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
			if err := fw.watcher.Add(fw.path); err != nil {
				if os.IsNotExist(err) {
					log.log("input still missing after %v, retrying...", delay)
					continue
				}
				log.warn("failed to re-watch input after %v: %v", delay, err)
				return
			}
			log.log("re-established input watch after %v", delay)
			fw.debouncer.Trigger()
			return
		}
	}
	log.warn("failed to re-establish input watch after all retries; waiting for it to reappear")
}

// startPolling checks size and mtime on every tick.
func (fw *FileWatcher) startPolling(ctx context.Context, log runLogger) {
	log.log("starting polling mode with %v interval", fw.pollInterval)
	ticker := time.NewTicker(fw.pollInterval)
	fw.wg.Add(1)
	go func() {
		defer fw.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if fw.poll(log) {
					fw.debouncer.Trigger()
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// poll updates the remembered file state and reports whether it changed.
func (fw *FileWatcher) poll(log runLogger) bool {
	stat, err := os.Stat(fw.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.warn("polling error: %v", err)
			return false
		}
		if fw.lastExists {
			fw.lastExists = false
			fw.lastModTime = time.Time{}
			fw.lastSize = 0
			log.log("input missing (polling): %s", fw.path)
			return true
		}
		return false
	}

	if !fw.lastExists {
		fw.lastExists = true
		fw.lastModTime = stat.ModTime()
		fw.lastSize = stat.Size()
		log.log("input appeared (polling): %s", fw.path)
		return true
	}
	if !stat.ModTime().Equal(fw.lastModTime) || stat.Size() != fw.lastSize {
		fw.lastModTime = stat.ModTime()
		fw.lastSize = stat.Size()
		log.log("input change detected (polling): %s", fw.path)
		return true
	}
	return false
}

// Close stops the watcher and releases resources.
func (fw *FileWatcher) Close() error {
	if fw.cancel != nil {
		fw.cancel()
	}
	fw.wg.Wait()
	fw.debouncer.Cancel()
	if fw.watcher != nil {
		return fw.watcher.Close()
	}
	return nil
}
