package index

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"loomii/internal/corpus"
	"loomii/internal/logging"
)

// CorpusWatcher watches the corpus file for changes and rebuilds the index
// when the file settles. Rapid editor saves are debounced.
type CorpusWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	index       *Index
	corpusPath  string
	debounceDur time.Duration
	pending     time.Time
	hasPending  bool
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewCorpusWatcher creates a watcher that rebuilds ix from corpusPath.
func NewCorpusWatcher(corpusPath string, ix *Index) (*CorpusWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &CorpusWatcher{
		watcher:     watcher,
		index:       ix,
		corpusPath:  corpusPath,
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine.
// Watches the parent directory because editors replace files on save.
func (w *CorpusWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.corpusPath)); err != nil {
		return err
	}
	logging.Index("corpus watcher: watching %s", w.corpusPath)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *CorpusWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.watcher.Close()
	logging.Index("corpus watcher: stopped")
}

func (w *CorpusWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.corpusPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = time.Now()
			w.hasPending = true
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryIndex).Error("corpus watcher error: %v", err)

		case <-ticker.C:
			w.maybeRebuild(ctx)
		}
	}
}

func (w *CorpusWatcher) maybeRebuild(ctx context.Context) {
	w.mu.Lock()
	if !w.hasPending || time.Since(w.pending) < w.debounceDur {
		w.mu.Unlock()
		return
	}
	w.hasPending = false
	w.mu.Unlock()

	insights, err := corpus.Load(w.corpusPath)
	if err != nil {
		// Keep serving the previous snapshot on a bad edit.
		logging.Get(logging.CategoryIndex).Error("corpus reload failed, keeping previous index: %v", err)
		return
	}
	if err := w.index.Build(ctx, insights); err != nil {
		logging.Get(logging.CategoryIndex).Error("index rebuild failed, keeping previous index: %v", err)
		return
	}
	logging.Index("corpus watcher: index rebuilt from %s (%d insights)", w.corpusPath, len(insights))
}
