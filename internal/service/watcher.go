package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"lessonforge/pkg/logger"

	"github.com/fsnotify/fsnotify"
)

// ─────────────────────────────────────────────────────────────
// FileSync — reload documents edited outside the app
// ─────────────────────────────────────────────────────────────

// FileSync watches linked markdown files on disk and re-loads a
// document's content when its file is written externally (e.g. by an
// editor). Events are debounced: editors often write in bursts.
type FileSync struct {
	watcher  *fsnotify.Watcher
	docs     *DocumentService
	mu       sync.RWMutex
	watching map[string]string // absolute file path -> document ID
	timers   map[string]*time.Timer
	cancel   context.CancelFunc
}

// NewFileSync creates the watcher and starts its event loop.
func NewFileSync(docs *DocumentService) (*FileSync, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	f := &FileSync{
		watcher:  watcher,
		docs:     docs,
		watching: make(map[string]string),
		timers:   make(map[string]*time.Timer),
		cancel:   cancel,
	}
	go f.watchLoop(ctx)
	return f, nil
}

// WatchDocument links a document to a file and starts watching it.
// fsnotify watches directories, so the file's directory is added.
func (f *FileSync) WatchDocument(documentID, filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.watching[absPath] = documentID
	f.mu.Unlock()
	return f.watcher.Add(filepath.Dir(absPath))
}

// StopWatching unlinks a document from its file and cancels any reload
// still waiting in its debounce window.
func (f *FileSync) StopWatching(documentID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for path, id := range f.watching {
		if id == documentID {
			delete(f.watching, path)
			break
		}
	}
	if t, exists := f.timers[documentID]; exists {
		t.Stop()
		delete(f.timers, documentID)
	}
}

// Close stops the event loop and the underlying watcher.
func (f *FileSync) Close() error {
	f.cancel()
	return f.watcher.Close()
}

func (f *FileSync) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			absPath, _ := filepath.Abs(event.Name)
			f.mu.RLock()
			docID, watched := f.watching[absPath]
			f.mu.RUnlock()
			if !watched {
				continue
			}
			f.scheduleReload(ctx, docID, absPath)
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			logger.Sugar.Warnw("file sync watcher", "error", err)
		}
	}
}

// scheduleReload debounces per document and reloads after quiesce.
func (f *FileSync) scheduleReload(ctx context.Context, docID, absPath string) {
	f.mu.Lock()
	if t, exists := f.timers[docID]; exists {
		t.Stop()
	}
	f.timers[docID] = time.AfterFunc(500*time.Millisecond, func() {
		f.mu.Lock()
		delete(f.timers, docID)
		f.mu.Unlock()

		content, err := os.ReadFile(absPath)
		if err != nil {
			logger.Sugar.Warnw("file sync read", "path", absPath, "error", err)
			return
		}
		if f.docs.UpdateContent(ctx, docID, string(content)) {
			logger.Sugar.Infow("document reloaded from file", "document", docID, "path", absPath)
		}
	})
	f.mu.Unlock()
}
