package engine

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/soilution/fieldview/internal/responsive/compensation"
	"go.uber.org/zap"
)

// Watcher reloads a catalog file whenever it changes on disk. The parent
// directory is watched so editors that replace the file are picked up.
type Watcher struct {
	path     string
	fs       *fsnotify.Watcher
	catalogs chan compensation.Catalog
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
	logger   *zap.Logger
}

// WatchCatalog starts watching path.
func WatchCatalog(path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fs:       fw,
		catalogs: make(chan compensation.Catalog, 1),
		done:     make(chan struct{}),
		logger:   logger,
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Catalogs delivers every successfully parsed version of the file. Only
// the newest unread version is kept.
func (w *Watcher) Catalogs() <-chan compensation.Catalog {
	return w.catalogs
}

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			cat, err := compensation.LoadCatalog(w.path)
			if err != nil {
				w.logger.Warn("ignoring catalog change", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.publish(cat)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("catalog watcher dropped events", zap.Error(err))
				continue
			}
			w.logger.Error("catalog watcher", zap.Error(err))
		}
	}
}

func (w *Watcher) publish(cat compensation.Catalog) {
	for {
		select {
		case w.catalogs <- cat:
			w.logger.Info("catalog changed", zap.String("path", w.path))
			return
		case <-w.done:
			return
		default:
		}
		// Drop the stale unread version.
		select {
		case <-w.catalogs:
		default:
		}
	}
}
