package themecss

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-parses a stylesheet when it changes on disk and publishes the
// result to a Store. A failed re-parse leaves the published Rules in place.
type Watcher struct {
	path     string
	tags     []string
	store    *Store
	parser   *Parser
	log      *zap.Logger
	onReload func(*Rules)
}

// NewWatcher returns a watcher for the stylesheet at path compiled with the
// given context tags. A nil parser uses NewParser(log).
func NewWatcher(path string, tags []string, store *Store, parser *Parser, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	if parser == nil {
		parser = NewParser(log)
	}
	return &Watcher{
		path:   path,
		tags:   append([]string(nil), tags...),
		store:  store,
		parser: parser,
		log:    log.Named("watcher"),
	}
}

// OnReload registers fn to be called with every newly published Rules.
// It runs on the watcher goroutine.
func (w *Watcher) OnReload(fn func(*Rules)) {
	w.onReload = fn
}

// Reload parses the stylesheet and publishes it on success.
func (w *Watcher) Reload() error {
	rules, err := w.parser.ParseFile(w.path, w.tags)
	if err != nil {
		return err
	}
	w.store.Publish(rules)
	if w.onReload != nil {
		w.onReload(rules)
	}
	return nil
}

// Run watches the stylesheet's directory until ctx is done and reloads on
// every write or create of the stylesheet file.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve stylesheet path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.log.Debug("Watching stylesheet", zap.String("path", abs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := w.Reload(); err != nil {
				w.log.Error("Stylesheet reload failed, keeping previous rules", zap.Error(err))
				continue
			}
			w.log.Info("Stylesheet reloaded", zap.String("path", abs))
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Watch error", zap.Error(err))
		}
	}
}
