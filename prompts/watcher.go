package prompts

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to prompt override files while the server runs, so
// operators can tune prompts without restarting.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchTemplates watches templatesDir and invokes onChange with the prompt key
// whenever a known override file is written or removed. Unrelated files in the
// directory are ignored.
func WatchTemplates(templatesDir string, onChange func(PromptKey)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(templatesDir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", templatesDir, err)
	}

	w := &Watcher{watcher: fsw, done: make(chan struct{})}

	go func() {
		defer close(w.done)
		for {
			select {
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
					continue
				}
				if key, ok := KeyForFilename(event.Name); ok {
					onChange(key)
				}
			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
				// Watch errors are non-fatal; prompts fall back to defaults.
			}
		}
	}()

	return w, nil
}

// Close stops the watcher and waits for the event loop to drain.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
