package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"storefront-backend/internal/domains/cart/model"
)

// FileStore keeps the cart in a single JSON file on the local disk. When
// another process writes the same file, fsnotify events are parsed and fanned
// out to subscribers; this instance's own writes are suppressed by comparing
// payload bytes.
type FileStore struct {
	path   string
	maxAge time.Duration

	mu          sync.Mutex
	lastWritten []byte
	subs        map[int]func(model.CartState)
	nextSubID   int

	watcher *fsnotify.Watcher
	done    chan struct{}
}

func NewFileStore(path string, maxAge time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileStore{
		path:   path,
		maxAge: maxAge,
		subs:   make(map[int]func(model.CartState)),
	}, nil
}

func (f *FileStore) Save(_ context.Context, state model.CartState) {
	payload, err := Encode(state, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("cart file save: encode failed")
		return
	}

	f.mu.Lock()
	f.lastWritten = payload
	f.mu.Unlock()

	// Temp file + rename keeps the slot whole: readers never observe a
	// partially written cart.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		log.Error().Err(err).Str("path", f.path).Msg("cart file save failed")
		return
	}
	if err := os.Rename(tmp, f.path); err != nil {
		log.Error().Err(err).Str("path", f.path).Msg("cart file save failed")
	}
}

func (f *FileStore) Load(_ context.Context) model.CartState {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", f.path).Msg("cart file load failed, starting empty")
		}
		return model.NewCartState()
	}

	state, err := Decode(raw, time.Now(), f.maxAge)
	if err != nil {
		log.Warn().Err(err).Str("path", f.path).Msg("saved cart discarded")
	}
	return state
}

func (f *FileStore) Subscribe(cb func(model.CartState)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watcher == nil {
		if err := f.startWatcher(); err != nil {
			return nil, err
		}
	}

	id := f.nextSubID
	f.nextSubID++
	f.subs[id] = cb

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}, nil
}

// startWatcher watches the directory rather than the file itself: the atomic
// rename in Save replaces the inode, which would silently detach a file-level
// watch. Caller holds f.mu.
func (f *FileStore) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		watcher.Close()
		return err
	}

	f.watcher = watcher
	f.done = make(chan struct{})

	go func() {
		for {
			select {
			case <-f.done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(f.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				f.handleExternalWrite()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("cart file watcher error")
			}
		}
	}()

	return nil
}

func (f *FileStore) handleExternalWrite() {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return
	}

	f.mu.Lock()
	own := bytes.Equal(raw, f.lastWritten)
	subs := make([]func(model.CartState), 0, len(f.subs))
	for _, cb := range f.subs {
		subs = append(subs, cb)
	}
	f.mu.Unlock()

	if own {
		return
	}

	state, err := Decode(raw, time.Now(), f.maxAge)
	if err != nil {
		// Malformed external writes are ignored, not adopted
		return
	}
	for _, cb := range subs {
		cb(state)
	}
}

func (f *FileStore) SaveAppliedCoupon(_ context.Context, code string) {
	if err := os.WriteFile(f.couponPath(), []byte(code), 0o644); err != nil {
		log.Warn().Err(err).Msg("applied coupon save failed")
	}
}

func (f *FileStore) LoadAppliedCoupon(_ context.Context) string {
	raw, err := os.ReadFile(f.couponPath())
	if err != nil {
		return ""
	}
	return string(bytes.TrimSpace(raw))
}

func (f *FileStore) ClearAppliedCoupon(_ context.Context) {
	if err := os.Remove(f.couponPath()); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("applied coupon clear failed")
	}
}

func (f *FileStore) couponPath() string {
	return f.path + ".coupon"
}

func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watcher != nil {
		close(f.done)
		err := f.watcher.Close()
		f.watcher = nil
		return err
	}
	return nil
}
