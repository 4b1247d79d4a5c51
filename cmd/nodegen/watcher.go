// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher notifies the changes of a set of files.
//
// Editors often replace a file instead of writing it, so the directories
// of the files are watched and the events are filtered by file name.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	changed chan string
	done    chan struct{}
	Errors  chan error

	sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

func newFileWatcher() (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &fileWatcher{
		watcher: watcher,
		changed: make(chan string),
		done:    make(chan struct{}),
		Errors:  make(chan error),
		files:   map[string]bool{},
		dirs:    map[string]bool{},
	}
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					close(w.changed)
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				name := filepath.Clean(event.Name)
				w.Lock()
				watched := w.files[name]
				w.Unlock()
				if !watched {
					continue
				}
				select {
				case w.changed <- name:
				case <-w.done:
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case w.Errors <- err:
				case <-w.done:
					return
				}
			}
		}
	}()
	return w, nil
}

// Changed returns the channel that receives the names of the changed files.
func (w *fileWatcher) Changed() <-chan string {
	return w.changed
}

// Watch adds the named files to the watched files.
func (w *fileWatcher) Watch(names ...string) error {
	w.Lock()
	defer w.Unlock()
	for _, name := range names {
		name = filepath.Clean(name)
		if w.files[name] {
			continue
		}
		dir := filepath.Dir(name)
		if !w.dirs[dir] {
			err := w.watcher.Add(dir)
			if err != nil {
				return err
			}
			w.dirs[dir] = true
		}
		w.files[name] = true
	}
	return nil
}

func (w *fileWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
