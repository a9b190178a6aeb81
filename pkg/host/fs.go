// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// FileExt is the extension of files that back FSDocument elements.
const FileExt = ".log"

var (
	_ Document = (*FSDocument)(nil)
	_ Element  = (*fileElement)(nil)
)

// FSDocument is a Document whose elements are files in a directory.
// Element "foo" is backed by the file "<dir>/foo.log"; an element
// exists only if its file exists, FSDocument never creates files.
type FSDocument struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex // serializes writes to element files
}

// NewFSDocument returns a document that resolves elements in dir on fs.
func NewFSDocument(fs afero.Fs, dir string) *FSDocument {
	return &FSDocument{fs: fs, dir: dir}
}

// ElementByID implements the Document interface.
func (d *FSDocument) ElementByID(id string) (Element, bool) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, false
	}
	path := filepath.Join(d.dir, id+FileExt)
	fi, err := d.fs.Stat(path)
	if err != nil || fi.IsDir() {
		return nil, false
	}
	return &fileElement{doc: d, id: id, path: path}, true
}

// fileElement is an Element backed by a file.
type fileElement struct {
	doc  *FSDocument
	id   string
	path string
}

// ID implements the Element interface.
func (e *fileElement) ID() string { return e.id }

// AppendBlock implements the Element interface.
func (e *fileElement) AppendBlock(text, detail string) error {
	s := text + "\n"
	if detail != "" {
		s += detail + "\n"
	}
	return e.write(s)
}

// AppendText implements the Element interface.
func (e *fileElement) AppendText(text string) error {
	return e.write(text)
}

// ScrollToEnd implements the Element interface.
// For a file the end is always in view; it flushes the file instead.
func (e *fileElement) ScrollToEnd() error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	f, err := e.doc.fs.OpenFile(e.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", e.path, err)
	}
	return closeWith(f, f.Sync())
}

// Clear implements the Element interface.
func (e *fileElement) Clear() error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	f, err := e.doc.fs.OpenFile(e.path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("truncate %s: %w", e.path, err)
	}
	return closeWith(f, nil)
}

func (e *fileElement) write(s string) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	f, err := e.doc.fs.OpenFile(e.path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", e.path, err)
	}
	_, err = f.WriteString(s)
	return closeWith(f, err)
}

// closeWith closes f and returns err, or the close error if err is nil.
func closeWith(f afero.File, err error) error {
	if cerr := f.Close(); err == nil {
		return cerr
	}
	return err
}
