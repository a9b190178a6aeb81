// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host models the output surfaces supplied by the host UI layer.
// An Element is an append-capable, scrollable text surface addressed by an
// identifier; a Document resolves identifiers to elements. The event logger
// and the call recorder only ever talk to these interfaces, rendering is the
// host's business.
package host

import (
	"strings"
	"sync"
)

// Element is a text surface that can be appended to.
type Element interface {
	// ID returns the identifier the element was resolved by.
	ID() string

	// AppendBlock appends a block holding text as plain content. When detail
	// is not empty it is appended as a nested, preformatted part of the same
	// block, immediately after text.
	AppendBlock(text, detail string) error

	// AppendText appends raw text to the element.
	AppendText(text string) error

	// ScrollToEnd requests the element's viewport to be moved to its end.
	ScrollToEnd() error

	// Clear removes all visible contents of the element.
	Clear() error
}

// Document resolves element identifiers.
type Document interface {
	// ElementByID returns the element with the given identifier.
	// The boolean result reports whether such an element exists.
	ElementByID(id string) (Element, bool)
}

var (
	_ Document = (*MemDocument)(nil)
	_ Element  = (*Buffer)(nil)
)

// Block is a single block appended to a Buffer.
type Block struct {
	Text   string
	Detail string
}

// MemDocument is an in-memory Document. Elements have
// to be created with Create before they can be resolved.
type MemDocument struct {
	mu       sync.Mutex
	elements map[string]*Buffer
}

// NewDocument returns an empty in-memory document.
func NewDocument() *MemDocument {
	return &MemDocument{elements: make(map[string]*Buffer)}
}

// Create adds a new empty element with the given identifier, replacing
// any existing element with the same identifier, and returns it.
func (d *MemDocument) Create(id string) *Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()

	b := &Buffer{id: id}
	d.elements[id] = b
	return b
}

// Remove detaches the element with the given identifier from the document.
func (d *MemDocument) Remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.elements, id)
}

// ElementByID implements the Document interface.
func (d *MemDocument) ElementByID(id string) (Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.elements[id]
	if !ok {
		return nil, false
	}
	return b, true
}

// Buffer is an in-memory Element. It keeps appended blocks and text
// separately so that tests can inspect both.
type Buffer struct {
	id string

	mu      sync.Mutex
	blocks  []Block
	text    strings.Builder
	scrolls int
}

// ID implements the Element interface.
func (b *Buffer) ID() string { return b.id }

// AppendBlock implements the Element interface.
func (b *Buffer) AppendBlock(text, detail string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.blocks = append(b.blocks, Block{Text: text, Detail: detail})
	return nil
}

// AppendText implements the Element interface.
func (b *Buffer) AppendText(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text.WriteString(text)
	return nil
}

// ScrollToEnd implements the Element interface.
func (b *Buffer) ScrollToEnd() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.scrolls++
	return nil
}

// Clear implements the Element interface.
func (b *Buffer) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.blocks = nil
	b.text.Reset()
	return nil
}

// Blocks returns a copy of all appended blocks.
func (b *Buffer) Blocks() []Block {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Block(nil), b.blocks...)
}

// Text returns the accumulated raw text.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.text.String()
}

// Scrolls returns how many times ScrollToEnd was requested.
func (b *Buffer) Scrolls() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.scrolls
}
