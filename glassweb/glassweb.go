// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package glassweb mirrors a HT1621 glass to web browsers.
//
// A Mirror is an http.Handler streaming a picture of the glass as
// "multipart/x-mixed-replace" (MJPEG, as used by IP cameras). A new picture
// is sent to every client each time Update is called. Pictures are PNG by
// default, "?format=jpeg" asks for JPEG.
package glassweb

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"mime"
	"net/http"
	"sync"

	"github.com/GermanBionicSystems/segmentlcd/ht1621"
	"github.com/GermanBionicSystems/segmentlcd/lcdimage"
)

// Format is the encoding of the pictures sent.
type Format int

const (
	PNG Format = iota
	JPEG
)

func (f Format) String() string {
	if f == JPEG {
		return "JPEG"
	}
	return "PNG"
}

func (f Format) mimeType() string {
	if f == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// ParseFormat returns the Format named by s, as used in the "format" URL
// parameter.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	}
	return PNG, fmt.Errorf("glassweb: unknown image format %q", s)
}

// Opts holds the options of a Mirror.
type Opts struct {
	// Image is passed to lcdimage. May be nil.
	Image *lcdimage.Opts
	// Format is used when the client does not ask for one.
	Format Format
}

// Mirror is a web view of one glass.
type Mirror struct {
	opts Opts

	mu      sync.Mutex
	img     image.Image
	encoded map[Format][]byte
	clients map[*client]struct{}
}

type client struct {
	update chan struct{}
	done   chan struct{}
}

// New returns a Mirror showing a blank glass.
func New(opts *Opts) (*Mirror, error) {
	m := &Mirror{
		encoded: map[Format][]byte{},
		clients: map[*client]struct{}{},
	}
	if opts != nil {
		m.opts = *opts
	}
	if err := m.Update(ht1621.Buffer{}); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mirror) String() string {
	return "GlassWeb"
}

// Halt implements conn.Resource. It ends the running client requests.
func (m *Mirror) Halt() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for c := range m.clients {
		select {
		case c.done <- struct{}{}:
		default:
		}
	}
	return nil
}

// Update redraws the glass from the display RAM b and pushes it to the
// clients.
func (m *Mirror) Update(b ht1621.Buffer) error {
	img, err := lcdimage.Render(b, m.opts.Image)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.img = img
	m.encoded = map[Format][]byte{}
	for c := range m.clients {
		select {
		case c.update <- struct{}{}:
		default:
		}
	}
	return nil
}

// picture returns the current glass encoded as f. Encodings are cached until
// the next Update.
func (m *Mirror) picture(f Format) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.encoded[f]; ok {
		return p, nil
	}
	var buf bytes.Buffer
	var err error
	if f == JPEG {
		err = jpeg.Encode(&buf, m.img, &jpeg.Options{Quality: 90})
	} else {
		err = png.Encode(&buf, m.img)
	}
	if err != nil {
		return nil, err
	}
	m.encoded[f] = buf.Bytes()
	return m.encoded[f], nil
}

// ServeHTTP implements http.Handler. Only GET is supported.
func (m *Mirror) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}
	f := m.opts.Format
	if v := r.URL.Query().Get("format"); v != "" {
		var err error
		if f, err = ParseFormat(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	c := &client{update: make(chan struct{}, 1), done: make(chan struct{}, 1)}
	m.mu.Lock()
	m.clients[c] = struct{}{}
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		delete(m.clients, c)
		m.mu.Unlock()
	}()

	s := newStream(w, f.mimeType())
	w.Header().Set("Content-Type", mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{"boundary": s.boundary}))
	for {
		p, err := m.picture(f)
		if err != nil {
			log.Printf("glassweb: %v", err)
			return
		}
		// A client going away shows up as a write error, nothing to report.
		if err := s.send(p); err != nil {
			return
		}
		if fl, ok := w.(http.Flusher); ok {
			fl.Flush()
		}
		select {
		case <-c.update:
		case <-c.done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

var _ http.Handler = &Mirror{}
