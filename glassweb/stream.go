// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package glassweb

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// stream writes the parts of a never ending multipart response.
//
// mime/multipart only writes a boundary when the next part starts, browsers
// wait for it before showing a picture. stream closes each part right away.
type stream struct {
	w        io.Writer
	boundary string
	mimeType string
	opened   bool
}

func newStream(w io.Writer, mimeType string) *stream {
	var b [30]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		panic(err)
	}
	return &stream{w: w, boundary: hex.EncodeToString(b[:]), mimeType: mimeType}
}

// send writes one part holding body.
func (s *stream) send(body []byte) error {
	if !s.opened {
		if _, err := fmt.Fprintf(s.w, "--%s\r\n", s.boundary); err != nil {
			return err
		}
		s.opened = true
	}
	if _, err := fmt.Fprintf(s.w, "Content-Type: %s\r\nContent-Length: %d\r\n\r\n", s.mimeType, len(body)); err != nil {
		return err
	}
	if _, err := s.w.Write(body); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.w, "\r\n--%s\r\n", s.boundary)
	return err
}
