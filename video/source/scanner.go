package source

import (
	"bytes"
	"io"
)

// JPEG stream markers.
var (
	jpegSOI = []byte{0xff, 0xd8}
	jpegEOI = []byte{0xff, 0xd9}
)

// FrameScanner splits a raw MJPEG byte stream into individual JPEG images.
// Bytes outside start/end marker pairs (partial frames after a process
// restart, stray container bytes) are discarded. Markers may arrive split
// across reads.
type FrameScanner struct {
	r     io.Reader
	buf   []byte
	chunk []byte
	err   error
}

func NewFrameScanner(r io.Reader) *FrameScanner {
	return &FrameScanner{
		r:     r,
		chunk: make([]byte, 64*1024),
	}
}

// Next returns the next complete JPEG frame. The returned slice is a copy
// owned by the caller. Once the underlying reader fails, the remaining
// buffered frames are drained and then the reader's error is returned.
func (s *FrameScanner) Next() ([]byte, error) {
	for {
		if frame := s.extract(); frame != nil {
			return frame, nil
		}
		if s.err != nil {
			return nil, s.err
		}
		n, err := s.r.Read(s.chunk)
		if n > 0 {
			s.buf = append(s.buf, s.chunk[:n]...)
		}
		if err != nil {
			s.err = err
		}
	}
}

// extract pops the first complete frame out of the buffer, trimming any
// leading bytes that precede the start marker.
func (s *FrameScanner) extract() []byte {
	i := bytes.Index(s.buf, jpegSOI)
	if i < 0 {
		// No start marker yet. Keep the final byte in case a marker is
		// split across the read boundary.
		if n := len(s.buf); n > 1 {
			s.buf = s.buf[n-1:]
		}
		return nil
	}
	if i > 0 {
		s.buf = s.buf[i:]
	}
	j := bytes.Index(s.buf[len(jpegSOI):], jpegEOI)
	if j < 0 {
		return nil
	}
	end := len(jpegSOI) + j + len(jpegEOI)
	frame := make([]byte, end)
	copy(frame, s.buf[:end])
	s.buf = s.buf[end:]
	return frame
}
