// Package stream implements the hybrid response framing: generated text
// flows through verbatim, then one JSON metadata segment is appended between
// fixed markers. The receiving side reassembles the segment across arbitrary
// transport chunk boundaries.
package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"loomii/internal/logging"
)

// Marker tokens delimiting the metadata segment. Double-underscore tokens do
// not occur in model prose in practice; see the extractor for the buffering
// the client side needs.
const (
	OpenMarker  = "__METADATA__"
	CloseMarker = "__END_METADATA__"
)

// ErrClosed is returned for writes after the stream reached its terminal
// state, including writes that failed because the client went away.
var ErrClosed = errors.New("stream closed")

// State of a response stream.
type State int

const (
	StateText State = iota
	StateMetadata
	StateClosed
)

// Flusher is implemented by transports that buffer writes.
type Flusher interface {
	Flush()
}

// Writer frames one response: text tokens, then a metadata segment, then
// closed. Each token is flushed as soon as it is written; low latency is the
// point of the protocol.
type Writer struct {
	w       io.Writer
	flusher Flusher
	state   State
}

// NewWriter wraps the transport writer. If w implements Flusher (or
// http.Flusher via the adapter), every token write is flushed through.
func NewWriter(w io.Writer) *Writer {
	sw := &Writer{w: w}
	if f, ok := w.(Flusher); ok {
		sw.flusher = f
	}
	return sw
}

// State returns the writer's current state.
func (sw *Writer) State() State { return sw.state }

// WriteToken forwards one generated token. Valid only while streaming text.
func (sw *Writer) WriteToken(token string) error {
	if sw.state != StateText {
		return ErrClosed
	}
	if token == "" {
		return nil
	}
	if _, err := io.WriteString(sw.w, token); err != nil {
		// A failed write means the client is gone. Terminal, no retry.
		sw.state = StateClosed
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	sw.flush()
	return nil
}

// WriteMetadata emits the framed metadata segment and closes the stream. A
// nil payload still produces open+{}+close so clients never need a separate
// "no metadata" path.
func (sw *Writer) WriteMetadata(payload interface{}) error {
	if sw.state != StateText {
		return ErrClosed
	}
	sw.state = StateMetadata

	body := []byte("{}")
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			logging.CardsWarn("metadata payload not serializable, sending empty object: %v", err)
		} else {
			body = encoded
		}
	}

	frame := OpenMarker + string(body) + CloseMarker
	if _, err := io.WriteString(sw.w, frame); err != nil {
		sw.state = StateClosed
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	sw.flush()
	sw.state = StateClosed
	return nil
}

// Abort closes the stream without a metadata frame. Used when the completion
// service fails mid-stream: the early close is the documented signal.
func (sw *Writer) Abort() {
	sw.state = StateClosed
}

func (sw *Writer) flush() {
	if sw.flusher != nil {
		sw.flusher.Flush()
	}
}
