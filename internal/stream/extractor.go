package stream

import "strings"

// Extractor is the client side of the framing protocol. Feed it transport
// chunks in arrival order; it returns displayable text immediately and
// reassembles the metadata segment even when a marker or the JSON payload is
// split across chunk boundaries.
type Extractor struct {
	buf      strings.Builder
	inMeta   bool
	done     bool
	metadata string
}

// NewExtractor returns an empty extractor for one response stream.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Feed consumes one transport chunk and returns the text that is safe to
// display. Text that might be the start of an open marker is held back until
// the next chunk resolves it.
func (e *Extractor) Feed(chunk string) string {
	e.buf.WriteString(chunk)
	var out strings.Builder

	for {
		data := e.buf.String()

		if e.done {
			// Anything after the close marker is plain text.
			out.WriteString(data)
			e.buf.Reset()
			return out.String()
		}

		if e.inMeta {
			idx := strings.Index(data, CloseMarker)
			if idx < 0 {
				// Payload still incomplete; keep buffering.
				return out.String()
			}
			e.metadata = data[:idx]
			e.done = true
			e.buf.Reset()
			e.buf.WriteString(data[idx+len(CloseMarker):])
			continue
		}

		idx := strings.Index(data, OpenMarker)
		if idx >= 0 {
			out.WriteString(data[:idx])
			e.inMeta = true
			e.buf.Reset()
			e.buf.WriteString(data[idx+len(OpenMarker):])
			continue
		}

		// Hold back the longest tail that could still grow into the open
		// marker.
		keep := markerPrefixLen(data, OpenMarker)
		out.WriteString(data[:len(data)-keep])
		e.buf.Reset()
		e.buf.WriteString(data[len(data)-keep:])
		return out.String()
	}
}

// Metadata returns the raw JSON payload once the close marker has been seen.
func (e *Extractor) Metadata() (string, bool) {
	if !e.done {
		return "", false
	}
	return e.metadata, true
}

// Rest returns text held back as a potential marker prefix. Call when the
// stream ends without a metadata frame so no prose is lost.
func (e *Extractor) Rest() string {
	if e.inMeta || e.done {
		return ""
	}
	rest := e.buf.String()
	e.buf.Reset()
	return rest
}

// markerPrefixLen returns the length of the longest suffix of data that is a
// proper prefix of marker.
func markerPrefixLen(data, marker string) int {
	max := len(marker) - 1
	if max > len(data) {
		max = len(data)
	}
	for n := max; n > 0; n-- {
		if strings.HasSuffix(data, marker[:n]) {
			return n
		}
	}
	return 0
}
