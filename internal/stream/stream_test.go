package stream

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type flushRecorder struct {
	strings.Builder
	flushes int
}

func (f *flushRecorder) Flush() { f.flushes++ }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriterTokenThenMetadata(t *testing.T) {
	var rec flushRecorder
	w := NewWriter(&rec)

	for _, tok := range []string{"Hello", ", ", "world"} {
		if err := w.WriteToken(tok); err != nil {
			t.Fatalf("WriteToken(%q) failed: %v", tok, err)
		}
	}
	if rec.flushes != 3 {
		t.Errorf("flushes = %d, want one per token", rec.flushes)
	}

	payload := map[string]interface{}{"timestamp": "now", "cards": []string{}}
	if err := w.WriteMetadata(payload); err != nil {
		t.Fatalf("WriteMetadata failed: %v", err)
	}
	if w.State() != StateClosed {
		t.Errorf("state = %v, want closed", w.State())
	}

	got := rec.String()
	if !strings.HasPrefix(got, "Hello, world"+OpenMarker) || !strings.HasSuffix(got, CloseMarker) {
		t.Errorf("framed output wrong: %q", got)
	}
}

func TestWriterNilPayloadEmitsEmptyObject(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)
	if err := w.WriteMetadata(nil); err != nil {
		t.Fatal(err)
	}
	if got := sb.String(); got != OpenMarker+"{}"+CloseMarker {
		t.Errorf("got %q, want empty object frame", got)
	}
}

func TestWriterRejectsWritesAfterClose(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)
	if err := w.WriteMetadata(nil); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteToken("late"); !errors.Is(err, ErrClosed) {
		t.Errorf("WriteToken after close = %v, want ErrClosed", err)
	}
	if err := w.WriteMetadata(nil); !errors.Is(err, ErrClosed) {
		t.Errorf("WriteMetadata after close = %v, want ErrClosed", err)
	}
}

func TestWriterFailedWriteIsTerminal(t *testing.T) {
	w := NewWriter(failingWriter{})
	if err := w.WriteToken("tok"); !errors.Is(err, ErrClosed) {
		t.Fatalf("failed write = %v, want ErrClosed", err)
	}
	if w.State() != StateClosed {
		t.Error("stream not closed after write failure")
	}
}

func TestWriterAbortSkipsMetadata(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)
	if err := w.WriteToken("partial"); err != nil {
		t.Fatal(err)
	}
	w.Abort()
	if err := w.WriteMetadata(nil); !errors.Is(err, ErrClosed) {
		t.Errorf("WriteMetadata after abort = %v, want ErrClosed", err)
	}
	if strings.Contains(sb.String(), OpenMarker) {
		t.Error("aborted stream must not carry a metadata frame")
	}
}

func TestExtractorRoundTripAllChunkSizes(t *testing.T) {
	text := "The answer involves __underscores__ and more."
	payload := `{"timestamp":"2025-05-01T00:00:00Z","cards":[{"type":"quick-wins","title":"T"}]}`

	var framed strings.Builder
	w := NewWriter(&framed)
	if err := w.WriteToken(text); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteMetadata(json.RawMessage(payload)); err != nil {
		t.Fatal(err)
	}
	full := framed.String()

	// Every chunk size splits the stream differently, including inside the
	// markers and inside the JSON payload.
	for size := 1; size <= len(full); size++ {
		e := NewExtractor()
		var got strings.Builder
		for start := 0; start < len(full); start += size {
			end := start + size
			if end > len(full) {
				end = len(full)
			}
			got.WriteString(e.Feed(full[start:end]))
		}
		got.WriteString(e.Rest())

		if got.String() != text {
			t.Fatalf("size %d: text = %q, want %q", size, got.String(), text)
		}
		meta, ok := e.Metadata()
		if !ok {
			t.Fatalf("size %d: metadata not extracted", size)
		}
		if meta != payload {
			t.Fatalf("size %d: metadata = %q, want %q", size, meta, payload)
		}
	}
}

func TestExtractorNoMetadataFrame(t *testing.T) {
	e := NewExtractor()
	out := e.Feed("stream ended early __MET")
	out += e.Rest()

	if out != "stream ended early __MET" {
		t.Errorf("held-back text lost: %q", out)
	}
	if _, ok := e.Metadata(); ok {
		t.Error("metadata reported for a stream without a frame")
	}
}

func TestExtractorTextAfterCloseMarker(t *testing.T) {
	e := NewExtractor()
	out := e.Feed("before" + OpenMarker + "{}" + CloseMarker + "after")
	if out != "beforeafter" {
		t.Errorf("text = %q, want %q", out, "beforeafter")
	}
	meta, ok := e.Metadata()
	if !ok || meta != "{}" {
		t.Errorf("metadata = %q ok=%v", meta, ok)
	}
}
