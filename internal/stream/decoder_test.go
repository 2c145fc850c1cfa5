package stream

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// chunkReader delivers the underlying data in fixed-size chunks to exercise
// arbitrary chunk boundaries.
type chunkReader struct {
	data []byte
	size int
	pos  int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	n := c.size
	if n > len(p) {
		n = len(p)
	}
	if c.pos+n > len(c.data) {
		n = len(c.data) - c.pos
	}
	copy(p, c.data[c.pos:c.pos+n])
	c.pos += n
	return n, nil
}

func frameLine(content string) string {
	return `data: {"choices":[{"delta":{"content":"` + content + `"}}]}` + "\n"
}

func drain(t *testing.T, d *Decoder) []string {
	t.Helper()
	var got []string
	for {
		f, err := d.Next()
		if err == io.EOF {
			return got
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, f.Delta())
	}
}

func TestDecoderBasicStream(t *testing.T) {
	input := ": heartbeat\n\n" +
		frameLine("Hel") +
		frameLine("lo ") +
		"event: noise\n" +
		frameLine("there") +
		"data: [DONE]\n"

	d := NewDecoder(strings.NewReader(input))
	got := drain(t, d)

	want := []string{"Hel", "lo ", "there"}
	if len(got) != len(want) {
		t.Fatalf("got %d frames, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDecoderChunkingInvariance(t *testing.T) {
	input := ": keepalive\n" +
		frameLine("The ") +
		frameLine("quick ") +
		frameLine("brown fox") +
		"\r\n" +
		frameLine(" jumps") +
		"data: [DONE]\n"

	reference := drain(t, NewDecoder(strings.NewReader(input)))
	if len(reference) != 4 {
		t.Fatalf("reference stream decoded to %d frames: %v", len(reference), reference)
	}

	for size := 1; size <= len(input); size++ {
		d := NewDecoder(&chunkReader{data: []byte(input), size: size})
		got := drain(t, d)
		if len(got) != len(reference) {
			t.Fatalf("chunk size %d: got %d frames, want %d", size, len(got), len(reference))
		}
		for i := range reference {
			if got[i] != reference[i] {
				t.Fatalf("chunk size %d: frame %d = %q, want %q", size, i, got[i], reference[i])
			}
		}
	}
}

func TestDecoderCRLFLines(t *testing.T) {
	input := "data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}\r\n" +
		"data: [DONE]\r\n"
	got := drain(t, NewDecoder(strings.NewReader(input)))
	if len(got) != 1 || got[0] != "hi" {
		t.Fatalf("got %v, want [hi]", got)
	}
}

func TestDecoderSentinelStopsEmission(t *testing.T) {
	input := frameLine("before") +
		"data: [DONE]\n" +
		frameLine("after")

	d := NewDecoder(strings.NewReader(input))
	got := drain(t, d)
	if len(got) != 1 || got[0] != "before" {
		t.Fatalf("got %v, want only the frame before the sentinel", got)
	}

	// Next stays terminal after the sentinel.
	if _, err := d.Next(); err != io.EOF {
		t.Fatalf("Next after sentinel = %v, want io.EOF", err)
	}
}

func TestDecoderMalformedFrameDropped(t *testing.T) {
	input := frameLine("ok") +
		"data: {not json\n" +
		frameLine("also ok") +
		"data: [DONE]\n"

	// The malformed line is held and retried while bytes keep arriving,
	// then dropped silently when the stream ends. Deliver byte-by-byte so
	// the retry path is exercised too.
	for _, size := range []int{1, 7, len(input)} {
		d := NewDecoder(&chunkReader{data: []byte(input), size: size})
		got := drain(t, d)
		if len(got) != 2 || got[0] != "ok" || got[1] != "also ok" {
			t.Fatalf("chunk size %d: got %v, want [ok, also ok]", size, got)
		}
	}
}

func TestDecoderPayloadSplitAcrossChunks(t *testing.T) {
	// No newline until the record is complete: the buffered prefix must
	// wait for the rest instead of being dropped.
	first := `data: {"choices":[{"delta":{"con`
	second := `tent":"joined"}}]}` + "\n" + "data: [DONE]\n"

	d := NewDecoder(io.MultiReader(strings.NewReader(first), strings.NewReader(second)))
	got := drain(t, d)
	if len(got) != 1 || got[0] != "joined" {
		t.Fatalf("got %v, want [joined]", got)
	}
}

func TestDecoderStreamClosureWithoutSentinel(t *testing.T) {
	input := frameLine("partial")
	d := NewDecoder(strings.NewReader(input))
	got := drain(t, d)
	if len(got) != 1 || got[0] != "partial" {
		t.Fatalf("got %v, want [partial]", got)
	}
}

type failingReader struct {
	data []byte
	sent bool
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.sent {
		f.sent = true
		n := copy(p, f.data)
		return n, nil
	}
	return 0, f.err
}

func TestDecoderReadFailureIsTerminal(t *testing.T) {
	readErr := errors.New("connection reset")
	d := NewDecoder(&failingReader{data: []byte(frameLine("one")), err: readErr})

	f, err := d.Next()
	if err != nil || f.Delta() != "one" {
		t.Fatalf("first frame: %v, %v", f, err)
	}

	if _, err := d.Next(); !errors.Is(err, readErr) {
		t.Fatalf("Next = %v, want wrapped read error", err)
	}
	// Terminal: the same error surfaces again.
	if _, err := d.Next(); !errors.Is(err, readErr) {
		t.Fatalf("Next after failure = %v, want same error", err)
	}
}

func TestDecoderFrameWithoutDelta(t *testing.T) {
	input := `data: {"choices":[{"delta":{}}]}` + "\n" +
		`data: {"choices":[]}` + "\n" +
		"data: [DONE]\n"
	d := NewDecoder(strings.NewReader(input))

	var frames int
	for {
		f, err := d.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		frames++
		if f.Delta() != "" {
			t.Errorf("Delta() = %q, want empty", f.Delta())
		}
	}
	if frames != 2 {
		t.Fatalf("decoded %d frames, want 2", frames)
	}
}
