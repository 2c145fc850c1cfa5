package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

var (
	dataPrefix   = []byte("data: ")
	doneSentinel = []byte("[DONE]")
)

// Frame is one decoded unit of the completion stream: the JSON payload of a
// single event record.
type Frame struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Delta returns the incremental text fragment carried by the frame, if any.
func (f *Frame) Delta() string {
	if len(f.Choices) == 0 {
		return ""
	}
	return f.Choices[0].Delta.Content
}

// Decoder turns the raw byte stream of a completion response into discrete
// frames. Chunk boundaries are arbitrary: a record split across reads is
// held until the remaining bytes arrive.
type Decoder struct {
	r      io.Reader
	buf    []byte
	chunk  []byte
	closed bool
	err    error

	// pending holds a complete line whose payload failed to parse. It is
	// restored to the front of the buffer once more bytes arrive, so a
	// JSON record split across chunk boundaries gets reassembled. A line
	// that never parses is dropped silently when the stream ends.
	pending []byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, chunk: make([]byte, 4096)}
}

// Next returns the next decoded frame. io.EOF signals normal completion,
// either the [DONE] sentinel or stream closure. Any other error is a
// terminal transport failure.
func (d *Decoder) Next() (*Frame, error) {
	if d.err != nil {
		return nil, d.err
	}
	for {
		if f := d.scan(); f != nil {
			return f, nil
		}
		if d.err != nil {
			return nil, d.err
		}
		if d.closed {
			if d.pending != nil {
				// The held line can never complete; drop it and drain
				// whatever full records remain.
				d.pending = nil
				continue
			}
			d.err = io.EOF
			return nil, io.EOF
		}

		n, rerr := d.r.Read(d.chunk)
		if n > 0 {
			d.buf = append(d.buf, d.chunk[:n]...)
			if d.pending != nil {
				restored := make([]byte, 0, len(d.pending)+1+len(d.buf))
				restored = append(restored, d.pending...)
				restored = append(restored, '\n')
				restored = append(restored, d.buf...)
				d.buf = restored
				d.pending = nil
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				d.closed = true
				continue
			}
			d.err = rerr
			return nil, rerr
		}
	}
}

// scan extracts complete lines from the buffer until a frame is produced,
// the sentinel is reached, or more bytes are needed.
func (d *Decoder) scan() *Frame {
	if d.pending != nil {
		// A payload is waiting on more bytes; no progress without a read.
		return nil
	}
	for {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			return nil
		}
		line := d.buf[:i:i]
		d.buf = d.buf[i+1:]

		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(line) == 0 || line[0] == ':' {
			continue
		}
		if !bytes.HasPrefix(line, dataPrefix) {
			continue
		}
		payload := bytes.TrimSpace(line[len(dataPrefix):])
		if bytes.Equal(payload, doneSentinel) {
			// Sentinel ends the stream; anything after it is ignored.
			d.err = io.EOF
			return nil
		}

		f := &Frame{}
		if err := json.Unmarshal(payload, f); err != nil {
			d.pending = append([]byte(nil), line...)
			return nil
		}
		return f
	}
}
