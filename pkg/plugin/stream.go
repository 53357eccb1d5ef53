package plugin

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// maxLineBytes bounds a single stream message. Entries are small; the
// headroom covers plugins that inline icon data.
const maxLineBytes = 1 << 20

// Encoder writes plugin messages as one JSON object per line. It is the
// emit side of the protocol, pointed at stdout by plugins.
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// Message writes one message followed by a newline.
func (e *Encoder) Message(m Message) error {
	return e.enc.Encode(m)
}

// Entry writes one entry message.
func (e *Encoder) Entry(entry Entry) error {
	return e.enc.Encode(Message{Entry: &entry})
}

// Options writes one options message.
func (e *Encoder) Options(o Options) error {
	return e.enc.Encode(Message{Options: &o})
}

// Decoder reads a line-delimited message stream incrementally, so a
// consumer can act on entries while the producing plugin is still
// running. Blank lines are skipped.
type Decoder struct {
	scan *bufio.Scanner
	line int
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Decoder{scan: scan}
}

// Decode returns the next message, or io.EOF at end of stream. Decode
// errors carry the 1-based line number of the offending message.
func (d *Decoder) Decode() (*Message, error) {
	for d.scan.Scan() {
		d.line++
		data := bytes.TrimSpace(d.scan.Bytes())
		if len(data) == 0 {
			continue
		}
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("line %d: %w", d.line, err)
		}
		return &m, nil
	}
	if err := d.scan.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", d.line+1, err)
	}
	return nil, io.EOF
}
