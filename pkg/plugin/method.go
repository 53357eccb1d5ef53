package plugin

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MethodKind discriminates how an action behaves on selection.
type MethodKind string

const (
	// MethodTerminal runs the command inside the user's terminal emulator.
	MethodTerminal MethodKind = "terminal"
	// MethodRun spawns the command directly.
	MethodRun MethodKind = "run"
	// MethodEcho prints the payload instead of executing anything.
	MethodEcho MethodKind = "echo"
)

// Method is what selecting an action does: a command to run, optionally
// inside a terminal, or a text payload to echo back. On the wire it is a
// single-pair object keyed by the lowercase kind, e.g. {"run":"firefox"}.
type Method struct {
	Kind    MethodKind
	Command string
}

// NewMethod builds a Run method for command, or a Terminal method when
// the command wants a terminal emulator around it.
func NewMethod(command string, terminal bool) Method {
	if terminal {
		return Method{Kind: MethodTerminal, Command: command}
	}
	return Method{Kind: MethodRun, Command: command}
}

func (k MethodKind) valid() bool {
	switch k {
	case MethodTerminal, MethodRun, MethodEcho:
		return true
	}
	return false
}

// MarshalJSON encodes the method in its single-pair tagged form.
func (m Method) MarshalJSON() ([]byte, error) {
	if !m.Kind.valid() {
		return nil, fmt.Errorf("unknown method kind %q", string(m.Kind))
	}
	return json.Marshal(map[string]string{string(m.Kind): m.Command})
}

// UnmarshalJSON decodes the single-pair tagged form.
func (m *Method) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("method is not a tagged object: %w", err)
	}
	if len(raw) != 1 {
		return fmt.Errorf("method must carry exactly one tag, got %d", len(raw))
	}
	for tag, command := range raw {
		kind := MethodKind(tag)
		if !kind.valid() {
			return fmt.Errorf("unknown method kind %q", tag)
		}
		m.Kind = kind
		m.Command = command
	}
	return nil
}

// EncodeMsgpack mirrors the JSON tagged form so cached entries keep the
// wire shape.
func (m Method) EncodeMsgpack(enc *msgpack.Encoder) error {
	if !m.Kind.valid() {
		return fmt.Errorf("unknown method kind %q", string(m.Kind))
	}
	if err := enc.EncodeMapLen(1); err != nil {
		return err
	}
	if err := enc.EncodeString(string(m.Kind)); err != nil {
		return err
	}
	return enc.EncodeString(m.Command)
}

// DecodeMsgpack decodes the single-pair tagged form.
func (m *Method) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("method must carry exactly one tag, got %d", n)
	}
	tag, err := dec.DecodeString()
	if err != nil {
		return err
	}
	command, err := dec.DecodeString()
	if err != nil {
		return err
	}
	kind := MethodKind(tag)
	if !kind.valid() {
		return fmt.Errorf("unknown method kind %q", tag)
	}
	m.Kind = kind
	m.Command = command
	return nil
}
