package plugin

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MessageType is the wire discriminator carried in the "type" field.
type MessageType string

const (
	// TypeEntry tags a launchable entry.
	TypeEntry MessageType = "entry"
	// TypeOptions tags a config override bag.
	TypeOptions MessageType = "options"
)

// ErrEmptyMessage reports a message with no variant set.
var ErrEmptyMessage = errors.New("message has no payload")

// Message is one unit of the plugin stream: either an Entry or an
// Options overlay, discriminated by the "type" field. Exactly one
// variant is non-nil.
type Message struct {
	Entry   *Entry
	Options *Options
}

// Type reports which variant the message carries.
func (m Message) Type() MessageType {
	switch {
	case m.Entry != nil:
		return TypeEntry
	case m.Options != nil:
		return TypeOptions
	}
	return ""
}

// MarshalJSON encodes the set variant in its tagged form.
func (m Message) MarshalJSON() ([]byte, error) {
	if m.Entry != nil && m.Options != nil {
		return nil, errors.New("message has more than one payload")
	}
	switch {
	case m.Entry != nil:
		return json.Marshal(m.Entry)
	case m.Options != nil:
		return json.Marshal(m.Options)
	}
	return nil, ErrEmptyMessage
}

// UnmarshalJSON classifies the payload by its "type" tag and decodes the
// matching variant.
func (m *Message) UnmarshalJSON(data []byte) error {
	var head struct {
		Type MessageType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("message is not an object: %w", err)
	}
	switch head.Type {
	case TypeEntry:
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		*m = Message{Entry: &e}
	case TypeOptions:
		var o Options
		if err := json.Unmarshal(data, &o); err != nil {
			return err
		}
		*m = Message{Options: &o}
	case "":
		return errors.New(`message is missing its "type" tag`)
	default:
		return fmt.Errorf("unknown message type %q", string(head.Type))
	}
	return nil
}
