package plugin

import (
	"encoding/json"
	"fmt"
)

// DefaultAction is the action name the convenience constructors attach.
// Hosts treat it as the action triggered by plain selection.
const DefaultAction = "main"

// Action is one executable behavior attached to an entry.
type Action struct {
	Name    string  `json:"name" msgpack:"name"`
	Exec    Method  `json:"exec" msgpack:"exec"`
	Comment *string `json:"comment,omitempty" msgpack:"comment,omitempty"`
}

// ExecAction returns the default action running command.
func ExecAction(command string) Action {
	return Action{Name: DefaultAction, Exec: NewMethod(command, false)}
}

// EchoAction returns the default action printing text.
func EchoAction(text string) Action {
	return Action{Name: DefaultAction, Exec: Method{Kind: MethodEcho, Command: text}}
}

// Entry is one launchable result a plugin offers for display. Optional
// fields stay absent on the wire rather than encoding as null.
type Entry struct {
	Name    string   `json:"name" msgpack:"name"`
	Actions []Action `json:"actions" msgpack:"actions"`
	Comment *string  `json:"comment,omitempty" msgpack:"comment,omitempty"`
	Icon    *string  `json:"icon,omitempty" msgpack:"icon,omitempty"`
	IconAlt *string  `json:"icon_alt,omitempty" msgpack:"icon_alt,omitempty"`
}

// NewEntry returns an entry with a single run action for command.
func NewEntry(name, command string, comment *string) Entry {
	return Entry{Name: name, Actions: []Action{ExecAction(command)}, Comment: comment}
}

// EchoEntry returns an entry named after text whose single action prints
// that same text.
func EchoEntry(text string, comment *string) Entry {
	return Entry{Name: text, Actions: []Action{EchoAction(text)}, Comment: comment}
}

type entryAlias Entry

// MarshalJSON tags the entry with its message type so it can share a
// stream with other message kinds.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type MessageType `json:"type"`
		entryAlias
	}{Type: TypeEntry, entryAlias: entryAlias(e)})
}

// UnmarshalJSON accepts the tagged form and rejects payloads tagged as a
// different message kind.
func (e *Entry) UnmarshalJSON(data []byte) error {
	if err := checkTag(data, TypeEntry); err != nil {
		return err
	}
	var a entryAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*e = Entry(a)
	return nil
}

// checkTag errors when data carries a "type" tag other than want. A
// missing tag is accepted so plain object literals still decode.
func checkTag(data []byte, want MessageType) error {
	var head struct {
		Type MessageType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	if head.Type != "" && head.Type != want {
		return fmt.Errorf("expected %q message, got %q", want, head.Type)
	}
	return nil
}
