// Package participants decodes the participant listing and builds the
// per-event report tables.
package participants

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrShape is returned when the listing is valid JSON of the wrong shape.
var ErrShape = errors.New("unexpected listing shape")

// Participant is one registered competitor as displayed. Values are kept
// exactly as the server sent them.
type Participant struct {
	BibNumber string
	FirstName string
	LastName  string
	Birthdate string
	Club      string
}

// Cells returns the display values in table column order.
func (p Participant) Cells() []string {
	return []string{p.BibNumber, p.FirstName, p.LastName, p.Birthdate, p.Club}
}

// Event groups the participants registered in one class.
type Event struct {
	Name         string
	Participants []Participant
}

// Listing is every event in the order the server listed them.
type Listing []Event

// Decode parses a {"event": [participant, ...]} payload. Object keys are
// walked in document order so the report follows the server's ordering.
func Decode(payload []byte) (Listing, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("decode listing: invalid JSON")
	}
	root := gjson.ParseBytes(payload)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected an object of events", ErrShape)
	}

	// A repeated event name keeps its first position and its last value.
	var names []string
	values := make(map[string]gjson.Result)
	root.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if _, seen := values[name]; !seen {
			names = append(names, name)
		}
		values[name] = value
		return true
	})

	listing := make(Listing, 0, len(names))
	for _, name := range names {
		value := values[name]
		if !value.IsArray() {
			return nil, fmt.Errorf("%w: event %q is not a list", ErrShape, name)
		}
		event := Event{Name: name, Participants: []Participant{}}
		for _, entry := range value.Array() {
			if !entry.IsObject() {
				return nil, fmt.Errorf("%w: event %q has a non-object entry", ErrShape, name)
			}
			event.Participants = append(event.Participants, Participant{
				BibNumber: entry.Get("BibNumber").String(),
				FirstName: entry.Get("FirstName").String(),
				LastName:  entry.Get("LastName").String(),
				Birthdate: entry.Get("Birthdate").String(),
				Club:      entry.Get("Club").String(),
			})
		}
		listing = append(listing, event)
	}
	return listing, nil
}
