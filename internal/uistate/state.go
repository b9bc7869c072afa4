// Package uistate holds the console's form fields and active tab, mirroring
// every assignment into a fieldstore.Store.
package uistate

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"livestream-results-ui/internal/fieldstore"
	"livestream-results-ui/internal/logging"
)

// Field names a persisted form field. The string value doubles as the
// storage key.
type Field string

const (
	FieldTab                   Field = "tab"
	FieldParticipantsSheetName Field = "participantsSheetName"
	FieldEventName             Field = "eventName"
	FieldSheetID               Field = "sheetID"
	FieldSheetName             Field = "sheetName"
	FieldFilePath              Field = "filePath"
)

const (
	TabConfig       = "config"
	TabParticipants = "participants"
)

// ErrUnknownField is returned when a caller names a field the state does not hold.
var ErrUnknownField = errors.New("unknown field")

var allFields = []Field{
	FieldTab,
	FieldParticipantsSheetName,
	FieldEventName,
	FieldSheetID,
	FieldSheetName,
	FieldFilePath,
}

// Fields returns every field in declaration order.
func Fields() []Field {
	out := make([]Field, len(allFields))
	copy(out, allFields)
	return out
}

// ParseField maps a storage key back to its Field.
func ParseField(name string) (Field, error) {
	for _, f := range allFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Values is a point-in-time copy of all fields.
type Values struct {
	Tab                   string
	ParticipantsSheetName string
	EventName             string
	SheetID               string
	SheetName             string
	FilePath              string
}

// Get returns the value held for f.
func (v Values) Get(f Field) string {
	switch f {
	case FieldTab:
		return v.Tab
	case FieldParticipantsSheetName:
		return v.ParticipantsSheetName
	case FieldEventName:
		return v.EventName
	case FieldSheetID:
		return v.SheetID
	case FieldSheetName:
		return v.SheetName
	case FieldFilePath:
		return v.FilePath
	}
	return ""
}

func (v *Values) set(f Field, value string) bool {
	switch f {
	case FieldTab:
		v.Tab = value
	case FieldParticipantsSheetName:
		v.ParticipantsSheetName = value
	case FieldEventName:
		v.EventName = value
	case FieldSheetID:
		v.SheetID = value
	case FieldSheetName:
		v.SheetName = value
	case FieldFilePath:
		v.FilePath = value
	default:
		return false
	}
	return true
}

// Defaults returns the values a fresh page starts with.
func Defaults() Values {
	return Values{Tab: TabConfig}
}

// Options configures a State.
type Options struct {
	Store  fieldstore.Store
	Logger logging.Logger
	// OnParticipantsTab runs once from Initialize when the restored tab is
	// the participants tab.
	OnParticipantsTab func()
}

// State owns the form field values for the session. The store is only read
// by Initialize; afterwards it is a write-through mirror.
type State struct {
	mu        sync.Mutex
	values    Values
	store     fieldstore.Store
	logger    logging.Logger
	onRestore func()
	observers []func(Field, string)
}

// New returns a State seeded with Defaults. Call Initialize to restore
// persisted values.
func New(opts Options) *State {
	store := opts.Store
	if store == nil {
		store = fieldstore.NewMemory()
	}
	return &State{
		values:    Defaults(),
		store:     store,
		logger:    logging.OrDiscard(opts.Logger),
		onRestore: opts.OnParticipantsTab,
	}
}

// OnChange registers fn to be called after every assignment, including
// those made by Initialize and Reset.
func (s *State) OnChange(fn func(Field, string)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Set assigns value to f, writes it through to the store and notifies
// observers.
func (s *State) Set(f Field, value string) error {
	s.mu.Lock()
	if !s.values.set(f, value) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	if err := s.store.Set(string(f), value); err != nil {
		s.logger.Printf("persist %s: %v", f, err)
	}
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(f, value)
	}
	return nil
}

func (s *State) mustSet(f Field, value string) {
	// Only called with declared fields.
	_ = s.Set(f, value)
}

func (s *State) SetTab(v string)                   { s.mustSet(FieldTab, v) }
func (s *State) SetParticipantsSheetName(v string) { s.mustSet(FieldParticipantsSheetName, v) }
func (s *State) SetEventName(v string)             { s.mustSet(FieldEventName, v) }
func (s *State) SetSheetID(v string)               { s.mustSet(FieldSheetID, v) }
func (s *State) SetSheetName(v string)             { s.mustSet(FieldSheetName, v) }
func (s *State) SetFilePath(v string)              { s.mustSet(FieldFilePath, v) }

// Get returns the current value of f.
func (s *State) Get(f Field) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Get(f)
}

func (s *State) Tab() string                   { return s.Get(FieldTab) }
func (s *State) ParticipantsSheetName() string { return s.Get(FieldParticipantsSheetName) }
func (s *State) EventName() string             { return s.Get(FieldEventName) }
func (s *State) SheetID() string               { return s.Get(FieldSheetID) }
func (s *State) SheetName() string             { return s.Get(FieldSheetName) }
func (s *State) FilePath() string              { return s.Get(FieldFilePath) }

// Snapshot returns a copy of all current values.
func (s *State) Snapshot() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values
}

// Initialize restores every non-empty persisted field. When the restored
// tab is the participants tab the OnParticipantsTab hook fires once.
func (s *State) Initialize() {
	restoredParticipants := false
	for _, f := range allFields {
		v, ok := s.store.Get(string(f))
		if !ok || v == "" {
			continue
		}
		s.mustSet(f, v)
		if f == FieldTab && v == TabParticipants {
			restoredParticipants = true
		}
	}
	if restoredParticipants && s.onRestore != nil {
		s.onRestore()
	}
}

// Reset assigns the default to every field. Stored entries are overwritten
// through the normal write-through path rather than removed.
func (s *State) Reset() {
	d := Defaults()
	for _, f := range allFields {
		s.mustSet(f, d.Get(f))
	}
}
