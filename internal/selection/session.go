package selection

import (
	"fmt"

	"github.com/youruser/bigcollage/internal/apperr"
	"github.com/youruser/bigcollage/internal/catalog"
)

// Strings holds the display templates passed through to the presentation
// layer. Each template receives the capacity (CountFormat also receives the
// count first).
type Strings struct {
	TitleFormat    string
	SubtitleFormat string
	CountFormat    string
}

// DefaultStrings are used for any empty template.
var DefaultStrings = Strings{
	TitleFormat:    "Big %d",
	SubtitleFormat: "Pick your %d favourites to build your personal collection.",
	CountFormat:    "%d / %d selected",
}

// State is the snapshot handed to observers after every mutation.
type State struct {
	Mode        Mode           `json:"mode"`
	Title       string         `json:"title"`
	Subtitle    string         `json:"subtitle"`
	Count       int            `json:"count"`
	Capacity    int            `json:"capacity"`
	CountText   string         `json:"count_text"`
	CanContinue bool           `json:"can_continue"`
	Items       []catalog.Item `json:"items"`
}

// Observer receives state changes. Implementations must not call back into
// the session.
type Observer interface {
	SelectionChanged(State)
	ModeChanged(State)
}

// Session is the controller for one user's selection: it owns the active
// mode and the selection, and is their only mutator.
type Session struct {
	mode      Mode
	sel       *Selection
	catalog   *catalog.Catalog
	order     []catalog.Item
	strings   Strings
	observers []Observer
}

// Option configures a Session.
type Option func(*Session)

// WithCatalog restricts Toggle to items of c.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

// WithOrder sets the display order of the catalog for this session.
func WithOrder(order []catalog.Item) Option {
	return func(s *Session) { s.order = order }
}

// WithStrings overrides display templates. Empty fields keep the defaults.
func WithStrings(st Strings) Option {
	return func(s *Session) {
		if st.TitleFormat != "" {
			s.strings.TitleFormat = st.TitleFormat
		}
		if st.SubtitleFormat != "" {
			s.strings.SubtitleFormat = st.SubtitleFormat
		}
		if st.CountFormat != "" {
			s.strings.CountFormat = st.CountFormat
		}
	}
}

// NewSession returns a session in mode with an empty selection.
func NewSession(mode Mode, opts ...Option) *Session {
	s := &Session{
		mode:    mode,
		sel:     New(mode.Capacity()),
		strings: DefaultStrings,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Subscribe registers an observer.
func (s *Session) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// Mode returns the active mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Order returns the session's display order of the catalog.
func (s *Session) Order() []catalog.Item {
	return s.order
}

// Selection exposes the selection for read access.
func (s *Session) Selection() *Selection {
	return s.sel
}

// Toggle flips membership of item and notifies observers on success.
func (s *Session) Toggle(item catalog.Item) (Change, error) {
	if s.catalog != nil && !s.catalog.Has(item) {
		return Change{}, apperr.New(apperr.CodeInvalidItem, "unknown item %q", item)
	}
	ch, err := s.sel.Toggle(item)
	if err != nil {
		return Change{}, err
	}
	s.notifySelection()
	return ch, nil
}

// Clear empties the selection and notifies observers.
func (s *Session) Clear() {
	s.sel.Clear()
	s.notifySelection()
}

// SetMode switches capacity. Changing mode always empties the selection;
// setting the active mode again is a no-op.
func (s *Session) SetMode(capacity int) error {
	m, err := ParseMode(capacity)
	if err != nil {
		return err
	}
	if m == s.mode {
		return nil
	}
	s.mode = m
	s.sel.reset(m.Capacity())
	st := s.State()
	for _, o := range s.observers {
		o.ModeChanged(st)
	}
	s.notifySelection()
	return nil
}

// State returns the current snapshot.
func (s *Session) State() State {
	capacity := s.sel.Capacity()
	return State{
		Mode:        s.mode,
		Title:       fmt.Sprintf(s.strings.TitleFormat, capacity),
		Subtitle:    fmt.Sprintf(s.strings.SubtitleFormat, capacity),
		Count:       s.sel.Len(),
		Capacity:    capacity,
		CountText:   fmt.Sprintf(s.strings.CountFormat, s.sel.Len(), capacity),
		CanContinue: s.sel.IsComplete(),
		Items:       s.sel.Items(),
	}
}

func (s *Session) notifySelection() {
	if len(s.observers) == 0 {
		return
	}
	st := s.State()
	for _, o := range s.observers {
		o.SelectionChanged(st)
	}
}
