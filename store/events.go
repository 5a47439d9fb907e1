package store

import "github.com/user/simplereplay-cli/model"

// Event identifies a kind of state change.
type Event int

const (
	ModeChanged Event = iota
	GameChanged
	ClipChanged
	ClipsUpdated
	PlaylistsUpdated
	FlagsUpdated
	ViewFiltersChanged
	PanelToggled
	FocusViewToggled
	TagTypesUpdated
	GamesUpdated
	ProjectSaved
	ProjectLoaded
	CommentAdded
	Initialized
)

var eventNames = [...]string{
	ModeChanged:        "modeChanged",
	GameChanged:        "gameChanged",
	ClipChanged:        "clipChanged",
	ClipsUpdated:       "clipsUpdated",
	PlaylistsUpdated:   "playlistsUpdated",
	FlagsUpdated:       "flagsUpdated",
	ViewFiltersChanged: "viewFiltersChanged",
	PanelToggled:       "panelToggled",
	FocusViewToggled:   "focusViewToggled",
	TagTypesUpdated:    "tagTypesUpdated",
	GamesUpdated:       "gamesUpdated",
	ProjectSaved:       "projectSaved",
	ProjectLoaded:      "projectLoaded",
	CommentAdded:       "commentAdded",
	Initialized:        "initialized",
}

// AllEvents lists every event in declaration order.
var AllEvents = []Event{
	ModeChanged, GameChanged, ClipChanged, ClipsUpdated, PlaylistsUpdated,
	FlagsUpdated, ViewFiltersChanged, PanelToggled, FocusViewToggled,
	TagTypesUpdated, GamesUpdated, ProjectSaved, ProjectLoaded, CommentAdded,
	Initialized,
}

func (e Event) String() string {
	if int(e) >= 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// Listener receives an event and its payload. Payload types:
//
//	ModeChanged        Mode
//	GameChanged        *model.Game (nil when no game)
//	ClipChanged        *model.Clip (nil when no clip)
//	ClipsUpdated       []model.Clip
//	PlaylistsUpdated   []model.Playlist
//	FlagsUpdated       FlagsChange
//	ViewFiltersChanged nil
//	PanelToggled       bool (collapsed)
//	FocusViewToggled   bool (focus view on)
//	TagTypesUpdated    []model.TagType
//	GamesUpdated       []model.Game
//	ProjectSaved       string (project id)
//	ProjectLoaded      *cloud.Project
//	CommentAdded       CommentChange
//	Initialized        nil
type Listener func(ev Event, payload any)

// FlagsChange is the payload of FlagsUpdated.
type FlagsChange struct {
	ClipID string
	Flags  []model.Flag
}

// CommentChange is the payload of CommentAdded.
type CommentChange struct {
	ClipID  string
	Comment model.Comment
}

// Subscription identifies a registered listener.
type Subscription struct {
	event Event
	id    uint64
}

type subscriber struct {
	id uint64
	fn Listener
}

type emission struct {
	event   Event
	payload any
}

// Subscribe registers fn for ev. Listeners run in subscription order.
func (s *Store) Subscribe(ev Event, fn Listener) Subscription {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextSubID++
	s.listeners[ev] = append(s.listeners[ev], subscriber{id: s.nextSubID, fn: fn})
	return Subscription{event: ev, id: s.nextSubID}
}

// SubscribeAll registers fn for every event and returns the subscriptions.
func (s *Store) SubscribeAll(fn Listener) []Subscription {
	subs := make([]Subscription, 0, len(AllEvents))
	for _, ev := range AllEvents {
		subs = append(subs, s.Subscribe(ev, fn))
	}
	return subs
}

// Unsubscribe removes a listener. Unknown subscriptions are ignored.
func (s *Store) Unsubscribe(sub Subscription) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	subs := s.listeners[sub.event]
	for i, l := range subs {
		if l.id == sub.id {
			s.listeners[sub.event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// emit delivers events synchronously. It must be called without s.mu held so
// listeners can read the store. A panicking listener stops delivery.
func (s *Store) emit(events ...emission) {
	for _, e := range events {
		s.subMu.Lock()
		subs := append([]subscriber(nil), s.listeners[e.event]...)
		s.subMu.Unlock()

		s.logger.Debug("emit", "event", e.event.String(), "listeners", len(subs))
		for _, l := range subs {
			l.fn(e.event, e.payload)
		}
	}
}
