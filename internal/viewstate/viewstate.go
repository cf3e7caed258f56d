// Package viewstate models the map/list selection state the web client
// holds: the fetched locations, the selected place, the search filter and
// the viewport, plus the URL-path synchronization contract between them.
// Keeping it as a pure state machine makes the contract testable without a
// browser.
package viewstate

import (
	"strings"

	"github.com/google/uuid"
)

// Zoom levels: the country-wide default view and the close-up used when a
// location is selected or deep-linked.
const (
	DefaultZoom = 5
	CloseZoom   = 14
)

// Location is the subset of a place the map needs.
type Location struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Latitude  float64
	Longitude float64
}

// Viewport is the visible map region.
type Viewport struct {
	Latitude  float64
	Longitude float64
	Zoom      int
}

// State holds the client-side view state. Locations are fetched once per
// page load; everything else changes through the methods below.
type State struct {
	locations []Location
	selected  *Location
	query     string
	showAll   bool
	viewport  Viewport
	highlight int
	path      string
}

// New builds the initial state: nothing selected, show-all on, country-wide
// viewport, root path.
func New(locations []Location, defaultView Viewport) *State {
	return &State{
		locations: locations,
		showAll:   true,
		viewport:  defaultView,
		highlight: -1,
		path:      "/",
	}
}

// InitFromPath applies a deep link. A path encoding a known slug selects
// that location at close zoom; anything else leaves the default view.
func (s *State) InitFromPath(path string) {
	slug := strings.TrimPrefix(path, "/")
	for i := range s.locations {
		if s.locations[i].Slug == slug {
			s.selectLocation(&s.locations[i])
			return
		}
	}
}

// ApplyGeolocation refines the initial viewport from an IP lookup. It only
// applies while nothing is selected; a deep-linked selection wins.
func (s *State) ApplyGeolocation(lat, lng float64, zoom int) {
	if s.selected != nil {
		return
	}
	s.viewport = Viewport{Latitude: lat, Longitude: lng, Zoom: zoom}
}

// Select centers and zooms on the location and syncs the URL path to it.
func (s *State) Select(id uuid.UUID) bool {
	for i := range s.locations {
		if s.locations[i].ID == id {
			s.selectLocation(&s.locations[i])
			return true
		}
	}
	return false
}

func (s *State) selectLocation(loc *Location) {
	s.selected = loc
	s.viewport = Viewport{Latitude: loc.Latitude, Longitude: loc.Longitude, Zoom: CloseZoom}
	s.path = "/" + loc.Slug
}

// Deselect clears the selection (popup closed) and reverts the URL to root.
func (s *State) Deselect() {
	s.selected = nil
	s.path = "/"
}

// SetQuery updates the search filter and resets keyboard highlighting.
func (s *State) SetQuery(q string) {
	s.query = q
	s.highlight = -1
}

// Matches returns the locations whose names contain the query,
// case-insensitively. An empty query matches nothing.
func (s *State) Matches() []Location {
	if s.query == "" {
		return nil
	}
	needle := strings.ToLower(s.query)
	var out []Location
	for _, loc := range s.locations {
		if strings.Contains(strings.ToLower(loc.Name), needle) {
			out = append(out, loc)
		}
	}
	return out
}

// MoveDown advances the highlighted search result, clamped to the last one.
func (s *State) MoveDown() {
	n := len(s.Matches())
	if n == 0 {
		s.highlight = -1
		return
	}
	if s.highlight < n-1 {
		s.highlight++
	}
}

// MoveUp moves the highlight back, clamped to the first result.
func (s *State) MoveUp() {
	if s.highlight > 0 {
		s.highlight--
	}
}

// Enter selects the highlighted search result and clears the filter.
// Returns false when nothing is highlighted.
func (s *State) Enter() bool {
	matches := s.Matches()
	if s.highlight < 0 || s.highlight >= len(matches) {
		return false
	}
	ok := s.Select(matches[s.highlight].ID)
	s.query = ""
	s.highlight = -1
	return ok
}

// Escape clears the search filter and highlight without touching selection.
func (s *State) Escape() {
	s.query = ""
	s.highlight = -1
}

// SetShowAll flips between showing every marker and only the selection.
func (s *State) SetShowAll(v bool) {
	s.showAll = v
}

func (s *State) Selected() *Location { return s.selected }
func (s *State) Query() string       { return s.query }
func (s *State) ShowAll() bool       { return s.showAll }
func (s *State) Viewport() Viewport  { return s.viewport }
func (s *State) Path() string        { return s.path }
func (s *State) Highlight() int      { return s.highlight }
