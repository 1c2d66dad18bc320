// Package session owns the per-open-source state: the single-entry
// loaded-table cache, the single-entry filtered/sorted-view memo, the
// current view state, and per-table column layouts.
package session

import (
	"sync"

	"github.com/tably/tably/internal/dataframe"
	"github.com/tably/tably/internal/loader"
	"github.com/tably/tably/internal/models"
	"github.com/tably/tably/internal/source"
)

// Session wraps one open source. Caches hold at most one entry each:
// switching tables or changing the view key discards the previous
// entry. Loads are single-flight (see loader), so there are never two
// writers to the same cache slot; the mutex guards against a stale
// worker racing a fresh one.
type Session struct {
	src *source.Source

	mu         sync.Mutex
	frameTable string
	frame      *dataframe.Frame
	viewKey    dataframe.ViewKey
	view       *dataframe.View
	hasView    bool

	State   models.ViewState
	layouts map[string]models.ColumnLayout
}

// Open opens the file at path and wraps it in a session.
func Open(path string) (*Session, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	return &Session{
		src:     src,
		layouts: make(map[string]models.ColumnLayout),
	}, nil
}

// Source returns the underlying source.
func (s *Session) Source() *source.Source { return s.src }

// Tables returns the source's table names.
func (s *Session) Tables() []string { return s.src.Tables() }

// Frame returns the loaded table for name, loading it on a cache
// miss. Only the most recently requested table stays cached;
// revisiting an earlier table reloads it from the source.
func (s *Session) Frame(name string) (*dataframe.Frame, error) {
	s.mu.Lock()
	if s.frame != nil && s.frameTable == name {
		f := s.frame
		s.mu.Unlock()
		return f, nil
	}
	s.mu.Unlock()

	frame, err := s.src.Load(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.frameTable = name
	s.frame = frame
	s.hasView = false // view memo is invalid across tables
	s.mu.Unlock()
	return frame, nil
}

// View returns the filtered/sorted view for the exact key, reusing
// the memo when the key matches the most recent computation.
func (s *Session) View(key dataframe.ViewKey) (*dataframe.View, error) {
	s.mu.Lock()
	if s.hasView && s.viewKey == key {
		v := s.view
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	frame, err := s.Frame(key.Table)
	if err != nil {
		return nil, err
	}
	view := dataframe.Apply(frame, key)

	s.mu.Lock()
	s.viewKey = key
	s.view = view
	s.hasView = true
	s.mu.Unlock()
	return view, nil
}

// Page computes one display page for the key, going through both
// caches. The token aborts row materialization when the load has been
// superseded.
func (s *Session) Page(key dataframe.ViewKey, number, size int, tok *loader.Token) (dataframe.Page, error) {
	view, err := s.View(key)
	if err != nil {
		return dataframe.Page{}, err
	}
	return view.Page(number, size, tok)
}

// Invalidate drops both caches so the next Frame call rereads the
// source. Used by explicit reload.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.frame = nil
	s.frameTable = ""
	s.hasView = false
	s.mu.Unlock()
}

// Layout returns the stored column layout for a table; the zero
// layout means defaults.
func (s *Session) Layout(table string) models.ColumnLayout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layouts[table]
}

// SetLayout stores the column layout for a table.
func (s *Session) SetLayout(table string, layout models.ColumnLayout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[table] = layout
}
