package search

import (
	"strings"
	"sync"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
)

// NoSelection is the cursor value when no result is highlighted.
const NoSelection = -1

// SessionState is a snapshot of the quick-search surface.
type SessionState struct {
	Open    bool
	Query   string
	Loading bool
	Result  Result
	Cursor  int
}

// QuickSession drives the inline search surface: typed text is matched after the
// debounce delay, the ranked list can be walked with Next/Prev, and Confirm hands the
// highlighted product to the caller and closes the surface.
type QuickSession struct {
	mu        sync.Mutex
	products  []model.Product
	opts      Options
	debouncer *Debouncer
	onResults func(SessionState)

	open    bool
	query   string
	loading bool
	result  Result
	cursor  int
}

// NewQuickSession creates a closed session over products. onResults, if set, is called
// from the debounce goroutine every time a search pass publishes results.
func NewQuickSession(products []model.Product, opts Options, onResults func(SessionState)) *QuickSession {
	return &QuickSession{
		products:  products,
		opts:      opts,
		debouncer: NewDebouncer(opts.Debounce),
		onResults: onResults,
		cursor:    NoSelection,
	}
}

func (s *QuickSession) Open() SessionState {
	s.debouncer.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	s.reset()
	return s.snapshot()
}

// Cancel closes the surface without navigating.
func (s *QuickSession) Cancel() SessionState {
	s.debouncer.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.reset()
	return s.snapshot()
}

// Type replaces the query text. A blank query returns the idle state at once without
// a search pass; anything else schedules a debounced pass. Typing into a closed session is ignored.
func (s *QuickSession) Type(term string) SessionState {
	s.mu.Lock()
	if !s.open {
		st := s.snapshot()
		s.mu.Unlock()
		return st
	}

	s.query = term
	s.cursor = NoSelection

	if strings.TrimSpace(term) == "" {
		s.debouncer.Cancel()
		s.loading = false
		s.result = Result{Query: term, State: StateIdle}
		st := s.snapshot()
		s.mu.Unlock()
		return st
	}

	s.loading = true
	// Scheduled under s.mu so concurrent Type calls reach the debouncer in query order.
	s.debouncer.Debounce(func() { s.run(term) })
	st := s.snapshot()
	s.mu.Unlock()
	return st
}

func (s *QuickSession) run(term string) {
	res := Quick(s.products, term, s.opts)

	s.mu.Lock()
	if !s.open || s.query != term {
		s.mu.Unlock()
		return
	}
	s.result = res
	s.loading = false
	s.cursor = NoSelection
	st := s.snapshot()
	s.mu.Unlock()

	s.publish(st)
}

func (s *QuickSession) publish(st SessionState) {
	if s.onResults != nil {
		s.onResults(st)
	}
}

// Next moves the cursor down, wrapping from the last result to the first.
func (s *QuickSession) Next() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.result.Products)
	if n > 0 {
		if s.cursor < n-1 {
			s.cursor++
		} else {
			s.cursor = 0
		}
	}
	return s.snapshot()
}

// Prev moves the cursor up, wrapping from the first result (or no selection) to the last.
func (s *QuickSession) Prev() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.result.Products)
	if n > 0 {
		if s.cursor > 0 {
			s.cursor--
		} else {
			s.cursor = n - 1
		}
	}
	return s.snapshot()
}

// Confirm returns the highlighted product and closes the session. With nothing
// highlighted it does nothing and reports false.
func (s *QuickSession) Confirm() (model.Product, bool) {
	s.mu.Lock()
	if s.cursor < 0 || s.cursor >= len(s.result.Products) {
		s.mu.Unlock()
		return model.Product{}, false
	}
	p := s.result.Products[s.cursor]
	s.open = false
	s.reset()
	s.mu.Unlock()

	s.debouncer.Cancel()
	return p, true
}

func (s *QuickSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Close stops any pending pass; the session cannot publish afterwards.
func (s *QuickSession) Close() {
	s.debouncer.Cancel()

	s.mu.Lock()
	s.open = false
	s.reset()
	s.mu.Unlock()
}

func (s *QuickSession) reset() {
	s.query = ""
	s.loading = false
	s.result = Result{State: StateIdle}
	s.cursor = NoSelection
}

func (s *QuickSession) snapshot() SessionState {
	res := s.result
	res.Products = append([]model.Product(nil), s.result.Products...)
	return SessionState{
		Open:    s.open,
		Query:   s.query,
		Loading: s.loading,
		Result:  res,
		Cursor:  s.cursor,
	}
}
