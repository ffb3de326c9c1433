package search

import "context"

// FullSearchParams is the unparsed full-search request as it arrives from a client.
// Blank fields fall back to DefaultFullQuery.
type FullSearchParams struct {
	Term        string
	CategoryIDs []string
	MinPrice    string
	MaxPrice    string
	SortBy      string
	Order       string
}

type UseCase interface {
	QuickSearch(ctx context.Context, term string) (Result, error)
	FullSearch(ctx context.Context, params FullSearchParams) (FullResult, error)
	// NewQuickSession starts a closed inline search session over the current catalog.
	NewQuickSession(ctx context.Context, onResults func(SessionState)) (*QuickSession, error)
}
