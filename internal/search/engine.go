// Package search implements the storefront's catalog search: the ranked quick search
// behind the inline search surface and the filter/sort pipeline of the full search page.
package search

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrInvalidSortKey    = errors.New("invalid sort key")
	ErrInvalidSortOrder  = errors.New("invalid sort order")
	ErrInvalidPriceRange = errors.New("invalid price range")
)

// categoryTokens are matched only when the token is in the query and in the product name.
var categoryTokens = []string{"juice", "jam", "fresh", "dried", "pickle", "cream"}

var firstNumber = regexp.MustCompile(`\d+`)

type Options struct {
	// CheapBelow and ExpensiveAbove back the "cheap" and "expensive" keywords.
	CheapBelow     decimal.Decimal
	ExpensiveAbove decimal.Decimal
	// Limit caps the quick-search list; the match count is reported separately.
	Limit    int
	Debounce time.Duration
}

func DefaultOptions() Options {
	return Options{
		CheapBelow:     decimal.NewFromInt(150),
		ExpensiveAbove: decimal.NewFromInt(200),
		Limit:          5,
		Debounce:       300 * time.Millisecond,
	}
}

// Match reports whether p matches term. Rules are OR-ed: name, description and benefit
// substrings (case-insensitive), then the price and category keyword heuristics.
func Match(p *model.Product, term string, opts Options) bool {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return false
	}

	name := strings.ToLower(p.Name)
	if strings.Contains(name, t) {
		return true
	}
	if containsFold(p.Description, t) {
		return true
	}
	for _, b := range p.Benefits {
		if containsFold(b, t) {
			return true
		}
	}

	if strings.Contains(t, "cheap") && p.Price.LessThan(opts.CheapBelow) {
		return true
	}
	if strings.Contains(t, "expensive") && p.Price.GreaterThan(opts.ExpensiveAbove) {
		return true
	}
	if strings.Contains(t, "under") || strings.Contains(t, "below") {
		if n := firstNumber.FindString(t); n != "" {
			if limit, err := decimal.NewFromString(n); err == nil && p.Price.LessThan(limit) {
				return true
			}
		}
	}

	for _, tok := range categoryTokens {
		if strings.Contains(t, tok) && strings.Contains(name, tok) {
			return true
		}
	}
	return false
}

func containsFold(s, lowerSub string) bool {
	return strings.Contains(strings.ToLower(s), lowerSub)
}

// State lets the presentation layer tell "nothing typed yet" from "typed, nothing found".
type State int

const (
	StateIdle State = iota
	StateNoMatches
	StateResults
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNoMatches:
		return "no_matches"
	case StateResults:
		return "results"
	}
	return "unknown"
}

type Result struct {
	Query    string
	State    State
	Products []model.Product
	// Total counts every match, including those beyond the quick-search limit.
	Total int
}

// Quick runs the quick-search pass: match, rank name-prefix hits first and then by
// ascending price, and keep the first opts.Limit products.
func Quick(products []model.Product, term string, opts Options) Result {
	res := Result{Query: term, State: StateIdle}

	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return res
	}

	matches := make([]model.Product, 0, len(products))
	for i := range products {
		if Match(&products[i], t, opts) {
			matches = append(matches, products[i])
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(matches[i].Name), t)
		pj := strings.HasPrefix(strings.ToLower(matches[j].Name), t)
		if pi != pj {
			return pi
		}
		return matches[i].Price.LessThan(matches[j].Price)
	})

	res.Total = len(matches)
	if res.Total == 0 {
		res.State = StateNoMatches
		return res
	}
	res.State = StateResults
	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	res.Products = matches
	return res
}

type SortKey string

const (
	SortByName   SortKey = "name"
	SortByPrice  SortKey = "price"
	SortByRating SortKey = "rating"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// PriceRange bounds are inclusive.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func (r PriceRange) Contains(p decimal.Decimal) bool {
	return p.GreaterThanOrEqual(r.Min) && p.LessThanOrEqual(r.Max)
}

type FullQuery struct {
	Term string
	// Categories are OR-ed; an empty set does not restrict.
	Categories []model.Category
	Price      PriceRange
	SortBy     SortKey
	Order      SortOrder
}

func DefaultFullQuery() FullQuery {
	return FullQuery{
		Price:  PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(500)},
		SortBy: SortByName,
		Order:  Asc,
	}
}

func (q FullQuery) Validate() error {
	switch q.SortBy {
	case SortByName, SortByPrice, SortByRating:
	default:
		return ErrInvalidSortKey
	}
	switch q.Order {
	case Asc, Desc:
	default:
		return ErrInvalidSortOrder
	}
	if q.Price.Min.GreaterThan(q.Price.Max) || q.Price.Min.IsNegative() {
		return ErrInvalidPriceRange
	}
	return nil
}

type FullResult struct {
	Query    FullQuery
	State    State
	Products []model.Product
}

// Restricts reports whether q narrows the catalog beyond the default browse.
func (q FullQuery) Restricts() bool {
	d := DefaultFullQuery()
	return strings.TrimSpace(q.Term) != "" ||
		len(q.Categories) > 0 ||
		!q.Price.Min.Equal(d.Price.Min) ||
		!q.Price.Max.Equal(d.Price.Max)
}

// Filter runs the full-search pipeline. A blank term browses the whole catalog. An empty
// result is StateNoMatches when any filter was applied and StateIdle otherwise.
func Filter(products []model.Product, q FullQuery) (FullResult, error) {
	if err := q.Validate(); err != nil {
		return FullResult{}, err
	}

	t := strings.ToLower(strings.TrimSpace(q.Term))
	out := make([]model.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if t != "" && !matchesText(p, t) {
			continue
		}
		if !q.Price.Contains(p.Price) {
			continue
		}
		if len(q.Categories) > 0 && !matchesAnyCategory(p, q.Categories) {
			continue
		}
		out = append(out, *p)
	}

	sortProducts(out, q.SortBy, q.Order)

	res := FullResult{Query: q, Products: out, State: StateResults}
	if len(out) == 0 {
		res.State = StateIdle
		if q.Restricts() {
			res.State = StateNoMatches
		}
	}
	return res, nil
}

func matchesText(p *model.Product, t string) bool {
	if containsFold(p.Name, t) || containsFold(p.Description, t) {
		return true
	}
	for _, b := range p.Benefits {
		if containsFold(b, t) {
			return true
		}
	}
	return false
}

func matchesAnyCategory(p *model.Product, categories []model.Category) bool {
	name := strings.ToLower(p.Name)
	desc := strings.ToLower(p.Description)
	for _, c := range categories {
		for _, kw := range c.Keywords {
			if strings.Contains(name, kw) || strings.Contains(desc, kw) {
				return true
			}
		}
	}
	return false
}

// sortProducts orders by key; equal keys fall back to name then id so every key,
// rating included, yields one deterministic order.
func sortProducts(ps []model.Product, key SortKey, order SortOrder) {
	col := collate.New(language.English, collate.IgnoreCase)

	byName := func(a, b *model.Product) int {
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	}

	sort.SliceStable(ps, func(i, j int) bool {
		a, b := &ps[i], &ps[j]
		var c int
		switch key {
		case SortByPrice:
			c = a.Price.Cmp(b.Price)
		case SortByRating:
			c = compareFloat(a.Rating, b.Rating)
		}
		if c == 0 && key == SortByName {
			c = col.CompareString(a.Name, b.Name)
		}
		if order == Desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return byName(a, b) < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
