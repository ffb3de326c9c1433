package dto

import (
	"github.com/fekuna/kiwi-storefront-service/internal/model"
	productdto "github.com/fekuna/kiwi-storefront-service/internal/product/dto"
	"github.com/fekuna/kiwi-storefront-service/internal/search"
)

type QuickSearchRequest struct {
	Query string `json:"query"`
}

type QuickSearchResponse struct {
	Query    string               `json:"query"`
	State    string               `json:"state"`
	Products []productdto.Product `json:"products"`
	Total    int32                `json:"total"`
}

type FullSearchRequest struct {
	Query      string   `json:"query"`
	Categories []string `json:"categories"`
	MinPrice   string   `json:"minPrice"`
	MaxPrice   string   `json:"maxPrice"`
	SortBy     string   `json:"sortBy"`
	Order      string   `json:"order"`
}

type FullSearchResponse struct {
	Query    string               `json:"query"`
	State    string               `json:"state"`
	Products []productdto.Product `json:"products"`
	Total    int32                `json:"total"`
}

// Session event types accepted on the QuickSearchSession stream.
const (
	EventOpen    = "open"
	EventType    = "type"
	EventNext    = "next"
	EventPrev    = "prev"
	EventConfirm = "confirm"
	EventCancel  = "cancel"
)

type SessionEvent struct {
	Type  string `json:"type"`
	Query string `json:"query,omitempty"`
}

// SessionState is pushed after every event and after every debounced search pass.
// Selected is set only on the reply to a confirm that picked a product.
type SessionState struct {
	Open     bool                 `json:"open"`
	Query    string               `json:"query"`
	Loading  bool                 `json:"loading"`
	State    string               `json:"state"`
	Products []productdto.Product `json:"products"`
	Total    int32                `json:"total"`
	Cursor   int32                `json:"cursor"`
	Selected *productdto.Product  `json:"selected,omitempty"`
}

func (r *FullSearchRequest) ToParams() search.FullSearchParams {
	return search.FullSearchParams{
		Term:        r.Query,
		CategoryIDs: r.Categories,
		MinPrice:    r.MinPrice,
		MaxPrice:    r.MaxPrice,
		SortBy:      r.SortBy,
		Order:       r.Order,
	}
}

func FromResult(res search.Result) *QuickSearchResponse {
	return &QuickSearchResponse{
		Query:    res.Query,
		State:    res.State.String(),
		Products: productdto.FromModels(res.Products),
		Total:    int32(res.Total),
	}
}

func FromFullResult(res search.FullResult) *FullSearchResponse {
	return &FullSearchResponse{
		Query:    res.Query.Term,
		State:    res.State.String(),
		Products: productdto.FromModels(res.Products),
		Total:    int32(len(res.Products)),
	}
}

func FromSessionState(st search.SessionState, selected *model.Product) *SessionState {
	out := &SessionState{
		Open:     st.Open,
		Query:    st.Query,
		Loading:  st.Loading,
		State:    st.Result.State.String(),
		Products: productdto.FromModels(st.Result.Products),
		Total:    int32(st.Result.Total),
		Cursor:   int32(st.Cursor),
	}
	if selected != nil {
		p := productdto.FromModel(selected)
		out.Selected = &p
	}
	return out
}
