package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/fekuna/kiwi-storefront-service/internal/auth"
	"github.com/fekuna/kiwi-storefront-service/internal/cart"
	"github.com/fekuna/kiwi-storefront-service/internal/category"
	"github.com/fekuna/kiwi-storefront-service/internal/product"
	productdto "github.com/fekuna/kiwi-storefront-service/internal/product/dto"
	"github.com/fekuna/kiwi-storefront-service/internal/search"
	searchdto "github.com/fekuna/kiwi-storefront-service/internal/search/dto"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeJSON(w, http.StatusOK, productdto.ListProductsResponse{
		Products: productdto.FromModels(products),
		Total:    int32(len(products)),
	})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, product.ErrProductNotFound) {
		h.writeError(w, http.StatusNotFound, h.tr.T("ProductNotFound", nil, langs(r)...))
		return
	}
	if err != nil {
		h.logger.Error("failed to get product", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeJSON(w, http.StatusOK, productdto.ProductResponse{Product: productdto.FromModel(p)})
}

// searchPage is the full search view. Canonical is the bookmarkable URL; only the
// term is carried, filters and sort are view state.
type searchPage struct {
	searchdto.FullSearchResponse
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Hint      string `json:"hint,omitempty"`
	Canonical string `json:"canonical"`
}

func (h *Handler) fullSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := search.FullSearchParams{
		Term:        q.Get("q"),
		CategoryIDs: q["category"],
		MinPrice:    q.Get("min"),
		MaxPrice:    q.Get("max"),
		SortBy:      q.Get("sort"),
		Order:       q.Get("order"),
	}

	res, err := h.search.FullSearch(r.Context(), params)
	switch {
	case errors.Is(err, search.ErrInvalidSortKey),
		errors.Is(err, search.ErrInvalidSortOrder),
		errors.Is(err, search.ErrInvalidPriceRange),
		errors.Is(err, category.ErrCategoryNotFound):
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("full search failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	l := langs(r)
	page := searchPage{
		FullSearchResponse: *searchdto.FromFullResult(res),
		Title:              h.tr.T("SearchProducts", nil, l...),
		Summary:            h.tr.Plural("ProductsFound", len(res.Products), l...),
		Canonical:          canonicalSearchURL(res.Query.Term),
	}
	if res.Query.Term != "" {
		page.Title = h.tr.T("SearchResultsFor", map[string]any{"Term": res.Query.Term}, l...)
	}
	if len(res.Products) == 0 {
		page.Summary = h.tr.T("NoProductsFound", nil, l...)
		page.Hint = h.tr.T("NoProductsHint", nil, l...)
	}
	h.writeJSON(w, http.StatusOK, page)
}

func canonicalSearchURL(term string) string {
	if term == "" {
		return "/search"
	}
	return "/search?" + url.Values{"q": {term}}.Encode()
}

func (h *Handler) quickSearch(w http.ResponseWriter, r *http.Request) {
	res, err := h.search.QuickSearch(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("quick search failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeJSON(w, http.StatusOK, searchdto.FromResult(res))
}

type checkoutPage struct {
	Lang       string
	Title      string
	GatewayURL string
	Fields     []cart.PaymentField
}

// checkout renders a self-submitting form that posts the cart total to the gateway.
// Nothing is recorded server side; the gateway redirects to the payment pages.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	l := langs(r)
	sid := auth.GetSessionID(r.Context())
	if sid == "" {
		h.writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	form, err := h.carts.Checkout(r.Context(), sid)
	if errors.Is(err, cart.ErrEmptyCart) {
		h.writeError(w, http.StatusConflict, h.tr.T("CartEmpty", nil, l...))
		return
	}
	if err != nil {
		h.logger.Error("checkout failed", zap.String("session_id", sid), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.render(w, http.StatusOK, "checkout.html", checkoutPage{
		Lang:       pageLang(l),
		Title:      h.tr.T("RedirectingToPayment", nil, l...),
		GatewayURL: form.GatewayURL,
		Fields:     form.Fields,
	})
}

type paymentPage struct {
	Lang   string
	Title  string
	Body   string
	GoHome string
}

// paymentResult serves a gateway return page. The gateway's query parameters are not
// verified.
func (h *Handler) paymentResult(titleID, bodyID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := langs(r)
		h.logger.Info("payment gateway returned",
			zap.String("path", r.URL.Path),
			zap.String("session_id", auth.GetSessionID(r.Context())),
		)
		h.render(w, http.StatusOK, "payment.html", paymentPage{
			Lang:   pageLang(l),
			Title:  h.tr.T(titleID, nil, l...),
			Body:   h.tr.T(bodyID, nil, l...),
			GoHome: h.tr.T("GoHome", nil, l...),
		})
	}
}

func pageLang(langs []string) string {
	for _, l := range langs {
		tags, _, err := language.ParseAcceptLanguage(l)
		if err == nil && len(tags) > 0 {
			base, _ := tags[0].Base()
			return base.String()
		}
	}
	return "en"
}
