// Package web is the storefront's HTTP surface: catalog reads, the bookmarkable
// search page, the checkout form post and the payment gateway return pages.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/fekuna/kiwi-storefront-service/internal/auth"
	"github.com/fekuna/kiwi-storefront-service/internal/cart"
	"github.com/fekuna/kiwi-storefront-service/internal/product"
	"github.com/fekuna/kiwi-storefront-service/internal/search"
	"github.com/fekuna/kiwi-storefront-service/pkg/i18n"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Handler struct {
	products product.UseCase
	search   search.UseCase
	carts    cart.UseCase
	tr       *i18n.Translator
	logger   logger.ZapLogger
}

func NewHandler(products product.UseCase, searchUC search.UseCase, carts cart.UseCase, tr *i18n.Translator, log logger.ZapLogger) *Handler {
	return &Handler{
		products: products,
		search:   searchUC,
		carts:    carts,
		tr:       tr,
		logger:   log,
	}
}

// Routes mounts every endpoint on a new chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)
	r.Use(sessionContext)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Get("/{id}", h.getProduct)
	})

	r.Get("/search", h.fullSearch)
	r.Get("/search/quick", h.quickSearch)

	r.Post("/checkout", h.checkout)
	r.Get("/payment/success", h.paymentResult("PaymentSuccessTitle", "PaymentSuccessBody"))
	r.Get("/payment/failure", h.paymentResult("PaymentFailureTitle", "PaymentFailureBody"))

	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func sessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sid := auth.SessionFromRequest(r); sid != "" {
			r = r.WithContext(auth.WithSessionID(r.Context(), sid))
		}
		next.ServeHTTP(w, r)
	})
}

// langs prefers an explicit ?lang= over the Accept-Language header.
func langs(r *http.Request) []string {
	var out []string
	if l := r.URL.Query().Get("lang"); l != "" {
		out = append(out, l)
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		out = append(out, al)
	}
	return out
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("render template", zap.String("template", name), zap.Error(err))
	}
}
