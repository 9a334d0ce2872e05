package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"localereg/internal/domain"
	"localereg/internal/ports/input"
)

// Translations is what the handlers need from the registry service.
type Translations interface {
	input.Translations
	MatchAcceptLanguage(header string) string
}

type Handler struct {
	translations Translations
}

func NewHandler(t Translations) *Handler {
	return &Handler{translations: t}
}

type localesResponse struct {
	Fallback string   `json:"fallback"`
	Locales  []string `json:"locales"`
}

type valueResponse struct {
	Locale    string `json:"locale"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (h *Handler) ListLocales(w http.ResponseWriter, _ *http.Request) {
	locales := h.translations.Locales()
	if locales == nil {
		writeError(w, domain.ErrNotLoaded)
		return
	}
	writeJSON(w, http.StatusOK, localesResponse{Fallback: h.translations.Fallback(), Locales: locales})
}

func (h *Handler) GetNamespace(w http.ResponseWriter, r *http.Request) {
	h.namespace(w, urlParam(r, "locale"), urlParam(r, "namespace"))
}

// GetNamespaceNegotiated serves a namespace in the locale picked from the
// Accept-Language header.
func (h *Handler) GetNamespaceNegotiated(w http.ResponseWriter, r *http.Request) {
	locale := h.translations.MatchAcceptLanguage(r.Header.Get("Accept-Language"))
	w.Header().Set("Content-Language", locale)
	w.Header().Add("Vary", "Accept-Language")
	h.namespace(w, locale, urlParam(r, "namespace"))
}

func (h *Handler) namespace(w http.ResponseWriter, locale, namespace string) {
	table, err := h.translations.GetNamespace(locale, namespace)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) GetKey(w http.ResponseWriter, r *http.Request) {
	locale := urlParam(r, "locale")
	namespace := urlParam(r, "namespace")
	key := urlParam(r, "key")

	v, err := h.translations.Get(locale, namespace, key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, valueResponse{Locale: locale, Namespace: namespace, Key: key, Value: v})
}

// urlParam returns a decoded route parameter. chi matches on RawPath when the
// request escapes reserved characters (a%2Fb), and leaves the escapes in.
func urlParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrMissingTranslation), errors.Is(err, domain.ErrMissingNamespace):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := domain.Code(err)
	if code == "" {
		code = "internal"
	}
	writeJSON(w, statusFor(err), errorResponse{Code: code, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Printf("rest: encode response: %v", err)
	}
}
