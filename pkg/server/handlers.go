package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/nikogura/resume-render/pkg/locale"
)

const cookieMaxAge = 365 * 24 * 60 * 60

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// Detect resolves the request locale: ?lng, then the lng cookie, then
// Accept-Language, then the fallback.
func Detect(r *http.Request) (tag language.Tag, source locale.Source) {
	signals := locale.Signals{
		Query:    r.URL.Query().Get(QueryParam),
		Platform: locale.FromAcceptLanguage(r.Header.Get("Accept-Language")),
	}
	if c, err := r.Cookie(CookieName); err == nil {
		signals.Cached = c.Value
	}
	tag, source = locale.Detect(signals)
	return tag, source
}

// SwitchLink is the href of the locale switch for tag.
func SwitchLink(tag language.Tag) (href string) {
	href = "/lang/" + tag.String()
	return href
}

func setLocaleCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   cookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	tag, source := Detect(r)
	if source == locale.SourceQuery {
		setLocaleCookie(w, tag)
	}

	content, err := s.renderer.Render(r.Context(), tag, SwitchLink)
	if err != nil {
		s.log.Error("render failed", "locale", tag.String(), "error", err)
		http.Error(w, "failed to render résumé", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", tag.String())
	w.Header().Set("Vary", "Cookie, Accept-Language")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(content)
}

func (s *Server) handleSwitch(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "locale")
	tag, ok := locale.Normalize(raw)
	if !ok {
		http.Error(w, "unsupported locale: "+raw, http.StatusBadRequest)
		return
	}

	setLocaleCookie(w, tag)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	tag, _ := Detect(r)

	result, err := s.renderer.Load(r.Context(), tag)
	if err != nil {
		s.log.Error("load failed", "locale", tag.String(), "error", err)
		jsonError(w, "failed to load document", http.StatusBadGateway)
		return
	}

	data, err := result.Merged.MarshalJSON()
	if err != nil {
		jsonError(w, "failed to encode document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Language", tag.String())
	_, _ = w.Write(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
