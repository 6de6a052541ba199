package app

import (
	"encoding/json"
	"net/http"
	"path"

	"github.com/agroinform/prices-web/pkg/adapters"
	"github.com/agroinform/prices-web/pkg/services/analytics"
	"github.com/agroinform/prices-web/pkg/services/config"
	"github.com/agroinform/prices-web/pkg/services/page"
	"github.com/rs/zerolog"
)

type Handler struct {
	cfg       *config.Config
	document  *page.Document
	dataLayer *analytics.Holder
}

func NewHandler(cfg *config.Config, document *page.Document, dataLayer *analytics.Holder) *Handler {
	return &Handler{
		cfg:       cfg,
		document:  document,
		dataLayer: dataLayer,
	}
}

// Shell renders the client application page for any non API path. Paths with a
// file extension are asset requests and are not answered with the page.
func (h *Handler) Shell(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	if path.Ext(r.URL.Path) != "" {
		http.NotFound(w, r)
		return
	}

	locale := h.cfg.I18n.Resolve(r)
	if !h.cfg.I18n.HasCookie(r) {
		h.cfg.I18n.SetCookie(w, locale)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := h.document.Render(w, page.RenderData{
		Locale:        locale,
		RuntimeConfig: adapters.MapRuntimeConfigToApi(h.cfg),
		Events:        h.dataLayer.EnsureDataLayer().Events(),
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("locale", locale.Code).
			Msg("failed to render shell")
	}
}

func (h *Handler) RuntimeConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(adapters.MapRuntimeConfigToApi(h.cfg))
	if err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode runtime config")
	}
}
