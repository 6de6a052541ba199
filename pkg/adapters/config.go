package adapters

import (
	"github.com/agroinform/prices-web/pkg/models/api"
	"github.com/agroinform/prices-web/pkg/services/config"
)

func MapRuntimeConfigToApi(cfg *config.Config) api.RuntimeConfig {
	res := api.RuntimeConfig{
		Environment:    string(cfg.Environment),
		BaseURL:        cfg.PublicRuntime.BaseURL,
		PDFServiceURL:  cfg.PublicRuntime.PDFServiceURL,
		TrackingID:     cfg.Gtag.ID,
		DefaultLocale:  cfg.I18n.DefaultLocale,
		FallbackLocale: cfg.I18n.FallbackLocale,
		Locales:        make([]api.Locale, 0, len(cfg.I18n.Locales)),
	}
	for _, l := range cfg.I18n.Locales {
		res.Locales = append(res.Locales, api.Locale{
			Code: l.Code,
			ISO:  l.ISO,
			File: l.File,
			Dir:  l.Dir,
		})
	}
	return res
}
