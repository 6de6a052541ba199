package plugins

import (
	"context"

	"github.com/agroinform/prices-web/pkg/services/analytics"
	"github.com/agroinform/prices-web/pkg/services/config"
)

const AnalyticsPlugin = "analytics"

// App is what startup plugins get to work with.
type App struct {
	Config    *config.Config
	Document  analytics.Document
	DataLayer *analytics.Holder
	Loader    *analytics.Loader
}

// Builtin returns every plugin shipped with the web host.
func Builtin() map[string]Plugin {
	return map[string]Plugin{
		AnalyticsPlugin: Analytics,
	}
}

// Analytics bootstraps tracking with the configured gtag ID.
func Analytics(ctx context.Context, app App) error {
	analytics.Bootstrap(ctx, analytics.Options{
		TrackingID: app.Config.Gtag.ID,
		Holder:     app.DataLayer,
		Document:   app.Document,
		Loader:     app.Loader,
	})
	return nil
}
