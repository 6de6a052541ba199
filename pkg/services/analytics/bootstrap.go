package analytics

import (
	"context"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const tagManagerURL = "https://www.googletagmanager.com/gtag/js"

// Script is a script directive inserted into the page head.
type Script struct {
	Src   string
	Async bool
}

// Document is the page the bootstrap writes its script directive into.
type Document interface {
	AppendScript(s Script)
}

type Options struct {
	TrackingID string
	Holder     *Holder
	Document   Document
	Loader     *Loader
	// Now defaults to time.Now.
	Now func() time.Time
}

// ScriptURL is the remote tag script for a tracking ID.
func ScriptURL(trackingID string) string {
	return tagManagerURL + "?id=" + url.QueryEscape(trackingID)
}

// Bootstrap initialises tracking: it ensures the data layer exists, queues the
// js and config events, inserts the async tag script into the document, and
// starts loading that script without waiting for it.
func Bootstrap(ctx context.Context, opts Options) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	holder := opts.Holder
	if holder == nil {
		holder = &Holder{}
	}
	layer := holder.EnsureDataLayer()
	layer.Push(Event{Command: "js", Args: []any{now()}})
	layer.Push(Event{Command: "config", Args: []any{opts.TrackingID}})

	src := ScriptURL(opts.TrackingID)
	if opts.Document != nil {
		opts.Document.AppendScript(Script{Src: src, Async: true})
	}
	if opts.Loader != nil {
		opts.Loader.Load(ctx, src)
	}

	zerolog.Ctx(ctx).Info().Str("tracking_id", opts.TrackingID).Msg("analytics bootstrapped")
}
