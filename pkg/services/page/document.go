package page

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/agroinform/prices-web/pkg/services/analytics"
	"github.com/agroinform/prices-web/pkg/services/config"
)

const shellTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}">
<head>
<title>{{.Title}}</title>
{{range .Meta}}{{if .Charset}}<meta charset="{{.Charset}}">
{{else}}<meta{{if .HID}} data-hid="{{.HID}}"{{end}} name="{{.Name}}" content="{{.Content}}">
{{end}}{{end}}{{range .Links}}<link rel="{{.Rel}}"{{if .Type}} type="{{.Type}}"{{end}} href="{{.Href}}">
{{end}}{{range .CSS}}<link rel="stylesheet" href="{{.}}">
{{end}}<script>window.__RUNTIME_CONFIG__ = {{.RuntimeConfig}};
window.dataLayer = window.dataLayer || [];
function gtag(){dataLayer.push(arguments);}
{{range .Events}}gtag({{.Command}}{{range .Args}}, {{jsArg .}}{{end}});
{{end}}</script>
{{range .Scripts}}<script src="{{.Src}}"{{if .Async}} async{{end}}></script>
{{end}}</head>
<body>
<div id="__nuxt" data-loading-color="{{.Loading.Color}}" data-loading-height="{{.Loading.Height}}"></div>
</body>
</html>
`

var shell = template.Must(template.New("shell").Funcs(template.FuncMap{
	"jsArg": jsArg,
}).Parse(shellTemplate))

// jsArg renders a gtag argument. Times become Date objects, as gtag('js', ...)
// expects; everything else is escaped as a JSON value.
func jsArg(v any) any {
	if t, ok := v.(time.Time); ok {
		return template.JS(fmt.Sprintf("new Date(%d)", t.UnixMilli()))
	}
	return v
}

// Document is the client application shell. Startup plugins append to its head.
type Document struct {
	cfg *config.Config

	mu      sync.RWMutex
	scripts []analytics.Script
}

func NewDocument(cfg *config.Config) *Document {
	return &Document{cfg: cfg}
}

func (d *Document) AppendScript(s analytics.Script) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scripts = append(d.scripts, s)
}

func (d *Document) Scripts() []analytics.Script {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]analytics.Script, len(d.scripts))
	copy(out, d.scripts)
	return out
}

// Title applies the title template to title.
func (d *Document) Title(title string) string {
	tmpl := d.cfg.Head.TitleTemplate
	if tmpl == "" {
		return title
	}
	return strings.ReplaceAll(tmpl, "%s", title)
}

// RenderData is the per request part of the shell.
type RenderData struct {
	Locale        config.Locale
	RuntimeConfig any
	Events        []analytics.Event
}

type shellView struct {
	Lang          string
	Dir           string
	Title         string
	Meta          []config.Meta
	Links         []config.Link
	CSS           []string
	RuntimeConfig any
	Events        []analytics.Event
	Scripts       []analytics.Script
	Loading       config.Loading
}

func (d *Document) Render(w io.Writer, data RenderData) error {
	view := shellView{
		Lang:          d.cfg.Head.HTMLAttrs.Lang,
		Dir:           "ltr",
		Title:         d.Title(d.cfg.Head.Title),
		Meta:          d.cfg.Head.Meta,
		Links:         d.cfg.Head.Link,
		CSS:           d.cfg.CSS,
		RuntimeConfig: data.RuntimeConfig,
		Events:        data.Events,
		Scripts:       d.Scripts(),
		Loading:       d.cfg.Loading,
	}
	if data.Locale.ISO != "" {
		view.Lang = data.Locale.ISO
	}
	if data.Locale.Dir != "" {
		view.Dir = data.Locale.Dir
	}

	if err := shell.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render shell: %w", err)
	}
	return nil
}
