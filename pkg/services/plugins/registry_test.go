package plugins

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroinform/prices-web/pkg/services/analytics"
	"github.com/agroinform/prices-web/pkg/services/config"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestRegistry_Register(t *testing.T) {
	noop := func(context.Context, App) error { return nil }

	tests := []struct {
		name    string
		plugin  string
		fn      Plugin
		wantErr string
	}{
		{name: "new plugin", plugin: "chart", fn: noop},
		{name: "empty name", plugin: "", fn: noop, wantErr: "plugin name cannot be empty"},
		{name: "nil plugin", plugin: "chart", fn: nil, wantErr: "plugin cannot be nil"},
		{name: "duplicate", plugin: AnalyticsPlugin, fn: noop, wantErr: `plugin "analytics" is already registered`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(Builtin())

			err := r.Register(tt.plugin, tt.fn)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{AnalyticsPlugin, tt.plugin}, r.ListPlugins())
		})
	}
}

func TestRegistry_RunInOrder(t *testing.T) {
	var calls []string
	record := func(name string) Plugin {
		return func(context.Context, App) error {
			calls = append(calls, name)
			return nil
		}
	}
	r := NewRegistry(map[string]Plugin{"a": record("a"), "b": record("b")})

	require.NoError(t, r.Run(testContext(t), App{}, []string{"b", "a", "b"}))

	assert.Equal(t, []string{"b", "a", "b"}, calls)
}

func TestRegistry_RunUnknownPluginRunsNothing(t *testing.T) {
	called := false
	r := NewRegistry(map[string]Plugin{"a": func(context.Context, App) error {
		called = true
		return nil
	}})

	err := r.Run(testContext(t), App{}, []string{"a", "chart"})

	assert.EqualError(t, err, `plugin "chart" is not registered`)
	assert.False(t, called)
}

func TestRegistry_RunStopsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	var calls []string
	r := NewRegistry(map[string]Plugin{
		"a": func(context.Context, App) error { calls = append(calls, "a"); return boom },
		"b": func(context.Context, App) error { calls = append(calls, "b"); return nil },
	})

	err := r.Run(testContext(t), App{}, []string{"a", "b"})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, calls)
}

type documentStub struct {
	scripts []analytics.Script
}

func (d *documentStub) AppendScript(s analytics.Script) {
	d.scripts = append(d.scripts, s)
}

func TestAnalyticsPlugin(t *testing.T) {
	doc := &documentStub{}
	app := App{
		Config:    &config.Config{Gtag: config.Gtag{ID: "G-PWQK6WQ58Q"}},
		Document:  doc,
		DataLayer: &analytics.Holder{},
	}

	require.NoError(t, NewRegistry(Builtin()).Run(testContext(t), app, []string{AnalyticsPlugin}))

	events := app.DataLayer.EnsureDataLayer().Events()
	require.Len(t, events, 2)
	assert.Equal(t, "js", events[0].Command)
	assert.Equal(t, analytics.Event{Command: "config", Args: []any{"G-PWQK6WQ58Q"}}, events[1])
	require.Len(t, doc.scripts, 1)
	assert.Equal(t, analytics.ScriptURL("G-PWQK6WQ58Q"), doc.scripts[0].Src)
}
