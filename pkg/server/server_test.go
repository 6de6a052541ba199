package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agroinform/prices-web/pkg/models/api"
	"github.com/agroinform/prices-web/pkg/services/analytics"
	"github.com/agroinform/prices-web/pkg/services/config"
	"github.com/agroinform/prices-web/pkg/services/page"
	"github.com/agroinform/prices-web/pkg/services/state"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	cfg, err := config.Load(config.LoadOptions{Environment: config.EnvironmentDevelopment})
	require.NoError(t, err)

	cachedAt := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	store := state.NewStore(state.WithClock(func() time.Time { return cachedAt }))
	document := page.NewDocument(cfg)
	holder := &analytics.Holder{}
	analytics.Bootstrap(logger.WithContext(t.Context()), analytics.Options{
		TrackingID: cfg.Gtag.ID,
		Holder:     holder,
		Document:   document,
	})

	config := Config{
		Addr:            ":3000",
		ShutdownTimeout: 10 * time.Second,
		ReportMaxAge:    100 * 365 * 24 * time.Hour,
		Dependencies: Dependencies{
			Config:    cfg,
			Store:     store,
			Document:  document,
			DataLayer: holder,
			Logger:    logger,
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	year := 2023
	week := 5
	cachedAtMs := cachedAt.UnixMilli()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "RuntimeConfig",
			method:         http.MethodGet,
			path:           "/api/v1/config",
			expectedStatus: http.StatusOK,
			expected: api.RuntimeConfig{
				Environment:    "development",
				BaseURL:        "http://agroinform-prices-backend.test/api",
				PDFServiceURL:  "http://localhost:3002",
				TrackingID:     "G-PWQK6WQ58Q",
				DefaultLocale:  "ru",
				FallbackLocale: "ru",
				Locales: []api.Locale{
					{Code: "en", ISO: "en-US", File: "en-US.js", Dir: "ltr"},
					{Code: "ru", ISO: "ru-RU", File: "ru-RU.js", Dir: "ltr"},
					{Code: "tj", ISO: "tj-TJ", File: "tj-TJ.js", Dir: "ltr"},
					{Code: "kg", ISO: "kg-KG", File: "kg-KG.js", Dir: "ltr"},
				},
			},
			parseResponse: unmarshalResponse[api.RuntimeConfig](),
		},
		{
			name:           "MergeWeeklyReport",
			method:         http.MethodPatch,
			path:           "/api/v1/state/weekly-report",
			body:           `{"selectedYear":2023,"weekNumber":5}`,
			expectedStatus: http.StatusOK,
			expected: [3]interface{}{&year, &week, &cachedAtMs},
			parseResponse: func(data []byte) (interface{}, error) {
				var r api.WeeklyReport
				err := json.Unmarshal(data, &r)
				return [3]interface{}{r.SelectedYear, r.WeekNumber, r.CachedAt}, err
			},
		},
		{
			name:           "MergeWeeklyReport_InvalidBody",
			method:         http.MethodPatch,
			path:           "/api/v1/state/weekly-report",
			body:           `{"weekNumber":"five"}`,
			expectedStatus: http.StatusBadRequest,
			expected:       true,
			parseResponse: func(data []byte) (interface{}, error) {
				return strings.HasPrefix(string(data), "invalid weekly report payload"), nil
			},
		},
		{
			name:           "SetCountryID",
			method:         http.MethodPut,
			path:           "/api/v1/state/country",
			body:           `{"value":"kg"}`,
			expectedStatus: http.StatusNoContent,
			expected:       "",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:           "GetState",
			method:         http.MethodGet,
			path:           "/api/v1/state",
			expectedStatus: http.StatusOK,
			expected:       [3]interface{}{"kg", false, &year},
			parseResponse: func(data []byte) (interface{}, error) {
				var s api.State
				err := json.Unmarshal(data, &s)
				return [3]interface{}{s.CountryID, s.Loading, s.WeeklyReport.SelectedYear}, err
			},
		},
		{
			name:           "ClearWeeklyReport",
			method:         http.MethodDelete,
			path:           "/api/v1/state/weekly-report",
			expectedStatus: http.StatusOK,
			expected:       [2]interface{}{(*int)(nil), (*int64)(nil)},
			parseResponse: func(data []byte) (interface{}, error) {
				var r api.WeeklyReport
				err := json.Unmarshal(data, &r)
				return [2]interface{}{r.SelectedYear, r.CachedAt}, err
			},
		},
		{
			name:           "Shell",
			method:         http.MethodGet,
			path:           "/reports/weekly",
			expectedStatus: http.StatusOK,
			expected:       true,
			parseResponse: func(data []byte) (interface{}, error) {
				html := string(data)
				return strings.Contains(html, `<html lang="ru-RU"`) &&
					strings.Contains(html, `https://www.googletagmanager.com/gtag/js?id=G-PWQK6WQ58Q`) &&
					strings.Contains(html, `gtag("config", "G-PWQK6WQ58Q");`), nil
			},
		},
		{
			name:           "Favicon",
			method:         http.MethodGet,
			path:           "/favicon.ico",
			expectedStatus: http.StatusNotFound,
			expected:       "404 page not found\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err, "Failed to build request")
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestWebAPI_ShellSetsLocaleCookie(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)

	router := ConfigureRouter(Config{
		Dependencies: Dependencies{
			Config:    cfg,
			Store:     state.NewStore(),
			Document:  page.NewDocument(cfg),
			DataLayer: &analytics.Holder{},
			Logger:    zerolog.New(zerolog.NewTestWriter(t)),
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="en-US" dir="ltr">`)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "i18n_redirected", cookies[0].Name)
	assert.Equal(t, "en", cookies[0].Value)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies())
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
