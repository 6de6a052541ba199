package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

func newTestServer(t *testing.T, status int, response string) (*StateClient, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		requests = append(requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", srv.Client())
	require.NoError(t, err)
	return NewStateClient(c), &requests
}

func TestNew_EmptyBaseURL(t *testing.T) {
	_, err := New("", nil)
	assert.EqualError(t, err, "base url is empty")
}

func TestStateClient_GetState(t *testing.T) {
	sc, requests := newTestServer(t, http.StatusOK,
		`{"countryId":"kg","loading":true,"weeklyReport":{"selectedYear":2023,"cachedAt":1700000000000}}`)

	st, err := sc.GetState(t.Context())

	require.NoError(t, err)
	assert.Equal(t, "kg", st.CountryID)
	assert.True(t, st.Loading)
	require.NotNil(t, st.WeeklyReport.SelectedYear)
	assert.Equal(t, 2023, *st.WeeklyReport.SelectedYear)
	require.NotNil(t, st.WeeklyReport.CachedAt)
	assert.Equal(t, int64(1700000000000), *st.WeeklyReport.CachedAt)
	assert.Equal(t, []recordedRequest{{Method: http.MethodGet, Path: "/api/v1/state"}}, *requests)
}

func TestStateClient_Mutations(t *testing.T) {
	tests := []struct {
		name     string
		call     func(sc *StateClient) error
		expected recordedRequest
	}{
		{
			name: "merge",
			call: func(sc *StateClient) error {
				_, err := sc.MergeWeeklyReport(t.Context(), json.RawMessage(`{"weekNumber":5}`))
				return err
			},
			expected: recordedRequest{Method: http.MethodPatch, Path: "/api/v1/state/weekly-report", Body: `{"weekNumber":5}`},
		},
		{
			name: "clear",
			call: func(sc *StateClient) error {
				_, err := sc.ClearWeeklyReport(t.Context())
				return err
			},
			expected: recordedRequest{Method: http.MethodDelete, Path: "/api/v1/state/weekly-report"},
		},
		{
			name:     "country",
			call:     func(sc *StateClient) error { return sc.SetCountryID(t.Context(), "tj") },
			expected: recordedRequest{Method: http.MethodPut, Path: "/api/v1/state/country", Body: `{"value":"tj"}`},
		},
		{
			name:     "loading",
			call:     func(sc *StateClient) error { return sc.SetLoading(t.Context(), false) },
			expected: recordedRequest{Method: http.MethodPut, Path: "/api/v1/state/loading", Body: `{"value":false}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, requests := newTestServer(t, http.StatusOK, `{}`)

			require.NoError(t, tt.call(sc))

			assert.Equal(t, []recordedRequest{tt.expected}, *requests)
		})
	}
}

func TestStateClient_ErrorStatus(t *testing.T) {
	sc, _ := newTestServer(t, http.StatusBadRequest, "invalid weekly report payload: unexpected EOF\n")

	_, err := sc.MergeWeeklyReport(t.Context(), json.RawMessage(`{`))

	assert.EqualError(t, err,
		"PATCH /api/v1/state/weekly-report: status 400: invalid weekly report payload: unexpected EOF")
}
