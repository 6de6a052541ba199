package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agroinform/prices-web/pkg/adapters"
	"github.com/agroinform/prices-web/pkg/models/api"
	"github.com/agroinform/prices-web/pkg/models/domain"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 8 << 20

// Store is the part of the state store the HTTP API needs.
type Store interface {
	Snapshot() domain.State
	WeeklyReport() domain.WeeklyReport
	SetWeeklyReportState(patch domain.WeeklyReportPatch)
	ClearWeeklyReportState()
	SetCountryID(value string)
	SetLoading(value bool)
	Watch(ctx context.Context) <-chan domain.State
}

type Handler struct {
	store  Store
	maxAge time.Duration
	nowFn  func() time.Time
}

// NewHandler serves the state store. maxAge decides when the weekly report is
// reported as stale.
func NewHandler(store Store, maxAge time.Duration) *Handler {
	return &Handler{
		store:  store,
		maxAge: maxAge,
		nowFn:  time.Now,
	}
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	st := h.store.Snapshot()
	h.writeJSON(w, r, http.StatusOK, adapters.MapStateDomainToApi(st, h.stale(st.WeeklyReport)))
}

func (h *Handler) GetWeeklyReport(w http.ResponseWriter, r *http.Request) {
	report := h.store.WeeklyReport()
	h.writeJSON(w, r, http.StatusOK, adapters.MapWeeklyReportDomainToApi(report, h.stale(report)))
}

func (h *Handler) MergeWeeklyReport(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var patch domain.WeeklyReportPatch
	if err := decodeBody(w, r, &patch); err != nil {
		http.Error(w, fmt.Sprintf("invalid weekly report payload: %v", err), http.StatusBadRequest)
		return
	}

	h.store.SetWeeklyReportState(patch)
	logger.Debug().Strs("keys", patch.Keys()).Msg("weekly report merged")

	h.GetWeeklyReport(w, r)
}

func (h *Handler) ClearWeeklyReport(w http.ResponseWriter, r *http.Request) {
	h.store.ClearWeeklyReportState()
	zerolog.Ctx(r.Context()).Debug().Msg("weekly report cleared")

	h.GetWeeklyReport(w, r)
}

func (h *Handler) SetCountryID(w http.ResponseWriter, r *http.Request) {
	var body api.StringValue
	if err := decodeBody(w, r, &body); err != nil {
		http.Error(w, fmt.Sprintf("invalid country payload: %v", err), http.StatusBadRequest)
		return
	}

	h.store.SetCountryID(body.Value)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetLoading(w http.ResponseWriter, r *http.Request) {
	var body api.BoolValue
	if err := decodeBody(w, r, &body); err != nil {
		http.Error(w, fmt.Sprintf("invalid loading payload: %v", err), http.StatusBadRequest)
		return
	}

	h.store.SetLoading(body.Value)
	w.WriteHeader(http.StatusNoContent)
}

// Events streams the state as server-sent events: the current snapshot first,
// then one event per mutation.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	updates := h.store.Watch(ctx)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func(st domain.State) bool {
		data, err := json.Marshal(adapters.MapStateDomainToApi(st, h.stale(st.WeeklyReport)))
		if err != nil {
			logger.Error().Err(err).Msg("failed to encode state event")
			return false
		}
		if _, err := fmt.Fprintf(w, "event: state\ndata: %s\n\n", data); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send(h.store.Snapshot()) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-updates:
			if !ok || !send(st) {
				return
			}
		}
	}
}

func (h *Handler) stale(report domain.WeeklyReport) bool {
	return report.IsStale(h.nowFn(), h.maxAge)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

// decodeBody reads exactly one non-null JSON value from the request body.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return errors.New("body must not be null")
	}
	return json.Unmarshal(raw, v)
}
