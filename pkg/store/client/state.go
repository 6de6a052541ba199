package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/agroinform/prices-web/pkg/models/api"
)

// StateClient drives the state API of a running web host.
type StateClient struct {
	client *Client
}

func NewStateClient(c *Client) *StateClient {
	return &StateClient{client: c}
}

func (sc *StateClient) GetState(ctx context.Context) (*api.State, error) {
	var st api.State
	if err := sc.client.Do(ctx, http.MethodGet, "/api/v1/state", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (sc *StateClient) GetConfig(ctx context.Context) (*api.RuntimeConfig, error) {
	var cfg api.RuntimeConfig
	if err := sc.client.Do(ctx, http.MethodGet, "/api/v1/config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MergeWeeklyReport sends a partial weekly report document as is.
func (sc *StateClient) MergeWeeklyReport(ctx context.Context, patch json.RawMessage) (*api.WeeklyReport, error) {
	var report api.WeeklyReport
	err := sc.client.Do(ctx, http.MethodPatch, "/api/v1/state/weekly-report", bytes.NewReader(patch), &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (sc *StateClient) ClearWeeklyReport(ctx context.Context) (*api.WeeklyReport, error) {
	var report api.WeeklyReport
	if err := sc.client.Do(ctx, http.MethodDelete, "/api/v1/state/weekly-report", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (sc *StateClient) SetCountryID(ctx context.Context, value string) error {
	return sc.client.doJSON(ctx, http.MethodPut, "/api/v1/state/country", api.StringValue{Value: value}, nil)
}

func (sc *StateClient) SetLoading(ctx context.Context, value bool) error {
	return sc.client.doJSON(ctx, http.MethodPut, "/api/v1/state/loading", api.BoolValue{Value: value}, nil)
}
