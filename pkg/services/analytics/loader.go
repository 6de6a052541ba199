package analytics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
)

// Loader fetches remote scripts in the background. Loads are best effort: they
// are never retried, never cancelled, and their outcome is only logged.
type Loader struct {
	client *http.Client
	wg     sync.WaitGroup
}

func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client}
}

// Load starts fetching src and returns immediately.
func (l *Loader) Load(ctx context.Context, src string) {
	ctx = context.WithoutCancel(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		logger := zerolog.Ctx(ctx)
		if err := l.fetch(ctx, src); err != nil {
			logger.Debug().Err(err).Str("src", src).Msg("analytics script load failed")
			return
		}
		logger.Debug().Str("src", src).Msg("analytics script loaded")
	}()
}

// Wait blocks until every started load has finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

func (l *Loader) fetch(ctx context.Context, src string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
