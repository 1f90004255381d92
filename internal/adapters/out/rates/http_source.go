// Package rates fetches currency exchange-rate tables from the rate
// provider service.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ratesResponse is the provider's payload: currency code → pivot rate.
type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// HTTPSource pulls rate tables from an HTTP rate provider.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

var _ ports.RateSource = (*HTTPSource)(nil)

// NewHTTPSource creates a rate source reading from the given URL.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch retrieves the current rate table. The table is returned whole so
// the caller can swap it in atomically.
func (s *HTTPSource) Fetch(ctx context.Context) (services.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rates payload: %w", err)
	}

	table := make(services.RateTable, len(payload.Rates))
	for code, rate := range payload.Rates {
		table[kernel.Currency(code)] = rate
	}

	return table, nil
}
