// Package inventory talks to the warehouse service over HTTP.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// stockAdjustmentRequest is one adjustment line on the wire. Positive
// quantities restock, negative quantities decrement.
type stockAdjustmentRequest struct {
	ProductRef string `json:"product_ref"`
	Country    string `json:"country"`
	Quantity   int    `json:"quantity"`
}

// Client sends stock adjustments to the warehouse service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.InventoryClient = (*Client)(nil)

// NewClient creates a warehouse client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AdjustStock posts the adjustments as a single batch. The warehouse
// applies the batch atomically, so callers never see a partial apply.
func (c *Client) AdjustStock(ctx context.Context, adjustments []order.StockAdjustment) error {
	if len(adjustments) == 0 {
		return nil
	}

	payload := make([]stockAdjustmentRequest, len(adjustments))
	for i, adjustment := range adjustments {
		payload[i] = stockAdjustmentRequest{
			ProductRef: adjustment.ProductRef,
			Country:    adjustment.Country.String(),
			Quantity:   adjustment.Quantity,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal stock adjustments: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/stock/adjustments", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build stock adjustment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send stock adjustments: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("warehouse rejected stock adjustments: status %d", resp.StatusCode)
	}

	return nil
}
