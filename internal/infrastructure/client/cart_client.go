package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
)

// CartClient is the HTTP adapter for the remote cart service
type CartClient struct {
	config     *ServiceConfig
	httpClient *http.Client
}

// NewCartClient creates a new cart service client
func NewCartClient(config *ServiceConfig) (*CartClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &CartClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout()},
	}, nil
}

// cartLineWire is the cart service's line representation
type cartLineWire struct {
	SNo       int64       `json:"sno"`
	ItemID    int64       `json:"itemId"`
	Quantity  int64       `json:"quantity"`
	Amount    json.Number `json:"amount"`
	NetWeight json.Number `json:"weight"`
	TagNo     string      `json:"tagNo"`
}

func (w cartLineWire) toDomain() checkout.CartLine {
	return checkout.CartLine{
		LineID:            w.SNo,
		ItemID:            w.ItemID,
		Quantity:          w.Quantity,
		FallbackAmount:    ParseDecimal(w.Amount),
		FallbackNetWeight: ParseDecimal(w.NetWeight),
		TagNo:             w.TagNo,
	}
}

// FetchLines returns the full current cart for the user
func (c *CartClient) FetchLines(ctx context.Context, userID string) ([]checkout.CartLine, error) {
	endpoint := fmt.Sprintf("%s/cart?userId=%s", c.config.BaseURL, url.QueryEscape(userID))
	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var wires []cartLineWire
	if err := json.Unmarshal(body, &wires); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetworkFailure, err)
	}

	lines := make([]checkout.CartLine, 0, len(wires))
	for _, w := range wires {
		lines = append(lines, w.toDomain())
	}
	return lines, nil
}

// AddLine appends or merges a line and returns the server-acknowledged result
func (c *CartClient) AddLine(ctx context.Context, userID string, spec checkout.AddLineSpec) (checkout.CartLine, error) {
	if err := spec.Validate(); err != nil {
		return checkout.CartLine{}, err
	}

	payload, err := json.Marshal(map[string]any{
		"userId":   userID,
		"itemId":   spec.ItemID,
		"quantity": spec.Quantity,
		"tagNo":    spec.TagNo,
		"weight":   spec.Weight.String(),
		"amount":   spec.Amount.String(),
	})
	if err != nil {
		return checkout.CartLine{}, err
	}

	body, err := c.do(ctx, http.MethodPost, c.config.BaseURL+"/cart/add", payload)
	if err != nil {
		return checkout.CartLine{}, err
	}

	var wire cartLineWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return checkout.CartLine{}, fmt.Errorf("%w: %v", shared.ErrNetworkFailure, err)
	}
	return wire.toDomain(), nil
}

// RemoveLine deletes a line; callers reflect the removal only after this
// returns without error
func (c *CartClient) RemoveLine(ctx context.Context, userID string, lineID int64) error {
	endpoint := fmt.Sprintf("%s/cart/%s?userId=%s",
		c.config.BaseURL, strconv.FormatInt(lineID, 10), url.QueryEscape(userID))
	_, err := c.do(ctx, http.MethodDelete, endpoint, nil)
	return err
}

func (c *CartClient) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: cart service returned %d", shared.ErrNetworkFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetworkFailure, err)
	}
	return body, nil
}

// Ensure CartClient implements the cart service port
var _ checkout.CartService = (*CartClient)(nil)
