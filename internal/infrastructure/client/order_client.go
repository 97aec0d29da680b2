package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
)

// OrderClient is the HTTP adapter for the remote order service
type OrderClient struct {
	config     *ServiceConfig
	httpClient *http.Client
}

// NewOrderClient creates a new order service client
func NewOrderClient(config *ServiceConfig) (*OrderClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &OrderClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout()},
	}, nil
}

// orderItemWire is one order line as the order service expects it
type orderItemWire struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	ImagePath string `json:"imagePath"`
	TagNo     string `json:"tagNo"`
}

// SubmitOrder posts an assembled payload and returns the order id
func (c *OrderClient) SubmitOrder(ctx context.Context, userID string, payload checkout.OrderPayload) (string, error) {
	items := make([]orderItemWire, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, orderItemWire{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			ImagePath: item.ImagePath,
			TagNo:     item.TagNo,
		})
	}

	body, err := json.Marshal(map[string]any{
		"userId":      userID,
		"items":       items,
		"totalAmount": payload.TotalAmount.StringFixed(2),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: order service returned %d", shared.ErrNetworkFailure, resp.StatusCode)
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrNetworkFailure, err)
	}

	var result struct {
		OrderID string `json:"orderId"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrNetworkFailure, err)
	}
	if result.OrderID == "" {
		return "", fmt.Errorf("%w: order service returned no order id", shared.ErrNetworkFailure)
	}
	return result.OrderID, nil
}

// Ensure OrderClient implements the order service port
var _ checkout.OrderService = (*OrderClient)(nil)
