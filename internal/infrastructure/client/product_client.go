package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
)

// ProductClient is the HTTP adapter for the remote product service
type ProductClient struct {
	config     *ServiceConfig
	httpClient *http.Client
}

// NewProductClient creates a new product service client
func NewProductClient(config *ServiceConfig) (*ProductClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &ProductClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout()},
	}, nil
}

// productWire is the product service's record representation. ImagePath is
// a JSON-encoded list delivered as a string field and must be parsed
// defensively.
type productWire struct {
	SNo         int64       `json:"sno"`
	ItemName    string      `json:"itemName"`
	GrandTotal  json.Number `json:"grandTotal"`
	NetWeight   json.Number `json:"netWeight"`
	ImagePath   string      `json:"imagePath"`
	TagNo       string      `json:"tagNo"`
	MetalPurity string      `json:"metalPurity"`
}

func (w productWire) toDomain() checkout.ProductRecord {
	return checkout.ProductRecord{
		ItemID:      w.SNo,
		Name:        w.ItemName,
		GrandTotal:  ParseDecimal(w.GrandTotal),
		NetWeight:   ParseDecimal(w.NetWeight),
		ImagePaths:  checkout.ParseImagePaths(w.ImagePath),
		TagNo:       w.TagNo,
		MetalPurity: w.MetalPurity,
	}
}

// FetchProduct retrieves the authoritative product record by item id
func (c *ProductClient) FetchProduct(ctx context.Context, itemID int64) (checkout.ProductRecord, error) {
	endpoint := fmt.Sprintf("%s/product?sno=%s", c.config.BaseURL, strconv.FormatInt(itemID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return checkout.ProductRecord{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return checkout.ProductRecord{}, fmt.Errorf("%w: %v", shared.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return checkout.ProductRecord{}, shared.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return checkout.ProductRecord{}, fmt.Errorf("%w: product service returned %d", shared.ErrNetworkFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return checkout.ProductRecord{}, fmt.Errorf("%w: %v", shared.ErrNetworkFailure, err)
	}

	var wire productWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return checkout.ProductRecord{}, fmt.Errorf("%w: %v", shared.ErrNetworkFailure, err)
	}
	return wire.toDomain(), nil
}

// Ensure ProductClient implements the product service port
var _ checkout.ProductService = (*ProductClient)(nil)
