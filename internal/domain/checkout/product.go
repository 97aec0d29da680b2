package checkout

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PlaceholderImagePath is rendered whenever a product has no usable image,
// including when the image path payload from the product service is malformed
const PlaceholderImagePath = "/assets/images/product-placeholder.png"

// ProductRecord is the canonical, server-authoritative description of a
// sellable item. It is immutable once fetched and keyed by item id in the
// product detail cache; a record is never patched, only replaced wholesale
// by a fresh fetch.
type ProductRecord struct {
	ItemID      int64           `json:"itemId"`
	Name        string          `json:"name"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
	NetWeight   decimal.Decimal `json:"netWeight"`
	ImagePaths  []string        `json:"imagePaths"`
	TagNo       string          `json:"tagNo"`
	MetalPurity string          `json:"metalPurity"`
}

// PrimaryImagePath returns the first image path, or the placeholder when
// the product carries no usable image
func (p *ProductRecord) PrimaryImagePath() string {
	if p == nil || len(p.ImagePaths) == 0 || p.ImagePaths[0] == "" {
		return PlaceholderImagePath
	}
	return p.ImagePaths[0]
}

// ParseImagePaths decodes the JSON-encoded image path list the product
// service delivers as a string field. A malformed or empty payload is not
// an error: it degrades to an empty list and rendering substitutes the
// placeholder image. This rule applies identically everywhere a product
// image path is consumed.
func ParseImagePaths(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var paths []string
	if err := json.Unmarshal([]byte(raw), &paths); err != nil {
		return []string{}
	}
	filtered := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FetchState describes the lifecycle of a product record in the cache
type FetchState int

const (
	// FetchAbsent means no fetch has been requested for the item id
	FetchAbsent FetchState = iota
	// FetchPending means a fetch is in flight
	FetchPending
	// FetchResolved means the record is available
	FetchResolved
	// FetchFailed means the fetch failed and a retry must be requested explicitly
	FetchFailed
)

// String returns the string representation of the fetch state
func (s FetchState) String() string {
	switch s {
	case FetchPending:
		return "pending"
	case FetchResolved:
		return "resolved"
	case FetchFailed:
		return "failed"
	default:
		return "absent"
	}
}

// ProductLookup resolves cached product records by item id.
// It never blocks: an uncached id reports FetchAbsent and the caller
// requests the fetch separately.
type ProductLookup interface {
	Get(itemID int64) (*ProductRecord, FetchState)
}
