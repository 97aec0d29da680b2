package checkout

import (
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CartLine is one entry in the user's cart as acknowledged by the cart
// service. Quantity and existence are only ever mutated through
// server-confirmed add/remove operations; the fallback figures are the
// price and weight recorded at add-to-cart time and are used only until
// the authoritative product record has been fetched.
type CartLine struct {
	LineID            int64           `json:"lineId"`
	ItemID            int64           `json:"itemId"`
	Quantity          int64           `json:"quantity"`
	FallbackAmount    decimal.Decimal `json:"fallbackAmount"`
	FallbackNetWeight decimal.Decimal `json:"fallbackNetWeight"`
	TagNo             string          `json:"tagNo"`
}

// AddLineSpec describes a request to add an item to the cart.
// The cart service is the source of truth for the resulting line.
type AddLineSpec struct {
	ItemID   int64           `json:"itemId"`
	Quantity int64           `json:"quantity"`
	TagNo    string          `json:"tagNo"`
	Weight   decimal.Decimal `json:"weight"`
	Amount   decimal.Decimal `json:"amount"`
}

// Validate checks the spec before it is sent to the cart service
func (s AddLineSpec) Validate() error {
	if s.ItemID <= 0 {
		return shared.NewDomainError("INVALID_ITEM", "Item ID must be positive")
	}
	if s.Quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if s.Amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if s.Weight.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	return nil
}

// LineIDs returns the line ids of the given cart lines in order
func LineIDs(lines []CartLine) []int64 {
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.LineID)
	}
	return ids
}
