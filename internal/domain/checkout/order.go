package checkout

import (
	"time"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// OrderItem is a snapshot of one selected cart line at assembly time
type OrderItem struct {
	ProductID int64             `json:"productId"`
	Name      string            `json:"name"`
	Quantity  int64             `json:"quantity"`
	UnitPrice valueobject.Money `json:"unitPrice"`
	ImagePath string            `json:"imagePath"`
	TagNo     string            `json:"tagNo"`
}

// OrderPayload is the order-submission snapshot. It is constructed once
// from a derived view filtered to the selected lines and holds no live
// references to the stores: cart mutations after assembly cannot alter an
// already-assembled payload.
type OrderPayload struct {
	PayloadID   uuid.UUID         `json:"payloadId"`
	Items       []OrderItem       `json:"items"`
	TotalAmount valueobject.Money `json:"totalAmount"`
	AssembledAt time.Time         `json:"assembledAt"`
}

// AssembleOrder builds an order payload from the selected lines of a
// derived view. It fails with EMPTY_SELECTION when nothing is selected.
// The total is recomputed here from the emitted items rather than reusing
// the view's selected subtotal; callers compare the two as a consistency
// check.
func AssembleOrder(view DerivedCartView) (OrderPayload, error) {
	selected := view.SelectedLines()
	if len(selected) == 0 {
		return OrderPayload{}, shared.ErrEmptySelection
	}

	payload := OrderPayload{
		PayloadID:   uuid.New(),
		Items:       make([]OrderItem, 0, len(selected)),
		TotalAmount: valueobject.ZeroINR(),
		AssembledAt: time.Now(),
	}

	for _, lv := range selected {
		item := OrderItem{
			ProductID: lv.Line.ItemID,
			Quantity:  lv.Line.Quantity,
			UnitPrice: lv.EffectiveUnitPrice,
			ImagePath: lv.ImagePath,
			TagNo:     lv.Line.TagNo,
		}
		if lv.Product != nil {
			item.Name = lv.Product.Name
			if lv.Product.TagNo != "" {
				item.TagNo = lv.Product.TagNo
			}
		}
		payload.Items = append(payload.Items, item)
		payload.TotalAmount = payload.TotalAmount.MustAdd(item.UnitPrice.MultiplyByInt(item.Quantity))
	}

	return payload, nil
}

// TotalMatches reports whether the payload total equals the given subtotal.
// A mismatch indicates a reconciliation bug in the composing side; the
// payload total is the value to trust because it was recomputed from the
// emitted items.
func (p OrderPayload) TotalMatches(subtotal valueobject.Money) bool {
	return p.TotalAmount.Equals(subtotal)
}
