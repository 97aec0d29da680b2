package checkout

import (
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
)

// CartLineViewResponse is the per-line presentation of the derived view.
// Monetary fields are rounded to two places here and nowhere earlier.
type CartLineViewResponse struct {
	LineID       int64  `json:"lineId"`
	ItemID       int64  `json:"itemId"`
	Quantity     int64  `json:"quantity"`
	TagNo        string `json:"tagNo"`
	Name         string `json:"name,omitempty"`
	MetalPurity  string `json:"metalPurity,omitempty"`
	NetWeight    string `json:"netWeight,omitempty"`
	ImagePath    string `json:"imagePath"`
	UnitPrice    string `json:"unitPrice"`
	LineTotal    string `json:"lineTotal"`
	IsSelected   bool   `json:"isSelected"`
	StalePrice   bool   `json:"stalePrice"`
	ProductState string `json:"productState"`
}

// CartViewResponse is the presentation of the derived cart view
type CartViewResponse struct {
	Lines            []CartLineViewResponse `json:"lines"`
	SelectedSubtotal string                 `json:"selectedSubtotal"`
	SelectedCount    int64                  `json:"selectedCount"`
}

// ToCartViewResponse maps a derived view to its presentation form
func ToCartViewResponse(view checkout.DerivedCartView) CartViewResponse {
	resp := CartViewResponse{
		Lines:            make([]CartLineViewResponse, 0, len(view.Lines)),
		SelectedSubtotal: view.SelectedSubtotal.StringFixed(2),
		SelectedCount:    view.SelectedCount,
	}

	for _, lv := range view.Lines {
		line := CartLineViewResponse{
			LineID:       lv.Line.LineID,
			ItemID:       lv.Line.ItemID,
			Quantity:     lv.Line.Quantity,
			TagNo:        lv.Line.TagNo,
			ImagePath:    lv.ImagePath,
			UnitPrice:    lv.EffectiveUnitPrice.StringFixed(2),
			LineTotal:    lv.LineTotal.StringFixed(2),
			IsSelected:   lv.IsSelected,
			StalePrice:   lv.StalePrice,
			ProductState: lv.State.String(),
		}
		if lv.Product != nil {
			line.Name = lv.Product.Name
			line.MetalPurity = lv.Product.MetalPurity
			line.NetWeight = lv.Product.NetWeight.StringFixed(3)
			if lv.Product.TagNo != "" {
				line.TagNo = lv.Product.TagNo
			}
		}
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}

// OrderResponse is the presentation of a placed order
type OrderResponse struct {
	OrderID     string `json:"orderId"`
	ItemCount   int    `json:"itemCount"`
	TotalAmount string `json:"totalAmount"`
}
