package checkout

import (
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared/valueobject"
)

// CartLineView is the per-line merge of cart line, cached product record
// and selection state. Product is nil until the fetch resolves; StalePrice
// marks lines whose fetch failed and are priced from the add-to-cart
// fallback. A line is never excluded from the total for a failed fetch:
// silently dropping a line from a money total is a worse failure mode than
// showing a possibly-stale number.
type CartLineView struct {
	Line               CartLine
	Product            *ProductRecord
	State              FetchState
	IsSelected         bool
	StalePrice         bool
	EffectiveUnitPrice valueobject.Money
	LineTotal          valueobject.Money
	ImagePath          string
}

// DerivedCartView is the computed merge of the three stores. It is a pure
// function of its inputs, recomputed from snapshots on every change and
// never stored persistently.
type DerivedCartView struct {
	Lines            []CartLineView
	SelectedSubtotal valueobject.Money
	SelectedCount    int64
}

// EffectiveUnitPrice resolves the price precedence for a line: the
// authoritative fetched price always wins over the fallback once available,
// and a missing fallback degrades to zero rather than failing.
func EffectiveUnitPrice(line CartLine, product *ProductRecord) valueobject.Money {
	if product != nil {
		return valueobject.NewMoneyINR(product.GrandTotal)
	}
	return valueobject.NewMoneyINR(line.FallbackAmount)
}

// ComposeView joins the cart lines, the product lookup and the selection
// into a derived view. Summation happens on unrounded decimals; rounding
// to two places is presentation-only and never applied before the sum.
func ComposeView(lines []CartLine, lookup ProductLookup, selection SelectionSet) DerivedCartView {
	view := DerivedCartView{
		Lines:            make([]CartLineView, 0, len(lines)),
		SelectedSubtotal: valueobject.ZeroINR(),
	}

	for _, line := range lines {
		product, state := lookup.Get(line.ItemID)

		unitPrice := EffectiveUnitPrice(line, product)
		lineTotal := unitPrice.MultiplyByInt(line.Quantity)
		selected := selection.Contains(line.LineID)

		lv := CartLineView{
			Line:               line,
			Product:            product,
			State:              state,
			IsSelected:         selected,
			StalePrice:         state == FetchFailed,
			EffectiveUnitPrice: unitPrice,
			LineTotal:          lineTotal,
			ImagePath:          product.PrimaryImagePath(),
		}
		view.Lines = append(view.Lines, lv)

		if selected {
			view.SelectedSubtotal = view.SelectedSubtotal.MustAdd(lineTotal)
			view.SelectedCount += line.Quantity
		}
	}

	return view
}

// SelectedLines returns the views of the selected lines in cart order
func (v DerivedCartView) SelectedLines() []CartLineView {
	selected := make([]CartLineView, 0, len(v.Lines))
	for _, lv := range v.Lines {
		if lv.IsSelected {
			selected = append(selected, lv)
		}
	}
	return selected
}

// MissingItemIDs returns the distinct item ids that have no cache entry yet
func (v DerivedCartView) MissingItemIDs() []int64 {
	seen := make(map[int64]struct{})
	missing := make([]int64, 0)
	for _, lv := range v.Lines {
		if lv.State != FetchAbsent {
			continue
		}
		if _, ok := seen[lv.Line.ItemID]; ok {
			continue
		}
		seen[lv.Line.ItemID] = struct{}{}
		missing = append(missing, lv.Line.ItemID)
	}
	return missing
}
