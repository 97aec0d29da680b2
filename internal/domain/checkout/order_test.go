package checkout

import (
	"testing"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assembledView(t *testing.T) DerivedCartView {
	t.Helper()
	lines := []CartLine{
		cartLine(1, 10, 2, 100),
		cartLine(2, 20, 1, 50),
	}
	lookup := newStubLookup()
	lookup.resolve(ProductRecord{
		ItemID:     10,
		Name:       "Gold Chain",
		GrandTotal: decimal.NewFromInt(150),
		TagNo:      "JG-2001",
		ImagePaths: []string{"chain.jpg"},
	})
	lookup.fail(20)
	return ComposeView(lines, lookup, selectionOf(1, 2))
}

func TestAssembleOrderEmptySelection(t *testing.T) {
	view := ComposeView([]CartLine{cartLine(1, 10, 1, 100)}, newStubLookup(), NewSelectionSet())

	payload, err := AssembleOrder(view)

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrEmptySelection)
	assert.Empty(t, payload.Items, "no partial payload on empty selection")
}

func TestAssembleOrderSnapshotsSelectedLines(t *testing.T) {
	view := assembledView(t)

	payload, err := AssembleOrder(view)
	require.NoError(t, err)

	require.Len(t, payload.Items, 2)
	assert.Equal(t, "Gold Chain", payload.Items[0].Name)
	assert.Equal(t, "JG-2001", payload.Items[0].TagNo)
	assert.Equal(t, "chain.jpg", payload.Items[0].ImagePath)
	assert.Equal(t, int64(2), payload.Items[0].Quantity)
	assert.Equal(t, "150.00", payload.Items[0].UnitPrice.StringFixed(2))

	// Failed-fetch line is included at its fallback price with the
	// placeholder image, never dropped from the order
	assert.Equal(t, "50.00", payload.Items[1].UnitPrice.StringFixed(2))
	assert.Equal(t, PlaceholderImagePath, payload.Items[1].ImagePath)

	assert.Equal(t, "350.00", payload.TotalAmount.StringFixed(2))
	assert.True(t, payload.TotalMatches(view.SelectedSubtotal))
}

func TestAssembleOrderIsPure(t *testing.T) {
	view := assembledView(t)

	first, err := AssembleOrder(view)
	require.NoError(t, err)
	second, err := AssembleOrder(view)
	require.NoError(t, err)

	// Identifiers and timestamps differ per payload; the snapshot content
	// must be structurally equal
	assert.Equal(t, first.Items, second.Items)
	assert.True(t, first.TotalAmount.Equals(second.TotalAmount))
}

func TestAssembleOrderImmuneToLaterMutation(t *testing.T) {
	lines := []CartLine{cartLine(1, 10, 2, 100)}
	lookup := newStubLookup()
	lookup.resolve(ProductRecord{ItemID: 10, Name: "Ring", GrandTotal: decimal.NewFromInt(150)})
	view := ComposeView(lines, lookup, selectionOf(1))

	payload, err := AssembleOrder(view)
	require.NoError(t, err)

	// Mutating the inputs after assembly must not change the payload
	lines[0].Quantity = 99
	lookup.resolve(ProductRecord{ItemID: 10, Name: "Ring", GrandTotal: decimal.NewFromInt(999)})

	assert.Equal(t, int64(2), payload.Items[0].Quantity)
	assert.Equal(t, "300.00", payload.TotalAmount.StringFixed(2))
}

func TestTotalMatchesDetectsDrift(t *testing.T) {
	view := assembledView(t)
	payload, err := AssembleOrder(view)
	require.NoError(t, err)

	drifted := view.SelectedSubtotal.MustAdd(view.SelectedSubtotal)
	assert.False(t, payload.TotalMatches(drifted))
}
