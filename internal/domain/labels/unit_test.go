package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandUnits_OrderAndCounts(t *testing.T) {
	req := PrintRequest{
		{Product: product("Alpha", 10.00, 0, "VD01"), Quantity: 2},
		{Product: product("Beta", 20.00, 0, "VD01"), Quantity: 1},
	}

	units := ExpandUnits(req, "")

	require.Len(t, units, 3)
	assert.Equal(t, "Alpha", units[0].ProductName)
	assert.Equal(t, "Alpha", units[1].ProductName)
	assert.Equal(t, "Beta", units[2].ProductName)
	assert.Equal(t, units[0].Payload, units[1].Payload)
}

func TestExpandUnits_SkipsZeroQuantities(t *testing.T) {
	req := PrintRequest{
		{Product: product("Alpha", 10.00, 0, "VD01"), Quantity: 0},
		{Product: product("Beta", 20.00, 0, "VD01"), Quantity: 2},
		{Product: product("Gamma", 30.00, 0, "VD01"), Quantity: 0},
	}

	units := ExpandUnits(req, "")

	require.Len(t, units, 2)
	assert.Equal(t, "Beta", units[0].ProductName)
	assert.Equal(t, "Beta", units[1].ProductName)
}

func TestExpandUnits_UnitFields(t *testing.T) {
	req := PrintRequest{
		{Product: product("Wireless Bluetooth Headphones", 299.99, 249.99, ""), Quantity: 1},
	}

	units := ExpandUnits(req, "")

	require.Len(t, units, 1)
	unit := units[0]
	assert.Equal(t, "VD01-Wireless Bluetooth -$249.99", unit.Payload)
	assert.Equal(t, "Wireless Bluetooth Headphones", unit.ProductName)
	assert.Equal(t, DefaultVendorPrefix, unit.VendorLabel)
	assert.Equal(t, "249.99", unit.UnitPrice.StringFixed(2))
	assert.Equal(t, "prod-1", unit.SourceID)
	assert.True(t, unit.Truncated)
}

func TestExpandUnits_EmptyRequest(t *testing.T) {
	assert.Empty(t, ExpandUnits(nil, ""))
	assert.Empty(t, ExpandUnits(PrintRequest{}, ""))
}
