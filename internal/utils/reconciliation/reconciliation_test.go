package reconciliation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestComputeOverage(t *testing.T) {
	// opening 1000, income 500, expense 200, counted 1310 => expected 1300, +10
	res := Compute(d("1000"), d("500"), d("200"), d("1310"))

	assert.True(t, d("1300").Equal(res.ExpectedClosing), "expected closing should be 1300, got %s", res.ExpectedClosing)
	assert.True(t, d("10").Equal(res.Difference), "difference should be +10, got %s", res.Difference)
	assert.True(t, res.IsOverage())
	assert.False(t, res.IsShortage())
}

func TestComputeShortage(t *testing.T) {
	res := Compute(d("500"), d("120.50"), d("40.25"), d("570"))

	assert.True(t, d("580.25").Equal(res.ExpectedClosing))
	assert.True(t, d("-10.25").Equal(res.Difference))
	assert.True(t, res.IsShortage())
	assert.False(t, res.IsOverage())
}

func TestComputeExactMatch(t *testing.T) {
	// opening 100, income 250, expense 30, counted 320 => difference 0
	res := Compute(d("100"), d("250"), d("30"), d("320"))

	assert.True(t, d("320").Equal(res.ExpectedClosing))
	assert.True(t, res.Difference.IsZero(), "difference should be zero, got %s", res.Difference)
	assert.False(t, res.IsShortage())
	assert.False(t, res.IsOverage())
}

func TestComputeZeroActivity(t *testing.T) {
	res := Compute(d("75"), decimal.Zero, decimal.Zero, d("75"))

	assert.True(t, d("75").Equal(res.ExpectedClosing))
	assert.True(t, res.Difference.IsZero())
}
