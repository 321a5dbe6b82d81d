package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCommission(t *testing.T) {
	cases := []struct {
		price      float64
		commission float64
		earnings   float64
	}{
		{100.00, 10.00, 90.00},
		{99.99, 10.00, 89.99},
		{0.01, 0.00, 0.01},
		{0.05, 0.01, 0.04},
		{33.35, 3.34, 30.01},
		{250.50, 25.05, 225.45},
		{0, 0, 0},
	}
	for _, tc := range cases {
		commission, earnings := SplitCommission(tc.price)
		assert.Equal(t, tc.commission, commission, "commission for %.2f", tc.price)
		assert.Equal(t, tc.earnings, earnings, "earnings for %.2f", tc.price)
	}
}

func TestSplitCommissionSumsExactly(t *testing.T) {
	for cents := int64(0); cents <= 100000; cents += 7 {
		price := float64(cents) / 100
		commission, earnings := SplitCommission(price)
		sum := int64(math.Round(commission*100)) + int64(math.Round(earnings*100))
		assert.Equal(t, cents, sum, "price %.2f", price)
	}
}
