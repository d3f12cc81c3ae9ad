package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fulfillment/internal/core/domain/model/kernel"
)

func TestMoney_Dollars(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{name: "zero", cents: 0, want: "0.00"},
		{name: "single cent", cents: 1, want: "0.01"},
		{name: "whole dollars", cents: 4500, want: "45.00"},
		{name: "large amount", cents: 123450, want: "1234.50"},
		{name: "negative", cents: -505, want: "-5.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kernel.NewMoney(tt.cents).Dollars())
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "$45.00", kernel.NewMoney(4500).String())
	assert.Equal(t, "$1,234.50", kernel.NewMoney(123450).String())
	assert.Equal(t, "-$5.00", kernel.NewMoney(-500).String())
}

func TestMoney_Arithmetic(t *testing.T) {
	a := kernel.NewMoney(1000)
	b := kernel.NewMoney(250)

	assert.Equal(t, int64(1250), a.Add(b).Cents())
	assert.Equal(t, int64(750), a.Sub(b).Cents())
	assert.Equal(t, int64(3000), a.Mul(3).Cents())
	assert.True(t, kernel.NewMoney(0).IsZero())
	assert.True(t, a.IsPositive())
	assert.False(t, a.Sub(a).IsPositive())
}
