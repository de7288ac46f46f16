package service

import (
	"database/sql"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullFloat(t *testing.T) {
	tests := []struct {
		name string
		in   sql.NullFloat64
		want *float64
	}{
		{name: "null", in: sql.NullFloat64{}},
		{name: "nan", in: sql.NullFloat64{Float64: math.NaN(), Valid: true}},
		{name: "positive infinity", in: sql.NullFloat64{Float64: math.Inf(1), Valid: true}},
		{name: "negative infinity", in: sql.NullFloat64{Float64: math.Inf(-1), Valid: true}},
		{name: "zero is recorded", in: sql.NullFloat64{Float64: 0, Valid: true}, want: ptrTo(0)},
		{name: "value", in: sql.NullFloat64{Float64: 27.5, Valid: true}, want: ptrTo(27.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nullFloat(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func ptrTo(v float64) *float64 { return &v }
