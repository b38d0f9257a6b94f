package loyalty_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/retail-pos/internal/domain/loyalty"
)

func TestPointsEarned(t *testing.T) {
	cases := []struct {
		name  string
		total string
		want  int
	}{
		{"total cero no gana puntos", "0", 0},
		{"total negativo no gana puntos", "-50", 0},
		{"menos del divisor", "19.99", 0},
		{"exactamente el divisor", "20", 1},
		{"floor, no redondeo", "39.99", 1},
		{"total 433 gana 21", "433", 21},
		{"total 500 gana 25", "500", 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total, err := decimal.NewFromString(tc.total)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, loyalty.PointsEarned(total))
		})
	}
}

func TestRedemptionValue(t *testing.T) {
	// 1 punto = 1 unidad monetaria, sin factor oculto.
	assert.True(t, decimal.NewFromInt(0).Equal(loyalty.RedemptionValue(0)))
	assert.True(t, decimal.NewFromInt(150).Equal(loyalty.RedemptionValue(150)))
}
