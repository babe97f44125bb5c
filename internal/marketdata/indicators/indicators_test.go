package indicators

import (
	"context"
	"math"
	"testing"

	"tradejournal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func klinesFromCloses(closes []float64) []domain.Kline {
	klines := make([]domain.Kline, len(closes))
	for i, c := range closes {
		klines[i] = domain.Kline{Close: c}
	}
	return klines
}

func TestSMACalculate(t *testing.T) {
	tests := []struct {
		name    string
		period  int
		closes  []float64
		want    float64
		wantErr bool
	}{
		{
			name:   "uses only the most recent period",
			period: 3,
			closes: []float64{1, 2, 3, 4, 5, 6},
			want:   5, // (4+5+6)/3
		},
		{
			name:   "exact window",
			period: 4,
			closes: []float64{10, 20, 30, 40},
			want:   25,
		},
		{
			name:    "not enough data",
			period:  5,
			closes:  []float64{1, 2, 3},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSMA(tt.period).Calculate(context.Background(), klinesFromCloses(tt.closes))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRSICalculate(t *testing.T) {
	t.Run("classic Wilder example", func(t *testing.T) {
		closes := []float64{
			44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42,
			45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28,
		}
		got, err := NewRSI(14).Calculate(context.Background(), klinesFromCloses(closes))
		require.NoError(t, err)
		assert.InDelta(t, 70.46, got, 0.01)
	})

	t.Run("only gains saturates at 100", func(t *testing.T) {
		closes := []float64{1, 2, 3, 4, 5, 6}
		got, err := NewRSI(4).Calculate(context.Background(), klinesFromCloses(closes))
		require.NoError(t, err)
		assert.Equal(t, 100.0, got)
	})

	t.Run("flat series is neutral", func(t *testing.T) {
		closes := []float64{5, 5, 5, 5, 5, 5}
		got, err := NewRSI(4).Calculate(context.Background(), klinesFromCloses(closes))
		require.NoError(t, err)
		assert.Equal(t, 50.0, got)
	})

	t.Run("not enough data", func(t *testing.T) {
		_, err := NewRSI(14).Calculate(context.Background(), klinesFromCloses([]float64{1, 2, 3}))
		assert.Error(t, err)
	})
}

func TestVolatilityCalculate(t *testing.T) {
	t.Run("constant growth has zero volatility", func(t *testing.T) {
		closes := make([]float64, 21)
		closes[0] = 100
		for i := 1; i < len(closes); i++ {
			closes[i] = closes[i-1] * 1.01
		}
		got, err := NewVolatility(20).Calculate(context.Background(), klinesFromCloses(closes))
		require.NoError(t, err)
		assert.InDelta(t, 0, got, 1e-9)
	})

	t.Run("alternating series is positive and annualized", func(t *testing.T) {
		closes := make([]float64, 21)
		for i := range closes {
			if i%2 == 0 {
				closes[i] = 100
			} else {
				closes[i] = 102
			}
		}
		got, err := NewVolatility(20).Calculate(context.Background(), klinesFromCloses(closes))
		require.NoError(t, err)
		assert.Greater(t, got, 0.0)
		// Daily stddev of +/-1.98% log moves, times sqrt(252).
		assert.InDelta(t, math.Log(1.02)*math.Sqrt(252), got, 0.01)
	})

	t.Run("not enough data", func(t *testing.T) {
		_, err := NewVolatility(20).Calculate(context.Background(), klinesFromCloses([]float64{1, 2}))
		assert.Error(t, err)
	})
}
