package indicators

import (
	"context"
	"fmt"
	"math"

	"tradejournal/internal/domain"
)

// tradingDaysPerYear annualizes the daily return standard deviation.
const tradingDaysPerYear = 252

// Volatility computes annualized historical volatility as the standard
// deviation of daily log returns, reported as a fraction (e.g. 0.28).
type Volatility struct {
	BaseIndicator
}

// NewVolatility creates a volatility indicator for the given period.
func NewVolatility(period int) *Volatility {
	return &Volatility{BaseIndicator: BaseIndicator{Config: IndicatorConfig{Period: period}}}
}

// Name returns the name of the indicator.
func (v *Volatility) Name() string {
	return "Volatility"
}

// Calculate computes the annualized volatility over the most recent period.
func (v *Volatility) Calculate(ctx context.Context, klines []domain.Kline) (float64, error) {
	if len(klines) <= v.Config.Period {
		return 0, fmt.Errorf("not enough data (%d) to calculate volatility for period %d", len(klines), v.Config.Period)
	}

	window := klines[len(klines)-v.Config.Period-1:]
	returns := make([]float64, 0, v.Config.Period)
	for i := 1; i < len(window); i++ {
		if window[i-1].Close <= 0 || window[i].Close <= 0 {
			return 0, fmt.Errorf("non-positive close price in volatility window")
		}
		returns = append(returns, math.Log(window[i].Close/window[i-1].Close))
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	return math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear), nil
}
