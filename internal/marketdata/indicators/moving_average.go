package indicators

import (
	"context"
	"fmt"

	"tradejournal/internal/domain"
)

// SMA implements the simple moving average over closing prices.
type SMA struct {
	BaseIndicator
}

// NewSMA creates an SMA indicator for the given period.
func NewSMA(period int) *SMA {
	return &SMA{BaseIndicator: BaseIndicator{Config: IndicatorConfig{Period: period}}}
}

// Name returns the name of the indicator.
func (m *SMA) Name() string {
	return fmt.Sprintf("SMA%d", m.Config.Period)
}

// Calculate computes the simple moving average of the most recent closes.
func (m *SMA) Calculate(ctx context.Context, klines []domain.Kline) (float64, error) {
	if len(klines) < m.Config.Period {
		return 0, fmt.Errorf("not enough data (%d) to calculate SMA for period %d", len(klines), m.Config.Period)
	}

	total := 0.0
	for i := len(klines) - m.Config.Period; i < len(klines); i++ {
		total += klines[i].Close
	}
	return total / float64(m.Config.Period), nil
}
