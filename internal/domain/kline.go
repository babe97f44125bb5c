package domain

import "time"

// Kline represents one candlestick of market price data, used only as input
// for computing a market snapshot at trade entry time.
type Kline struct {
	OpenTime  time.Time
	CloseTime time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}
