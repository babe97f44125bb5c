package domain

import "time"

// Trade is one immutable entry in the append-only journal ledger.
type Trade struct {
	ID          string        `json:"id"`          // Assigned by the journal service at creation, never reused
	Seq         int64         `json:"-"`           // Store insertion sequence; breaks FIFO ties for same-date trades
	Date        time.Time     `json:"date"`        // Execution date, day granularity
	Ticker      string        `json:"ticker"`      // Uppercase symbol (e.g., "AAPL")
	Action      Action        `json:"action"`      // Buy or Sell
	Price       float64       `json:"price"`       // Execution price per unit
	Quantity    int64         `json:"quantity"`    // Integer units traded
	PnL         float64       `json:"pnl"`         // Percentage gain/loss recorded for this entry
	Confidence  int           `json:"confidence"`  // Self-reported conviction, 0-100
	BehaviorTag string        `json:"behaviorTag"` // One label from the vocabulary for Action
	Note        string        `json:"note"`        // Free-text rationale
	Context     MarketContext `json:"context"`     // Snapshot captured once at entry time
}

// Notional returns the trade's value in the base currency.
func (t *Trade) Notional() float64 {
	return t.Price * float64(t.Quantity)
}

// PnLCurrency converts the recorded percentage P&L into a base-currency amount.
func (t *Trade) PnLCurrency() float64 {
	return t.Notional() * t.PnL / 100
}

// MarketContext is the market snapshot captured when a trade was entered.
// It is stored verbatim and never recomputed retroactively.
type MarketContext struct {
	CurrentPrice float64   `json:"currentPrice"`
	RSI          float64   `json:"rsi"`
	SMA20        float64   `json:"sma20"`
	SMA50        float64   `json:"sma50"`
	Volatility   float64   `json:"volatility"` // Fractional, e.g. 0.28
	Sentiment    Sentiment `json:"sentiment"`
}

// IsZero reports whether no snapshot was captured.
func (c MarketContext) IsZero() bool {
	return c == MarketContext{}
}
