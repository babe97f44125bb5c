package domain

import (
	"fmt"
	"strings"
	"time"
)

// TradeDraft is a candidate trade submission, validated before the canonical
// Trade is constructed. Context is optional; when absent the journal service
// asks the snapshot provider to capture one.
type TradeDraft struct {
	Date        time.Time     `json:"date"`
	Ticker      string        `json:"ticker"`
	Action      Action        `json:"action"`
	Price       float64       `json:"price"`
	Quantity    int64         `json:"quantity"`
	PnL         float64       `json:"pnl"`
	Confidence  int           `json:"confidence"`
	BehaviorTag string        `json:"behaviorTag"`
	Note        string        `json:"note"`
	Context     MarketContext `json:"context"`
}

// FieldError names one violated invariant on a draft.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports every invariant a draft violates. It is a
// data-level finding: the submission is rejected, nothing is appended.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		reasons = append(reasons, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "trade validation failed: " + strings.Join(reasons, "; ")
}

// Normalize canonicalizes fields that have a single valid spelling. The date
// keeps the calendar day the submitter saw, whatever offset it arrived with.
func (d *TradeDraft) Normalize() {
	d.Ticker = strings.ToUpper(strings.TrimSpace(d.Ticker))
	d.Note = strings.TrimSpace(d.Note)
	year, month, day := d.Date.Date()
	d.Date = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Validate checks the draft against the Trade invariants. It returns nil when
// the draft is valid, otherwise a ValidationError naming all violated fields.
func (d *TradeDraft) Validate() *ValidationError {
	var fields []FieldError

	if d.Date.IsZero() {
		fields = append(fields, FieldError{Field: "date", Reason: "execution date is required"})
	}
	if d.Ticker == "" {
		fields = append(fields, FieldError{Field: "ticker", Reason: "ticker must be non-empty"})
	} else if d.Ticker != strings.ToUpper(d.Ticker) {
		fields = append(fields, FieldError{Field: "ticker", Reason: "ticker must be uppercase"})
	}
	if !d.Action.IsValid() {
		fields = append(fields, FieldError{Field: "action", Reason: fmt.Sprintf("action must be %q or %q", Buy, Sell)})
	}
	if d.Price <= 0 {
		fields = append(fields, FieldError{Field: "price", Reason: "price must be positive"})
	}
	if d.Quantity <= 0 {
		fields = append(fields, FieldError{Field: "quantity", Reason: "quantity must be a positive integer"})
	}
	if d.Confidence < 0 || d.Confidence > 100 {
		fields = append(fields, FieldError{Field: "confidence", Reason: "confidence must be between 0 and 100"})
	}
	if d.Action.IsValid() && !IsValidBehaviorTag(d.Action, d.BehaviorTag) {
		fields = append(fields, FieldError{Field: "behaviorTag", Reason: fmt.Sprintf("unknown behavior tag %q for action %q", d.BehaviorTag, d.Action)})
	}
	if d.Note == "" {
		fields = append(fields, FieldError{Field: "note", Reason: "note must be non-empty"})
	}
	if !d.Context.IsZero() {
		if d.Context.RSI < 0 || d.Context.RSI > 100 {
			fields = append(fields, FieldError{Field: "context.rsi", Reason: "rsi must be between 0 and 100"})
		}
		if d.Context.Volatility < 0 {
			fields = append(fields, FieldError{Field: "context.volatility", Reason: "volatility cannot be negative"})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
