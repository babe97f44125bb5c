package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tradejournal/internal/app"
	"tradejournal/internal/domain"
	"tradejournal/internal/ports"

	"github.com/go-chi/chi/v5"
)

// Handlers contains the HTTP handlers for the journal API.
type Handlers struct {
	service *app.JournalService
	logger  ports.Logger
}

// HandleHealth reports liveness.
// GET /health
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleListTrades returns the full ledger, newest first.
// GET /api/trades
func (h *Handlers) HandleListTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.service.ListTrades(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trades)
}

// HandleRecordTrade validates and appends a new trade.
// POST /api/trades
func (h *Handlers) HandleRecordTrade(w http.ResponseWriter, r *http.Request) {
	var draft domain.TradeDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("malformed request body", nil))
		return
	}

	stored, err := h.service.RecordTrade(r.Context(), draft)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// HandleGetSummary returns the headline statistics, optionally filtered by
// the ticker and behaviorTag query parameters.
// GET /api/trades/summary
func (h *Handlers) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	filter := app.Filter{
		Ticker:      r.URL.Query().Get("ticker"),
		BehaviorTag: r.URL.Query().Get("behaviorTag"),
	}
	summary, err := h.service.GetSummary(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleGetLinkage returns the FIFO link results for every Sell of a ticker.
// GET /api/trades/{ticker}/linkage
func (h *Handlers) HandleGetLinkage(w http.ResponseWriter, r *http.Request) {
	ticker := strings.TrimSpace(chi.URLParam(r, "ticker"))
	if ticker == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("ticker is required", nil))
		return
	}
	results, err := h.service.GetLinkage(r.Context(), ticker)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if results == nil {
		results = []*domain.LinkResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

// HandleGetPosition returns the open lots for a ticker.
// GET /api/trades/{ticker}/position
func (h *Handlers) HandleGetPosition(w http.ResponseWriter, r *http.Request) {
	ticker := strings.TrimSpace(chi.URLParam(r, "ticker"))
	if ticker == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("ticker is required", nil))
		return
	}
	pos, err := h.service.GetPosition(r.Context(), ticker)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pos)
}

// HandleGetBehaviorStats returns per-behavior-tag performance.
// GET /api/behaviors
func (h *Handlers) HandleGetBehaviorStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetBehaviorStats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleGetSectorAllocation returns per-sector allocation.
// GET /api/sectors
func (h *Handlers) HandleGetSectorAllocation(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.service.GetSectorAllocation(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, allocation)
}

// writeServiceError maps service failures onto HTTP statuses. A validation
// finding and an unavailable store must be distinguishable from an empty
// ledger, which is a plain 200.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation failed", verr.Fields))
	case errors.Is(err, ports.ErrStoreUnavailable):
		h.logger.Error(r.Context(), err, "Ledger store unavailable")
		writeJSON(w, http.StatusServiceUnavailable, errorBody("ledger store unavailable", nil))
	case errors.Is(err, ports.ErrDuplicateID):
		writeJSON(w, http.StatusConflict, errorBody("duplicate trade id", nil))
	default:
		h.logger.Error(r.Context(), err, "Unhandled service error")
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error", nil))
	}
}

func errorBody(msg string, fields []domain.FieldError) map[string]interface{} {
	body := map[string]interface{}{"error": msg}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	return body
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
