package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
	"github.com/bibbank/credit-schedule-service/internal/application/usecase"
	"github.com/bibbank/credit-schedule-service/internal/domain/model"
)

// TenantHeader names the request header carrying the tenant.
const TenantHeader = "X-Tenant-ID"

const maxBodyBytes = 1 << 20

// errBadRequest marks malformed transport input: bad JSON, a missing tenant
// or an unparsable query parameter.
var errBadRequest = errors.New("bad request")

// ScheduleHandler exposes schedule operations as a JSON API.
type ScheduleHandler struct {
	api    usecase.ScheduleAPI
	logger *slog.Logger
}

// NewScheduleHandler creates a handler delegating to api.
func NewScheduleHandler(api usecase.ScheduleAPI, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{api: api, logger: logger}
}

// RegisterRoutes attaches the /v1 routes to the given mux.
func (h *ScheduleHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/schedules/preview", h.previewSchedule)
	mux.HandleFunc("POST /v1/credits", h.createCredit)
	mux.HandleFunc("GET /v1/credits/{id}/schedule", h.getSchedule)
	mux.HandleFunc("POST /v1/credits/{id}/recompute", h.recomputeSchedule)
	mux.HandleFunc("POST /v1/credits/{id}/rates", h.addRateEntry)
	mux.HandleFunc("GET /v1/credits/{id}/unprocessed", h.listUnprocessed)
	mux.HandleFunc("POST /v1/credits/{id}/payments/bulk", h.createPaymentsBulk)
}

func (h *ScheduleHandler) previewSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewScheduleRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.api.PreviewSchedule(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ScheduleHandler) createCredit(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenant(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var credit dto.CreditInput
	if err := decode(w, r, &credit); err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.api.CreateCredit(r.Context(), dto.CreateCreditRequest{TenantID: tenantID, Credit: credit})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *ScheduleHandler) getSchedule(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenant(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.api.GetSchedule(r.Context(), dto.GetScheduleRequest{TenantID: tenantID, CreditID: r.PathValue("id")})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ScheduleHandler) recomputeSchedule(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenant(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req dto.RecomputeScheduleRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	req.TenantID, req.CreditID = tenantID, r.PathValue("id")

	resp, err := h.api.RecomputeSchedule(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ScheduleHandler) addRateEntry(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenant(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var entry dto.RateEntryInput
	if err := decode(w, r, &entry); err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.api.AddRateEntry(r.Context(), dto.AddRateEntryRequest{
		TenantID: tenantID,
		CreditID: r.PathValue("id"),
		Entry:    entry,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// listUnprocessed accepts ?today=YYYY-MM-DD and ?upstream=4:PARTIAL,5:PAID.
func (h *ScheduleHandler) listUnprocessed(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenant(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	upstream, err := parseUpstream(r.URL.Query().Get("upstream"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.api.ListUnprocessedPeriods(r.Context(), dto.ListUnprocessedRequest{
		TenantID:         tenantID,
		CreditID:         r.PathValue("id"),
		Today:            r.URL.Query().Get("today"),
		UpstreamStatuses: upstream,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ScheduleHandler) createPaymentsBulk(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenant(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var payments []dto.BulkPaymentInput
	if err := decode(w, r, &payments); err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.api.CreatePaymentsBulk(r.Context(), dto.CreatePaymentsBulkRequest{
		TenantID: tenantID,
		CreditID: r.PathValue("id"),
		Payments: payments,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func tenant(r *http.Request) (string, error) {
	if v := strings.TrimSpace(r.Header.Get(TenantHeader)); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s header is required", errBadRequest, TenantHeader)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %v", errBadRequest, err)
	}
	return nil
}

func parseUpstream(raw string) (map[int]string, error) {
	if raw == "" {
		return nil, nil
	}
	out := make(map[int]string)
	for _, pair := range strings.Split(raw, ",") {
		period, st, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			return nil, fmt.Errorf("%w: upstream entry %q must be period:status", errBadRequest, pair)
		}
		n, err := strconv.Atoi(period)
		if err != nil {
			return nil, fmt.Errorf("%w: upstream period %q", errBadRequest, period)
		}
		out[n] = st
	}
	return out, nil
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps errors to HTTP status codes. Malformed requests are 400,
// domain validation failures 422.
func (h *ScheduleHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var code int
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, model.ErrInvalidRequest), errors.Is(err, model.ErrInvalidDate):
		code = http.StatusBadRequest
	case model.IsValidation(err):
		code = http.StatusUnprocessableEntity
	case model.IsNotFound(err):
		code = http.StatusNotFound
	case model.IsConflict(err):
		code = http.StatusConflict
	default:
		h.logger.ErrorContext(r.Context(), "schedule request failed",
			"path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, code, errorBody{Error: err.Error()})
}
