/*
handlers.go - HTTP API handlers for the salary engine

PURPOSE:
  Exposes payroll calculation and the payslip archive via REST API. Handles
  HTTP request/response and JSON serialization; all pay rules live in the
  payroll package and all type dispatch in the factory.

ENDPOINTS:
  Payroll:
    GET    /api/payroll/types         Registered type tags and formats
    POST   /api/payroll/calculate     Calculate one employee
    POST   /api/payroll/batch         Calculate many, failures inline

  Payslips:
    GET    /api/payslips              Archived payslips, newest first
    GET    /api/payslips/{id}         One payslip (?format=text for the report)

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, missing fields, unknown format
  - 404: Unknown employee type, payslip not found
  - 409: Payslip ID already archived
  - 503: Archive requested but no store configured
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/salary-engine/factory"
	"github.com/warp/salary-engine/generic"
	"github.com/warp/salary-engine/payroll"
	"github.com/warp/salary-engine/report"
)

var errNoStore = errors.New("payslip archive is not configured")

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   payroll.PayslipStore // nil disables the archive
	Factory *factory.EmployeeFactory
	Text    *report.TextRenderer
	Log     *zap.Logger
}

// NewHandler creates a handler. store may be nil.
func NewHandler(store payroll.PayslipStore, f *factory.EmployeeFactory, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Store:   store,
		Factory: f,
		Text:    report.NewTextRenderer(),
		Log:     logger.Named("api"),
	}
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// ListTypes returns the registered employee type tags.
func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TypesResponse{
		Types:   h.Factory.Types(),
		Formats: report.Formats(),
	})
}

// Calculate builds one employee and returns its snapshot or text report.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	format, err := report.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported format", err)
		return
	}

	rec := req.record()
	emp, err := h.Factory.Build(rec.Type, rec.Fields)
	if err != nil {
		h.Log.Warn("calculation rejected", zap.String("type", req.Type), zap.Error(err))
		writeError(w, statusFor(err), "Could not calculate salary", err)
		return
	}

	var payslipID string
	if req.Save {
		payslipID, err = h.archive(r, emp)
		if err != nil {
			writeError(w, statusFor(err), "Failed to save payslip", err)
			return
		}
	}

	if format == report.FormatText {
		if payslipID != "" {
			w.Header().Set("X-Payslip-ID", payslipID)
		}
		h.writeText(w, emp)
		return
	}
	writeJSON(w, http.StatusOK, CalculateResponse{
		PayslipID: payslipID,
		Employee:  emp.Snapshot(),
	})
}

// Batch calculates every record it can. A bad record, or one whose payslip
// could not be archived, becomes an inline error instead of failing the
// request, so the IDs of the payslips that were saved are always returned.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Save && h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to save payslips", errNoStore)
		return
	}

	resp := BatchResponse{Results: make([]BatchResultDTO, 0, len(req.Employees))}
	for i, item := range req.Employees {
		rec := item.record()
		result := BatchResultDTO{Index: i}

		emp, err := h.Factory.Build(rec.Type, rec.Fields)
		if err != nil {
			h.Log.Error("employee not created",
				zap.Int("index", i), zap.String("type", rec.Type), zap.Error(err))
			result.Error = err.Error()
			resp.Failed++
			resp.Results = append(resp.Results, result)
			continue
		}

		if req.Save {
			id, err := h.archive(r, emp)
			if err != nil {
				h.Log.Error("payslip not saved",
					zap.Int("index", i), zap.String("name", emp.Name()), zap.Error(err))
				result.Error = err.Error()
				resp.Failed++
				resp.Results = append(resp.Results, result)
				continue
			}
			result.PayslipID = id
		}

		snap := emp.Snapshot()
		result.Employee = &snap
		resp.Created++
		resp.Results = append(resp.Results, result)
	}

	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// PAYSLIP HANDLERS
// =============================================================================

// ListPayslips returns archived payslips. ?limit=N caps the result.
func (h *Handler) ListPayslips(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to list payslips", errNoStore)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	slips, err := h.Store.ListPayslips(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payslips", err)
		return
	}

	dtos := make([]PayslipDTO, len(slips))
	for i, p := range slips {
		dtos[i] = toPayslipDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPayslip returns one payslip. With ?format=text the stored snapshot is
// rebuilt through the factory and rendered as a report.
func (h *Handler) GetPayslip(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to get payslip", errNoStore)
		return
	}

	id := chi.URLParam(r, "id")
	slip, err := h.Store.GetPayslip(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get payslip", err)
		return
	}
	if slip == nil {
		writeError(w, http.StatusNotFound, "Payslip not found", nil)
		return
	}

	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported format", err)
		return
	}
	if format == report.FormatText {
		emp, err := h.Factory.FromSnapshot(slip.Snapshot)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to rebuild payslip", err)
			return
		}
		h.writeText(w, emp)
		return
	}

	writeJSON(w, http.StatusOK, toPayslipDTO(*slip))
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) archive(r *http.Request, emp payroll.Employee) (string, error) {
	if h.Store == nil {
		return "", errNoStore
	}
	slip := payroll.NewPayslip(emp)
	if err := h.Store.SavePayslip(r.Context(), slip); err != nil {
		return "", err
	}
	return slip.ID, nil
}

func (h *Handler) writeText(w http.ResponseWriter, emp payroll.Employee) {
	out, err := h.Text.Render(emp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render report", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, out+"\n")
}

// decodeJSON keeps numbers as json.Number so decimals stay exact.
func decodeJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	return dec.Decode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errNoStore):
		return http.StatusServiceUnavailable
	case errors.Is(err, generic.ErrDuplicatePayslip):
		return http.StatusConflict
	case generic.IsNotFound(err):
		return http.StatusNotFound
	case generic.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
