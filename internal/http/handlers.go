package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"finboard/internal/core"
	"finboard/internal/ledger"
	"finboard/internal/log"
	"finboard/internal/middleware/trace"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady reports whether templates are loaded and the registry is wired.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.registry == nil {
		checks["sessions"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["sessions"] = map[string]interface{}{
			"active": s.registry.Len(),
			"status": "ok",
		}
	}

	checks["rate_limiter"] = map[string]interface{}{
		"active_clients": s.rateLimiter.ActiveClients(),
		"rejected":       s.rateLimiter.Rejected(),
	}
	checks["requests"] = s.trace.TotalRequests()

	RespondJSON(w, httpStatus, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// snapshot recomputes the summary from the caller's store.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (ledger.Summary, error) {
	sess, err := s.session(w, r)
	if err != nil {
		return ledger.Summary{}, err
	}
	txs, err := sess.Store.All(r.Context())
	if err != nil {
		return ledger.Summary{}, fmt.Errorf("read transactions: %w", err)
	}
	return ledger.Summarize(txs), nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	summary, err := s.snapshot(w, r)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to load summary", log.FieldError, err, log.FieldRequestID, trace.GetRequestID(r.Context()))
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	data := dashboardView{
		Currency: s.currency,
		Form:     newFormView(DefaultForm(s.today())),
		Summary:  newSummaryView(summary, s.currency),
	}
	s.render(w, r, "index.html", data)
}

func (s *Server) handleSummaryPartial(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		InternalServerError("templates not loaded").Write(w)
		return
	}

	summary, err := s.snapshot(w, r)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to load summary", log.FieldError, err, log.FieldRequestID, trace.GetRequestID(r.Context()))
		InternalServerError("Failed to load summary").Write(w)
		return
	}
	s.render(w, r, "summary", newSummaryView(summary, s.currency))
}

// render buffers the output; a template error becomes a 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err, log.FieldTemplate, name, log.FieldOperation, log.OpRender)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid form").Write(w)
		return
	}

	tx, err := ParseTransactionForm(r.PostForm, DefaultForm(s.today()))
	if err != nil {
		s.logger.WarnContext(ctx, "Rejected transaction input", log.FieldError, err, log.FieldRequestID, trace.GetRequestID(ctx))
		UnprocessableEntityError(validationMessage(err)).Write(w)
		return
	}

	sess, err := s.session(w, r)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to resolve session", log.FieldError, err, log.FieldRequestID, trace.GetRequestID(ctx))
		InternalServerError("Could not start a session").Write(w)
		return
	}

	if err := sess.Store.Append(ctx, tx); err != nil {
		if isValidationError(err) {
			UnprocessableEntityError(validationMessage(err)).Write(w)
			return
		}
		s.logger.ErrorContext(ctx, "Failed to record transaction",
			log.NewFields().WithSession(sess.ID).WithOperation(log.OpAppend).WithError(err).ToSlice()...)
		InternalServerError("Failed to record transaction").Write(w)
		return
	}

	fields := log.NewFields().
		WithSession(sess.ID).
		WithOperation(log.OpAppend).
		WithTransaction(tx.Date.String(), string(tx.Kind), string(tx.Category), tx.Amount)
	s.logger.InfoContext(ctx, "Transaction recorded", fields.ToSlice()...)

	s.publish(ctx, sess.ID, tx)

	if r.Header.Get("HX-Request") != "true" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	msg := fmt.Sprintf("Recorded %s of %s (%s) on %s",
		tx.Kind, FormatAmount(tx.Amount, s.currency), tx.Category, tx.Date)
	NewHTMXResponse().
		TriggerTransactionCreated(tx.Date.String(), string(tx.Kind)).
		TriggerFormReset().
		TriggerSuccessNotification(msg).
		BodyHTML(`<div class="success">` + template.HTMLEscapeString(msg) + `</div>`).
		Write(w)
}

// publish announces the transaction; a broker failure never fails the request
// since the append has already happened.
func (s *Server) publish(ctx context.Context, sessionID string, tx core.Transaction) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.publisher.PublishTransactionRecorded(pubCtx, sessionID, tx); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish transaction event",
			log.NewFields().WithSession(sessionID).WithOperation(log.OpPublish).WithError(err).ToSlice()...)
	}
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.snapshot(w, r)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to load summary", nil)
		return
	}
	RespondJSON(w, http.StatusOK, newSummaryJSON(summary, s.currency))
}

func (s *Server) handleAPITrend(w http.ResponseWriter, r *http.Request) {
	order := r.URL.Query().Get("order")
	if order != "" && order != "asc" && order != "desc" {
		RespondError(w, http.StatusBadRequest, "invalid order", "use asc or desc")
		return
	}

	sess, err := s.session(w, r)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to resolve session", nil)
		return
	}
	txs, err := sess.Store.All(r.Context())
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to read transactions", nil)
		return
	}

	var points []ledger.TrendPoint
	if order == "desc" {
		points = ledger.TrendLatestFirst(txs)
	} else {
		points = ledger.TrendAscending(txs)
	}
	RespondJSON(w, http.StatusOK, toTrendJSON(points))
}

func (s *Server) handleAPIBreakdown(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to resolve session", nil)
		return
	}
	txs, err := sess.Store.All(r.Context())
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to read transactions", nil)
		return
	}

	out := make(map[string]int64)
	for c, v := range ledger.ExpenseBreakdown(txs) {
		out[string(c)] = v
	}
	RespondJSON(w, http.StatusOK, out)
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrInvalidKind) ||
		errors.Is(err, core.ErrInvalidCategory) ||
		errors.Is(err, core.ErrInvalidAmount)
}

// validationMessage turns a core validation error into the text shown under
// the form.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "Invalid input: amount must be a whole number from 0 to " + humanize.Comma(core.MaxAmount)
	case errors.Is(err, core.ErrInvalidDate):
		return "Invalid input: date must be YYYY-MM-DD"
	case errors.Is(err, core.ErrInvalidKind):
		return "Invalid input: type must be Income or Expense"
	case errors.Is(err, core.ErrInvalidCategory):
		return "Invalid input: unknown category"
	default:
		return "Invalid input"
	}
}
