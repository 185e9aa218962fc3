package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/bnema/editable-entry/internal/application"
	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/entry"
	"github.com/bnema/editable-entry/internal/schema"
)

const requestTimeout = 30 * time.Second

// PageService is the part of the application the HTTP surface drives.
type PageService interface {
	View(ctx context.Context, ref application.PageRef) (application.PageView, error)
	Invoke(ctx context.Context, ref application.PageRef, action string) (application.PageView, error)
	SetField(ctx context.Context, cmd application.SetFieldCommand) (application.PageView, error)
	Reset(ctx context.Context, id domain.SessionID) error
	Layouts(ctx context.Context) ([]string, error)
	Records(ctx context.Context) ([]domain.Record, error)
	PutRecord(ctx context.Context, cmd application.PutRecordCommand) (domain.Record, error)
}

var _ PageService = (*application.PageService)(nil)

type Handler struct {
	service PageService
	logger  zerolog.Logger
}

func NewRouter(service PageService, logger zerolog.Logger) http.Handler {
	h := &Handler{service: service, logger: logger}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/layouts", h.handleListLayouts)
	r.Get("/records", h.handleListRecords)
	r.Put("/records/{record}", h.handlePutRecord)
	r.Delete("/sessions/{session}", h.handleResetSession)

	r.Route("/sessions/{session}/pages/{page}/records/{record}", func(page chi.Router) {
		page.Get("/", h.handleView)
		page.Post("/actions/{action}", h.handleInvoke)
		page.Put("/entries/{component}/fields/{field}", h.handleSetField)
	})

	return r
}

type errorResponse struct {
	Error  string                `json:"error"`
	Fields map[string][]string   `json:"fields,omitempty"`
	View   *application.PageView `json:"view,omitempty"`
}

type setFieldRequest struct {
	Value any `json:"value"`
}

type putRecordRequest struct {
	Type       domain.RecordType `json:"type"`
	Attributes domain.Attributes `json:"attributes"`
}

type recordResponse struct {
	ID         domain.RecordID                `json:"id"`
	Type       domain.RecordType              `json:"type,omitempty"`
	Attributes domain.Attributes              `json:"attributes"`
	Relations  map[string][]domain.Attributes `json:"relations,omitempty"`
	UpdatedAt  *time.Time                     `json:"updated_at,omitempty"`
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.View(r.Context(), pageRef(r))
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleInvoke(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Invoke(r.Context(), pageRef(r), chi.URLParam(r, "action"))
	if err != nil {
		h.writeError(w, r, err, &view)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleSetField(w http.ResponseWriter, r *http.Request) {
	var req setFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	view, err := h.service.SetField(r.Context(), application.SetFieldCommand{
		Ref:         pageRef(r),
		ComponentID: domain.ComponentID(chi.URLParam(r, "component")),
		Field:       chi.URLParam(r, "field"),
		Value:       req.Value,
	})
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleResetSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context(), domain.SessionID(chi.URLParam(r, "session"))); err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.Layouts(r.Context())
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.Records(r.Context())
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	out := make([]recordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toRecordResponse(record))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	var req putRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	record, err := h.service.PutRecord(r.Context(), application.PutRecordCommand{
		ID:         domain.RecordID(chi.URLParam(r, "record")),
		Type:       req.Type,
		Attributes: req.Attributes,
	})
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(record))
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, view *application.PageView) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}

	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	if view != nil && view.Page != "" {
		resp.View = view
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	}

	writeJSON(w, status, resp)
}

func statusFor(err error) int {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entry.ErrPersistence):
		return http.StatusBadGateway
	case errors.Is(err, application.ErrNotEditing):
		return http.StatusConflict
	case errors.Is(err, application.ErrUnknownEntry),
		errors.Is(err, entry.ErrUnknownAction),
		errors.Is(err, domain.ErrLayoutNotFound),
		errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrInvalidPageRef),
		errors.Is(err, application.ErrEmptyRecordID),
		errors.Is(err, application.ErrRecordTypeMismatch),
		errors.Is(err, schema.ErrUnknownField),
		errors.Is(err, schema.ErrEmptyPath),
		errors.Is(err, schema.ErrPathConflict):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func pageRef(r *http.Request) application.PageRef {
	return application.PageRef{
		SessionID: domain.SessionID(chi.URLParam(r, "session")),
		Page:      chi.URLParam(r, "page"),
		RecordID:  domain.RecordID(chi.URLParam(r, "record")),
	}
}

func toRecordResponse(record domain.Record) recordResponse {
	resp := recordResponse{
		ID:         record.ID,
		Type:       record.Type,
		Attributes: record.Attributes,
		Relations:  record.Relations,
	}
	if resp.Attributes == nil {
		resp.Attributes = domain.Attributes{}
	}
	if !record.UpdatedAt.IsZero() {
		updatedAt := record.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Debug().
					Str("request_id", middleware.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("elapsed", time.Since(start)).
					Msg("http request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
