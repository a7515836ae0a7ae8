package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fluxcron/dispatcher/jobservice"
)

// errorBody is the error response shape for every non-2xx outcome.
type errorBody struct {
	Timestamp string            `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
}

// Handler serves the /api/jobs routes.
type Handler struct {
	svc      *jobservice.Service
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a Handler over svc.
func NewHandler(svc *jobservice.Service, logger *slog.Logger) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name != "-" && name != "" {
			return name
		}
		return fld.Name
	})

	return &Handler{
		svc:      svc,
		validate: v,
		logger:   logger.With("component", "httpapi.Handler"),
	}
}

// Routes returns the API route table.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/jobs", h.createJob)
	mux.HandleFunc("GET /api/jobs", h.listJobs)
	mux.HandleFunc("GET /api/jobs/{id}", h.getJob)
	mux.HandleFunc("DELETE /api/jobs/{id}", h.deleteJob)
	mux.HandleFunc("PATCH /api/jobs/{id}/pause", h.pauseJob)
	mux.HandleFunc("PATCH /api/jobs/{id}/resume", h.resumeJob)
	return mux
}

func (h *Handler) createJob(w http.ResponseWriter, r *http.Request) {
	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "ValidationError", "malformed request body", nil)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "ValidationError", "invalid request", validationDetails(err))
		return
	}

	createReq, err := req.toCreateRequest()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "ValidationError", err.Error(), nil)
		return
	}

	job, err := h.svc.Create(r.Context(), createReq)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toJobResponse(job))
}

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	out := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, toJobResponse(job))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	job, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toJobResponse(job))
}

func (h *Handler) deleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil && !errors.Is(err, jobservice.ErrNotFound) {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) pauseJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Pause(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) resumeJob(w http.ResponseWriter, r *http.Request) {
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Resume(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) jobID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, "NotFound", "unknown job id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps jobservice sentinels to the API's status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, jobservice.ErrValidation):
		h.writeError(w, http.StatusBadRequest, "ValidationError", err.Error(), nil)
	case errors.Is(err, jobservice.ErrZoneInvalid):
		h.writeError(w, http.StatusBadRequest, "ZoneInvalid", err.Error(), nil)
	case errors.Is(err, jobservice.ErrPastScheduleTime):
		h.writeError(w, http.StatusBadRequest, "PastScheduleTime", err.Error(), nil)
	case errors.Is(err, jobservice.ErrInvalidCron):
		h.writeError(w, http.StatusBadRequest, "InvalidCron", err.Error(), nil)
	case errors.Is(err, jobservice.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "NotFound", "job not found", nil)
	default:
		h.logger.Error("request failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Internal", "internal error", nil)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, name, message string, details map[string]string) {
	h.writeJSON(w, status, errorBody{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     name,
		Message:   message,
		Details:   details,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

// validationDetails flattens validator errors into field → constraint.
func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			details[fe.Field()] = fe.Tag() + "=" + fe.Param()
		} else {
			details[fe.Field()] = fe.Tag()
		}
	}
	return details
}
