package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"solomon-validator/internal/adapters/solomon"
	"solomon-validator/internal/api/dto"
	"solomon-validator/internal/domain"
	"solomon-validator/internal/platform/obs"
	"solomon-validator/internal/ports"
	"solomon-validator/internal/services"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds a request; a 100-customer instance plus report is a few kilobytes.
const maxBodyBytes = 8 << 20

// ValidationHandler validates solver reports and exposes stored outcomes.
// Results and Metrics are optional.
type ValidationHandler struct {
	Instances     ports.InstanceStore
	Results       ports.ResultRepository
	Metrics       *obs.Metrics
	DefaultPolicy services.LateReturnPolicy
	Now           func() time.Time
}

func (h *ValidationHandler) Serve(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.Create(w, r)
	case http.MethodGet:
		h.List(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Create parses the instance and the report, validates, and stores the outcome.
// Feasibility violations are part of a 200 response; only unreadable input is a 4xx.
func (h *ValidationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidationRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	policy := h.DefaultPolicy
	if strings.TrimSpace(req.LateReturn) != "" {
		p, err := services.ParseLateReturnPolicy(req.LateReturn)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		policy = p
	}

	start := time.Now()
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	inst, status, err := h.resolveInstance(ctx, req)
	if err != nil {
		h.Metrics.ObserveInputFailure("instance")
		if status == http.StatusInternalServerError {
			logger.Error().Err(err).Str("instance", req.Instance).Msg("load instance failed")
			writeError(w, r, status, "internal server error")
			return
		}
		writeError(w, r, status, err.Error())
		return
	}

	if strings.TrimSpace(req.SolutionText) == "" {
		h.Metrics.ObserveInputFailure("solution")
		writeError(w, r, http.StatusBadRequest, "solution_text is required")
		return
	}
	sol, err := solomon.ParseSolution(strings.NewReader(req.SolutionText))
	if err != nil {
		h.Metrics.ObserveInputFailure("solution")
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res := services.Validate(inst, sol, services.WithLateReturnPolicy(policy))
	h.Metrics.ObserveValidation(inst.Name, &res, time.Since(start))

	out := dto.NewValidationResponse(inst.Name, req.Solution, &res, true)

	if h.Results != nil {
		rec := domain.NewValidationRecord(inst.Name, req.Solution, res, h.now())
		id, err := h.Results.SaveResult(ctx, rec)
		if err != nil {
			logger.Error().Err(err).Str("instance", inst.Name).Msg("save validation result failed")
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		out.ID = id
	}

	logger.Info().
		Str("instance", inst.Name).
		Bool("valid", res.Valid()).
		Int("errors", len(res.Errors)).
		Int("warnings", len(res.Warnings)).
		Float64("total_distance", res.TotalDistance).
		Int("vehicles_used", res.VehiclesUsed).
		Msg("solution validated")

	writeJSON(w, r, http.StatusOK, out)
}

func (h *ValidationHandler) resolveInstance(ctx context.Context, req dto.ValidationRequest) (*domain.Instance, int, error) {
	if strings.TrimSpace(req.InstanceText) != "" {
		inst, err := solomon.ParseInstance(strings.NewReader(req.InstanceText))
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		if name := strings.TrimSpace(req.Instance); name != "" {
			inst.Name = name
		}
		return inst, 0, nil
	}

	name := strings.TrimSpace(req.Instance)
	if name == "" {
		return nil, http.StatusBadRequest, errors.New("instance or instance_text is required")
	}
	if h.Instances == nil {
		return nil, http.StatusNotFound, errors.New("no instance directory configured")
	}

	inst, err := h.Instances.LoadInstance(ctx, name)
	switch {
	case errors.Is(err, ports.ErrInstanceNotFound):
		return nil, http.StatusNotFound, errors.New("instance not found")
	case solomon.IsInputError(err):
		return nil, http.StatusUnprocessableEntity, err
	case err != nil:
		return nil, http.StatusInternalServerError, err
	}
	return inst, 0, nil
}

// List returns the stored outcomes of one instance.
func (h *ValidationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Results == nil {
		writeError(w, r, http.StatusNotImplemented, "results store not configured")
		return
	}

	instance := strings.TrimSpace(r.URL.Query().Get("instance"))
	if instance == "" {
		writeError(w, r, http.StatusBadRequest, "instance query parameter is required")
		return
	}

	recs, err := h.Results.ListResults(r.Context(), instance)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("instance", instance).Msg("list validation results failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListValidationsResponse{
		Validations: make([]dto.ValidationRecordResponse, 0, len(recs)),
	}
	for _, rec := range recs {
		res.Validations = append(res.Validations, dto.NewValidationRecordResponse(rec))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ValidationHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
