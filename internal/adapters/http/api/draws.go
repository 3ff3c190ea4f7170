package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	repository "github.com/okian/fairdraw/internal/adapters/repository"
	service "github.com/okian/fairdraw/internal/app"
	"github.com/okian/fairdraw/internal/domain/draw"
	"github.com/okian/fairdraw/internal/domain/model"
)

// Default handler limits.
const (
	defaultMaxBodyBytes = 1 << 20
	defaultListLimit    = 50
	maxListLimit        = 1000
)

// DrawsOption configures a DrawsHandler.
type DrawsOption func(*DrawsHandler)

// WithMaxBodyBytes caps the POST /draws request body.
func WithMaxBodyBytes(n int64) DrawsOption {
	return func(h *DrawsHandler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// DrawsHandler handles draw creation and lookup.
type DrawsHandler struct {
	deps         Dependencies
	maxBodyBytes int64
}

// NewDrawsHandler creates a new draws handler.
func NewDrawsHandler(deps Dependencies, opts ...DrawsOption) *DrawsHandler {
	h := &DrawsHandler{deps: deps, maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type groupRequest struct {
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
}

// drawRequest is the body of POST /draws.
type drawRequest struct {
	Groups      []groupRequest `json:"groups"`
	TargetTotal *int           `json:"target_total"`
	Seed        *int64         `json:"seed,omitempty"`
}

func (d drawRequest) validate() error {
	switch {
	case len(d.Groups) == 0:
		return errors.New("missing groups")
	case d.TargetTotal == nil:
		return errors.New("missing target_total")
	case *d.TargetTotal < 0:
		return errors.New("target_total must not be negative")
	}
	for i, g := range d.Groups {
		if strings.TrimSpace(g.Name) == "" {
			return errors.New("group " + strconv.Itoa(i) + " is missing a name")
		}
	}
	return nil
}

func (d drawRequest) roster() model.Roster {
	roster := make(model.Roster, len(d.Groups))
	for i, g := range d.Groups {
		roster[i] = model.Group{Name: g.Name, Participants: g.Participants}
	}
	return roster
}

// HandleCreateDraw handles POST /draws requests.
func (h *DrawsHandler) HandleCreateDraw(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_draw"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req drawRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	d, err := h.deps.CreateDraw(r.Context(), req.roster(), *req.TargetTotal, req.Seed)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.Header().Set("Location", "/draws/"+d.ID)
	writeJSON(w, http.StatusCreated, d)
}

type listResponse struct {
	Draws []model.DrawSummary `json:"draws"`
}

// HandleListDraws handles GET /draws?limit=n requests.
func (h *DrawsHandler) HandleListDraws(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_draws"

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = min(n, maxListLimit)
	}

	draws, err := h.deps.ListDraws(r.Context(), limit)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if draws == nil {
		draws = []model.DrawSummary{}
	}
	writeJSON(w, http.StatusOK, listResponse{Draws: draws})
}

// HandleGetDraw handles GET /draws/{id} requests.
func (h *DrawsHandler) HandleGetDraw(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_draw"

	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	d, err := h.deps.GetDraw(r.Context(), id)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// writeServiceError maps upstream sentinels to HTTP statuses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, repository.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, draw.ErrNoEligiblePairs):
		writeError(w, http.StatusUnprocessableEntity, "unrealizable", WrapKind(op, ErrUnrealizable, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
	}
}
