package handler

import (
	"encoding/json"
	"errors"
	"leetcode_tracker/internal/api/middleware"
	"leetcode_tracker/internal/app/service"
	"leetcode_tracker/internal/common"
	"leetcode_tracker/internal/domain/model"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ProblemHandler struct {
	problemService *service.ProblemService
}

func NewProblemHandler(ps *service.ProblemService) *ProblemHandler {
	return &ProblemHandler{problemService: ps}
}

// RegisterRoutes mounts the problem routes. All of them require a bearer token.
func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/add", h.addProblem)  // POST /api/problems/add
	r.Get("/all", h.listProblems) // GET /api/problems/all
	r.Get("/tags", h.listTags)    // GET /api/problems/tags
}

func (h *ProblemHandler) addProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req model.Problem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	problem, err := h.problemService.AddProblem(r.Context(), userID, req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, problem)
}

func (h *ProblemHandler) listProblems(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	problems, err := h.problemService.ListProblems(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problems)
}

func (h *ProblemHandler) listTags(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	tags, err := h.problemService.ListTags(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, tags)
}

// respondWithServiceError writes err with its mapped status. Validation failures
// carry their per-field messages.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		common.RespondWithJSON(w, http.StatusBadRequest, common.ErrorResponse{
			Error:  err.Error(),
			Fields: verr.Fields,
		})
		return
	}
	status := common.HTTPStatusFromError(err)
	if status == http.StatusInternalServerError {
		common.RespondWithError(w, status, common.ErrInternalServer.Error())
		return
	}
	common.RespondWithError(w, status, err.Error())
}
