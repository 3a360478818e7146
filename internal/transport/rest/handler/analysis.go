package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"worksafe/internal/service"
	"worksafe/internal/transport/rest/middleware"
)

// AnalysisHandler handles submission analysis endpoints
type AnalysisHandler struct {
	analysisSvc *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisSvc *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisSvc: analysisSvc}
}

// Analyze handles POST /v1/submissions/{submissionId}/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	submissionID := mux.Vars(r)["submissionId"]
	if middleware.GetTenantID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.analysisSvc.AnalyzeSubmission(r.Context(), submissionID)

	switch {
	case errors.Is(err, service.ErrSubmissionNotFound), errors.Is(err, service.ErrSurveyNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, service.ErrNotPsychosocial):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var partial *service.PartialPersistenceError
	if errors.As(err, &partial) {
		// The risk and some measures exist; surface both the partial
		// result and the failure.
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":  partial.Error(),
			"result": result,
		})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
