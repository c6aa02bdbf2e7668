package tasks

import (
	"net/http"

	"go.uber.org/zap"

	userDomain "hangman/internal/domain/user"
	"hangman/internal/health"
	"hangman/internal/httpresponse"
	"hangman/internal/usecase/stats"
)

type TaskHandler struct {
	log     *zap.SugaredLogger
	statsUC *stats.StatsUseCase
	checker *health.Checker
}

func NewTaskHandler(log *zap.SugaredLogger, statsUC *stats.StatsUseCase, checker *health.Checker) *TaskHandler {
	return &TaskHandler{log: log, statsUC: statsUC, checker: checker}
}

// HandleCacheAverageAttempts recomputes the cached average synchronously.
func (th *TaskHandler) HandleCacheAverageAttempts(w http.ResponseWriter, r *http.Request) {
	if err := th.statsUC.RefreshAverageAttempts(r.Context()); err != nil {
		th.log.Errorf("%s: %v", stats.RefreshTaskName, err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}

	msg, err := th.statsUC.AverageAttempts(r.Context())
	if err != nil {
		th.log.Errorf("read average attempts: %v", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, userDomain.StringMessage{Message: msg})
}

func (th *TaskHandler) HandleAverageAttempts(w http.ResponseWriter, r *http.Request) {
	msg, err := th.statsUC.AverageAttempts(r.Context())
	if err != nil {
		th.log.Errorf("read average attempts: %v", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, userDomain.StringMessage{Message: msg})
}

type healthResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (th *TaskHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := th.checker.Check(r.Context()); err != nil {
		th.log.Warnf("health: %v", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusServiceUnavailable, healthResponse{Error: err.Error()})
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, healthResponse{Ok: true})
}
