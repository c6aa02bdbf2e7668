package score

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	scoreDomain "hangman/internal/domain/score"
	"hangman/internal/httpresponse"
	scoreuc "hangman/internal/usecase/score"
)

type ScoreHandler struct {
	log     *zap.SugaredLogger
	scoreUC *scoreuc.ScoreUseCase
}

func NewScoreHandler(log *zap.SugaredLogger, scoreUC *scoreuc.ScoreUseCase) *ScoreHandler {
	return &ScoreHandler{log: log, scoreUC: scoreUC}
}

// HandleHighScores returns scores with the fewest guesses first.
// number_of_results <= 0 or absent returns every score.
func (h *ScoreHandler) HandleHighScores(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("number_of_results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, "number_of_results must be an integer")
			return
		}
		limit = n
	}

	scores, err := h.scoreUC.TopScores(r.Context(), limit)
	h.write(w, "high scores", scores, err)
}

func (h *ScoreHandler) HandleScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.scoreUC.AllScores(r.Context())
	h.write(w, "scores", scores, err)
}

func (h *ScoreHandler) HandleUserScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.scoreUC.ScoresForUser(r.Context(), chi.URLParam(r, "user_name"))
	h.write(w, "user scores", scores, err)
}

func (h *ScoreHandler) write(w http.ResponseWriter, op string, scores []scoreDomain.Score, err error) {
	if err != nil {
		if httpresponse.StatusFromError(err) == http.StatusInternalServerError {
			h.log.Errorf("%s: %v", op, err)
		}
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, scoreDomain.ToForms(scores))
}
