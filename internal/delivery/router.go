package delivery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	gameDelivery "hangman/internal/delivery/game"
	scoreDelivery "hangman/internal/delivery/score"
	taskDelivery "hangman/internal/delivery/tasks"
	userDelivery "hangman/internal/delivery/user"
)

type MainDeliveryHandler struct {
	User  *userDelivery.UserHandler
	Game  *gameDelivery.GameHandler
	Score *scoreDelivery.ScoreHandler
	Tasks *taskDelivery.TaskHandler
}

// Router mounts every endpoint on r. Extra middleware runs after the
// request id, logging and recovery middleware.
func (h *MainDeliveryHandler) Router(r chi.Router, extra ...func(http.Handler) http.Handler) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(extra...)

	r.Get("/health", h.Tasks.HandleHealth)

	r.Post("/user", h.User.HandleCreateUser)

	r.Route("/game", func(r chi.Router) {
		r.Post("/", h.Game.HandleNewGame)
		r.Get("/history/{urlsafe_game_key}", h.Game.HandleGameHistory)
		r.Get("/{urlsafe_game_key}", h.Game.HandleGetGame)
		r.Put("/{urlsafe_game_key}", h.Game.HandleMakeMove)
		r.Delete("/{urlsafe_game_key}", h.Game.HandleCancelGame)
	})

	r.Route("/games", func(r chi.Router) {
		r.Get("/user/{user_name}", h.Game.HandleUserGames)
		r.Get("/rankings", h.User.HandleRankings)
		r.Get("/average_attempts", h.Tasks.HandleAverageAttempts)
	})

	r.Route("/scores", func(r chi.Router) {
		r.Get("/", h.Score.HandleScores)
		r.Get("/high", h.Score.HandleHighScores)
		r.Get("/user/{user_name}", h.Score.HandleUserScores)
	})

	r.Post("/tasks/cache_average_attempts", h.Tasks.HandleCacheAverageAttempts)
}
