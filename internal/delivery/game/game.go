package game

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hangman/internal/domain/game"
	"hangman/internal/httpresponse"
	gameuc "hangman/internal/usecase/game"
	"hangman/internal/utils"
)

const gameKeyParam = "urlsafe_game_key"

type GameHandler struct {
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
}

func NewGameHandler(log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{
		log:    log,
		gameUC: gameUC,
	}
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.NewGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Debugf("new game: %v", err)
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	newGame, err := g.gameUC.NewGame(r.Context(), req)
	if err != nil {
		g.writeError(w, "new game", err)
		return
	}

	g.log.Infof("new game %s for %s", newGame.Key, newGame.UserName)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, newGame.ToForm(gameuc.MsgGoodLuck))
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	play, err := g.gameUC.GetGame(r.Context(), chi.URLParam(r, gameKeyParam))
	if err != nil {
		g.writeError(w, "get game", err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, play.ToForm(gameuc.MsgMakeAMove))
}

func (g *GameHandler) HandleMakeMove(w http.ResponseWriter, r *http.Request) {
	var req game.MakeMoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Debugf("make move: %v", err)
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	key := chi.URLParam(r, gameKeyParam)
	play, msg, err := g.gameUC.MakeMove(r.Context(), key, req.Guess)
	if err != nil {
		g.writeError(w, "make move on "+key, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, play.ToForm(msg))
}

func (g *GameHandler) HandleCancelGame(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, gameKeyParam)
	play, msg, err := g.gameUC.CancelGame(r.Context(), key)
	if err != nil {
		g.writeError(w, "cancel game "+key, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, play.ToForm(msg))
}

func (g *GameHandler) HandleGameHistory(w http.ResponseWriter, r *http.Request) {
	history, err := g.gameUC.GameHistory(r.Context(), chi.URLParam(r, gameKeyParam))
	if err != nil {
		g.writeError(w, "game history", err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.GameHistoryForms{Moves: history})
}

func (g *GameHandler) HandleUserGames(w http.ResponseWriter, r *http.Request) {
	games, err := g.gameUC.UserGames(r.Context(), chi.URLParam(r, "user_name"))
	if err != nil {
		g.writeError(w, "user games", err)
		return
	}

	forms := game.GameForms{Items: make([]game.GameForm, 0, len(games))}
	for _, play := range games {
		forms.Items = append(forms.Items, play.ToForm(""))
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, forms)
}

func (g *GameHandler) writeError(w http.ResponseWriter, op string, err error) {
	if httpresponse.StatusFromError(err) == http.StatusInternalServerError {
		g.log.Errorf("%s: %v", op, err)
	} else {
		g.log.Debugf("%s: %v", op, err)
	}
	httpresponse.WriteError(w, err)
}
