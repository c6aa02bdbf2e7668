package user

import (
	"net/http"

	"go.uber.org/zap"

	userDomain "hangman/internal/domain/user"
	"hangman/internal/httpresponse"
	useruc "hangman/internal/usecase/user"
	"hangman/internal/utils"
)

type UserHandler struct {
	log    *zap.SugaredLogger
	userUC *useruc.UserUseCase
}

func NewUserHandler(log *zap.SugaredLogger, userUC *useruc.UserUseCase) *UserHandler {
	return &UserHandler{log: log, userUC: userUC}
}

func (h *UserHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userDomain.CreateUserRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Debugf("create user: %v", err)
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	created, err := h.userUC.CreateUser(r.Context(), req.UserName, req.Email)
	if err != nil {
		if httpresponse.StatusFromError(err) == http.StatusInternalServerError {
			h.log.Errorf("create user %s: %v", req.UserName, err)
		}
		httpresponse.WriteError(w, err)
		return
	}

	h.log.Infof("user %s created", created.Name)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, userDomain.CreatedMessage(created.Name))
}

func (h *UserHandler) HandleRankings(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUC.RankUsers(r.Context())
	if err != nil {
		if httpresponse.StatusFromError(err) == http.StatusInternalServerError {
			h.log.Errorf("rankings: %v", err)
		}
		httpresponse.WriteError(w, err)
		return
	}

	resp := userDomain.RankingResponse{Items: make([]userDomain.RankingEntry, 0, len(users))}
	for _, u := range users {
		resp.Items = append(resp.Items, u.ToRankingEntry())
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}
