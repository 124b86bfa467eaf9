package v1

import (
	"encoding/json"
	"net/http"

	"github.com/Xunop/aldiaa/internal/http/response"
	"github.com/Xunop/aldiaa/internal/log"
	"github.com/Xunop/aldiaa/internal/model"
	"github.com/Xunop/aldiaa/internal/session"
	"github.com/Xunop/aldiaa/internal/validator"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req model.UserLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	if err := validator.ValidateLoginRequest(&req); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	var (
		user *model.User
		err  error
	)
	if req.Provider != "" {
		user, err = h.session.LoginWithProvider(r.Context(), req.Provider)
	} else {
		user, err = h.session.Login(r.Context(), req.Email, req.Name)
	}
	if errors.Is(err, session.ErrUnknownProvider) {
		response.BadRequest(w, r, err)
		return
	}
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, user)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(r.Context()); err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	user, err := h.session.Current(r.Context())
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, user)
}

func (h *Handler) getSyncStatus(w http.ResponseWriter, r *http.Request) {
	user, err := h.session.Current(r.Context())
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	status := model.SyncStatus{Active: user != nil}
	if h.sync != nil {
		status.Syncing = h.sync.Syncing()
	}
	response.OK(w, r, status)
}
