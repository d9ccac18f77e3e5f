package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-health-keeper/internal/app"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/utils"
	"github.com/MKhiriev/go-health-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		if statusFromError(err) == http.StatusInternalServerError {
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, app.MsgRegistrationFailed, http.StatusBadGateway)
			return
		}
		log.Err(err).Msg("registration rejected")
		writeError(w, err)
		return
	}

	h.issueToken(w, r, registeredUser, app.MsgRegistrationFailed)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		if statusFromError(err) == http.StatusInternalServerError {
			log.Err(err).Msg("unexpected error occurred during user login")
			http.Error(w, app.MsgLoginFailed, http.StatusBadGateway)
			return
		}
		log.Err(err).Msg("login rejected")
		writeError(w, err)
		return
	}

	log.Debug().Str("subject_id", foundUser.UserID).Msg("user successfully logged in")

	h.issueToken(w, r, foundUser, app.MsgLoginFailed)
}

// issueToken answers a successful register or login with the session token
// in the Authorization header and the subject's key salt in the body.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user models.User, failureMsg string) {
	log := logger.FromRequest(r)

	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		log.Err(err).Str("subject_id", user.UserID).Msg("creation of token failed")
		http.Error(w, failureMsg, http.StatusBadGateway)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{
		SubjectID: user.UserID,
		KeySalt:   user.KeySalt,
	}, http.StatusOK)
}

// checkSession reports the state of the token the request was authorised
// with. Invalid tokens never get here: the auth middleware answers 401.
func (h *Handler) checkSession(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		http.Error(w, app.MsgNoSubjectIDProvided, http.StatusUnauthorized)
		return
	}

	state := models.SessionState{
		SubjectID: token.SubjectID,
		Valid:     true,
	}
	if token.ExpiresAt != nil {
		state.ExpiresAt = token.ExpiresAt.Time.UTC()
	}

	utils.WriteJSON(w, state, http.StatusOK)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, ok := utils.GetTokenFromContext(ctx)
	if !ok {
		http.Error(w, app.MsgNoSubjectIDProvided, http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.SignOut(ctx, token); err != nil {
		log.Err(err).Str("func", "*Handler.signOut").Str("subject_id", token.SubjectID).Msg("sign out failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
