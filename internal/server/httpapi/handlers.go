package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"message": message})
}

// validate checks the request shape only; credential policy (password
// strength, uniqueness) stays in the credential store.
func (r registerRequest) validate() string {
	if r.Username == "" {
		return "username is required"
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return "invalid email"
	}
	if r.Password == "" {
		return "password is required"
	}
	return ""
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		s.writeError(w, http.StatusBadRequest, msg)
		return
	}

	outcome, err := s.auth.Register(r.Context(), services.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		s.metrics.RecordRegistration("error")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !outcome.Succeeded {
		s.metrics.RecordRegistration("rejected")
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"succeeded": false, "reasons": outcome.Reasons})
		return
	}

	s.logger.Info(r.Context(), "account registered", "username", req.Username)
	s.metrics.RecordRegistration("ok")
	s.writeJSON(w, http.StatusOK, map[string]any{"succeeded": true})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := s.auth.Login(r.Context(), services.LoginRequest{Username: req.Username, Password: req.Password})
	if err != nil {
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		s.metrics.RecordLogin("error")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if token == "" {
		s.metrics.RecordLogin("rejected")
		s.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.metrics.RecordLogin("ok")
	s.writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {

	claims, _ := ClaimSetFromContext(r.Context())
	accountID, ok := s.profile.ResolveAccountID(claims)
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	account, err := s.profile.GetProfile(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeError(w, http.StatusNotFound, "account not found")
			return
		}
		s.logger.Error(r.Context(), "profile read failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := map[string]any{
		"account_id": account.ID,
		"username":   account.UserName,
		"email":      account.Email,
	}
	if account.AvatarKey != "" {
		url, err := s.storage.PresignGetURL(r.Context(), account.AvatarKey)
		if err != nil {
			s.logger.Error(r.Context(), "presigning avatar url failed", "error", err.Error())
		} else {
			resp["avatar_url"] = url
		}
		if account.AvatarUploadedAt != nil {
			resp["avatar_uploaded_at"] = account.AvatarUploadedAt.Format(time.RFC3339)
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {

	claims, _ := ClaimSetFromContext(r.Context())
	accountID, ok := s.profile.ResolveAccountID(claims)
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid upload")
		return
	}
	defer file.Close()

	uploadedAt := time.Now().UTC()
	if v := r.FormValue("uploaded_at"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid uploaded_at")
			return
		}
		uploadedAt = parsed
	}

	assetRef, err := s.storage.Upload(r.Context(), file)
	if err != nil {
		s.logger.Error(r.Context(), "avatar upload failed", "error", err.Error())
		s.metrics.RecordProfileUpdate("error")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	result, err := s.profile.UpdateProfile(r.Context(), accountID, assetRef, uploadedAt)
	if err != nil {
		s.logger.Error(r.Context(), "profile update failed", "error", err.Error())
		s.metrics.RecordProfileUpdate("error")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	switch result.Status {
	case services.UpdateSucceeded:
		s.metrics.RecordProfileUpdate("ok")
		s.writeJSON(w, http.StatusOK, map[string]any{"succeeded": true, "asset_ref": assetRef})
	case services.UpdateInvalidUpload:
		s.metrics.RecordProfileUpdate("invalid")
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"succeeded": false, "reasons": result.Reasons})
	case services.UpdateAccountNotFound:
		s.metrics.RecordProfileUpdate("not_found")
		s.writeJSON(w, http.StatusNotFound, map[string]any{"succeeded": false, "reasons": result.Reasons})
	default:
		s.metrics.RecordProfileUpdate("failed")
		s.writeJSON(w, http.StatusInternalServerError, map[string]any{"succeeded": false, "reasons": result.Reasons})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
