package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/dmitrijs2005/newsroom/internal/server/auth"
)

const maxBodyBytes = 1 << 20

// handleToken implements the OAuth2 password grant: form fields username and
// password.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.writeError(r.Context(), w, fmt.Errorf("%w: malformed form body", common.ErrorValidation))
		return
	}
	if gt := r.PostForm.Get("grant_type"); gt != "" && gt != "password" {
		s.writeError(r.Context(), w, fmt.Errorf("%w: unsupported grant_type", common.ErrorValidation))
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	if username == "" || password == "" {
		s.writeError(r.Context(), w, fmt.Errorf("%w: username and password are required", common.ErrorValidation))
		return
	}

	tok, err := s.users.Login(r.Context(), username, password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		ExpiresIn:   int64(time.Until(tok.ExpiresAt).Seconds()),
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	caller, _ := auth.FromContext(r.Context())
	u, err := s.users.Register(r.Context(), req.Email, req.Password, req.IsAdmin, caller)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	logger(r.Context(), s.logger).Info(r.Context(), "Registered", "user_id", u.ID)
	writeJSON(w, http.StatusOK, newUserView(u))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	u, err := s.users.Me(r.Context(), id)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(u))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body", common.ErrorValidation)
	}
	return nil
}
