package mockapi

import (
	"net/http"

	"github.com/itamhack/hackctl/internal/auth"
	"github.com/itamhack/hackctl/internal/domain/admins"
	"github.com/itamhack/hackctl/internal/mockapi/problem"
)

type codeLoginRequest struct {
	Code string `json:"code"`
}

type codeLoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        userView `json:"user"`
	HasAnketa   bool     `json:"has_anketa"`
}

func (s *Server) loginByCode(w http.ResponseWriter, r *http.Request) {
	var req codeLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	p, err := s.store.ParticipantByCode(req.Code)
	if err != nil {
		fail(w, r, err)
		return
	}
	token, err := s.jwt.Issue(auth.Identity{
		ID:         p.ID,
		Role:       auth.RoleUser,
		Name:       p.FirstName + " " + p.LastName,
		TelegramID: p.TelegramID,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, codeLoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        viewUser(p),
		HasAnketa:   p.Anketa != nil,
	})
}

type adminTokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Admin       adminView `json:"admin"`
}

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	var creds admins.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		fail(w, r, err)
		return
	}
	if err := creds.Validate(); err != nil {
		invalid(w, r, err)
		return
	}
	a, ok := s.store.AdminByEmail(creds.Email)
	if !ok || !auth.CheckPassword(a.PasswordHash, creds.Password) {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", nil,
			problem.WithDetail("Incorrect email or password"))
		return
	}
	token, err := s.jwt.Issue(auth.Identity{
		ID:   a.ID,
		Role: auth.NormalizeRole(a.Role),
		Name: a.FirstName + " " + a.LastName,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adminTokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Admin:       viewAdmin(a),
	})
}
