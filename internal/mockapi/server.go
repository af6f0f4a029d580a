// Package mockapi is an in-memory stand-in for the hackathon platform API.
// It serves the same routes and payload shapes, seeded with demo data, so the
// CLI can be used and tested without the real backend.
package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/itamhack/hackctl/internal/auth"
	"github.com/itamhack/hackctl/internal/config"
	"github.com/itamhack/hackctl/internal/metrics"
	"github.com/itamhack/hackctl/internal/mockapi/middleware"
	"github.com/itamhack/hackctl/internal/mockapi/problem"
	"github.com/itamhack/hackctl/internal/validation"
)

const tokenIssuer = "hackctl-mockapi"

type Server struct {
	store      *Store
	jwt        *auth.TokenIssuer
	logger     zerolog.Logger
	bcryptCost int
	version    string
	clock      func() time.Time
	seeded     bool
}

type Option func(*Server)

// WithStore serves an existing store instead of a freshly seeded one.
func WithStore(store *Store) Option {
	return func(s *Server) {
		s.store = store
		s.seeded = true
	}
}

func WithBcryptCost(cost int) Option {
	return func(s *Server) {
		s.bcryptCost = cost
	}
}

func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.clock = now
	}
}

// New builds a server from the mock API configuration. Unless WithStore is
// given, the store is seeded with demo data and the configured admin account.
func New(cfg config.MockAPIConfig, logger zerolog.Logger, opts ...Option) (*Server, error) {
	s := &Server{
		jwt:        auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry, tokenIssuer),
		logger:     logger,
		bcryptCost: auth.BcryptCost,
		version:    "dev",
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seeded {
		return s, nil
	}

	s.store = NewStore(s.clock)
	hash := ""
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		var err error
		hash, err = auth.HashPassword(cfg.AdminPassword, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	}
	s.store.Seed(cfg.AdminEmail, hash)
	return s, nil
}

// Store exposes the data behind the server.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the full HTTP handler: correlation IDs and request logging
// around the router.
func (s *Server) Handler() http.Handler {
	return middleware.CorrelationID(s.logger)(middleware.RequestLogging(s.Router()))
}

// Router registers every route.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Tracing, metrics.HTTPMiddleware)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		problem.Write(w, req, http.StatusNotFound, problem.TypeNotFound, "Not Found", nil)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		problem.Write(w, req, http.StatusMethodNotAllowed, "about:blank", "Method Not Allowed", nil)
	})

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestSize(middleware.MaxBodySize))

	api.HandleFunc("/auth/code", s.loginByCode).Methods(http.MethodPost)
	api.HandleFunc("/auth/admin/login", s.adminLogin).Methods(http.MethodPost)
	api.HandleFunc("/hackathons", s.listHackathons).Methods(http.MethodGet)
	api.HandleFunc("/hackathons/{id}/info", s.getHackathon).Methods(http.MethodGet)
	api.HandleFunc("/roles", s.listRoles).Methods(http.MethodGet)
	api.HandleFunc("/stacks", s.listStacks).Methods(http.MethodGet)
	api.HandleFunc("/organizers", s.listOrganizers).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Authenticate(s.jwt, auth.RoleAdmin, auth.RoleSuperAdmin))
	s.adminRoutes(admin)

	// Public and protected routes share paths, so auth is applied per route
	// on the one api router.
	staff := middleware.Authenticate(s.jwt, auth.RoleAdmin, auth.RoleSuperAdmin)
	api.Handle("/organizers", staff(http.HandlerFunc(s.addOrganizer))).Methods(http.MethodPost)
	s.userRoutes(api, middleware.Authenticate(s.jwt, auth.RoleUser))

	return r
}

func (s *Server) userRoutes(r *mux.Router, protect func(http.Handler) http.Handler) {
	handle := func(path string, h http.HandlerFunc, method string) {
		r.Handle(path, protect(h)).Methods(method)
	}

	handle("/hackathons/my", s.myHackathons, http.MethodGet)
	handle("/hackathons/{id}/register", s.register, http.MethodPost)
	handle("/hackathons/{id}/unregister", s.unregister, http.MethodDelete)
	handle("/hackathons/{id}/participants", s.hackathonParticipants, http.MethodGet)
	handle("/hackathons/{id}/team", s.hackathonTeam, http.MethodGet)

	handle("/teams", s.listTeams, http.MethodGet)
	handle("/teams", s.createTeam, http.MethodPost)
	handle("/teams/my", s.myTeams, http.MethodGet)
	handle("/teams/{id}", s.getTeam, http.MethodGet)
	handle("/teams/{id}", s.renameTeam, http.MethodPut)
	handle("/teams/{id}/members", s.addMember, http.MethodPost)
	handle("/teams/{id}/members/{userId}", s.removeMember, http.MethodDelete)
	handle("/teams/{id}/invite", s.invite, http.MethodPost)
	handle("/teams/{id}/leave", s.leaveTeam, http.MethodPost)

	handle("/users", s.listUsers, http.MethodGet)
	handle("/profile/{id}", s.getProfile, http.MethodGet)
	handle("/profile/{id}/teams", s.profileTeams, http.MethodGet)
	handle("/profile/{id}/achievements", s.profileAchievements, http.MethodGet)

	handle("/anketa", s.createAnketa, http.MethodPost)
	handle("/anketa/me", s.getAnketa, http.MethodGet)
	handle("/anketa/me", s.updateAnketa, http.MethodPut)

	handle("/invitations/my", s.myInvitations, http.MethodGet)
	handle("/invitations/{id}/accept", s.acceptInvitation, http.MethodPost)
	handle("/invitations/{id}/reject", s.rejectInvitation, http.MethodPost)
}

func (s *Server) adminRoutes(r *mux.Router) {
	r.HandleFunc("/hackathons", s.adminListHackathons).Methods(http.MethodGet)
	r.HandleFunc("/hackathons", s.createHackathon).Methods(http.MethodPost)
	r.HandleFunc("/hackathons/{id}", s.getHackathon).Methods(http.MethodGet)
	r.HandleFunc("/hackathons/{id}", s.updateHackathon).Methods(http.MethodPut)
	r.HandleFunc("/hackathons/{id}", s.deleteHackathon).Methods(http.MethodDelete)
	r.HandleFunc("/hackathons/{id}/finish", s.finishHackathon).Methods(http.MethodPost)
	r.HandleFunc("/hackathons/{id}/export", s.exportHackathon).Methods(http.MethodGet)
	r.HandleFunc("/hackathons/{id}/participants/without-team", s.withoutTeam).Methods(http.MethodGet)
	r.HandleFunc("/hackathons/{hid}/teams/{id}/members", s.adminAddMember).Methods(http.MethodPost)

	r.HandleFunc("/teams", s.adminListTeams).Methods(http.MethodGet)
	r.HandleFunc("/teams/{id}/members", s.adminAddMember).Methods(http.MethodPost)

	r.HandleFunc("/participants", s.adminListParticipants).Methods(http.MethodGet)
	r.HandleFunc("/participants/{id}", s.getProfile).Methods(http.MethodGet)
	r.HandleFunc("/participants/{id}/teams", s.profileTeams).Methods(http.MethodGet)
	r.HandleFunc("/participants/{id}/achievements", s.profileAchievements).Methods(http.MethodGet)

	r.HandleFunc("/analytics/hackathon/{id}", s.hackathonAnalytics).Methods(http.MethodGet)

	r.HandleFunc("/settings", s.listAdmins).Methods(http.MethodGet)
	r.HandleFunc("/settings", s.createAdmin).Methods(http.MethodPost)
	r.HandleFunc("/settings/me", s.updateMe).Methods(http.MethodPut)
	r.HandleFunc("/settings/{id}/activate", s.activateAdmin).Methods(http.MethodPost)
	r.HandleFunc("/settings/{id}/deactivate", s.deactivateAdmin).Methods(http.MethodPost)
	r.HandleFunc("/settings/{id}", s.deleteAdmin).Methods(http.MethodDelete)
}

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Version:   s.version,
		Timestamp: s.clock().UTC().Format(time.RFC3339),
	})
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// fail reports err as a problem document with the status StatusOf picks.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	switch status {
	case http.StatusNotFound:
		problem.Write(w, r, status, problem.TypeNotFound, "Not found", err)
	case http.StatusForbidden:
		problem.Write(w, r, status, problem.TypeForbidden, "Forbidden", err)
	case http.StatusUnauthorized:
		problem.Write(w, r, status, problem.TypeUnauthorized, "Unauthorized", err)
	case http.StatusConflict:
		problem.Write(w, r, status, problem.TypeConflict, "Conflict", err)
	case http.StatusBadRequest:
		problem.Write(w, r, status, problem.TypeValidation, "Bad request", err)
	case http.StatusInternalServerError:
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err,
			problem.WithDetail(http.StatusText(http.StatusInternalServerError)))
	default:
		problem.Write(w, r, status, "about:blank", http.StatusText(status), err)
	}
}

// invalid reports an input validation failure as 422, listing each field
// problem separately.
func invalid(w http.ResponseWriter, r *http.Request, err error) {
	var fe validation.FieldErrors
	var opts []problem.Option
	if errors.As(err, &fe) {
		opts = append(opts, problem.WithErrors(fe))
	}
	problem.Write(w, r, http.StatusUnprocessableEntity, problem.TypeValidation, "Invalid request", err, opts...)
}

// decodeJSON reads a JSON request body into dst. An empty body leaves dst unchanged.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &Error{Status: http.StatusRequestEntityTooLarge, Detail: "Request body too large"}
	}
	return badRequest("Invalid JSON body")
}

func pathParam(r *http.Request, key string) string {
	return mux.Vars(r)[key]
}

// caller returns the authenticated subject and role.
func caller(r *http.Request) (subject, role string) {
	if claims := middleware.Claims(r); claims != nil {
		return claims.Subject, claims.Role
	}
	return "", ""
}
