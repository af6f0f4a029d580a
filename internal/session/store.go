// Package session keeps the client's cross-command state: the bearer token,
// profile and admin flags, local team-name overrides, the profile draft and
// the cached current user.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/itamhack/hackctl/internal/domain/users"
)

// ErrNoToken is returned by RequireToken when nobody is logged in.
var ErrNoToken = errors.New("not logged in")

// state is the persisted document.
type state struct {
	Token             string            `yaml:"token,omitempty"`
	HasProfile        bool              `yaml:"has_profile,omitempty"`
	IsAdmin           bool              `yaml:"is_admin,omitempty"`
	TeamNameOverrides map[string]string `yaml:"team_names,omitempty"`
	ProfileDraft      *users.Anketa     `yaml:"profile_draft,omitempty"`
	Avatar            string            `yaml:"avatar,omitempty"`
	CurrentUser       *users.User       `yaml:"current_user,omitempty"`
}

// Store is safe for concurrent use within one process. Writers in other
// processes are not coordinated; the last write wins.
type Store struct {
	mu   sync.Mutex
	path string
	st   state
}

// NewMemoryStore returns a store that is never written to disk.
func NewMemoryStore() *Store {
	return &Store{}
}

// Open loads the session file at path. A missing file is an empty session.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("session file path is required")
	}
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s.st); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	return s, nil
}

// Path is the backing file, or "" for a memory store.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) read(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.st)
}

// update applies fn to a copy and keeps it only once it is on disk, so a
// failed write leaves memory as it was.
func (s *Store) update(fn func(st *state)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.st.clone()
	fn(&next)
	if err := s.persist(&next); err != nil {
		return err
	}
	s.st = next
	return nil
}

// clone copies the overrides map; the pointer fields are only ever replaced.
func (st state) clone() state {
	if st.TeamNameOverrides != nil {
		overrides := make(map[string]string, len(st.TeamNameOverrides))
		for k, v := range st.TeamNameOverrides {
			overrides[k] = v
		}
		st.TeamNameOverrides = overrides
	}
	return st
}

// persist writes st through a temp file and rename so a crash never leaves a
// half-written session. Callers hold mu.
func (s *Store) persist(st *state) error {
	if s.path == "" {
		return nil
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp session: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod session: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	var token string
	s.read(func(st *state) { token = st.Token })
	return token
}

// RequireToken returns the token or ErrNoToken.
func (s *Store) RequireToken() (string, error) {
	if token := s.Token(); token != "" {
		return token, nil
	}
	return "", ErrNoToken
}

func (s *Store) SetToken(token string) error {
	return s.update(func(st *state) { st.Token = token })
}

// ClearSession logs out: token, flags, current user and profile draft are
// removed. Team-name overrides and the avatar are kept.
func (s *Store) ClearSession() error {
	return s.update(func(st *state) {
		st.Token = ""
		st.HasProfile = false
		st.IsAdmin = false
		st.CurrentUser = nil
		st.ProfileDraft = nil
	})
}

func (s *Store) HasProfile() bool {
	var v bool
	s.read(func(st *state) { v = st.HasProfile })
	return v
}

func (s *Store) SetHasProfile(v bool) error {
	return s.update(func(st *state) { st.HasProfile = v })
}

func (s *Store) IsAdmin() bool {
	var v bool
	s.read(func(st *state) { v = st.IsAdmin })
	return v
}

func (s *Store) SetIsAdmin(v bool) error {
	return s.update(func(st *state) { st.IsAdmin = v })
}

// TeamNameOverride returns the locally chosen team name for a hackathon.
func (s *Store) TeamNameOverride(hackathonID string) string {
	var name string
	s.read(func(st *state) { name = st.TeamNameOverrides[hackathonID] })
	return name
}

// SetTeamNameOverride saves a team name for a hackathon; "" removes it.
func (s *Store) SetTeamNameOverride(hackathonID, name string) error {
	return s.update(func(st *state) {
		if name == "" {
			delete(st.TeamNameOverrides, hackathonID)
			return
		}
		if st.TeamNameOverrides == nil {
			st.TeamNameOverrides = make(map[string]string)
		}
		st.TeamNameOverrides[hackathonID] = name
	})
}

// ProfileDraft returns the unsent questionnaire, if any.
func (s *Store) ProfileDraft() (users.Anketa, bool) {
	var (
		draft users.Anketa
		ok    bool
	)
	s.read(func(st *state) {
		if st.ProfileDraft != nil {
			draft, ok = *st.ProfileDraft, true
		}
	})
	return draft, ok
}

func (s *Store) SetProfileDraft(draft users.Anketa) error {
	return s.update(func(st *state) { st.ProfileDraft = &draft })
}

// ClearProfileDraft drops the draft once the questionnaire has been sent.
func (s *Store) ClearProfileDraft() error {
	return s.update(func(st *state) { st.ProfileDraft = nil })
}

func (s *Store) Avatar() string {
	var v string
	s.read(func(st *state) { v = st.Avatar })
	return v
}

func (s *Store) SetAvatar(v string) error {
	return s.update(func(st *state) { st.Avatar = v })
}

// CurrentUser returns the cached signed-in user.
func (s *Store) CurrentUser() (users.User, bool) {
	var (
		u  users.User
		ok bool
	)
	s.read(func(st *state) {
		if st.CurrentUser != nil {
			u, ok = *st.CurrentUser, true
		}
	})
	return u, ok
}

func (s *Store) SetCurrentUser(u users.User) error {
	return s.update(func(st *state) { st.CurrentUser = &u })
}
