package session

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamhack/hackctl/internal/domain/users"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	assert.Equal(t, "", s.Path())

	_, err := s.RequireToken()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, s.SetToken("tok"))
	require.NoError(t, s.SetHasProfile(true))
	require.NoError(t, s.SetIsAdmin(true))
	require.NoError(t, s.SetTeamNameOverride("h1", "Ночной дозор"))
	require.NoError(t, s.SetAvatar("me.png"))
	require.NoError(t, s.SetCurrentUser(users.User{ID: "u1", Name: "Иван"}))
	require.NoError(t, s.SetProfileDraft(users.Anketa{Name: "Иван"}))

	token, err := s.RequireToken()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.True(t, s.HasProfile())
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "Ночной дозор", s.TeamNameOverride("h1"))
	assert.Equal(t, "", s.TeamNameOverride("h2"))
	assert.Equal(t, "me.png", s.Avatar())

	u, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)

	draft, ok := s.ProfileDraft()
	require.True(t, ok)
	assert.Equal(t, "Иван", draft.Name)
}

func TestClearSession_KeepsLocalPreferences(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetToken("tok"))
	require.NoError(t, s.SetHasProfile(true))
	require.NoError(t, s.SetIsAdmin(true))
	require.NoError(t, s.SetCurrentUser(users.User{ID: "u1"}))
	require.NoError(t, s.SetProfileDraft(users.Anketa{Name: "Иван"}))
	require.NoError(t, s.SetTeamNameOverride("h1", "Team"))
	require.NoError(t, s.SetAvatar("me.png"))

	require.NoError(t, s.ClearSession())

	assert.Equal(t, "", s.Token())
	assert.False(t, s.HasProfile())
	assert.False(t, s.IsAdmin())
	_, ok := s.CurrentUser()
	assert.False(t, ok)
	_, ok = s.ProfileDraft()
	assert.False(t, ok)

	assert.Equal(t, "Team", s.TeamNameOverride("h1"))
	assert.Equal(t, "me.png", s.Avatar())
}

func TestSetTeamNameOverride_EmptyRemoves(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetTeamNameOverride("h1", "Team"))
	require.NoError(t, s.SetTeamNameOverride("h1", ""))
	assert.Equal(t, "", s.TeamNameOverride("h1"))
}

func TestClearProfileDraft(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetProfileDraft(users.Anketa{Name: "Иван"}))
	require.NoError(t, s.ClearProfileDraft())
	_, ok := s.ProfileDraft()
	assert.False(t, ok)
}

func TestFileStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "", s.Token())

	require.NoError(t, s.SetToken("tok"))
	require.NoError(t, s.SetIsAdmin(true))
	require.NoError(t, s.SetTeamNameOverride("h1", "Team"))
	require.NoError(t, s.SetCurrentUser(users.User{ID: "u1", Name: "Иван", Skills: []string{"Go"}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", reopened.Token())
	assert.True(t, reopened.IsAdmin())
	assert.Equal(t, "Team", reopened.TeamNameOverride("h1"))
	u, ok := reopened.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, []string{"Go"}, u.Skills)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: [unterminated"), 0o600))
	_, err = Open(path)
	assert.Error(t, err)
}

func TestFileStore_FailedWriteKeepsMemory(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "blocked")
	s, err := Open(filepath.Join(parent, "session.yaml"))
	require.NoError(t, err)
	require.NoError(t, s.SetTeamNameOverride("h1", "Альфа"))

	// A regular file where the directory should be makes every write fail.
	require.NoError(t, os.RemoveAll(parent))
	require.NoError(t, os.WriteFile(parent, nil, 0o600))

	assert.Error(t, s.SetToken("tok"))
	assert.Empty(t, s.Token())
	assert.False(t, s.IsAdmin())

	assert.Error(t, s.SetTeamNameOverride("h1", "Бета"))
	assert.Error(t, s.SetTeamNameOverride("h2", "Гамма"))
	assert.Equal(t, "Альфа", s.TeamNameOverride("h1"))
	assert.Empty(t, s.TeamNameOverride("h2"))
}

func TestStore_ConcurrentWrites(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "session.yaml"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.SetTeamNameOverride(string(rune('a'+i)), "team")
			_ = s.Token()
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		assert.Equal(t, "team", s.TeamNameOverride(string(rune('a'+i))))
	}
}
