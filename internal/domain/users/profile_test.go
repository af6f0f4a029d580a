package users

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievementsFromWire(t *testing.T) {
	raw := json.RawMessage(`[
		{"hackathon_id": "h1", "hackathon_name": "ITAM Hack", "result": "1 место", "role": "Backend", "date": "2024-03-17T18:00:00Z"},
		{"id": "2", "name": "Data Cup", "description": "Финалист", "date": "15.10.2023"}
	]`)
	got, err := AchievementsFromWire(raw, time.UTC)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Achievement{HackathonID: "h1", HackathonName: "ITAM Hack", Result: "1 место", Role: "Backend", Date: "17.03.2024"}, got[0])
	assert.Equal(t, Achievement{HackathonID: "2", HackathonName: "Data Cup", Result: "Финалист", Date: "15.10.2023"}, got[1])
}

func TestAnketa_Validate(t *testing.T) {
	a := Anketa{Name: "Иван", LastName: "Петров", Role: "Frontend", Contacts: "@ivan"}
	assert.NoError(t, a.Validate())

	err := Anketa{Name: "Иван"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last_name: required")
	assert.Contains(t, err.Error(), "contacts: required")
}

func TestAnketa_User(t *testing.T) {
	a, err := AnketaFromWire(json.RawMessage(`{"name": "Иван", "last_name": "Петров", "role": "Frontend", "contacts": "@ivan", "skills": "React, Vue", "bio": "Привет"}`))
	require.NoError(t, err)

	u := a.User("u1")
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Иван Петров", u.FullName())
	assert.Equal(t, []string{"React", "Vue"}, u.Skills)
	assert.Equal(t, "Привет", u.About)
}
