package mockapi

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/itamhack/hackctl/internal/auth"
	"github.com/itamhack/hackctl/internal/dates"
	"github.com/itamhack/hackctl/internal/domain/admins"
	"github.com/itamhack/hackctl/internal/domain/hackathons"
	"github.com/itamhack/hackctl/internal/domain/wire"
	"github.com/itamhack/hackctl/internal/sanitize"
)

const maxUploadMemory = 4 << 20

// hackathonForm is a parsed hackathon body plus the name of an uploaded cover,
// if any.
type hackathonForm struct {
	input hackathons.Input
	image string
}

// readHackathon accepts the same fields as JSON or as multipart/form-data with
// an optional "image" file.
func readHackathon(r *http.Request) (hackathonForm, error) {
	fields := map[string]string{}
	var form hackathonForm

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return form, &Error{Status: http.StatusRequestEntityTooLarge, Detail: "Request body too large"}
			}
			return form, badRequest("Invalid multipart body")
		}
		for key, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
		if files := r.MultipartForm.File["image"]; len(files) > 0 {
			form.image = path.Base(files[0].Filename)
		}
	} else {
		var raw map[string]json.RawMessage
		if err := decodeJSON(r, &raw); err != nil {
			return form, err
		}
		for key, value := range raw {
			if key == "max_team_size" {
				if n, ok := wire.Int(value); ok {
					fields[key] = strconv.Itoa(n)
				}
				continue
			}
			fields[key] = wire.String(value)
		}
	}

	in, err := hackathonInput(fields)
	if err != nil {
		return form, err
	}
	form.input = in
	return form, nil
}

func hackathonInput(fields map[string]string) (hackathons.Input, error) {
	in := hackathons.Input{
		Name:        sanitize.Text(fields["name"]),
		Description: sanitize.HTML(fields["describe"]),
		Location:    sanitize.Text(fields["location"]),
		ImageURL:    strings.TrimSpace(fields["image_url"]),
	}
	for key, dst := range map[string]*time.Time{
		"date_starts":    &in.StartsAt,
		"date_end":       &in.EndsAt,
		"register_start": &in.RegisterStart,
		"register_end":   &in.RegisterEnd,
	} {
		v := strings.TrimSpace(fields[key])
		if v == "" {
			continue
		}
		t, err := dates.ParseISO(v, time.UTC)
		if err != nil {
			return in, badRequest(fmt.Sprintf("Invalid date in %s", key))
		}
		*dst = t
	}
	if v := strings.TrimSpace(fields["max_team_size"]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, badRequest("max_team_size must be a number")
		}
		in.MaxTeamSize = n
	}
	return in, nil
}

func uploadURL(name string) string {
	return "/uploads/" + uuid.NewString() + "-" + name
}

func (s *Server) adminListHackathons(w http.ResponseWriter, r *http.Request) {
	s.listHackathons(w, r)
}

func (s *Server) createHackathon(w http.ResponseWriter, r *http.Request) {
	form, err := readHackathon(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := form.input.ValidateCreate(); err != nil {
		invalid(w, r, err)
		return
	}
	if form.image != "" {
		form.input.ImageURL = uploadURL(form.image)
	}
	if form.input.MaxTeamSize == 0 {
		form.input.MaxTeamSize = 5
	}
	actorID, _ := caller(r)
	h := s.store.CreateHackathon(form.input, actorID)
	writeJSON(w, http.StatusCreated, viewHackathon(h))
}

func (s *Server) updateHackathon(w http.ResponseWriter, r *http.Request) {
	form, err := readHackathon(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if form.image == "" || form.input != (hackathons.Input{}) {
		if err := form.input.ValidateUpdate(); err != nil {
			invalid(w, r, err)
			return
		}
	}
	if form.image != "" {
		form.input.ImageURL = uploadURL(form.image)
	}
	h, err := s.store.UpdateHackathon(pathParam(r, "id"), form.input)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewHackathon(h))
}

func (s *Server) deleteHackathon(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteHackathon(pathParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Hackathon deleted")
}

func (s *Server) finishHackathon(w http.ResponseWriter, r *http.Request) {
	res, err := s.store.Finish(pathParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) withoutTeam(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.WithoutTeam(pathParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewUsers(list))
}

// exportHackathon streams the team roster of a hackathon as CSV, one row per
// member.
func (s *Server) exportHackathon(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	h, err := s.store.Hackathon(id)
	if err != nil {
		fail(w, r, err)
		return
	}
	rows := [][]string{{"team", "first_name", "last_name", "role", "telegram", "is_captain"}}
	for _, t := range s.store.Teams() {
		if t.HackathonID != id {
			continue
		}
		v := s.store.viewTeam(t)
		for _, m := range v.Members {
			telegram := ""
			if p, err := s.store.Participant(m.UserID); err == nil {
				telegram = p.TelegramID
			}
			rows = append(rows, []string{
				v.Name, m.FirstName, m.LastName, m.Role, telegram,
				strconv.FormatBool(m.UserID == v.IDCapitan),
			})
		}
	}

	filename := fmt.Sprintf("%s-teams.csv", h.Name)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("hackathon_id", id).Msg("export write failed")
	}
}

func (s *Server) adminAddMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := readMember(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	teamID := pathParam(r, "id")
	if hid := pathParam(r, "hid"); hid != "" {
		t, err := s.store.Team(teamID)
		if err != nil {
			fail(w, r, err)
			return
		}
		if t.HackathonID != hid {
			fail(w, r, notFound("Team not found"))
			return
		}
	}
	actorID, _ := caller(r)
	if err := s.store.AddMember(actorID, teamID, memberID, true); err != nil {
		fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Member added successfully")
}

// adminListTeams lists every team, optionally narrowed with ?hackathon_id=.
func (s *Server) adminListTeams(w http.ResponseWriter, r *http.Request) {
	list := s.store.Teams()
	if hid := r.URL.Query().Get("hackathon_id"); hid != "" {
		filtered := list[:0]
		for _, t := range list {
			if t.HackathonID == hid {
				filtered = append(filtered, t)
			}
		}
		list = filtered
	}
	writeJSON(w, http.StatusOK, s.store.viewTeams(list))
}

func (s *Server) adminListParticipants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewUsers(s.store.Participants()))
}

func (s *Server) hackathonAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Analytics(pathParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) listAdmins(w http.ResponseWriter, r *http.Request) {
	list := s.store.Admins()
	out := make([]adminView, 0, len(list))
	for _, a := range list {
		out = append(out, viewAdmin(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createAdmin(w http.ResponseWriter, r *http.Request) {
	var in admins.CreateInput
	if err := decodeJSON(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	in.FirstName = sanitize.Text(in.FirstName)
	in.LastName = sanitize.Text(in.LastName)
	in.Company = sanitize.Text(in.Company)
	if err := in.Validate(); err != nil {
		invalid(w, r, err)
		return
	}
	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		fail(w, r, err)
		return
	}
	_, role := caller(r)
	a, err := s.store.CreateAdmin(role, in, hash)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewAdmin(a))
}

func (s *Server) updateMe(w http.ResponseWriter, r *http.Request) {
	var in admins.ProfileUpdate
	if err := decodeJSON(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	in.FirstName = sanitize.Text(in.FirstName)
	in.LastName = sanitize.Text(in.LastName)
	in.Company = sanitize.Text(in.Company)
	if err := in.Validate(); err != nil {
		invalid(w, r, err)
		return
	}
	actorID, _ := caller(r)
	a, err := s.store.UpdateAdmin(actorID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewAdmin(a))
}

func (s *Server) activateAdmin(w http.ResponseWriter, r *http.Request) {
	s.setAdminActive(w, r, true)
}

func (s *Server) deactivateAdmin(w http.ResponseWriter, r *http.Request) {
	s.setAdminActive(w, r, false)
}

func (s *Server) setAdminActive(w http.ResponseWriter, r *http.Request, active bool) {
	actorID, role := caller(r)
	if _, err := s.store.SetAdminActive(actorID, role, pathParam(r, "id"), active); err != nil {
		fail(w, r, err)
		return
	}
	if active {
		writeMessage(w, http.StatusOK, "Администратор активирован")
		return
	}
	writeMessage(w, http.StatusOK, "Администратор деактивирован")
}

func (s *Server) deleteAdmin(w http.ResponseWriter, r *http.Request) {
	actorID, role := caller(r)
	if err := s.store.DeleteAdmin(actorID, role, pathParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Администратор удалён")
}
