package mockapi

import (
	"net/http"
	"strconv"

	"github.com/itamhack/hackctl/internal/domain/catalog"
	"github.com/itamhack/hackctl/internal/domain/teams"
	"github.com/itamhack/hackctl/internal/domain/users"
	"github.com/itamhack/hackctl/internal/sanitize"
)

func (s *Server) listHackathons(w http.ResponseWriter, r *http.Request) {
	list := s.store.Hackathons()
	out := make([]hackathonView, 0, len(list))
	for _, h := range list {
		out = append(out, viewHackathon(h))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getHackathon(w http.ResponseWriter, r *http.Request) {
	h, err := s.store.Hackathon(pathParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewHackathon(h))
}

func (s *Server) myHackathons(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r)
	list := s.store.MyHackathons(userID)
	out := make([]hackathonView, 0, len(list))
	for _, m := range list {
		out = append(out, viewMyHackathon(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r)
	if err := s.store.Register(pathParam(r, "id"), userID); err != nil {
		fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Successfully registered for hackathon")
}

func (s *Server) unregister(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r)
	if err := s.store.Unregister(pathParam(r, "id"), userID); err != nil {
		fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Successfully unregistered from hackathon")
}

func (s *Server) hackathonParticipants(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.HackathonParticipants(pathParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewUsers(list))
}

func (s *Server) hackathonTeam(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r)
	t, err := s.store.TeamIn(userID, pathParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.viewTeam(t))
}

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.viewTeams(s.store.Teams()))
}

func (s *Server) myTeams(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r)
	writeJSON(w, http.StatusOK, s.store.viewTeams(s.store.TeamsOf(userID)))
}

func (s *Server) getTeam(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Team(pathParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.viewTeam(t))
}

func (s *Server) createTeam(w http.ResponseWriter, r *http.Request) {
	var in teams.CreateInput
	if err := decodeJSON(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	in.Name = sanitize.Text(in.Name)
	in.Description = sanitize.Text(in.Description)
	if err := in.Validate(); err != nil {
		invalid(w, r, err)
		return
	}
	userID, _ := caller(r)
	t, err := s.store.CreateTeam(userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.store.viewTeam(t))
}

func (s *Server) renameTeam(w http.ResponseWriter, r *http.Request) {
	var in teams.RenameInput
	if err := decodeJSON(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	in.Name = sanitize.Text(in.Name)
	if err := in.Validate(); err != nil {
		invalid(w, r, err)
		return
	}
	userID, _ := caller(r)
	t, err := s.store.RenameTeam(userID, pathParam(r, "id"), in.Name)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.viewTeam(t))
}

type memberRequest struct {
	UserID string `json:"user_id"`
}

func readMember(r *http.Request) (string, error) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		return "", err
	}
	if req.UserID == "" {
		return "", badRequest("user_id is required")
	}
	return req.UserID, nil
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := readMember(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	userID, _ := caller(r)
	if err := s.store.AddMember(userID, pathParam(r, "id"), memberID, false); err != nil {
		fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Member added successfully")
}

func (s *Server) removeMember(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r)
	if err := s.store.RemoveMember(userID, pathParam(r, "id"), pathParam(r, "userId")); err != nil {
		fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Member removed successfully")
}

func (s *Server) invite(w http.ResponseWriter, r *http.Request) {
	receiverID, err := readMember(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	userID, _ := caller(r)
	inv, err := s.store.Invite(userID, pathParam(r, "id"), receiverID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewInvitationRecord(inv))
}

func (s *Server) leaveTeam(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r)
	if err := s.store.Leave(userID, pathParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "You left the team")
}

// listUsers shows the participants who have filled in a questionnaire.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	all := s.store.Participants()
	out := all[:0]
	for _, p := range all {
		if p.Anketa != nil {
			out = append(out, p)
		}
	}
	writeJSON(w, http.StatusOK, viewUsers(out))
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Participant(pathParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewUser(p))
}

func (s *Server) profileTeams(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if _, err := s.store.Participant(id); err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.viewTeams(s.store.TeamsOf(id)))
}

func (s *Server) profileAchievements(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.Achievements(pathParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewAchievements(list))
}

func readAnketa(r *http.Request) (users.Anketa, error) {
	var a users.Anketa
	if err := decodeJSON(r, &a); err != nil {
		return users.Anketa{}, err
	}
	a.Name = sanitize.Text(a.Name)
	a.LastName = sanitize.Text(a.LastName)
	a.Role = sanitize.Text(a.Role)
	a.Contacts = sanitize.Text(a.Contacts)
	a.Skills = sanitize.Text(a.Skills)
	a.Experience = sanitize.Text(a.Experience)
	a.Bio = sanitize.Text(a.Bio)
	return a, nil
}

func (s *Server) createAnketa(w http.ResponseWriter, r *http.Request) {
	s.saveAnketa(w, r, http.StatusCreated, false)
}

func (s *Server) updateAnketa(w http.ResponseWriter, r *http.Request) {
	s.saveAnketa(w, r, http.StatusOK, true)
}

func (s *Server) saveAnketa(w http.ResponseWriter, r *http.Request, status int, mustExist bool) {
	a, err := readAnketa(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := a.Validate(); err != nil {
		invalid(w, r, err)
		return
	}
	userID, _ := caller(r)
	if mustExist {
		p, err := s.store.Participant(userID)
		if err != nil {
			fail(w, r, err)
			return
		}
		if p.Anketa == nil {
			fail(w, r, notFound("Anketa not found"))
			return
		}
	}
	p, err := s.store.SaveAnketa(userID, a)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, status, p.Anketa)
}

func (s *Server) getAnketa(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r)
	p, err := s.store.Participant(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	if p.Anketa == nil {
		fail(w, r, notFound("Anketa not found"))
		return
	}
	writeJSON(w, http.StatusOK, p.Anketa)
}

func (s *Server) myInvitations(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r)
	list := s.store.InvitationsFor(userID)
	out := make([]invitationJSON, 0, len(list))
	for _, v := range list {
		out = append(out, viewInvitation(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) acceptInvitation(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, true)
}

func (s *Server) rejectInvitation(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, false)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, accept bool) {
	userID, _ := caller(r)
	if err := s.store.Respond(userID, pathParam(r, "id"), accept); err != nil {
		fail(w, r, err)
		return
	}
	if accept {
		writeMessage(w, http.StatusOK, "Invitation accepted")
		return
	}
	writeMessage(w, http.StatusOK, "Invitation rejected")
}

type optionView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Server) listRoles(w http.ResponseWriter, r *http.Request) {
	roles := s.store.Roles()
	out := make([]optionView, 0, len(roles))
	for i, role := range roles {
		out = append(out, optionView{ID: strconv.Itoa(i + 1), Name: role})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listStacks(w http.ResponseWriter, r *http.Request) {
	stacks := s.store.Stacks()
	if stacks == nil {
		stacks = []string{}
	}
	writeJSON(w, http.StatusOK, stacks)
}

func (s *Server) listOrganizers(w http.ResponseWriter, r *http.Request) {
	list := s.store.Organizers()
	if list == nil {
		list = []catalog.Organizer{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) addOrganizer(w http.ResponseWriter, r *http.Request) {
	var in catalog.OrganizerInput
	if err := decodeJSON(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	in.Name = sanitize.Text(in.Name)
	in.Surname = sanitize.Text(in.Surname)
	in.Company = sanitize.Text(in.Company)
	if err := in.Validate(); err != nil {
		invalid(w, r, err)
		return
	}
	o, err := s.store.AddOrganizer(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}
