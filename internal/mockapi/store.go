package mockapi

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/itamhack/hackctl/internal/domain/admins"
	"github.com/itamhack/hackctl/internal/domain/catalog"
	"github.com/itamhack/hackctl/internal/domain/hackathons"
	"github.com/itamhack/hackctl/internal/domain/invitations"
	"github.com/itamhack/hackctl/internal/domain/teams"
	"github.com/itamhack/hackctl/internal/domain/users"
)

// Error is a failure the API reports to the caller as a problem document.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

func notFound(detail string) error   { return &Error{Status: http.StatusNotFound, Detail: detail} }
func badRequest(detail string) error { return &Error{Status: http.StatusBadRequest, Detail: detail} }
func forbidden(detail string) error  { return &Error{Status: http.StatusForbidden, Detail: detail} }

// StatusOf maps an error to the HTTP status it is reported with.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

type participant struct {
	ID         string
	FirstName  string
	LastName   string
	TelegramID string
	Role       string
	Skills     []string
	University string
	Bio        string
	AvatarURL  string
	Code       string
	Anketa     *users.Anketa
	CreatedAt  time.Time
}

type hackathon struct {
	ID            string
	Name          string
	Describe      string
	Location      string
	ImageURL      string
	DateStarts    time.Time
	DateEnd       time.Time
	RegisterStart time.Time
	RegisterEnd   time.Time
	MaxTeamSize   int
	CreatedAt     time.Time
	CreatedBy     string
	Registered    []string
}

type member struct {
	UserID   string
	JoinedAt time.Time
}

type team struct {
	ID          string
	Name        string
	HackathonID string
	CaptainID   string
	MaxSize     int
	Status      string
	Description string
	CreatedAt   time.Time
	IsActive    bool
	Members     []member
}

func (t *team) has(userID string) bool {
	return slices.ContainsFunc(t.Members, func(m member) bool { return m.UserID == userID })
}

type invitation struct {
	ID         string
	Type       invitations.Type
	TeamID     string
	SenderID   string
	ReceiverID string
	Status     invitations.Status
	CreatedAt  time.Time
	ReadAt     *time.Time
}

type achievement struct {
	UserID      string
	HackathonID string
	Result      string
	Role        string
	Date        time.Time
}

type admin struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	Permissions  string
	Company      string
	IsActive     bool
	CreatedAt    time.Time
}

// Store holds the mock API's data in memory. All methods are safe for
// concurrent use.
type Store struct {
	mu           sync.RWMutex
	now          func() time.Time
	participants []*participant
	hackathons   []*hackathon
	teams        []*team
	invitations  []*invitation
	achievements []achievement
	admins       []*admin
	organizers   []catalog.Organizer
	stacks       []string
}

// NewStore returns an empty store. now defaults to time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now}
}

func newID() string {
	return uuid.New().String()
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// Participants

func (s *Store) participant(id string) *participant {
	for _, p := range s.participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ParticipantByCode resolves a login code.
func (s *Store) ParticipantByCode(code string) (participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code = strings.TrimSpace(code)
	for _, p := range s.participants {
		if code != "" && p.Code == code {
			return *p, nil
		}
	}
	return participant{}, badRequest("Invalid or expired code")
}

func (s *Store) Participant(id string) (participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.participant(id); p != nil {
		return *p, nil
	}
	return participant{}, notFound("User not found")
}

func (s *Store) Participants() []participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]participant, 0, len(s.participants))
	for _, p := range s.participants {
		out = append(out, *p)
	}
	return out
}

// SaveAnketa stores the questionnaire and copies its fields onto the profile.
func (s *Store) SaveAnketa(userID string, a users.Anketa) (participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.participant(userID)
	if p == nil {
		return participant{}, notFound("User not found")
	}
	p.Anketa = &a
	p.FirstName = a.Name
	p.LastName = a.LastName
	p.Role = a.Role
	if a.Bio != "" {
		p.Bio = a.Bio
	}
	if skills := a.User(p.ID).Skills; len(skills) > 0 {
		p.Skills = skills
		s.addStacks(skills)
	}
	return *p, nil
}

func (s *Store) addStacks(values []string) {
	for _, v := range values {
		if v != "" && !slices.Contains(s.stacks, v) {
			s.stacks = append(s.stacks, v)
		}
	}
}

// Hackathons

func (s *Store) hackathon(id string) *hackathon {
	for _, h := range s.hackathons {
		if h.ID == id {
			return h
		}
	}
	return nil
}

func (s *Store) Hackathons() []hackathon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]hackathon, 0, len(s.hackathons))
	for _, h := range s.hackathons {
		out = append(out, *h)
	}
	return out
}

func (s *Store) Hackathon(id string) (hackathon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h := s.hackathon(id); h != nil {
		return *h, nil
	}
	return hackathon{}, notFound("Hackathon not found")
}

func (s *Store) CreateHackathon(in hackathons.Input, createdBy string) hackathon {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &hackathon{
		ID:            newID(),
		Name:          in.Name,
		Describe:      in.Description,
		Location:      in.Location,
		ImageURL:      in.ImageURL,
		DateStarts:    in.StartsAt,
		DateEnd:       in.EndsAt,
		RegisterStart: in.RegisterStart,
		RegisterEnd:   in.RegisterEnd,
		MaxTeamSize:   in.MaxTeamSize,
		CreatedAt:     s.timestamp(),
		CreatedBy:     createdBy,
	}
	s.hackathons = append(s.hackathons, h)
	return *h
}

// UpdateHackathon applies the set fields of in.
func (s *Store) UpdateHackathon(id string, in hackathons.Input) (hackathon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.hackathon(id)
	if current == nil {
		return hackathon{}, notFound("Hackathon not found")
	}
	next := *current
	h := &next
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setTime := func(dst *time.Time, v time.Time) {
		if !v.IsZero() {
			*dst = v
		}
	}
	setString(&h.Name, in.Name)
	setString(&h.Describe, in.Description)
	setString(&h.Location, in.Location)
	setString(&h.ImageURL, in.ImageURL)
	setTime(&h.DateStarts, in.StartsAt)
	setTime(&h.DateEnd, in.EndsAt)
	setTime(&h.RegisterStart, in.RegisterStart)
	setTime(&h.RegisterEnd, in.RegisterEnd)
	if in.MaxTeamSize > 0 {
		h.MaxTeamSize = in.MaxTeamSize
	}
	if h.DateEnd.Before(h.DateStarts) || h.RegisterEnd.Before(h.RegisterStart) {
		return hackathon{}, badRequest("End date must not be before start date")
	}
	*current = next
	return next, nil
}

// DeleteHackathon removes a hackathon with its teams and their invitations.
func (s *Store) DeleteHackathon(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hackathon(id) == nil {
		return notFound("Hackathon not found")
	}
	s.hackathons = slices.DeleteFunc(s.hackathons, func(h *hackathon) bool { return h.ID == id })
	removed := map[string]bool{}
	s.teams = slices.DeleteFunc(s.teams, func(t *team) bool {
		if t.HackathonID == id {
			removed[t.ID] = true
			return true
		}
		return false
	})
	s.invitations = slices.DeleteFunc(s.invitations, func(inv *invitation) bool { return removed[inv.TeamID] })
	return nil
}

func (s *Store) Register(hackathonID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.hackathon(hackathonID)
	if h == nil {
		return notFound("Hackathon not found")
	}
	if slices.Contains(h.Registered, userID) {
		return badRequest("Already registered for this hackathon")
	}
	now := s.now()
	if !h.RegisterEnd.IsZero() && now.After(h.RegisterEnd) {
		return badRequest("Registration is closed")
	}
	h.Registered = append(h.Registered, userID)
	return nil
}

// Unregister also takes the user out of their team in that hackathon.
func (s *Store) Unregister(hackathonID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.hackathon(hackathonID)
	if h == nil {
		return notFound("Hackathon not found")
	}
	if !slices.Contains(h.Registered, userID) {
		return badRequest("Not registered for this hackathon")
	}
	h.Registered = slices.DeleteFunc(h.Registered, func(id string) bool { return id == userID })
	if t := s.teamOf(userID, hackathonID); t != nil {
		s.removeMember(t, userID)
	}
	return nil
}

// HackathonParticipants lists the registered users of a hackathon.
func (s *Store) HackathonParticipants(hackathonID string) ([]participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h := s.hackathon(hackathonID)
	if h == nil {
		return nil, notFound("Hackathon not found")
	}
	out := make([]participant, 0, len(h.Registered))
	for _, id := range h.Registered {
		if p := s.participant(id); p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

// WithoutTeam lists registered users of a hackathon who are in none of its teams.
func (s *Store) WithoutTeam(hackathonID string) ([]participant, error) {
	all, err := s.HackathonParticipants(hackathonID)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := all[:0]
	for _, p := range all {
		if s.teamOf(p.ID, hackathonID) == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

// MyHackathons lists the hackathons a user is registered for or has a team
// in, with whether they captain it.
func (s *Store) MyHackathons(userID string) []myHackathon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []myHackathon
	for _, h := range s.hackathons {
		t := s.teamOf(userID, h.ID)
		if t == nil && !slices.Contains(h.Registered, userID) {
			continue
		}
		out = append(out, myHackathon{hackathon: *h, captain: t != nil && t.CaptainID == userID})
	}
	return out
}

type myHackathon struct {
	hackathon hackathon
	captain   bool
}

// Finish records an achievement for every team member of a hackathon. Members
// who already have one are skipped.
func (s *Store) Finish(hackathonID string) (hackathons.FinishResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.hackathon(hackathonID)
	if h == nil {
		return hackathons.FinishResult{}, notFound("Hackathon not found")
	}
	var res hackathons.FinishResult
	date := h.DateEnd
	if date.IsZero() {
		date = s.timestamp()
	}
	for _, t := range s.teams {
		if t.HackathonID != hackathonID {
			continue
		}
		for _, m := range t.Members {
			res.TotalParticipants++
			if slices.ContainsFunc(s.achievements, func(a achievement) bool {
				return a.UserID == m.UserID && a.HackathonID == hackathonID
			}) {
				res.AchievementsSkipped++
				continue
			}
			role := string(hackathons.RoleMember)
			if t.CaptainID == m.UserID {
				role = string(hackathons.RoleCaptain)
			}
			s.achievements = append(s.achievements, achievement{
				UserID:      m.UserID,
				HackathonID: hackathonID,
				Result:      "Участник",
				Role:        role,
				Date:        date,
			})
			res.AchievementsCreated++
		}
	}
	res.Message = "Хакатон завершён"
	return res, nil
}

// Achievements lists a user's achievements with hackathon names resolved.
func (s *Store) Achievements(userID string) ([]achievementView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.participant(userID) == nil {
		return nil, notFound("User not found")
	}
	out := []achievementView{}
	for _, a := range s.achievements {
		if a.UserID != userID {
			continue
		}
		name := ""
		if h := s.hackathon(a.HackathonID); h != nil {
			name = h.Name
		}
		out = append(out, achievementView{achievement: a, HackathonName: name})
	}
	return out, nil
}

type achievementView struct {
	achievement
	HackathonName string
}

// Teams

func (s *Store) team(id string) *team {
	for _, t := range s.teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Store) teamOf(userID, hackathonID string) *team {
	for _, t := range s.teams {
		if t.HackathonID == hackathonID && t.has(userID) {
			return t
		}
	}
	return nil
}

func (s *Store) removeMember(t *team, userID string) {
	t.Members = slices.DeleteFunc(t.Members, func(m member) bool { return m.UserID == userID })
	if t.CaptainID == userID && len(t.Members) > 0 {
		t.CaptainID = t.Members[0].UserID
	}
	if len(t.Members) == 0 {
		t.IsActive = false
	}
}

func (s *Store) Teams() []team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, *t)
	}
	return out
}

func (s *Store) Team(id string) (team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t := s.team(id); t != nil {
		return *t, nil
	}
	return team{}, notFound("Team not found")
}

// TeamsOf lists the teams a user belongs to.
func (s *Store) TeamsOf(userID string) []team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []team{}
	for _, t := range s.teams {
		if t.has(userID) {
			out = append(out, *t)
		}
	}
	return out
}

// TeamIn returns the user's team in a hackathon.
func (s *Store) TeamIn(userID, hackathonID string) (team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.hackathon(hackathonID) == nil {
		return team{}, notFound("Hackathon not found")
	}
	if t := s.teamOf(userID, hackathonID); t != nil {
		return *t, nil
	}
	return team{}, notFound("Team not found")
}

// CreateTeam makes captainID the captain and first member of a new team.
// Without a hackathon id the most recent hackathon the captain is registered
// for is used.
func (s *Store) CreateTeam(captainID string, in teams.CreateInput) (team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hackathonID := in.HackathonID
	if hackathonID == "" {
		for i := len(s.hackathons) - 1; i >= 0; i-- {
			if slices.Contains(s.hackathons[i].Registered, captainID) {
				hackathonID = s.hackathons[i].ID
				break
			}
		}
	}
	h := s.hackathon(hackathonID)
	if h == nil {
		return team{}, notFound("Hackathon not found")
	}
	if s.teamOf(captainID, h.ID) != nil {
		return team{}, badRequest("User is already in a team for this hackathon")
	}
	maxSize := in.MaxSize
	if maxSize == 0 {
		maxSize = h.MaxTeamSize
	}
	if maxSize == 0 {
		maxSize = 5
	}
	status := in.Status
	if status == "" {
		status = "open"
	}
	now := s.timestamp()
	t := &team{
		ID:          newID(),
		Name:        in.Name,
		HackathonID: h.ID,
		CaptainID:   captainID,
		MaxSize:     maxSize,
		Status:      status,
		Description: in.Description,
		CreatedAt:   now,
		IsActive:    true,
		Members:     []member{{UserID: captainID, JoinedAt: now}},
	}
	if !slices.Contains(h.Registered, captainID) {
		h.Registered = append(h.Registered, captainID)
	}
	s.teams = append(s.teams, t)
	return *t, nil
}

// RenameTeam changes a team's name. Only its captain may do it.
func (s *Store) RenameTeam(actorID, teamID, name string) (team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.team(teamID)
	if t == nil {
		return team{}, notFound("Team not found")
	}
	if t.CaptainID != actorID {
		return team{}, forbidden("Only team captain can update team")
	}
	t.Name = name
	return *t, nil
}

// AddMember puts a user into a team. Captains may add to their own team;
// asAdmin skips that check.
func (s *Store) AddMember(actorID, teamID, userID string, asAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.team(teamID)
	if t == nil {
		return notFound("Team not found")
	}
	if !asAdmin && t.CaptainID != actorID {
		return forbidden("Only team captain can add members")
	}
	return s.join(t, userID)
}

func (s *Store) join(t *team, userID string) error {
	if s.participant(userID) == nil {
		return notFound("User not found")
	}
	if s.teamOf(userID, t.HackathonID) != nil {
		return badRequest("User is already in a team for this hackathon")
	}
	if len(t.Members) >= t.MaxSize {
		return badRequest("Team is full")
	}
	t.Members = append(t.Members, member{UserID: userID, JoinedAt: s.timestamp()})
	t.IsActive = true
	if h := s.hackathon(t.HackathonID); h != nil && !slices.Contains(h.Registered, userID) {
		h.Registered = append(h.Registered, userID)
	}
	return nil
}

// RemoveMember takes a user out of a team. Only the captain may remove
// others, and the captain cannot remove themselves this way.
func (s *Store) RemoveMember(actorID, teamID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.team(teamID)
	if t == nil {
		return notFound("Team not found")
	}
	if t.CaptainID != actorID {
		return forbidden("Only team captain can remove members")
	}
	if userID == actorID {
		return badRequest("Captain cannot remove themselves")
	}
	if !t.has(userID) {
		return notFound("Member not found")
	}
	s.removeMember(t, userID)
	return nil
}

// Leave removes the user from a team. A leaving captain hands the team to the
// longest-standing member.
func (s *Store) Leave(userID, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.team(teamID)
	if t == nil {
		return notFound("Team not found")
	}
	if !t.has(userID) {
		return badRequest("You are not a member of this team")
	}
	s.removeMember(t, userID)
	return nil
}

// Invitations

// Invite records a pending invitation from a team's captain.
func (s *Store) Invite(senderID, teamID, receiverID string) (invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.team(teamID)
	if t == nil {
		return invitation{}, notFound("Team not found")
	}
	if t.CaptainID != senderID {
		return invitation{}, forbidden("Only team captain can send invitations")
	}
	if receiverID == senderID {
		return invitation{}, badRequest("Cannot invite yourself")
	}
	receiver := s.participant(receiverID)
	if receiver == nil {
		return invitation{}, notFound("User not found")
	}
	if receiver.Anketa == nil {
		return invitation{}, badRequest("Receiver must have an anketa")
	}
	if s.teamOf(receiverID, t.HackathonID) != nil {
		return invitation{}, badRequest("User is already in a team for this hackathon")
	}
	for _, inv := range s.invitations {
		if inv.TeamID == teamID && inv.ReceiverID == receiverID && inv.Status == invitations.StatusPending {
			return invitation{}, badRequest("Invitation already exists")
		}
	}
	if len(t.Members) >= t.MaxSize {
		return invitation{}, badRequest("Team is full")
	}
	inv := &invitation{
		ID:         ulid.Make().String(),
		Type:       invitations.TypeInvite,
		TeamID:     teamID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     invitations.StatusPending,
		CreatedAt:  s.timestamp(),
	}
	s.invitations = append(s.invitations, inv)
	return *inv, nil
}

// InvitationsFor lists the pending invitations addressed to a user and marks
// them read.
func (s *Store) InvitationsFor(userID string) []invitationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []invitationView{}
	now := s.timestamp()
	for _, inv := range s.invitations {
		if inv.ReceiverID != userID || inv.Status != invitations.StatusPending {
			continue
		}
		view := invitationView{invitation: *inv}
		if t := s.team(inv.TeamID); t != nil {
			view.TeamName = t.Name
			if h := s.hackathon(t.HackathonID); h != nil {
				view.HackathonID, view.HackathonName = h.ID, h.Name
			}
		}
		if p := s.participant(inv.SenderID); p != nil {
			view.Sender = *p
		}
		out = append(out, view)
		if inv.ReadAt == nil {
			inv.ReadAt = &now
		}
	}
	return out
}

type invitationView struct {
	invitation
	TeamName      string
	HackathonID   string
	HackathonName string
	Sender        participant
}

// Respond accepts or rejects a pending invitation. Accepting puts the
// receiver into the team.
func (s *Store) Respond(userID, invitationID string, accept bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var inv *invitation
	for _, candidate := range s.invitations {
		if candidate.ID == invitationID {
			inv = candidate
			break
		}
	}
	if inv == nil {
		return notFound("Invitation not found")
	}
	if inv.ReceiverID != userID {
		return forbidden("Not your invitation")
	}
	if inv.Status != invitations.StatusPending {
		return badRequest("Invitation already processed")
	}
	if !accept {
		inv.Status = invitations.StatusRejected
		return nil
	}
	t := s.team(inv.TeamID)
	if t == nil {
		return notFound("Team not found")
	}
	if err := s.join(t, userID); err != nil {
		return err
	}
	inv.Status = invitations.StatusAccepted
	return nil
}

// Catalog

// Roles lists the distinct participant roles.
func (s *Store) Roles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, p := range s.participants {
		if p.Role != "" && !slices.Contains(out, p.Role) {
			out = append(out, p.Role)
		}
	}
	return out
}

func (s *Store) Stacks() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.stacks)
}

func (s *Store) Organizers() []catalog.Organizer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.organizers)
}

func (s *Store) AddOrganizer(in catalog.OrganizerInput) (catalog.Organizer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.organizers {
		if strings.EqualFold(o.Email, in.Email) {
			return catalog.Organizer{}, badRequest("Organizer with this email already exists")
		}
	}
	o := catalog.Organizer{ID: newID(), Name: in.Name, Surname: in.Surname, Company: in.Company, Email: in.Email}
	s.organizers = append(s.organizers, o)
	return o, nil
}

// Admins

func (s *Store) admin(id string) *admin {
	for _, a := range s.admins {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// AdminByEmail finds an active admin account.
func (s *Store) AdminByEmail(email string) (admin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.admins {
		if strings.EqualFold(a.Email, email) && a.IsActive {
			return *a, true
		}
	}
	return admin{}, false
}

func (s *Store) Admin(id string) (admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a := s.admin(id); a != nil {
		return *a, nil
	}
	return admin{}, notFound("Администратор не найден")
}

func (s *Store) Admins() []admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]admin, 0, len(s.admins))
	for _, a := range s.admins {
		out = append(out, *a)
	}
	return out
}

// CreateAdmin adds an account. Only a superadmin may create another superadmin.
func (s *Store) CreateAdmin(actorRole string, in admins.CreateInput, passwordHash string) (admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	role := in.Role
	if role == "" {
		role = "admin"
	}
	if role == "superadmin" && actorRole != "superadmin" {
		return admin{}, forbidden("У вас недостаточно прав для создания супер-админа")
	}
	for _, a := range s.admins {
		if strings.EqualFold(a.Email, in.Email) {
			return admin{}, badRequest("Администратор с таким email уже существует")
		}
	}
	a := &admin{
		ID:           newID(),
		Email:        in.Email,
		PasswordHash: passwordHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		Permissions:  "basic",
		Company:      in.Company,
		IsActive:     true,
		CreatedAt:    s.timestamp(),
	}
	s.admins = append(s.admins, a)
	return *a, nil
}

func (s *Store) UpdateAdmin(id string, in admins.ProfileUpdate) (admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.admin(id)
	if a == nil {
		return admin{}, notFound("Администратор не найден")
	}
	if in.FirstName != "" {
		a.FirstName = in.FirstName
	}
	if in.LastName != "" {
		a.LastName = in.LastName
	}
	if in.Company != "" {
		a.Company = in.Company
	}
	return *a, nil
}

// SetAdminActive toggles an account. Admins cannot change themselves, and
// only a superadmin may change a superadmin.
func (s *Store) SetAdminActive(actorID, actorRole, id string, active bool) (admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.modifiableAdmin(actorID, actorRole, id)
	if err != nil {
		return admin{}, err
	}
	if actorID == id {
		return admin{}, badRequest("Нельзя деактивировать самого себя")
	}
	a.IsActive = active
	return *a, nil
}

func (s *Store) DeleteAdmin(actorID, actorRole, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.modifiableAdmin(actorID, actorRole, id); err != nil {
		return err
	}
	if actorID == id {
		return badRequest("Нельзя удалить самого себя")
	}
	s.admins = slices.DeleteFunc(s.admins, func(a *admin) bool { return a.ID == id })
	return nil
}

func (s *Store) modifiableAdmin(actorID, actorRole, id string) (*admin, error) {
	a := s.admin(id)
	if a == nil {
		return nil, notFound("Администратор не найден")
	}
	if a.Role == "superadmin" && actorRole != "superadmin" && actorID != id {
		return nil, forbidden("У вас недостаточно прав для изменения супер-админа")
	}
	return a, nil
}
