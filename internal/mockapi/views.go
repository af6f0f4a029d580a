package mockapi

import (
	"time"

	"github.com/itamhack/hackctl/internal/dates"
	"github.com/itamhack/hackctl/internal/domain/analytics"
	"github.com/itamhack/hackctl/internal/domain/invitations"
)

// The view types mirror the backend's response schemas, field names included.

func isoTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return dates.FormatISO(t)
}

type hackathonView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Describe      string `json:"describe,omitempty"`
	DateStarts    string `json:"date_starts,omitempty"`
	DateEnd       string `json:"date_end,omitempty"`
	RegisterStart string `json:"register_start,omitempty"`
	RegisterEnd   string `json:"register_end,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	Location      string `json:"location,omitempty"`
	MaxTeamSize   int    `json:"max_team_size,omitempty"`
	CreatedAt     string `json:"created_at"`
	CreatedBy     string `json:"created_by,omitempty"`
	Role          string `json:"role,omitempty"`
	IsCaptain     *bool  `json:"is_captain,omitempty"`
}

func viewHackathon(h hackathon) hackathonView {
	return hackathonView{
		ID:            h.ID,
		Name:          h.Name,
		Describe:      h.Describe,
		DateStarts:    isoTime(h.DateStarts),
		DateEnd:       isoTime(h.DateEnd),
		RegisterStart: isoTime(h.RegisterStart),
		RegisterEnd:   isoTime(h.RegisterEnd),
		ImageURL:      h.ImageURL,
		Location:      h.Location,
		MaxTeamSize:   h.MaxTeamSize,
		CreatedAt:     isoTime(h.CreatedAt),
		CreatedBy:     h.CreatedBy,
	}
}

func viewMyHackathon(m myHackathon) hackathonView {
	v := viewHackathon(m.hackathon)
	captain := m.captain
	v.IsCaptain = &captain
	v.Role = "member"
	if captain {
		v.Role = "captain"
	}
	return v
}

type userView struct {
	ID         string   `json:"id"`
	TelegramID string   `json:"telegram_id,omitempty"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name,omitempty"`
	AvatarURL  string   `json:"avatar_url,omitempty"`
	Role       string   `json:"role,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	University string   `json:"university,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	HasAnketa  bool     `json:"has_anketa"`
	CreatedAt  string   `json:"created_at"`
	IsActive   bool     `json:"is_active"`
}

func viewUser(p participant) userView {
	return userView{
		ID:         p.ID,
		TelegramID: p.TelegramID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		AvatarURL:  p.AvatarURL,
		Role:       p.Role,
		Skills:     p.Skills,
		University: p.University,
		Bio:        p.Bio,
		HasAnketa:  p.Anketa != nil,
		CreatedAt:  isoTime(p.CreatedAt),
		IsActive:   true,
	}
}

func viewUsers(list []participant) []userView {
	out := make([]userView, 0, len(list))
	for _, p := range list {
		out = append(out, viewUser(p))
	}
	return out
}

type memberView struct {
	UserID     string `json:"user_id"`
	JoinedAt   string `json:"joined_at"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	UserAvatar string `json:"user_avatar,omitempty"`
	Role       string `json:"role,omitempty"`
}

type teamView struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	IDHackathon   string       `json:"id_hackathon"`
	HackathonName string       `json:"hackathon_name,omitempty"`
	IDCapitan     string       `json:"id_capitan"`
	MaxSize       int          `json:"max_size"`
	Status        string       `json:"status"`
	Description   string       `json:"description,omitempty"`
	CreatedAt     string       `json:"created_at"`
	IsActive      bool         `json:"is_active"`
	Members       []memberView `json:"members"`
}

// viewTeam resolves member names and the hackathon name through the store.
func (s *Store) viewTeam(t team) teamView {
	v := teamView{
		ID:          t.ID,
		Name:        t.Name,
		IDHackathon: t.HackathonID,
		IDCapitan:   t.CaptainID,
		MaxSize:     t.MaxSize,
		Status:      t.Status,
		Description: t.Description,
		CreatedAt:   isoTime(t.CreatedAt),
		IsActive:    t.IsActive,
		Members:     make([]memberView, 0, len(t.Members)),
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h := s.hackathon(t.HackathonID); h != nil {
		v.HackathonName = h.Name
	}
	for _, m := range t.Members {
		mv := memberView{UserID: m.UserID, JoinedAt: isoTime(m.JoinedAt)}
		if p := s.participant(m.UserID); p != nil {
			mv.FirstName, mv.LastName, mv.UserAvatar, mv.Role = p.FirstName, p.LastName, p.AvatarURL, p.Role
		}
		v.Members = append(v.Members, mv)
	}
	return v
}

func (s *Store) viewTeams(list []team) []teamView {
	out := make([]teamView, 0, len(list))
	for _, t := range list {
		out = append(out, s.viewTeam(t))
	}
	return out
}

type refView struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type senderView struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type invitationJSON struct {
	ID             string             `json:"id"`
	InvitationType invitations.Type   `json:"invitation_type"`
	TeamID         string             `json:"team_id"`
	SenderID       string             `json:"sender_id"`
	ReceiverID     string             `json:"receiver_id"`
	Status         invitations.Status `json:"status"`
	CreatedAt      string             `json:"created_at"`
	ReadAt         string             `json:"read_at,omitempty"`
	TeamName       string             `json:"team_name,omitempty"`
	HackathonName  string             `json:"hackathon_name,omitempty"`
	Hackathon      *refView           `json:"hackathon,omitempty"`
	Sender         *senderView        `json:"sender,omitempty"`
}

func viewInvitation(v invitationView) invitationJSON {
	out := invitationJSON{
		ID:             v.ID,
		InvitationType: v.Type,
		TeamID:         v.TeamID,
		SenderID:       v.SenderID,
		ReceiverID:     v.ReceiverID,
		Status:         v.Status,
		CreatedAt:      isoTime(v.CreatedAt),
		TeamName:       v.TeamName,
		HackathonName:  v.HackathonName,
	}
	if v.ReadAt != nil {
		out.ReadAt = isoTime(*v.ReadAt)
	}
	if v.HackathonID != "" {
		out.Hackathon = &refView{ID: v.HackathonID, Name: v.HackathonName}
	}
	if v.Sender.ID != "" {
		out.Sender = &senderView{ID: v.Sender.ID, FirstName: v.Sender.FirstName, LastName: v.Sender.LastName, AvatarURL: v.Sender.AvatarURL}
	}
	return out
}

func viewInvitationRecord(inv invitation) invitationJSON {
	return viewInvitation(invitationView{invitation: inv})
}

type achievementJSON struct {
	HackathonID   string `json:"hackathon_id"`
	HackathonName string `json:"hackathon_name"`
	Result        string `json:"result"`
	Role          string `json:"role"`
	Date          string `json:"date,omitempty"`
}

func viewAchievements(list []achievementView) []achievementJSON {
	out := make([]achievementJSON, 0, len(list))
	for _, a := range list {
		out = append(out, achievementJSON{
			HackathonID:   a.HackathonID,
			HackathonName: a.HackathonName,
			Result:        a.Result,
			Role:          a.Role,
			Date:          isoTime(a.Date),
		})
	}
	return out
}

type adminView struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	Permissions string `json:"permissions"`
	Company     string `json:"company,omitempty"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
}

func viewAdmin(a admin) adminView {
	return adminView{
		ID:          a.ID,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Role:        a.Role,
		Permissions: a.Permissions,
		Company:     a.Company,
		IsActive:    a.IsActive,
		CreatedAt:   isoTime(a.CreatedAt),
	}
}

// Analytics summarizes team formation in a hackathon.
func (s *Store) Analytics(hackathonID string) (analytics.Analytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h := s.hackathon(hackathonID)
	if h == nil {
		return analytics.Analytics{}, notFound("Hackathon not found")
	}

	inTeam := map[string]bool{}
	var comps []analytics.TeamComposition
	for _, t := range s.teams {
		if t.HackathonID != hackathonID {
			continue
		}
		tc := analytics.TeamComposition{
			TeamID:        t.ID,
			TeamName:      t.Name,
			HackathonName: h.Name,
			MembersCount:  len(t.Members),
			MaxSize:       t.MaxSize,
			Members:       []analytics.CompositionMember{},
		}
		for _, m := range t.Members {
			inTeam[m.UserID] = true
			cm := analytics.CompositionMember{UserID: m.UserID, IsCaptain: m.UserID == t.CaptainID}
			if p := s.participant(m.UserID); p != nil {
				cm.FirstName, cm.LastName, cm.Role = p.FirstName, p.LastName, p.Role
				if cm.IsCaptain {
					tc.CaptainName = p.FirstName + " " + p.LastName
				}
			}
			tc.Members = append(tc.Members, cm)
		}
		comps = append(comps, tc)
	}

	total := map[string]bool{}
	for _, id := range h.Registered {
		total[id] = true
	}
	for id := range inTeam {
		total[id] = true
	}
	without := 0
	for id := range total {
		if !inTeam[id] {
			without++
		}
	}
	if comps == nil {
		comps = []analytics.TeamComposition{}
	}
	return analytics.Analytics{
		HackathonStats: analytics.HackathonStats{
			HackathonID:             h.ID,
			HackathonName:           h.Name,
			TotalParticipants:       len(total),
			TotalTeams:              len(comps),
			ParticipantsWithoutTeam: without,
			TeamFormationPercentage: analytics.FormationPercentage(len(total), without),
		},
		TeamCompositions: comps,
	}, nil
}
