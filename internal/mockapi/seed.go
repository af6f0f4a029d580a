package mockapi

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/itamhack/hackctl/internal/domain/catalog"
	"github.com/itamhack/hackctl/internal/domain/invitations"
	"github.com/itamhack/hackctl/internal/domain/users"
)

// SeedCodes are the fixed login codes of the seeded participants, in seed order.
var SeedCodes = []string{"100001", "100002", "100003", "100004", "100005", "100006"}

type seedUser struct {
	first, last, telegram, role, university, bio string
	skills                                       []string
	anketa                                       bool
}

var seedUsers = []seedUser{
	{"Иван", "Иванов", "@ivanov", "Frontend", "МГУ", "Опытный разработчик с фокусом на современные веб-технологии", []string{"React", "TypeScript", "CSS"}, true},
	{"Мария", "Петрова", "@petrova", "Backend", "СПбГУ", "Backend разработчик с опытом создания масштабируемых систем", []string{"Node.js", "Python", "PostgreSQL"}, true},
	{"Алексей", "Сидоров", "@sidorov", "Designer", "МГХПА", "Дизайнер интерфейсов с фокусом на пользовательский опыт", []string{"Figma", "UI/UX", "Illustrator"}, true},
	{"Елена", "Козлова", "@kozlova", "Fullstack", "МФТИ", "Fullstack разработчик с опытом создания полных веб-приложений", []string{"React", "Node.js", "MongoDB"}, true},
	{"Дмитрий", "Смирнов", "@smirnov", "DevOps", "ИТМО", "DevOps инженер с опытом настройки CI/CD", []string{"Docker", "Kubernetes", "AWS"}, true},
	{"Анна", "Волкова", "@volkova", "QA", "МГУ", "QA инженер с опытом автоматизированного тестирования", []string{"Testing", "Automation", "Selenium"}, false},
}

type seedHackathon struct {
	name, describe, image string
	startsIn              int
}

// Start dates are relative to the seed time so the upcoming filters always
// have something to show.
var seedHackathons = []seedHackathon{
	{"AI Hackathon", "Создайте инновационные решения с использованием искусственного интеллекта", "/images/hackathon1.jpg", 3},
	{"Web Development Challenge", "Разработайте современные веб-приложения с использованием новейших технологий", "/images/hackathon2.jpg", 10},
	{"Mobile App Contest", "Создайте мобильное приложение, которое изменит мир", "/images/hackathon3.jpg", 25},
	{"Blockchain Innovation", "Исследуйте возможности блокчейна для решения реальных проблем", "/images/hackathon4.jpg", 60},
}

// Seed fills an empty store with the demo data: six participants, four
// hackathons, two teams, a pending invitation, past achievements and one
// superadmin account.
func (s *Store) Seed(adminEmail, adminPasswordHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	day := 24 * time.Hour
	today := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, time.UTC)

	for i, su := range seedUsers {
		p := &participant{
			ID:         newID(),
			FirstName:  su.first,
			LastName:   su.last,
			TelegramID: su.telegram,
			Role:       su.role,
			Skills:     su.skills,
			University: su.university,
			Bio:        su.bio,
			Code:       SeedCodes[i],
			CreatedAt:  now,
		}
		if su.anketa {
			p.Anketa = &users.Anketa{
				Name:     su.first,
				LastName: su.last,
				Role:     su.role,
				Contacts: su.telegram,
				Skills:   strings.Join(su.skills, ", "),
				Bio:      su.bio,
			}
		}
		s.participants = append(s.participants, p)
		s.addStacks(su.skills)
	}
	u := s.participants

	for _, sh := range seedHackathons {
		starts := today.Add(time.Duration(sh.startsIn) * day)
		s.hackathons = append(s.hackathons, &hackathon{
			ID:            newID(),
			Name:          sh.name,
			Describe:      sh.describe,
			ImageURL:      sh.image,
			Location:      "Москва",
			DateStarts:    starts,
			DateEnd:       starts.Add(2 * day),
			RegisterStart: today.Add(-30 * day),
			RegisterEnd:   starts.Add(-day),
			MaxTeamSize:   5,
			CreatedAt:     now,
		})
	}
	h := s.hackathons
	h[0].Registered = []string{u[0].ID, u[1].ID, u[2].ID, u[5].ID}
	h[1].Registered = []string{u[3].ID, u[4].ID, u[0].ID}

	alpha := &team{
		ID:          newID(),
		Name:        "Команда Альфа",
		HackathonID: h[0].ID,
		CaptainID:   u[0].ID,
		MaxSize:     5,
		Status:      "open",
		CreatedAt:   now,
		IsActive:    true,
		Members: []member{
			{UserID: u[0].ID, JoinedAt: now},
			{UserID: u[1].ID, JoinedAt: now},
			{UserID: u[2].ID, JoinedAt: now},
		},
	}
	beta := &team{
		ID:          newID(),
		Name:        "Команда Бета",
		HackathonID: h[1].ID,
		CaptainID:   u[3].ID,
		MaxSize:     4,
		Status:      "open",
		CreatedAt:   now,
		IsActive:    true,
		Members: []member{
			{UserID: u[3].ID, JoinedAt: now},
			{UserID: u[4].ID, JoinedAt: now},
		},
	}
	s.teams = append(s.teams, alpha, beta)

	s.invitations = append(s.invitations, &invitation{
		ID:         ulid.Make().String(),
		Type:       invitations.TypeInvite,
		TeamID:     beta.ID,
		SenderID:   u[3].ID,
		ReceiverID: u[0].ID,
		Status:     invitations.StatusPending,
		CreatedAt:  now.Add(-2 * time.Hour),
	})

	past := &hackathon{
		ID:            newID(),
		Name:          "Autumn Hack",
		Describe:      "Прошедший хакатон",
		Location:      "Москва",
		DateStarts:    today.Add(-90 * day),
		DateEnd:       today.Add(-88 * day),
		RegisterStart: today.Add(-120 * day),
		RegisterEnd:   today.Add(-91 * day),
		MaxTeamSize:   5,
		CreatedAt:     now,
	}
	s.hackathons = append(s.hackathons, past)
	for _, a := range []achievement{
		{UserID: u[0].ID, Result: "Победитель в номинации \"Лучшее AI решение\"", Role: "captain"},
		{UserID: u[1].ID, Result: "Второе место в категории \"Веб-приложения\"", Role: "member"},
		{UserID: u[2].ID, Result: "Участник финала", Role: "member"},
	} {
		a.HackathonID = past.ID
		a.Date = past.DateEnd
		s.achievements = append(s.achievements, a)
	}

	s.organizers = append(s.organizers, catalog.Organizer{
		ID:      newID(),
		Name:    "ITAM",
		Company: "ITAM",
		Email:   "team@itam.example",
	})

	if adminEmail != "" && adminPasswordHash != "" {
		s.admins = append(s.admins, &admin{
			ID:           newID(),
			Email:        adminEmail,
			PasswordHash: adminPasswordHash,
			FirstName:    "Admin",
			Role:         "superadmin",
			Permissions:  "all",
			IsActive:     true,
			CreatedAt:    now,
		})
	}
}
