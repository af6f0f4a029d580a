package hackathons

// FinishResult reports what closing a hackathon did.
type FinishResult struct {
	Message             string `json:"message"`
	AchievementsCreated int    `json:"achievements_created"`
	AchievementsSkipped int    `json:"achievements_skipped"`
	TotalParticipants   int    `json:"total_participants"`
}
