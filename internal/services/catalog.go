package services

import "github.com/Dias221467/mindbloom/internal/models"

// Achievement titles the gamification rules advance by name.
const (
	AchJournalStarter       = "Journal Starter"
	AchConsistentJournaler  = "Consistent Journaler"
	AchGratitudeGuru        = "Gratitude Guru"
	AchMoodTracker          = "Mood Tracker"
	AchChallengeAccepted    = "Challenge Accepted"
	AchChallengeMaster      = "Challenge Master"
	AchChallengeCreator     = "Challenge Creator"
	AchSocialButterfly      = "Social Butterfly"
	AchLevelUp              = "Level Up"
	AchMindfulnessMaster    = "Mindfulness Master"
	AchConsistencyChampion  = "Consistency Champion"
	AchChallengeConqueror   = "Challenge Conqueror"
	defaultAchievementXP    = 100
	defaultChallengeXP      = 100
	defaultCompletionTarget = 100
)

// DefaultAchievementTemplates seeds an empty catalog.
func DefaultAchievementTemplates() []models.AchievementTemplate {
	return []models.AchievementTemplate{
		{Title: AchJournalStarter, Description: "Create your first journal entry", Category: "Journaling", Icon: "journal", Target: 1, XPReward: 50},
		{Title: AchConsistentJournaler, Description: "Create journal entries for 7 consecutive days", Category: "Journaling", Icon: "streak", Target: 7, XPReward: 100, BadgeTitle: "Week Warrior"},
		{Title: AchGratitudeGuru, Description: "Record 50 things you are grateful for", Category: "Journaling", Icon: "gratitude", Target: 50, XPReward: 200, BadgeTitle: "Gratitude Guru"},
		{Title: AchMoodTracker, Description: "Track your mood for 30 days", Category: "Journaling", Icon: "mood", Target: 30, XPReward: 150},
		{Title: AchChallengeAccepted, Description: "Join your first challenge", Category: "Challenges", Icon: "challenge", Target: 1, XPReward: 50},
		{Title: AchChallengeMaster, Description: "Complete 5 challenges", Category: "Challenges", Icon: "trophy", Target: 5, XPReward: 250},
		{Title: AchChallengeCreator, Description: "Create your first challenge", Category: "Challenges", Icon: "create", Target: 1, XPReward: 75},
		{Title: AchSocialButterfly, Description: "Join 3 public challenges", Category: "Challenges", Icon: "social", Target: 3, XPReward: 100},
		{Title: AchLevelUp, Description: "Reach level 5", Category: "Progress", Icon: "level", Target: 5, XPReward: 300},
		{Title: AchMindfulnessMaster, Description: "Complete 10 mindfulness activities", Category: "Activities", Icon: "mindfulness", Target: 10, XPReward: 200, BadgeTitle: "Mindfulness Master"},
		{Title: AchConsistencyChampion, Description: "Check in for 30 days", Category: "Streak", Icon: "calendar", Target: 30, XPReward: 500},
		{Title: AchChallengeConqueror, Description: "Complete 5 challenges", Category: "Challenges", Icon: "flag", Target: 5, XPReward: 400, BadgeTitle: "Challenge Starter"},
	}
}

// DefaultBadges seeds an empty badge catalog.
func DefaultBadges() []models.Badge {
	return []models.Badge{
		{Title: "Early Bird", Description: "Earned for completing 5 morning check-ins before 8 AM", Category: "Habits", Rarity: "Common", XPReward: 100, IsActive: true},
		{Title: "Week Warrior", Description: "Earned for maintaining a 7-day streak", Category: "Streak", Rarity: "Common", XPReward: 150, IsActive: true},
		{Title: "Journaling Novice", Description: "Earned for writing 10 journal entries", Category: "Journaling", Rarity: "Common", XPReward: 100, IsActive: true},
		{Title: "Challenge Starter", Description: "Earned for completing your first challenge", Category: "Challenges", Rarity: "Common", XPReward: 150, IsActive: true},
		{Title: "Mindfulness Master", Description: "Earned for completing 20 meditation sessions", Category: "Mindfulness", Rarity: "Uncommon", XPReward: 250, IsActive: true},
		{Title: "Gratitude Guru", Description: "Earned for recording 50 gratitude entries", Category: "Journaling", Rarity: "Rare", XPReward: 300, IsActive: true},
	}
}
