package domain

// Settings holds per-user client preferences. There is no logic here; the
// engine persists the blob and hands it back.
type Settings struct {
	SoundEnabled             bool    `json:"sound_enabled"`
	MusicEnabled             bool    `json:"music_enabled"`
	SoundVolume              float64 `json:"sound_volume"`
	MusicVolume              float64 `json:"music_volume"`
	Language                 string  `json:"language"`
	NotificationsEnabled     bool    `json:"notifications_enabled"`
	StreakReminderTime       string  `json:"streak_reminder_time"`
	DailyGoalReminderEnabled bool    `json:"daily_goal_reminder_enabled"`
	ReducedMotion            bool    `json:"reduced_motion"`
	HighContrast             bool    `json:"high_contrast"`
	Theme                    string  `json:"theme"`
}

// NewSettings returns the default preferences.
func NewSettings() *Settings {
	return &Settings{
		SoundEnabled:             true,
		MusicEnabled:             true,
		SoundVolume:              1.0,
		MusicVolume:              0.5,
		Language:                 "en",
		NotificationsEnabled:     true,
		StreakReminderTime:       "20:00",
		DailyGoalReminderEnabled: true,
		Theme:                    "light",
	}
}
