package services

// AchievementLevel maps a minimum takeoff count to a display tier.
type AchievementLevel struct {
	Level       int    `json:"level"`
	Title       string `json:"title"`
	MinTakeoffs int    `json:"min_takeoffs"`
	Color       string `json:"color"`
	BgColor     string `json:"bg_color"`
}

// achievementLevels is ordered ascending by MinTakeoffs.
var achievementLevels = []AchievementLevel{
	{Level: 1, Title: "凡人", MinTakeoffs: 0, Color: "#6B7280", BgColor: "#F3F4F6"},
	{Level: 2, Title: "鹿王", MinTakeoffs: 10, Color: "#F59E0B", BgColor: "#FEF3C7"},
	{Level: 3, Title: "机组人员", MinTakeoffs: 30, Color: "#3B82F6", BgColor: "#DBEAFE"},
	{Level: 4, Title: "机长", MinTakeoffs: 60, Color: "#8B5CF6", BgColor: "#EDE9FE"},
	{Level: 5, Title: "传奇机长", MinTakeoffs: 100, Color: "#EF4444", BgColor: "#FEE2E2"},
}

// AchievementLevels returns the full tier table.
func AchievementLevels() []AchievementLevel {
	return achievementLevels
}

// LevelFor returns the highest tier whose threshold is at most totalTakeoffs.
func LevelFor(totalTakeoffs int) AchievementLevel {
	for i := len(achievementLevels) - 1; i >= 0; i-- {
		if totalTakeoffs >= achievementLevels[i].MinTakeoffs {
			return achievementLevels[i]
		}
	}
	return achievementLevels[0]
}

// NextLevel returns the tier above the current one, or nil at the maximum.
func NextLevel(totalTakeoffs int) *AchievementLevel {
	current := LevelFor(totalTakeoffs)
	for i, level := range achievementLevels {
		if level.Level == current.Level {
			if i+1 >= len(achievementLevels) {
				return nil
			}
			next := achievementLevels[i+1]
			return &next
		}
	}
	return nil
}

// ProgressToNext returns the rounded percentage of progress from the current
// tier's threshold toward the next one, or 100 at the maximum tier.
func ProgressToNext(totalTakeoffs int) int {
	current := LevelFor(totalTakeoffs)
	next := NextLevel(totalTakeoffs)
	if next == nil {
		return 100
	}
	progress := totalTakeoffs - current.MinTakeoffs
	span := next.MinTakeoffs - current.MinTakeoffs
	return int(float64(progress)/float64(span)*100 + 0.5)
}
