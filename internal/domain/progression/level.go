package progression

import "math"

// XPForLevel returns the XP required to advance from the given level to the
// next one. The curve is exponential: level 1 costs 100 XP, level 2 costs
// 150, level 3 costs 225, and so on.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(100 * math.Pow(1.5, float64(level-1))))
}

// LevelForXP derives the level for a lifetime XP total. The level is the
// largest L whose cumulative requirement for levels 1..L-1 fits within the
// total; it is recomputed from XP on every read and never stored.
func LevelForXP(totalXP int) int {
	level := 1
	accumulated := 0
	for {
		needed := XPForLevel(level)
		if accumulated+needed > totalXP {
			return level
		}
		accumulated += needed
		level++
	}
}

// LevelProgress describes how far into the current level a lifetime XP
// total sits.
type LevelProgress struct {
	Level      int     `json:"level"`
	Current    int     `json:"current"`
	Needed     int     `json:"needed"`
	Percentage float64 `json:"percentage"`
}

// ProgressForXP returns the level derived from the XP total together with
// the XP earned within that level and the requirement to finish it.
func ProgressForXP(totalXP int) LevelProgress {
	level := LevelForXP(totalXP)

	previous := 0
	for l := 1; l < level; l++ {
		previous += XPForLevel(l)
	}

	current := totalXP - previous
	needed := XPForLevel(level)

	return LevelProgress{
		Level:      level,
		Current:    current,
		Needed:     needed,
		Percentage: float64(current) / float64(needed) * 100,
	}
}
