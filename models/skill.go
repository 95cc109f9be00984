package models

import "time"

// SkillPopularity counts how many profiles currently offer a skill.
// Keyed by the lowercased skill name.
type SkillPopularity struct {
	Name      string    `bson:"name" json:"name"`
	Count     int       `bson:"count" json:"count"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// PlatformStats is the admin analytics snapshot.
type PlatformStats struct {
	TotalUsers        int               `json:"total_users"`
	UsersByRole       map[string]int    `json:"users_by_role"`
	PopularSkills     []SkillPopularity `json:"popular_skills"`
	TotalUniqueSkills int               `json:"total_unique_skills"`
}
