package skillRepo

import "skillswap/models"

// SkillRepository tracks how many profiles offer each skill.
type SkillRepository interface {
	// Increment bumps a skill's popularity counter, creating it on first use.
	Increment(name string, delta int) error
	// TopSkills retrieves the most offered skills, capped at limit.
	TopSkills(limit int) ([]models.SkillPopularity, error)
}
