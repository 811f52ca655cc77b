package models

import "time"

// ExperienceLevel grades how experienced a freelancer is with a skill.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExpert       ExperienceLevel = "expert"
)

// Valid reports whether l is a declared level value.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceExpert:
		return true
	}
	return false
}

// Skill is a catalog entry freelancers can attach to their profile.
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// FreelancerSkill is the composite-keyed join between a user and a skill,
// carrying the experience level.
type FreelancerSkill struct {
	UserID          uint            `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	SkillID         uint            `gorm:"primaryKey;autoIncrement:false" json:"skill_id"`
	Skill           *Skill          `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
	ExperienceLevel ExperienceLevel `gorm:"type:varchar(20);not null" json:"experience_level"`
	CreatedAt       time.Time       `json:"created_at"`
}
