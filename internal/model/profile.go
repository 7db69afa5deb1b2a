package model

import (
	"time"

	"gorm.io/gorm"
)

// Profile is stored as one row; skills, social links and both entry lists
// live in JSON columns so the aggregate is always read and written whole.
type Profile struct {
	ID             uint              `gorm:"primaryKey" json:"_id"`
	UserID         uint              `gorm:"not null;uniqueIndex" json:"-"`
	User           *PublicUser       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company        string            `gorm:"size:128" json:"company,omitempty"`
	Website        string            `gorm:"size:255" json:"website,omitempty"`
	Location       string            `gorm:"size:128" json:"location,omitempty"`
	Status         string            `gorm:"size:128;not null" json:"status"`
	Bio            string            `gorm:"type:text" json:"bio,omitempty"`
	GithubUsername string            `gorm:"size:64" json:"githubusername,omitempty"`
	Skills         []string          `gorm:"type:json;serializer:json" json:"skills"`
	Social         Social            `gorm:"type:json;serializer:json" json:"social"`
	Experience     []ExperienceEntry `gorm:"type:json;serializer:json" json:"experience"`
	Education      []EducationEntry  `gorm:"type:json;serializer:json" json:"education"`
	CreatedAt      time.Time         `json:"date"`
	UpdatedAt      time.Time         `json:"-"`
}

type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type ExperienceEntry struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type EducationEntry struct {
	ID           string `json:"_id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

func (e ExperienceEntry) EntryID() string { return e.ID }
func (e EducationEntry) EntryID() string  { return e.ID }

func (p *Profile) AddExperience(e ExperienceEntry) {
	p.Experience = prepend(p.Experience, e)
}

// RemoveExperience reports whether an entry with the id existed.
func (p *Profile) RemoveExperience(id string) bool {
	var ok bool
	p.Experience, ok = removeByID(p.Experience, id)
	return ok
}

func (p *Profile) AddEducation(e EducationEntry) {
	p.Education = prepend(p.Education, e)
}

func (p *Profile) RemoveEducation(id string) bool {
	var ok bool
	p.Education, ok = removeByID(p.Education, id)
	return ok
}

// AfterFind keeps list fields non-nil so they encode as [] rather than null.
func (p *Profile) AfterFind(*gorm.DB) error {
	p.ensureLists()
	return nil
}

func (p *Profile) ensureLists() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []ExperienceEntry{}
	}
	if p.Education == nil {
		p.Education = []EducationEntry{}
	}
}

func NewProfile(userID uint) *Profile {
	p := &Profile{UserID: userID}
	p.ensureLists()
	return p
}
