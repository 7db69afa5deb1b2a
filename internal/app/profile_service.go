package app

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"devconnector/internal/model"
)

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uint) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	Create(ctx context.Context, profile *model.Profile) error
	Save(ctx context.Context, profile *model.Profile) error
	DeleteAccount(ctx context.Context, userID uint) error
}

type ProfileService struct {
	profiles ProfileStore
	newID    func() string
}

// ProfileUpdate lists every field a caller may set. A nil pointer leaves the
// stored value alone. Skills is a comma separated list.
type ProfileUpdate struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         *string

	Youtube   *string
	Twitter   *string
	Facebook  *string
	Linkedin  *string
	Instagram *string
}

type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		newID:    uuid.NewString,
	}
}

func (s *ProfileService) GetMine(ctx context.Context, userID uint) (*model.Profile, error) {
	return s.mustGet(ctx, userID)
}

func (s *ProfileService) GetByUserID(ctx context.Context, rawUserID string) (*model.Profile, error) {
	userID, ok := parseID(rawUserID)
	if !ok {
		return nil, ErrProfileNotFound
	}
	return s.mustGet(ctx, userID)
}

func (s *ProfileService) ListAll(ctx context.Context) ([]model.Profile, error) {
	return s.profiles.List(ctx)
}

// Upsert creates the caller's profile or applies a partial update to it.
func (s *ProfileService) Upsert(ctx context.Context, userID uint, update ProfileUpdate) (*model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	creating := profile == nil
	if creating {
		profile = model.NewProfile(userID)
	}
	if err := applyProfileUpdate(profile, update, creating); err != nil {
		return nil, err
	}

	if !creating {
		if err := s.save(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	// read back so the response carries the owner like every other read
	return s.mustGet(ctx, userID)
}

func (s *ProfileService) AddExperience(ctx context.Context, userID uint, input ExperienceInput) (*model.Profile, error) {
	var v validator
	v.require("title", input.Title, "Title is required")
	v.require("company", input.Company, "Company is required")
	v.require("from", input.From, "From date is required")
	checkDates(&v, input.From, input.To)
	if err := v.err(); err != nil {
		return nil, err
	}

	profile, err := s.mustGet(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.AddExperience(model.ExperienceEntry{
		ID:          s.newID(),
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Location:    strings.TrimSpace(input.Location),
		From:        strings.TrimSpace(input.From),
		To:          strings.TrimSpace(input.To),
		Current:     input.Current,
		Description: input.Description,
	})
	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) RemoveExperience(ctx context.Context, userID uint, entryID string) (*model.Profile, error) {
	profile, err := s.mustGet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.RemoveExperience(entryID) {
		return nil, ErrExperienceNotFound
	}
	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) AddEducation(ctx context.Context, userID uint, input EducationInput) (*model.Profile, error) {
	var v validator
	v.require("school", input.School, "School is required")
	v.require("degree", input.Degree, "Degree is required")
	v.require("fieldofstudy", input.FieldOfStudy, "Field of study is required")
	v.require("from", input.From, "From date is required")
	checkDates(&v, input.From, input.To)
	if err := v.err(); err != nil {
		return nil, err
	}

	profile, err := s.mustGet(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.AddEducation(model.EducationEntry{
		ID:           s.newID(),
		School:       strings.TrimSpace(input.School),
		Degree:       strings.TrimSpace(input.Degree),
		FieldOfStudy: strings.TrimSpace(input.FieldOfStudy),
		From:         strings.TrimSpace(input.From),
		To:           strings.TrimSpace(input.To),
		Current:      input.Current,
		Description:  input.Description,
	})
	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID uint, entryID string) (*model.Profile, error) {
	profile, err := s.mustGet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.RemoveEducation(entryID) {
		return nil, ErrEducationNotFound
	}
	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteAccount removes the caller's profile and user record together.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.profiles.DeleteAccount(ctx, userID)
}

// save reports a profile removed since it was read as not found.
func (s *ProfileService) save(ctx context.Context, profile *model.Profile) error {
	err := s.profiles.Save(ctx, profile)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProfileNotFound
	}
	return err
}

func (s *ProfileService) mustGet(ctx context.Context, userID uint) (*model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func applyProfileUpdate(p *model.Profile, u ProfileUpdate, creating bool) error {
	var v validator
	if creating || u.Status != nil {
		v.require("status", deref(u.Status), "Status is required")
	}
	var skills []string
	if creating || u.Skills != nil {
		skills = SplitSkills(deref(u.Skills))
		if len(skills) == 0 {
			v.add("skills", "Skills is required")
		}
	}
	if err := v.err(); err != nil {
		return err
	}

	set(&p.Company, u.Company)
	set(&p.Website, u.Website)
	set(&p.Location, u.Location)
	set(&p.Bio, u.Bio)
	set(&p.Status, u.Status)
	set(&p.GithubUsername, u.GithubUsername)
	if skills != nil {
		p.Skills = skills
	}

	set(&p.Social.Youtube, u.Youtube)
	set(&p.Social.Twitter, u.Twitter)
	set(&p.Social.Facebook, u.Facebook)
	set(&p.Social.Linkedin, u.Linkedin)
	set(&p.Social.Instagram, u.Instagram)
	return nil
}

// SplitSkills turns "go, sql,,docker" into [go sql docker].
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if skill := strings.TrimSpace(part); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01", "2006"}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func checkDates(v *validator, from, to string) {
	if strings.TrimSpace(from) != "" {
		if _, ok := parseDate(from); !ok {
			v.add("from", "From must be a date")
		}
	}
	if strings.TrimSpace(to) != "" {
		if _, ok := parseDate(to); !ok {
			v.add("to", "To must be a date")
		}
	}
}

func set(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
