package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"devlink/internal/cache"
	"devlink/internal/models"
	"devlink/internal/repository"
)

// ProfileService handles developer profiles and their experience and
// education entries.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

// UpsertProfileInput is the payload for creating or updating a profile.
// Status and Skills are required; the rest are optional and, on update,
// only overwrite the stored value when present in the request.
type UpsertProfileInput struct {
	Status         string  `json:"status"`
	Skills         string  `json:"skills"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	LinkedIn       *string `json:"linkedin"`
	YouTube        *string `json:"youtube"`
	Instagram      *string `json:"instagram"`
}

// ExperienceInput is the payload for adding a work history entry.
type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationInput is the payload for adding a schooling entry.
type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// parseDate accepts "2006-01-02" or full RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// splitSkills turns a comma-separated string into trimmed, non-empty entries.
func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// Upsert creates the caller's profile or updates it in place. The returned
// bool reports whether a new profile was created.
func (s *ProfileService) Upsert(ctx context.Context, userID uint, input UpsertProfileInput) (*models.Profile, bool, error) {
	if strings.TrimSpace(input.Status) == "" {
		return nil, false, models.NewValidationError("status is required")
	}
	skills := splitSkills(input.Skills)
	if len(skills) == 0 {
		return nil, false, models.NewValidationError("skills is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	created := false
	if err != nil {
		if appErr, ok := err.(*models.AppError); !ok || appErr.Code != models.CodeNotFound {
			return nil, false, err
		}
		profile = &models.Profile{UserID: userID}
		created = true
	}

	profile.Status = strings.TrimSpace(input.Status)
	profile.Skills = skills
	applyString(&profile.Company, input.Company)
	applyString(&profile.Website, input.Website)
	applyString(&profile.Location, input.Location)
	applyString(&profile.Bio, input.Bio)
	applyString(&profile.GithubUsername, input.GithubUsername)
	applyString(&profile.Social.Twitter, input.Twitter)
	applyString(&profile.Social.Facebook, input.Facebook)
	applyString(&profile.Social.LinkedIn, input.LinkedIn)
	applyString(&profile.Social.YouTube, input.YouTube)
	applyString(&profile.Social.Instagram, input.Instagram)

	if created {
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, false, err
		}
	} else {
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			return nil, false, err
		}
	}

	// Re-read so the response carries the user and sub-record associations.
	fresh, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return fresh, created, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// GetByUserID loads a profile by the owning user's ID.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		p, err := s.profileRepo.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		profile = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// List returns all profiles, newest first.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// AddExperience prepends a work history entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, input ExperienceInput) (*models.Profile, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, models.NewValidationError("title is required")
	}
	if strings.TrimSpace(input.Company) == "" {
		return nil, models.NewValidationError("company is required")
	}
	if strings.TrimSpace(input.From) == "" {
		return nil, models.NewValidationError("from date is required")
	}
	from, err := parseDate(input.From)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	var to *time.Time
	if input.To != "" && !input.Current {
		t, err := parseDate(input.To)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		to = &t
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Location:    strings.TrimSpace(input.Location),
		From:        from,
		To:          to,
		Current:     input.Current,
		Description: input.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, exp); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)
	return s.profileRepo.GetByUserID(ctx, userID)
}

// RemoveExperience deletes a work history entry by its own ID. Entries on
// other users' profiles are not reachable.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveExperience(ctx, profile.ID, expID); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)
	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddEducation prepends a schooling entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, input EducationInput) (*models.Profile, error) {
	if strings.TrimSpace(input.School) == "" {
		return nil, models.NewValidationError("school is required")
	}
	if strings.TrimSpace(input.Degree) == "" {
		return nil, models.NewValidationError("degree is required")
	}
	if strings.TrimSpace(input.FieldOfStudy) == "" {
		return nil, models.NewValidationError("fieldofstudy is required")
	}
	if strings.TrimSpace(input.From) == "" {
		return nil, models.NewValidationError("from date is required")
	}
	from, err := parseDate(input.From)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	var to *time.Time
	if input.To != "" && !input.Current {
		t, err := parseDate(input.To)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		to = &t
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       strings.TrimSpace(input.School),
		Degree:       strings.TrimSpace(input.Degree),
		FieldOfStudy: strings.TrimSpace(input.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      input.Current,
		Description:  input.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, edu); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)
	return s.profileRepo.GetByUserID(ctx, userID)
}

// RemoveEducation deletes a schooling entry by its own ID.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveEducation(ctx, profile.ID, eduID); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, userID)
	return s.profileRepo.GetByUserID(ctx, userID)
}
