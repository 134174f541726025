package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"social_server/core/domain"
	"social_server/core/port/in"
	"social_server/core/port/out"

	"github.com/araddon/dateparse"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GitHubRepoLimit is the number of repositories shown on a profile.
const GitHubRepoLimit = 5

// Service implements in.ProfileService
type Service struct {
	profiles out.ProfileRepository
	users    out.UserRepository
	github   out.GitHubProvider
	now      func() time.Time
}

// NewService creates a new ProfileService
func NewService(profiles out.ProfileRepository, users out.UserRepository, github out.GitHubProvider) in.ProfileService {
	return &Service{
		profiles: profiles,
		users:    users,
		github:   github,
		now:      time.Now,
	}
}

// =============================================================================
// Profile
// =============================================================================

func (s *Service) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, p)
}

func (s *Service) List(ctx context.Context) ([]*domain.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	if len(profiles) == 0 {
		return profiles, nil
	}

	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	summaries, err := s.users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get user summaries: %w", err)
	}

	for _, p := range profiles {
		p.User = summaryOrStub(summaries[p.UserID], p.UserID)
	}
	return profiles, nil
}

// Upsert creates the caller's profile or patches it with the non-empty
// fields of req.
func (s *Service) Upsert(ctx context.Context, userID primitive.ObjectID, req *in.ProfileRequest) (*domain.Profile, error) {
	upd := toUpdate(req)
	if len(upd.Skills) == 0 {
		return nil, domain.NewFieldError("skills", "Skills is required", req.Skills)
	}

	existing, err := s.profiles.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if existing != nil {
		updated, err := s.profiles.Update(ctx, userID, upd)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		if updated == nil {
			return nil, domain.ErrProfileNotFound
		}
		return s.populate(ctx, updated)
	}

	p := &domain.Profile{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Skills:     []string{},
		Experience: []domain.Experience{},
		Education:  []domain.Education{},
		Date:       s.now(),
	}
	p.Apply(upd)
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return s.populate(ctx, p)
}

func toUpdate(req *in.ProfileRequest) *domain.ProfileUpdate {
	return &domain.ProfileUpdate{
		Company:        strings.TrimSpace(req.Company),
		Website:        strings.TrimSpace(req.Website),
		Location:       strings.TrimSpace(req.Location),
		Status:         strings.TrimSpace(req.Status),
		Skills:         SplitSkills(req.Skills),
		Bio:            strings.TrimSpace(req.Bio),
		GitHubUsername: strings.TrimSpace(req.GitHubUsername),
		Social: domain.Social{
			YouTube:   strings.TrimSpace(req.YouTube),
			Twitter:   strings.TrimSpace(req.Twitter),
			Facebook:  strings.TrimSpace(req.Facebook),
			LinkedIn:  strings.TrimSpace(req.LinkedIn),
			Instagram: strings.TrimSpace(req.Instagram),
			Xing:      strings.TrimSpace(req.Xing),
		},
	}
}

// SplitSkills turns "go, rust ,sql" into ["go", "rust", "sql"].
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

// =============================================================================
// Experience / Education
// =============================================================================

func (s *Service) AddExperience(ctx context.Context, userID primitive.ObjectID, req *in.ExperienceRequest) (*domain.Profile, error) {
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.AddExperience(domain.Experience{
		ID:          primitive.NewObjectID(),
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	return s.save(ctx, p)
}

func (s *Service) DeleteExperience(ctx context.Context, userID, expID primitive.ObjectID) (*domain.Profile, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := p.RemoveExperience(expID); err != nil {
		return nil, err
	}
	return s.save(ctx, p)
}

func (s *Service) AddEducation(ctx context.Context, userID primitive.ObjectID, req *in.EducationRequest) (*domain.Profile, error) {
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.AddEducation(domain.Education{
		ID:           primitive.NewObjectID(),
		School:       strings.TrimSpace(req.School),
		Degree:       strings.TrimSpace(req.Degree),
		FieldOfStudy: strings.TrimSpace(req.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	return s.save(ctx, p)
}

func (s *Service) DeleteEducation(ctx context.Context, userID, eduID primitive.ObjectID) (*domain.Profile, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := p.RemoveEducation(eduID); err != nil {
		return nil, err
	}
	return s.save(ctx, p)
}

// parseRange accepts any date layout dateparse understands. An empty "to"
// means the entry is ongoing.
func parseRange(fromRaw, toRaw string) (time.Time, *time.Time, error) {
	from, err := dateparse.ParseAny(strings.TrimSpace(fromRaw))
	if err != nil {
		return time.Time{}, nil, domain.NewFieldError("from", "From date is invalid", fromRaw)
	}

	toRaw = strings.TrimSpace(toRaw)
	if toRaw == "" {
		return from, nil, nil
	}
	to, err := dateparse.ParseAny(toRaw)
	if err != nil {
		return time.Time{}, nil, domain.NewFieldError("to", "To date is invalid", toRaw)
	}
	return from, &to, nil
}

// =============================================================================
// GitHub
// =============================================================================

func (s *Service) GitHubRepos(ctx context.Context, username string) ([]domain.Repository, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrGitHubNotFound
	}
	return s.github.ListRepos(ctx, username, GitHubRepoLimit)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Service) load(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	p, err := s.profiles.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (s *Service) save(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return s.populate(ctx, p)
}

func (s *Service) populate(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	var summary *domain.UserSummary
	if user != nil {
		summary = user.Summary()
	}
	p.User = summaryOrStub(summary, p.UserID)
	return p, nil
}

// summaryOrStub keeps the "user" field shaped like a populated user even when
// the account has been removed underneath the profile.
func summaryOrStub(s *domain.UserSummary, id primitive.ObjectID) *domain.UserSummary {
	if s != nil {
		return s
	}
	return &domain.UserSummary{ID: id}
}
