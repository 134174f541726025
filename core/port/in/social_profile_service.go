package in

import (
	"context"

	"social_server/core/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileService manages developer profiles. Returned profiles have their
// user populated.
type ProfileService interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, req *ProfileRequest) (*domain.Profile, error)

	AddExperience(ctx context.Context, userID primitive.ObjectID, req *ExperienceRequest) (*domain.Profile, error)
	DeleteExperience(ctx context.Context, userID, expID primitive.ObjectID) (*domain.Profile, error)
	AddEducation(ctx context.Context, userID primitive.ObjectID, req *EducationRequest) (*domain.Profile, error)
	DeleteEducation(ctx context.Context, userID, eduID primitive.ObjectID) (*domain.Profile, error)

	GitHubRepos(ctx context.Context, username string) ([]domain.Repository, error)
}

// ProfileRequest carries skills as a comma separated list.
type ProfileRequest struct {
	Status         string `json:"status" validate:"required,notblank" msg:"Status is required"`
	Skills         string `json:"skills" validate:"required,notblank" msg:"Skills is required"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GitHubUsername string `json:"githubusername"`
	YouTube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
	Xing           string `json:"xing"`
}

type ExperienceRequest struct {
	Title       string `json:"title" validate:"required,notblank" msg:"Title is required"`
	Company     string `json:"company" validate:"required,notblank" msg:"Company is required"`
	From        string `json:"from" validate:"required,notblank" msg:"From date is required"`
	Location    string `json:"location"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationRequest struct {
	School       string `json:"school" validate:"required,notblank" msg:"School is required"`
	Degree       string `json:"degree" validate:"required,notblank" msg:"Degree is required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required,notblank" msg:"Field of study is required"`
	From         string `json:"from" validate:"required,notblank" msg:"From date is required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}
