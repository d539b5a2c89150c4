package service

import (
	"context"

	"dentalreach/internal/models"
	"dentalreach/internal/repository"
	"dentalreach/internal/validation"
)

// UserService provides account and profile operations.
type UserService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	UserID            uint
	Username          string
	FullName          string
	Title             string
	Bio               string
	Avatar            string
	Specialty         string
	ClinicName        string
	City              string
	Country           string
	Phone             string
	Website           string
	YearsOfExperience *int
	ResearchInterests []string
	Certifications    []string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 2000

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 2000 characters)")
		}
		user.Bio = in.Bio
	}
	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Title != "" {
		user.Title = in.Title
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	if in.Specialty != "" {
		user.Specialty = in.Specialty
	}
	if in.ClinicName != "" {
		user.ClinicName = in.ClinicName
	}
	if in.City != "" {
		user.City = in.City
	}
	if in.Country != "" {
		user.Country = in.Country
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Website != "" {
		user.Website = in.Website
	}
	if in.YearsOfExperience != nil {
		if *in.YearsOfExperience < 0 || *in.YearsOfExperience > 80 {
			return nil, models.NewValidationError("Years of experience must be between 0 and 80")
		}
		user.YearsOfExperience = *in.YearsOfExperience
	}
	if in.ResearchInterests != nil {
		user.ResearchInterests = in.ResearchInterests
	}
	if in.Certifications != nil {
		user.Certifications = in.Certifications
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SetAdmin toggles the admin flag on a target account.
func (s *UserService) SetAdmin(ctx context.Context, targetID uint, isAdmin bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.IsAdmin = isAdmin
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
