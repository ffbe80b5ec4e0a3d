package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow-app/habitflow-api/internal/auth"
	"github.com/habitflow-app/habitflow-api/internal/config"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation error")
)

const tokenTTL = 24 * time.Hour

type UserService interface {
	Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error)
	Me(ctx context.Context) (*UserResponse, error)
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func validateRegister(dto RegisterDTO) error {
	switch {
	case strings.TrimSpace(dto.Name) == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case len(dto.Name) > 50:
		return fmt.Errorf("%w: name cannot be more than 50 characters", ErrValidation)
	case dto.Email == "" || !strings.Contains(dto.Email, "@"):
		return fmt.Errorf("%w: a valid email is required", ErrValidation)
	case len(dto.Password) < 6:
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	case dto.Height <= 0 || dto.Weight <= 0 || dto.Age <= 0:
		return fmt.Errorf("%w: height, weight and age are required", ErrValidation)
	}
	return nil
}

func (s *userService) Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	if err := validateRegister(dto); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(dto.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithError(err).Error("Failed to check existing email")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := User{
		ID:                   uuid.New(),
		Name:                 strings.TrimSpace(dto.Name),
		Email:                dto.Email,
		Password:             string(hash),
		Height:               dto.Height,
		Weight:               dto.Weight,
		Age:                  dto.Age,
		Gender:               dto.Gender,
		FitnessLevel:         dto.FitnessLevel,
		PrimaryGoal:          dto.PrimaryGoal,
		WakeUpTime:           dto.WakeUpTime,
		SleepTime:            dto.SleepTime,
		PreferredWorkoutTime: dto.PreferredWorkoutTime,
		MotivationLevel:      dto.MotivationLevel,
		WeeklyGoal:           dto.WeeklyGoal,
		Notifications:        true,
	}
	if u.WeeklyGoal == "" {
		u.WeeklyGoal = "3"
	}

	if err := s.repo.Create(&u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	token, err := auth.GenerateJWT(u.ID.String(), "user", tokenTTL)
	if err != nil {
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return &AuthResponse{Token: token, User: ToResponse(&u)}, nil
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	if dto.Email == "" || dto.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	u, err := s.repo.FindByEmail(dto.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to look up user for login")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID.String(), "user", tokenTTL)
	if err != nil {
		return nil, err
	}

	resp := ToResponse(u)
	return &AuthResponse{Token: token, User: resp}, nil
}

func (s *userService) Me(ctx context.Context) (*UserResponse, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(uuid.MustParse(claims.UserID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp := ToResponse(u)
	return &resp, nil
}
