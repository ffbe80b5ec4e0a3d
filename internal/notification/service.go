package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/habitflow-app/habitflow-api/internal/auth"
	"github.com/habitflow-app/habitflow-api/internal/config"
	"github.com/habitflow-app/habitflow-api/internal/user"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")
)

type Service interface {
	UpdateToken(ctx context.Context, token string) (*user.UserResponse, error)
	RemoveToken(ctx context.Context) (*user.UserResponse, error)
	UpdatePreferences(ctx context.Context, enabled bool) (*user.UserResponse, error)
	GetPreferences(ctx context.Context) (*PreferencesResponse, error)
	History(ctx context.Context) ([]Delivery, error)
	SendTest(ctx context.Context) error
}

// PreferencesResponse reports the opt-in flag and whether a device token is
// on file, without exposing the token itself.
type PreferencesResponse struct {
	Notifications bool   `json:"notifications"`
	FCMToken      string `json:"fcm_token"`
}

type service struct {
	userRepo     user.UserRepository
	deliveryRepo DeliveryRepository
	dispatcher   Dispatcher
}

func NewService(userRepo user.UserRepository, deliveryRepo DeliveryRepository, dispatcher Dispatcher) Service {
	return &service{userRepo: userRepo, deliveryRepo: deliveryRepo, dispatcher: dispatcher}
}

func (s *service) currentUser(ctx context.Context) (*user.User, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}
	u, err := s.userRepo.FindByID(uuid.MustParse(claims.UserID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) UpdateToken(ctx context.Context, token string) (*user.UserResponse, error) {
	log := config.WithContext(ctx)

	if token == "" {
		return nil, fmt.Errorf("%w: fcm_token is required", ErrValidation)
	}

	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	encrypted, err := config.Encrypt(token)
	if err != nil {
		log.WithError(err).Error("Failed to encrypt device token")
		return nil, err
	}
	u.FCMToken = encrypted

	if err := s.userRepo.Update(u); err != nil {
		log.WithError(err).Error("Failed to store device token")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("Device token updated")
	resp := user.ToResponse(u)
	return &resp, nil
}

func (s *service) RemoveToken(ctx context.Context) (*user.UserResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	u.FCMToken = ""
	if err := s.userRepo.Update(u); err != nil {
		log.WithError(err).Error("Failed to remove device token")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("Device token removed")
	resp := user.ToResponse(u)
	return &resp, nil
}

func (s *service) UpdatePreferences(ctx context.Context, enabled bool) (*user.UserResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	u.Notifications = enabled
	if err := s.userRepo.Update(u); err != nil {
		log.WithError(err).Error("Failed to update notification preferences")
		return nil, err
	}

	resp := user.ToResponse(u)
	return &resp, nil
}

func (s *service) GetPreferences(ctx context.Context) (*PreferencesResponse, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	status := "not_registered"
	if u.FCMToken != "" {
		status = "registered"
	}
	return &PreferencesResponse{
		Notifications: u.Notifications,
		FCMToken:      status,
	}, nil
}

// History returns the user's most recent push deliveries, newest first.
func (s *service) History(ctx context.Context) ([]Delivery, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	deliveries, err := s.deliveryRepo.ListByUser(u.ID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list notification history")
		return nil, err
	}
	return deliveries, nil
}

func (s *service) SendTest(ctx context.Context) error {
	u, err := s.currentUser(ctx)
	if err != nil {
		return err
	}

	n := Notification{
		Title: "Test Notification 🔔",
		Body:  "Push notifications are working!",
		Type:  "test",
	}
	return s.dispatcher.SendToUser(ctx, u.ID, n)
}
