package notification

import (
	"context"
	"errors"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"github.com/habitflow-app/habitflow-api/internal/config"
	"github.com/habitflow-app/habitflow-api/internal/user"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

var ErrNoDeviceToken = errors.New("user has no device token")

// Dispatcher delivers a push notification to a single user. Callers treat
// delivery as best-effort: failures are logged by the caller and never
// propagate into the triggering request.
type Dispatcher interface {
	SendToUser(ctx context.Context, userID uuid.UUID, n Notification) error
}

type fcmDispatcher struct {
	client   *messaging.Client
	userRepo user.UserRepository
}

func NewFCMDispatcher(ctx context.Context, credentialsFile string, userRepo user.UserRepository) (Dispatcher, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}

	return &fcmDispatcher{client: client, userRepo: userRepo}, nil
}

func (d *fcmDispatcher) SendToUser(ctx context.Context, userID uuid.UUID, n Notification) error {
	log := config.WithContext(ctx)

	u, err := d.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoDeviceToken
		}
		return err
	}
	if u.FCMToken == "" {
		return ErrNoDeviceToken
	}

	token, err := config.Decrypt(u.FCMToken)
	if err != nil {
		return err
	}

	// Tokens registered from test builds short-circuit without hitting FCM.
	if strings.HasPrefix(token, "test_") || strings.Contains(token, "test") {
		log.WithField("user_id", userID).Debug("Test device token, skipping FCM send")
		return nil
	}

	data := map[string]string{
		"type":   n.Type,
		"userId": userID.String(),
	}
	if n.HabitID != "" {
		data["habitId"] = n.HabitID
	}
	for k, v := range n.Data {
		data[k] = v
	}

	badge := 1
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: "habit-notifications",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: &badge,
				},
			},
		},
	}

	id, err := d.client.Send(ctx, msg)
	if err != nil {
		return err
	}
	log.WithField("message_id", id).Debug("Push notification sent")
	return nil
}

// loggingDispatcher records every push attempt in the deliveries table before
// delegating delivery. Logging failures never block the send.
type loggingDispatcher struct {
	next Dispatcher
	repo DeliveryRepository
}

func NewLoggingDispatcher(next Dispatcher, repo DeliveryRepository) Dispatcher {
	return &loggingDispatcher{next: next, repo: repo}
}

func (d *loggingDispatcher) SendToUser(ctx context.Context, userID uuid.UUID, n Notification) error {
	sendErr := d.next.SendToUser(ctx, userID, n)

	delivery, err := newDelivery(userID, n, sendErr == nil)
	if err == nil {
		err = d.repo.Create(delivery)
	}
	if err != nil {
		config.WithContext(ctx).WithError(err).
			Warn("Failed to record notification delivery")
	}
	return sendErr
}

// disabledDispatcher stands in when Firebase credentials are missing so the
// rest of the service keeps working without push delivery.
type disabledDispatcher struct{}

func NewDisabledDispatcher() Dispatcher {
	return disabledDispatcher{}
}

func (disabledDispatcher) SendToUser(ctx context.Context, userID uuid.UUID, n Notification) error {
	config.WithContext(ctx).WithField("user_id", userID).
		Debugf("Push delivery disabled, dropping %q notification", n.Type)
	return nil
}
