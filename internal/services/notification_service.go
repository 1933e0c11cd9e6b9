package services

import (
	"fmt"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/repositories"
)

// NotificationService creates and reads in-app notifications. Sends triggered
// by the booking flow are best-effort for the caller; failures are logged
// there, never surfaced to the rider.
type NotificationService struct {
	Repo      repositories.NotificationRepository
	RequestID string
}

func (s NotificationService) BookingConfirmed(userID, busID int64, origin, destination string, amount int64) error {
	_, err := s.Repo.Create(models.Notification{
		Title:   "Booking Confirmed",
		Message: fmt.Sprintf("Your seat on %s → %s is confirmed for ₦%d!", origin, destination, amount),
		Type:    models.NotifBookingConfirmation,
		UserID:  &userID,
		BusID:   &busID,
	})
	return err
}

func (s NotificationService) TicketGenerated(userID, busID int64) error {
	_, err := s.Repo.Create(models.Notification{
		Title:   "Ticket Generated",
		Message: "Your QR ticket is ready!",
		Type:    models.NotifTicketGenerated,
		UserID:  &userID,
		BusID:   &busID,
	})
	return err
}

func (s NotificationService) Welcome(userID int64, name string) error {
	if name == "" {
		name = "Student"
	}
	_, err := s.Repo.Create(models.Notification{
		Title:   "Welcome aboard",
		Message: fmt.Sprintf("Hi %s, you can now book campus shuttle seats and keep your tickets here.", name),
		Type:    models.NotifWelcome,
		UserID:  &userID,
	})
	return err
}

// Broadcast sends an admin notification to one user or, with a nil userID, to
// everyone. busID optionally scopes it to a service.
func (s NotificationService) Broadcast(sentBy int64, title, message string, userID, busID *int64) (models.Notification, error) {
	if title == "" || message == "" {
		return models.Notification{}, domain.ValidationError{Field: "title/message", Msg: "required"}
	}
	n, err := s.Repo.Create(models.Notification{
		Title:   title,
		Message: message,
		Type:    models.NotifAdminBroadcast,
		UserID:  userID,
		BusID:   busID,
		SentBy:  &sentBy,
	})
	if err != nil {
		return n, domain.InternalError{Err: err}
	}
	return n, nil
}

func (s NotificationService) ListForUser(userID int64, limit int) ([]models.Notification, error) {
	out, err := s.Repo.ListForUser(userID, limit)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s NotificationService) UnreadCount(userID int64) (int, error) {
	count, err := s.Repo.UnreadCount(userID)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return count, nil
}

func (s NotificationService) MarkRead(notificationID, userID int64) error {
	if notificationID <= 0 {
		return domain.ValidationError{Field: "notification_id", Msg: "invalid id"}
	}
	if err := s.Repo.MarkRead(notificationID, userID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
