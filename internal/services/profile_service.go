package services

import (
	"database/sql"
	"fmt"
	"strings"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/repositories"
	"campusbus/internal/utils"
)

// ProfileService manages rider accounts. Profiles are created lazily on first
// sign-in when absent.
type ProfileService struct {
	Repo      repositories.ProfileRepository
	Notifier  NotificationService
	RequestID string
}

// EnsureProfile returns the profile for the email, creating it lazily when
// absent. The second return reports whether this call created it. A
// duplicate-key failure means another request created the row concurrently;
// it is refetched instead of failing.
func (s ProfileService) EnsureProfile(email, passwordHash, fullName string) (models.Profile, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.Profile{}, false, domain.ValidationError{Field: "email", Msg: "required"}
	}

	existing, err := s.Repo.GetByEmail(email)
	if err == nil {
		return existing, false, nil
	}
	if err != sql.ErrNoRows {
		return models.Profile{}, false, domain.InternalError{Err: err}
	}

	created, err := s.Repo.Create(email, passwordHash, fullName, "")
	if err != nil {
		if domain.IsConflict(err) {
			refetched, rerr := s.Repo.GetByEmail(email)
			if rerr != nil {
				return models.Profile{}, false, domain.InternalError{Err: rerr}
			}
			return refetched, false, nil
		}
		return models.Profile{}, false, err
	}

	if nerr := s.Notifier.Welcome(created.ID, created.FullName); nerr != nil {
		utils.LogEvent(s.RequestID, "profile", "welcome_warning", nerr.Error())
	}
	utils.LogEvent(s.RequestID, "profile", "created", fmt.Sprintf("profile_id=%d", created.ID))
	return created, true, nil
}

func (s ProfileService) Get(id int64) (models.Profile, error) {
	p, err := s.Repo.GetByID(id)
	if err == sql.ErrNoRows {
		return p, domain.NotFoundError{Resource: "profile"}
	}
	if err != nil {
		return p, domain.InternalError{Err: err}
	}
	return p, nil
}

func (s ProfileService) Update(id int64, upd models.ProfileUpdate) (models.Profile, error) {
	if err := s.Repo.Update(id, upd); err != nil {
		return models.Profile{}, err
	}
	return s.Get(id)
}

// Promote grants admin to the target profile and leaves an audit notification.
// Only callers already holding the admin role reach this.
func (s ProfileService) Promote(adminID, targetID int64) error {
	if targetID <= 0 {
		return domain.ValidationError{Field: "user_id", Msg: "invalid id"}
	}
	if err := s.Repo.Promote(targetID); err != nil {
		return err
	}
	if _, nerr := s.Notifier.Broadcast(adminID, "Role updated",
		"Your account has been granted admin access.", &targetID, nil); nerr != nil {
		utils.LogEvent(s.RequestID, "profile", "promote_notify_warning", nerr.Error())
	}
	utils.LogEvent(s.RequestID, "profile", "promote",
		fmt.Sprintf("admin_id=%d target_id=%d", adminID, targetID))
	return nil
}
