package repositories

import (
	"database/sql"

	"campusbus/internal/domain/models"
)

type NotificationRepository struct {
	DB *sql.DB
}

func (r NotificationRepository) Create(n models.Notification) (models.Notification, error) {
	res, err := r.DB.Exec(`INSERT INTO notifications (title, message, type, user_id, bus_id, sent_by)
		VALUES (?,?,?,?,?,?)`,
		n.Title, n.Message, n.Type, nullableID(n.UserID), nullableID(n.BusID), nullableID(n.SentBy))
	if err != nil {
		return n, err
	}
	n.ID, _ = res.LastInsertId()
	return n, nil
}

// ListForUser returns the user's own notifications plus broadcasts, newest
// first, with per-user read state joined in.
func (r NotificationRepository) ListForUser(userID int64, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.Query(`SELECT n.id, n.title, n.message, n.type, n.user_id, n.bus_id, n.sent_by,
			nr.notification_id IS NOT NULL, n.created_at
		FROM notifications n
		LEFT JOIN notification_reads nr ON nr.notification_id = n.id AND nr.user_id = ?
		WHERE n.user_id = ? OR n.user_id IS NULL
		ORDER BY n.created_at DESC
		LIMIT ?`, userID, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		var uid, bid, sb sql.NullInt64
		var created sql.NullTime
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &uid, &bid, &sb, &n.Read, &created); err != nil {
			return out, err
		}
		n.UserID = fromNullInt(uid)
		n.BusID = fromNullInt(bid)
		n.SentBy = fromNullInt(sb)
		n.CreatedAt = created.Time
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r NotificationRepository) UnreadCount(userID int64) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*)
		FROM notifications n
		LEFT JOIN notification_reads nr ON nr.notification_id = n.id AND nr.user_id = ?
		WHERE (n.user_id = ? OR n.user_id IS NULL) AND nr.notification_id IS NULL`,
		userID, userID).Scan(&count)
	return count, err
}

func (r NotificationRepository) MarkRead(notificationID, userID int64) error {
	_, err := r.DB.Exec(`INSERT IGNORE INTO notification_reads (notification_id, user_id) VALUES (?,?)`,
		notificationID, userID)
	return err
}

func nullableID(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func fromNullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
