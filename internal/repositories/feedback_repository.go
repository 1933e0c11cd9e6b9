package repositories

import (
	"database/sql"

	"campusbus/internal/domain/models"
)

type FeedbackRepository struct {
	DB *sql.DB
}

func (r FeedbackRepository) Create(f models.Feedback) (models.Feedback, error) {
	res, err := r.DB.Exec(`INSERT INTO feedback (user_id, category, message, rating) VALUES (?,?,?,?)`,
		f.UserID, f.Category, f.Message, f.Rating)
	if err != nil {
		return f, err
	}
	f.ID, _ = res.LastInsertId()
	return f, nil
}

func (r FeedbackRepository) List(limit int) ([]models.Feedback, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Query(`SELECT id, user_id, category, message, rating, created_at
		FROM feedback ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Feedback{}
	for rows.Next() {
		var f models.Feedback
		var created sql.NullTime
		if err := rows.Scan(&f.ID, &f.UserID, &f.Category, &f.Message, &f.Rating, &created); err != nil {
			return out, err
		}
		f.CreatedAt = created.Time
		out = append(out, f)
	}
	return out, rows.Err()
}
