package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devart/devart-server/internal/model"
)

// ClassRepository handles persistence for course offerings.
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create inserts a new class in the pending state and returns it.
func (r *ClassRepository) Create(ctx context.Context, instructorMail string, req model.CreateClassRequest) (*model.Class, error) {
	class := &model.Class{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Image:          req.Image,
		InstructorName: req.InstructorName,
		InstructorMail: instructorMail,
		Price:          req.Price,
		AvailableSeats: req.AvailableSeats,
		Status:         model.ClassPending,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO classes (id, name, image, instructor_name, instructor_mail,
		                      price, available_seats, enrolled_students, status, feedback, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		class.ID, class.Name, class.Image, class.InstructorName, class.InstructorMail,
		class.Price, class.AvailableSeats, class.EnrolledStudents, class.Status, class.Feedback, class.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert class: %w", err)
	}
	return class, nil
}

// ListApproved returns every approved class, newest first.
func (r *ClassRepository) ListApproved(ctx context.Context) ([]model.Class, error) {
	return r.scanClasses(ctx,
		selectClass+` WHERE status = $1 ORDER BY created_at DESC`,
		model.ClassApproved,
	)
}

// ListAll returns every class regardless of status.
func (r *ClassRepository) ListAll(ctx context.Context) ([]model.Class, error) {
	return r.scanClasses(ctx, selectClass+` ORDER BY created_at DESC`)
}

// ListByInstructor returns the classes owned by one instructor.
func (r *ClassRepository) ListByInstructor(ctx context.Context, email string) ([]model.Class, error) {
	return r.scanClasses(ctx,
		selectClass+` WHERE instructor_mail = $1 ORDER BY created_at DESC`,
		email,
	)
}

// Popular returns the top classes by enrolled student count.
func (r *ClassRepository) Popular(ctx context.Context, limit int) ([]model.Class, error) {
	return r.scanClasses(ctx,
		selectClass+` ORDER BY enrolled_students DESC LIMIT $1`,
		limit,
	)
}

// SetStatus moves a class to approved or denied.
func (r *ClassRepository) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE classes SET status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("set class status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetFeedback records the admin's feedback text on a class.
func (r *ClassRepository) SetFeedback(ctx context.Context, id, feedback string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE classes SET feedback = $2 WHERE id = $1`,
		id, feedback,
	)
	if err != nil {
		return fmt.Errorf("set class feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const selectClass = `SELECT id, name, image, instructor_name, instructor_mail,
       price, available_seats, enrolled_students, status, feedback, created_at
  FROM classes`

func (r *ClassRepository) scanClasses(ctx context.Context, query string, args ...any) ([]model.Class, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query classes: %w", err)
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.InstructorName, &c.InstructorMail,
			&c.Price, &c.AvailableSeats, &c.EnrolledStudents, &c.Status, &c.Feedback, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
