package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devart/devart-server/internal/model"
)

const uniqueViolation = "23505"

// UserRepository handles persistence for users.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A second registration with the same email
// returns ErrDuplicateUser and writes nothing.
func (r *UserRepository) Create(ctx context.Context, email string, req model.RegisterUserRequest) (*model.User, error) {
	user := &model.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      req.Name,
		Role:      req.Role,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, name, role, enrolled_students, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Name, user.Role, user.EnrolledStudents, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// GetByEmail returns the user with the given email or ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx,
		`SELECT id, email, name, role, enrolled_students, created_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.EnrolledStudents, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// List returns all users ordered by registration time descending.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	return r.scanUsers(ctx,
		`SELECT id, email, name, role, enrolled_students, created_at
		 FROM users
		 ORDER BY created_at DESC`,
	)
}

// ListInstructors returns every user holding the instructor role.
func (r *UserRepository) ListInstructors(ctx context.Context) ([]model.User, error) {
	return r.scanUsers(ctx,
		`SELECT id, email, name, role, enrolled_students, created_at
		 FROM users
		 WHERE role = $1
		 ORDER BY created_at DESC`,
		model.RoleInstructor,
	)
}

// PopularInstructors returns the top instructors by enrolled student count.
func (r *UserRepository) PopularInstructors(ctx context.Context, limit int) ([]model.User, error) {
	return r.scanUsers(ctx,
		`SELECT id, email, name, role, enrolled_students, created_at
		 FROM users
		 WHERE role = $1
		 ORDER BY enrolled_students DESC
		 LIMIT $2`,
		model.RoleInstructor, limit,
	)
}

// Promote sets a user's role. Promotion to instructor also resets their
// enrollment counter, which only counts checkouts from that point on.
func (r *UserRepository) Promote(ctx context.Context, id string, role model.Role) error {
	var tag pgconn.CommandTag
	var err error
	if role == model.RoleInstructor {
		tag, err = r.db.Exec(ctx,
			`UPDATE users SET role = $2, enrolled_students = 0 WHERE id = $1`,
			id, role,
		)
	} else {
		tag, err = r.db.Exec(ctx,
			`UPDATE users SET role = $2 WHERE id = $1`,
			id, role,
		)
	}
	if err != nil {
		return fmt.Errorf("promote user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) scanUsers(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.EnrolledStudents, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
