package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devart/devart-server/internal/model"
)

// CartRepository handles persistence for cart items.
type CartRepository struct {
	db *pgxpool.Pool
}

// NewCartRepository constructs a CartRepository.
func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

// Add inserts a new cart item in the selected state.
func (r *CartRepository) Add(ctx context.Context, userEmail string, req model.AddCartItemRequest) (*model.CartItem, error) {
	item := &model.CartItem{
		ID:             uuid.New().String(),
		UserEmail:      userEmail,
		ClassID:        req.ClassID,
		ClassName:      req.ClassName,
		InstructorMail: req.InstructorMail,
		Price:          req.Price,
		Status:         model.CartSelected,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO cart_items (id, user_email, class_id, class_name, instructor_mail, price, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.UserEmail, item.ClassID, item.ClassName, item.InstructorMail, item.Price, item.Status, item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert cart item: %w", err)
	}
	return item, nil
}

// ListByStatus returns a user's cart items in the given state, newest first.
func (r *CartRepository) ListByStatus(ctx context.Context, userEmail, status string) ([]model.CartItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_email, class_id, class_name, instructor_mail, price, status, created_at
		 FROM cart_items
		 WHERE user_email = $1 AND status = $2
		 ORDER BY created_at DESC`,
		userEmail, status,
	)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.ID, &it.UserEmail, &it.ClassID, &it.ClassName,
			&it.InstructorMail, &it.Price, &it.Status, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID returns a single cart item or ErrNotFound.
func (r *CartRepository) GetByID(ctx context.Context, id string) (*model.CartItem, error) {
	var it model.CartItem
	err := r.db.QueryRow(ctx,
		`SELECT id, user_email, class_id, class_name, instructor_mail, price, status, created_at
		 FROM cart_items WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.UserEmail, &it.ClassID, &it.ClassName,
		&it.InstructorMail, &it.Price, &it.Status, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &it, nil
}

// Delete removes a cart item. Paid items are the durable trace of an
// enrollment and cannot be deleted.
func (r *CartRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND status = $2`,
		id, model.CartSelected,
	)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr == nil {
			return ErrAlreadyPaid
		}
		return ErrNotFound
	}
	return nil
}
