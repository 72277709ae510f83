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

// PaymentRepository persists payment records and runs the checkout
// state transition.
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Checkout applies every state transition of a completed payment inside a
// single transaction:
//
//  1. lock the class row and reject the purchase when no seats remain
//  2. flip the cart item from selected to paid (exactly once)
//  3. decrement the class's seat count, increment its enrollment
//  4. upsert the instructor's enrollment counter
//  5. insert the durable payment record
//
// The SELECT ... FOR UPDATE in step 1 serialises concurrent checkouts of the
// same class, so two buyers of the last seat cannot both succeed: the second
// transaction blocks until the first commits, then sees zero seats and gets
// ErrSoldOut. Any later failure rolls back all five steps.
func (r *PaymentRepository) Checkout(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	// Ensure the transaction is always resolved.
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Step 1: lock the class row and guard the seat count.
	var seats int
	var className string
	err = tx.QueryRow(ctx,
		`SELECT available_seats, name
		 FROM classes
		 WHERE id = $1
		 FOR UPDATE`,
		req.ClassID,
	).Scan(&seats, &className)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("lock class row: %w", err)
	}
	if seats <= 0 {
		err = ErrSoldOut
		return nil, err
	}

	// Step 2: mark the cart item paid, conditional on it still being selected.
	tag, execErr := tx.Exec(ctx,
		`UPDATE cart_items SET status = $2 WHERE id = $1 AND status = $3`,
		req.CartID, model.CartPaid, model.CartSelected,
	)
	if execErr != nil {
		err = fmt.Errorf("mark cart item paid: %w", execErr)
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		var status string
		scanErr := tx.QueryRow(ctx,
			`SELECT status FROM cart_items WHERE id = $1`, req.CartID,
		).Scan(&status)
		err = classifyCartMiss(scanErr)
		return nil, err
	}

	// Step 3: consume a seat and count the enrollment.
	_, err = tx.Exec(ctx,
		`UPDATE classes
		 SET available_seats = available_seats - 1,
		     enrolled_students = enrolled_students + 1
		 WHERE id = $1`,
		req.ClassID,
	)
	if err != nil {
		return nil, fmt.Errorf("update class counters: %w", err)
	}

	// Step 4: credit the instructor, creating the record if absent.
	var instructorEnrolled int
	err = tx.QueryRow(ctx,
		`INSERT INTO users (id, email, name, role, enrolled_students, created_at)
		 VALUES ($1, $2, '', $3, 1, $4)
		 ON CONFLICT (email)
		 DO UPDATE SET enrolled_students = users.enrolled_students + 1
		 RETURNING enrolled_students`,
		uuid.New().String(), req.InstructorMail, model.RoleInstructor, time.Now().UTC(),
	).Scan(&instructorEnrolled)
	if err != nil {
		return nil, fmt.Errorf("upsert instructor counter: %w", err)
	}

	// Step 5: persist the payment record.
	payment := model.Payment{
		ID:             uuid.New().String(),
		Email:          req.Email,
		CartID:         req.CartID,
		ClassID:        req.ClassID,
		ClassName:      className,
		InstructorMail: req.InstructorMail,
		Price:          req.Price,
		TransactionID:  req.TransactionID,
		PaymentDate:    time.Now().UTC(),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO payments (id, email, cart_id, class_id, class_name,
		                       instructor_mail, price, transaction_id, payment_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		payment.ID, payment.Email, payment.CartID, payment.ClassID, payment.ClassName,
		payment.InstructorMail, payment.Price, payment.TransactionID, payment.PaymentDate,
	)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &model.CheckoutResult{
		Payment:            payment,
		CartStatus:         model.CartPaid,
		SeatsRemaining:     seats - 1,
		InstructorEnrolled: instructorEnrolled,
	}, nil
}

// classifyCartMiss explains why the conditional paid update matched no row.
// The item either does not exist, was already paid, or the follow-up status
// read itself failed. A real I/O error must not be mistaken for a conflict.
func classifyCartMiss(scanErr error) error {
	switch {
	case errors.Is(scanErr, pgx.ErrNoRows):
		return ErrNotFound
	case scanErr != nil:
		return fmt.Errorf("check cart item status: %w", scanErr)
	default:
		return ErrAlreadyPaid
	}
}

// ListByEmail returns a user's payments, most recent first.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, email, cart_id, class_id, class_name, instructor_mail, price, transaction_id, payment_date
		 FROM payments
		 WHERE email = $1
		 ORDER BY payment_date DESC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.Email, &p.CartID, &p.ClassID, &p.ClassName,
			&p.InstructorMail, &p.Price, &p.TransactionID, &p.PaymentDate); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
