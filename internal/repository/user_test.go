package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devart/devart-server/internal/model"
)

func TestCreateUserDuplicate(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	repo := NewUserRepository(pool)
	_, err := repo.Create(ctx, "alice@example.com", model.RegisterUserRequest{Name: "Alice"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, "alice@example.com", model.RegisterUserRequest{Name: "Alice Again"})
	assert.ErrorIs(t, err, ErrDuplicateUser)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestPopularInstructorsLimitAndOrder(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		_, err := pool.Exec(ctx,
			`INSERT INTO users (id, email, role, enrolled_students, created_at)
			 VALUES ($1, $2, 'instructor', $3, $4)`,
			uuid.New().String(), fmt.Sprintf("i%d@x.com", i), i*10, time.Now().UTC(),
		)
		require.NoError(t, err)
	}

	repo := NewUserRepository(pool)
	instructors, err := repo.PopularInstructors(ctx, 6)
	require.NoError(t, err)

	require.Len(t, instructors, 6)
	for i := 1; i < len(instructors); i++ {
		assert.GreaterOrEqual(t,
			instructors[i-1].EnrolledStudents,
			instructors[i].EnrolledStudents,
		)
	}
	assert.Equal(t, 70, instructors[0].EnrolledStudents)
}

func TestPopularClassesLimitAndOrder(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		_, err := pool.Exec(ctx,
			`INSERT INTO classes (id, name, instructor_mail, price, available_seats, enrolled_students, status, created_at)
			 VALUES ($1, $2, 'i1@x.com', 50, 10, $3, 'approved', $4)`,
			uuid.New().String(), fmt.Sprintf("class-%d", i), i*5, time.Now().UTC(),
		)
		require.NoError(t, err)
	}

	repo := NewClassRepository(pool)
	classes, err := repo.Popular(ctx, 6)
	require.NoError(t, err)

	require.Len(t, classes, 6)
	for i := 1; i < len(classes); i++ {
		assert.GreaterOrEqual(t, classes[i-1].EnrolledStudents, classes[i].EnrolledStudents)
	}
	assert.Equal(t, 35, classes[0].EnrolledStudents)
}

func TestCartDeleteOnlyWhileSelected(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	seedClass(t, pool, "L1", 5, 0)
	seedCartItem(t, pool, "C1", "u@x.com", "L1")

	cart := NewCartRepository(pool)
	payments := NewPaymentRepository(pool)

	_, err := payments.Checkout(ctx, model.CheckoutRequest{
		Email: "u@x.com", CartID: "C1", ClassID: "L1",
		InstructorMail: "i1@x.com", Price: 50,
	})
	require.NoError(t, err)

	err = cart.Delete(ctx, "C1")
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	assert.ErrorIs(t, cart.Delete(ctx, "missing"), ErrNotFound)
}
