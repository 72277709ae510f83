// Package repository implements all database queries for the devArt backend.
// It uses pgx directly (no ORM) for transparency and performance.
package repository

import "errors"

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUser is returned when an email registers twice.
var ErrDuplicateUser = errors.New("user already exists")

// ErrSoldOut is returned when a class has no remaining seats.
var ErrSoldOut = errors.New("class is sold out")

// ErrAlreadyPaid is returned when a cart item has already been paid for.
var ErrAlreadyPaid = errors.New("cart item already paid")
