// Package model defines the core domain types for the devArt course marketplace.
package model

import "time"

// Role is a user's capability tier. A freshly registered user has no role
// until an admin promotes them or the client supplies one at registration.
type Role string

const (
	RoleStudent    Role = "student"
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
)

// Class lifecycle states. A class is created pending and only an admin
// moves it to approved or denied.
const (
	ClassPending  = "pending"
	ClassApproved = "approved"
	ClassDenied   = "denied"
)

// Cart item states. An item flips from selected to paid exactly once,
// during checkout.
const (
	CartSelected = "selected"
	CartPaid     = "paid"
)

// User is an identity record keyed by email.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             Role      `json:"role"`
	EnrolledStudents int       `json:"enrolled_students"`
	CreatedAt        time.Time `json:"created_at"`
}

// Class represents a course offering created by an instructor.
type Class struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Image            string    `json:"image"`
	InstructorName   string    `json:"instructor_name"`
	InstructorMail   string    `json:"instructor_mail"`
	Price            float64   `json:"price"`
	AvailableSeats   int       `json:"available_seats"`
	EnrolledStudents int       `json:"enrolled_students"`
	Status           string    `json:"status"`
	Feedback         string    `json:"feedback,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// CartItem is a pending-purchase association between a user and a class.
type CartItem struct {
	ID             string    `json:"id"`
	UserEmail      string    `json:"user_email"`
	ClassID        string    `json:"class_id"`
	ClassName      string    `json:"class_name"`
	InstructorMail string    `json:"instructor_mail"`
	Price          float64   `json:"price"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// Payment is the durable, append-only record of a completed checkout.
type Payment struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	CartID         string    `json:"cartID"`
	ClassID        string    `json:"classID"`
	ClassName      string    `json:"class_name"`
	InstructorMail string    `json:"instructor_mail"`
	Price          float64   `json:"price"`
	TransactionID  string    `json:"transactionID"`
	PaymentDate    time.Time `json:"paymentDate"`
}

// TokenRequest is the payload for issuing an identity token.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RegisterUserRequest is the payload for registering a new user.
type RegisterUserRequest struct {
	Name string `json:"name" validate:"required"`
	Role Role   `json:"role" validate:"omitempty,oneof=student admin instructor"`
}

// CreateClassRequest is the payload an instructor submits for a new class.
type CreateClassRequest struct {
	Name           string  `json:"name" validate:"required"`
	Image          string  `json:"image" validate:"omitempty,url"`
	InstructorName string  `json:"instructor_name" validate:"required"`
	Price          float64 `json:"price" validate:"gte=0"`
	AvailableSeats int     `json:"available_seats" validate:"gt=0"`
}

// FeedbackRequest carries an admin's feedback text for a class.
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

// AddCartItemRequest is the payload for adding a class to a user's cart.
type AddCartItemRequest struct {
	ClassID        string  `json:"class_id" validate:"required"`
	ClassName      string  `json:"class_name" validate:"required"`
	InstructorMail string  `json:"instructor_mail" validate:"required,email"`
	Price          float64 `json:"price" validate:"gte=0"`
}

// PaymentIntentRequest asks the gateway for a client secret covering price.
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}

// PaymentIntentResponse returns the gateway's client-side secret.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CheckoutRequest is the payload that finalizes a payment.
type CheckoutRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	CartID         string  `json:"cartID" validate:"required"`
	ClassID        string  `json:"classID" validate:"required"`
	ClassName      string  `json:"class_name"`
	InstructorMail string  `json:"instructor_mail" validate:"required,email"`
	Price          float64 `json:"price" validate:"gt=0"`
	TransactionID  string  `json:"transactionID"`
}

// CheckoutResult summarises the outcome of every state transition a
// successful checkout performs.
type CheckoutResult struct {
	Payment            Payment `json:"payment"`
	CartStatus         string  `json:"cart_status"`
	SeatsRemaining     int     `json:"seats_remaining"`
	InstructorEnrolled int     `json:"instructor_enrolled"`
}

// RoleResponse reports a caller's stored role.
type RoleResponse struct {
	Role Role `json:"role"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
