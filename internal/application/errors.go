package application

import "errors"

// Error kinds. Handlers map these to HTTP status codes with errors.Is;
// anything else is an internal failure.
var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// Error carries a client-facing message together with its kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) error { return &Error{Kind: kind, Msg: msg} }

func validationError(msg string) error { return newError(ErrValidation, msg) }
func notFoundError(msg string) error   { return newError(ErrNotFound, msg) }

// NewValidationError lets adapters report malformed input with the same
// kind the services use.
func NewValidationError(msg string) error { return validationError(msg) }

var (
	// ErrInvalidCredentials is shared by "no such user" and "wrong password"
	// so sign-in never reveals which accounts exist.
	ErrInvalidCredentials = newError(ErrUnauthenticated, "Invalid email or password.")
	ErrEmailTaken         = newError(ErrConflict, "Email already exists.")
	ErrUserNotFound       = notFoundError("User not found.")
	ErrProductNotFound    = notFoundError("App not found.")
	ErrOrderNotFound      = notFoundError("Order not found.")
	ErrImageRequired      = validationError("Product image is required.")
	ErrNoValidItems       = validationError("No valid products found in cart.")
	ErrInvalidStatus      = validationError("Invalid status value.")
)
