package domain

import "errors"

// User field validation errors.
var (
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// DefaultRole is assigned to users created through registration.
const DefaultRole = "user"

// User is a registered account. The password hash is never serialized and the
// plaintext password never reaches this type; hashing happens before
// construction.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	HashedPassword string `json:"-"`
	IsActive       bool   `json:"is_active"`
	Role           string `json:"role"`
	PhoneNumber    string `json:"phone_number,omitempty"`
}

// NewUser creates an active User with the default role. The caller supplies
// an already-hashed password. Returns an error if validation fails.
func NewUser(email, username, firstName, lastName, hashedPassword, phoneNumber string) (*User, error) {
	user := &User{
		Email:          email,
		Username:       username,
		FirstName:      firstName,
		LastName:       lastName,
		HashedPassword: hashedPassword,
		IsActive:       true,
		Role:           DefaultRole,
		PhoneNumber:    phoneNumber,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the invariants every stored user must satisfy.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// validEmailFormat performs a minimal structural check: a non-edge '@' with a
// dotted domain part. Request-level validation uses the stricter validator
// tag; this guards entities constructed outside the HTTP layer.
func validEmailFormat(email string) bool {
	at := -1
	for i, ch := range email {
		if ch == '@' {
			at = i
			break
		}
	}
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := -1
	for i, ch := range domain {
		if ch == '.' {
			dot = i
			break
		}
	}
	return dot > 0 && dot < len(domain)-1
}
