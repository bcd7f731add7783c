package domain

import "testing"

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("alice@example.com", "alice", "Alice", "Smith", "$2a$10$fakehash", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !user.IsActive {
		t.Error("new users must be active by default")
	}
	if user.Role != DefaultRole {
		t.Errorf("expected role %q, got %q", DefaultRole, user.Role)
	}
	if user.Username != "alice" {
		t.Errorf("expected username alice, got %q", user.Username)
	}
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		user User
		want error
	}{
		{
			name: "empty email",
			user: User{Username: "bob", HashedPassword: "h"},
			want: ErrEmptyEmail,
		},
		{
			name: "invalid email",
			user: User{Email: "not-an-email", Username: "bob", HashedPassword: "h"},
			want: ErrInvalidEmail,
		},
		{
			name: "email missing domain dot",
			user: User{Email: "bob@localhost", Username: "bob", HashedPassword: "h"},
			want: ErrInvalidEmail,
		},
		{
			name: "empty username",
			user: User{Email: "bob@example.com", HashedPassword: "h"},
			want: ErrEmptyUsername,
		},
		{
			name: "empty hash",
			user: User{Email: "bob@example.com", Username: "bob"},
			want: ErrEmptyHashedPassword,
		},
		{
			name: "valid",
			user: User{Email: "bob@example.com", Username: "bob", HashedPassword: "h"},
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.user.Validate(); err != tc.want {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
