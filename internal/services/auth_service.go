package services

import (
	"errors"

	"cs2showroom/internal/domain"
	"cs2showroom/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

// AuthService verifies the operator's credentials and binds them to the
// sid-keyed session. There is exactly one account (the seeded admin), so
// login carries no caller-facing user payload.
type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, email, password string) error {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return ErrBadCreds
	}
	return s.Users.BindSession(sid, u.ID)
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

// CurrentUser resolves the session cookie to the bound operator, if any.
func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
