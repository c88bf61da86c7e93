package catalog

import (
	"context"
	"errors"
	"log"
	"strings"

	"gamecatalog/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Registration is the data needed to open an account.
type Registration struct {
	Name     string
	Email    string
	Password string
	Country  string
}

func (s *Service) findUserByEmail(ctx context.Context, email string) (models.User, bool, error) {
	rows, err := s.stores.Users.All(ctx)
	if err != nil {
		return models.User{}, false, wrapStorage("list users", err)
	}
	for _, u := range rows {
		if !u.Deleted && sameName(u.Email, email) {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

// register creates a user with the given role after validating the input.
func (s *Service) register(ctx context.Context, r Registration, role string) (models.User, error) {
	name, err := requireText("name", r.Name)
	if err != nil {
		return models.User{}, err
	}
	email := strings.ToLower(strings.TrimSpace(r.Email))
	if !strings.Contains(email, "@") {
		return models.User{}, invalid("email is not valid")
	}
	if len(r.Password) < minPasswordLength {
		return models.User{}, invalid("password must be at least %d characters", minPasswordLength)
	}

	if _, exists, err := s.findUserByEmail(ctx, email); err != nil {
		return models.User{}, err
	} else if exists {
		return models.User{}, duplicate("user", "email", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		Country:      strings.TrimSpace(r.Country),
		PasswordHash: string(hash),
		Role:         role,
		RegisteredAt: models.NewTimestamp(s.clock()),
	}
	if err := s.stores.Users.Insert(ctx, &user); err != nil {
		return models.User{}, wrapStorage("create user", err)
	}
	return user, nil
}

func (s *Service) Register(ctx context.Context, r Registration) (models.User, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.register(ctx, r, models.RoleUser)
}

// Authenticate returns the live user with this email and password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, ok, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uint) (models.User, error) {
	return getLive(ctx, s.stores.Users, "user", id)
}

// EnsureAdmin makes sure an admin account exists for email, creating it
// with password when missing. A blank email disables the bootstrap.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	user, ok, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if ok {
		if user.Role == models.RoleAdmin {
			return nil
		}
		user.Role = models.RoleAdmin
		log.Printf("Promoting user %d to admin", user.ID)
		return wrapStorage("promote admin", s.stores.Users.Save(ctx, user))
	}

	if password == "" {
		return errors.New("ADMIN_PASSWORD is required to create the admin account")
	}
	name, _, _ := strings.Cut(email, "@")
	if _, err := s.register(ctx, Registration{Name: name, Email: email, Password: password}, models.RoleAdmin); err != nil {
		return err
	}
	log.Printf("Created admin account %s", email)
	return nil
}
