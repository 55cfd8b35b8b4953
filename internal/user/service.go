// Package user handles account registration and the persisted login session.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mymoney/internal/kv"
)

var (
	ErrMissingFields      = errors.New("nome, email and senha are required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// User is a registered account. PasswordHash never leaves the service; the
// wire shape only carries id, nome and email.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"nome"`
	Email        string `json:"email"`
	PasswordHash string `json:"senha_hash,omitempty"`
}

func (u User) public() User {
	u.PasswordHash = ""
	return u
}

type Service struct {
	blobs kv.Store
	newID func() string
}

func NewService(blobs kv.Store) *Service {
	return &Service{blobs: blobs, newID: uuid.NewString}
}

// Register creates an account with a bcrypt-hashed password and persists it.
// Duplicate emails are rejected.
func (s *Service) Register(ctx context.Context, nome, email, senha string) (User, error) {
	nome = strings.TrimSpace(nome)
	email = strings.ToLower(strings.TrimSpace(email))
	if nome == "" || email == "" || senha == "" {
		return User{}, ErrMissingFields
	}

	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range accounts {
		if u.Email == email {
			return User{}, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           s.newID(),
		Name:         nome,
		Email:        email,
		PasswordHash: string(hash),
	}
	accounts = append(accounts, u)
	if err := s.saveAccounts(ctx, accounts); err != nil {
		return User{}, err
	}

	slog.InfoContext(ctx, "User registered", "user_id", u.ID, "email", email)
	return u.public(), nil
}

// Login verifies the credentials and mirrors the session so a restart
// restores the logged-in state.
func (s *Service) Login(ctx context.Context, email, senha string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	accounts, err := s.loadAccounts(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range accounts {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(senha)) != nil {
			return User{}, ErrInvalidCredentials
		}

		session, err := json.Marshal(u.public())
		if err != nil {
			return User{}, fmt.Errorf("marshal session: %w", err)
		}
		if err := s.blobs.Set(ctx, kv.KeySession, string(session)); err != nil {
			// Session persistence is best effort, login still succeeds.
			slog.ErrorContext(ctx, "Session save failed", "error", err, "user_id", u.ID)
		}

		slog.InfoContext(ctx, "User logged in", "user_id", u.ID)
		return u.public(), nil
	}
	return User{}, ErrInvalidCredentials
}

// Logout removes the persisted session.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.blobs.Delete(ctx, kv.KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	slog.InfoContext(ctx, "Session cleared")
	return nil
}

// Session returns the persisted logged-in user, if any.
func (s *Service) Session(ctx context.Context) (User, bool, error) {
	raw, ok, err := s.blobs.Get(ctx, kv.KeySession)
	if err != nil {
		return User{}, false, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return User{}, false, nil
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return User{}, false, fmt.Errorf("decode session: %w", err)
	}
	return u, true, nil
}

func (s *Service) loadAccounts(ctx context.Context) ([]User, error) {
	raw, ok, err := s.blobs.Get(ctx, kv.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var accounts []User
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, nil
}

func (s *Service) saveAccounts(ctx context.Context, accounts []User) error {
	blob, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("marshal accounts: %w", err)
	}
	if err := s.blobs.Set(ctx, kv.KeyUsers, string(blob)); err != nil {
		return fmt.Errorf("persist accounts: %w", err)
	}
	return nil
}
