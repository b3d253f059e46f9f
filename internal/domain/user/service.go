package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"chore-tracker/internal/domain/token"
	"golang.org/x/crypto/bcrypt"
)

const (
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
	// Name and email are carried in every token, so they stay bounded.
	maxNameLength  = 100
	maxEmailLength = 254
)

type TokenIssuer interface {
	Issue(subject token.Subject) (string, error)
}

type Service struct {
	repo       Repository
	tokens     TokenIssuer
	bcryptCost int
}

func NewService(repo Repository, tokens TokenIssuer, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if err := checkLengths(name, email); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Name:     name,
		Email:    email,
		Password: hash,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks the credentials and makes a freshly issued token the user's
// only live token.
func (s *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	raw, err := s.tokens.Issue(token.Subject{UserID: user.ID, Name: user.Name, Email: user.Email})
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetToken(ctx, user.ID, raw); err != nil {
		return nil, err
	}

	user.Token = &raw
	return &Session{User: *user, Token: raw}, nil
}

// Logout revokes raw. It fails with token.ErrUnknownToken when raw is no
// longer the user's current token.
func (s *Service) Logout(ctx context.Context, userID int64, raw string) error {
	cleared, err := s.repo.ClearToken(ctx, userID, raw)
	if err != nil {
		return err
	}
	if !cleared {
		return token.ErrUnknownToken
	}
	return nil
}

func (s *Service) Get(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID int64, input UpdateInput) (*User, error) {
	changes := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		if err := checkLengths(name, ""); err != nil {
			return nil, err
		}
		changes["name"] = name
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", ErrValidation)
		}
		if err := checkLengths("", email); err != nil {
			return nil, err
		}
		existing, err := s.repo.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, ErrEmailTaken
		}
		changes["email"] = email
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, fmt.Errorf("%w: password must not be empty", ErrValidation)
		}
		hash, err := s.hash(*input.Password)
		if err != nil {
			return nil, err
		}
		changes["password"] = hash
	}
	if len(changes) == 0 {
		return nil, ErrNoChanges
	}

	if err := s.repo.Update(ctx, userID, changes); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

// Delete removes the account. Families, children and chores go with it
// through the foreign key cascades.
func (s *Service) Delete(ctx context.Context, userID int64) error {
	return s.repo.Delete(ctx, userID)
}

func (s *Service) hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkLengths(name, email string) error {
	if utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrValidation, maxNameLength)
	}
	if len(email) > maxEmailLength {
		return fmt.Errorf("%w: email must be at most %d characters", ErrValidation, maxEmailLength)
	}
	return nil
}
