package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/session"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/user/entity"
	userrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/user/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

// PasswordHasher defines minimal hashing interface (abstract so we can swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Store is the persistence the service needs; *userrepo.UserRepo satisfies it.
type Store interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// TokenIssuer signs session tokens; *session.Issuer satisfies it.
type TokenIssuer interface {
	Issue(id session.Identity) (string, time.Time, error)
}

var (
	ErrEmailTaken        = errors.New("user already exists with this email")
	ErrUserNotFound      = errors.New("user does not exist")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// Session is the outcome of a successful register or login.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// UserService orchestrates registration, login and profile lookups.
type UserService struct {
	store  Store
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

func NewUserService(store Store, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 10}
	}
	return &UserService{store: store, hasher: hasher, tokens: tokens, now: time.Now}
}

// Register creates exactly one credential record for a new email and returns
// a session for it.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	_, err := s.store.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now().UTC()
	u := &entity.User{
		ID:           utilities.NewObjectID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, userrepo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issue(u)
}

// Login checks the password against the stored hash. Unknown email and wrong
// password are reported separately.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	u, err := s.store.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if !s.hasher.Verify(u.PasswordHash, in.Password) {
		return nil, ErrIncorrectPassword
	}
	return s.issue(u)
}

// Profile returns the record of an already authenticated caller.
func (s *UserService) Profile(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

func (s *UserService) issue(u *entity.User) (*Session, error) {
	tok, exp, err := s.tokens.Issue(session.Identity{UserID: u.ID, Role: u.Role})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: u, Token: tok, ExpiresAt: exp}, nil
}
