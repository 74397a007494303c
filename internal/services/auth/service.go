// Package auth covers login and user records. Passwords are stored as bcrypt
// hashes and sessions are signed JWTs.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fiscal-ops-backend/internal/models"
	"fiscal-ops-backend/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	users  *repository.UserRepository
	secret []byte
}

func NewService(users *repository.UserRepository) *Service {
	secret := os.Getenv("API_SECRET")
	if secret == "" {
		secret = "fiscal-ops-dev-secret"
	}
	return &Service{users: users, secret: []byte(secret)}
}

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (s *Service) Login(username, password string) (*LoginResult, error) {
	user, err := s.users.ByName(strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: *user}, nil
}

func (s *Service) generateToken(user *models.User) (string, error) {
	lifespan := 72
	if v := os.Getenv("TOKEN_HOUR_LIFESPAN"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			lifespan = parsed
		}
	}
	claims := &Claims{
		UserID: user.ID.String(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(lifespan) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) ValidateToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (s *Service) ListUsers() ([]models.User, error) {
	return s.users.List()
}

func (s *Service) GetUser(id uuid.UUID) (*models.User, error) {
	user, err := s.users.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return user, nil
}

func (s *Service) CreateUser(name, password, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = models.RoleCollaborator
	}
	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

type UserUpdate struct {
	Name     *string
	Password *string
	Role     *string
	Active   *bool
}

func (s *Service) UpdateUser(id uuid.UUID, in UserUpdate) (*models.User, error) {
	user, err := s.users.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) DeleteUser(id uuid.UUID) error {
	if _, err := s.users.ByID(id); err != nil {
		return fmt.Errorf("user %s: %w", id, err)
	}
	return s.users.Delete(id)
}
