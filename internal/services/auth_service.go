package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/repositories"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/utils"
)

// Claims is the bearer token payload.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	DB     *sql.DB
	Secret []byte
	TTL    time.Duration
	// Now is overridable in tests.
	Now func() time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid email or password"}

func (s AuthService) users() repositories.UserRepo {
	return repositories.UserRepo{DB: sharedDB(s.DB)}
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if len(in.Password) < 6 {
		return AuthResult{}, domain.ValidationError{Field: "password", Msg: "must be at least 6 characters"}
	}

	if _, err := s.users().GetByEmail(ctx, in.Email); err == nil {
		return AuthResult{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	} else if !domain.IsNotFound(err) {
		return AuthResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	id, err := s.users().Create(ctx, models.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		if domain.IsConflict(err) {
			return AuthResult{}, domain.ConflictError{Resource: "user", Msg: "email already registered", Err: err}
		}
		return AuthResult{}, err
	}

	user, err := s.users().GetByID(ctx, id)
	if err != nil {
		return AuthResult{}, err
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return AuthResult{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "register", "user_id", id)
	return AuthResult{User: user, Token: token}, nil
}

// normalizeEmail is applied on every lookup and insert of users.email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if domain.IsNotFound(err) {
			return AuthResult{}, errBadCredentials
		}
		return AuthResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, errBadCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return AuthResult{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "login", "user_id", user.ID)
	return AuthResult{User: user, Token: token}, nil
}

func (s AuthService) IssueToken(u models.User) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := s.now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	return signed, nil
}

// ParseToken verifies signature and expiry.
func (s AuthService) ParseToken(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return Claims{}, domain.UnauthorizedError{Msg: "invalid or expired token", Err: err}
	}
	if claims.UserID <= 0 {
		return Claims{}, domain.UnauthorizedError{Msg: "invalid token payload"}
	}
	return claims, nil
}

// Authenticate resolves a bearer token to a user that still exists.
func (s AuthService) Authenticate(ctx context.Context, raw string) (models.User, error) {
	claims, err := s.ParseToken(raw)
	if err != nil {
		return models.User{}, err
	}
	user, err := s.users().GetByID(ctx, claims.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, domain.UnauthorizedError{Msg: "user no longer exists", Err: err}
		}
		return models.User{}, errors.Wrap(err, "load token user")
	}
	return user, nil
}

func (s AuthService) Me(ctx context.Context, userID int64) (models.User, error) {
	return s.users().GetByID(ctx, userID)
}

func (s AuthService) ListUsers(ctx context.Context, page domain.Pagination) ([]models.User, domain.Pagination, error) {
	page = page.Normalize()
	list, total, err := s.users().List(ctx, page)
	if err != nil {
		return nil, page, err
	}
	page.Total = total
	return list, page, nil
}

func (s AuthService) UpdateRole(ctx context.Context, id int64, role string) (models.User, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return models.User{}, domain.ValidationError{Field: "role", Msg: "must be admin or user"}
	}
	if err := validID(id, "id"); err != nil {
		return models.User{}, err
	}
	if _, err := s.users().GetByID(ctx, id); err != nil {
		return models.User{}, err
	}
	if err := s.users().UpdateRole(ctx, id, role); err != nil {
		return models.User{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "update_role", "user_id", id, "role", role)
	return s.users().GetByID(ctx, id)
}
