package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
)

var userCols = []string{"id", "name", "email", "phone", "password_hash", "role", "created_at", "updated_at"}

func userRow(id int64, email, hash, role string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userCols).AddRow(id, "Abebe", email, "0911", hash, role, now, now)
}

func TestRegisterCreatesUserAndToken(t *testing.T) {
	db, mock := newMock(t)
	svc := AuthService{DB: db, Secret: []byte("secret")}

	mock.ExpectQuery("FROM users WHERE email=\\?").WithArgs("abebe@example.com").WillReturnRows(sqlmock.NewRows(userCols))
	mock.ExpectExec("INSERT INTO users").
		WithArgs("Abebe", "abebe@example.com", "0911", sqlmock.AnyArg(), domain.RoleUser).
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectQuery("FROM users WHERE id=\\?").WithArgs(int64(4)).WillReturnRows(userRow(4, "abebe@example.com", "x", domain.RoleUser))

	res, err := svc.Register(context.Background(), RegisterInput{Name: "Abebe", Email: " Abebe@Example.com ", Phone: "0911", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.User.ID)

	claims, err := svc.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(4), claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
	expectMet(t, mock)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	svc := AuthService{DB: db, Secret: []byte("secret")}

	mock.ExpectQuery("FROM users WHERE email=\\?").WithArgs("abebe@example.com").
		WillReturnRows(userRow(1, "abebe@example.com", "x", domain.RoleUser))

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Abebe", Email: "abebe@example.com", Password: "secret1"})
	assert.True(t, domain.IsConflict(err), "got %v", err)
	expectMet(t, mock)
}

func TestRegisterShortPassword(t *testing.T) {
	_, err := AuthService{}.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "123"})
	assert.True(t, domain.IsValidation(err))
}

func TestLogin(t *testing.T) {
	db, mock := newMock(t)
	svc := AuthService{DB: db, Secret: []byte("secret")}
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("FROM users WHERE email=\\?").WillReturnRows(userRow(4, "abebe@example.com", string(hash), domain.RoleAdmin))
	res, err := svc.Login(context.Background(), "abebe@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	mock.ExpectQuery("FROM users WHERE email=\\?").WillReturnRows(userRow(4, "abebe@example.com", string(hash), domain.RoleAdmin))
	_, err = svc.Login(context.Background(), "abebe@example.com", "wrong-password")
	assert.True(t, domain.IsUnauthorized(err))

	mock.ExpectQuery("FROM users WHERE email=\\?").WillReturnRows(sqlmock.NewRows(userCols))
	_, err = svc.Login(context.Background(), "nobody@example.com", "secret1")
	assert.True(t, domain.IsUnauthorized(err))
	expectMet(t, mock)
}

func TestLoginNormalizesEmailLikeRegister(t *testing.T) {
	db, mock := newMock(t)
	svc := AuthService{DB: db, Secret: []byte("secret")}
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("FROM users WHERE email=\\?").
		WithArgs("abebe@example.com").
		WillReturnRows(userRow(4, "abebe@example.com", string(hash), domain.RoleUser))

	res, err := svc.Login(context.Background(), "  Abebe@Example.COM ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.User.ID)
	expectMet(t, mock)
}

func TestParseTokenRejectsExpiredAndForeignTokens(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := AuthService{Secret: []byte("secret"), TTL: time.Hour, Now: func() time.Time { return now }}

	token, err := svc.IssueToken(models.User{ID: 3, Email: "a@b.c", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	require.NoError(t, err)

	later := svc
	later.Now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = later.ParseToken(token)
	assert.True(t, domain.IsUnauthorized(err))

	other := svc
	other.Secret = []byte("other")
	_, err = other.ParseToken(token)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestAuthenticateRequiresExistingUser(t *testing.T) {
	db, mock := newMock(t)
	svc := AuthService{DB: db, Secret: []byte("secret")}
	token, err := svc.IssueToken(models.User{ID: 3, Role: domain.RoleUser})
	require.NoError(t, err)

	mock.ExpectQuery("FROM users WHERE id=\\?").WithArgs(int64(3)).WillReturnRows(sqlmock.NewRows(userCols))
	_, err = svc.Authenticate(context.Background(), token)
	assert.True(t, domain.IsUnauthorized(err))
	expectMet(t, mock)
}

func TestUpdateRoleValidates(t *testing.T) {
	_, err := AuthService{}.UpdateRole(context.Background(), 3, "superuser")
	assert.True(t, domain.IsValidation(err))
}
