package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/restobook/pkg/config"
	"github.com/restobook/pkg/dtos"
	"github.com/restobook/pkg/entities"
	"github.com/restobook/pkg/testutil"
	"github.com/restobook/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := NewService(NewRepo(db), config.Auth{
		Secret:    testutil.TestSecret,
		TokenTTL:  time.Hour,
		AdminCode: "SECRET_ADMIN_CODE",
	})
	return svc, db
}

func registration(email string) dtos.DTOForUserCreate {
	return dtos.DTOForUserCreate{
		Name:     "Ada Guest",
		Email:    email,
		Password: "hunter22",
		Phone:    "555-0100",
	}
}

func TestRegister_CreatesCustomer(t *testing.T) {
	svc, db := newTestService(t)

	id, err := svc.Register(context.Background(), registration("ada@example.com"))
	require.NoError(t, err)
	assert.NotZero(t, id)

	var user entities.User
	require.NoError(t, db.First(&user, id).Error)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, entities.RoleCustomer, user.Role)
	assert.NotEqual(t, "hunter22", user.Password, "password must be stored hashed")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registration("dup@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registration("dup@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegister_RoleElevation(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		adminCode string
		want      entities.Role
	}{
		{"staff with correct code", "staff", "SECRET_ADMIN_CODE", entities.RoleStaff},
		{"staff with wrong code", "staff", "guess", entities.RoleCustomer},
		{"staff without code", "staff", "", entities.RoleCustomer},
		{"manager is never self-assigned", "manager", "SECRET_ADMIN_CODE", entities.RoleCustomer},
		{"customer with code", "customer", "SECRET_ADMIN_CODE", entities.RoleCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := newTestService(t)

			req := registration("staff@example.com")
			req.Role = tt.role
			req.AdminCode = tt.adminCode

			id, err := svc.Register(context.Background(), req)
			require.NoError(t, err)

			var user entities.User
			require.NoError(t, db.First(&user, id).Error)
			assert.Equal(t, tt.want, user.Role)
		})
	}
}

func TestRegister_EmptyAdminCodeNeverElevates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(NewRepo(db), config.Auth{Secret: testutil.TestSecret, TokenTTL: time.Hour})

	req := registration("blank@example.com")
	req.Role = "staff"

	id, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	var user entities.User
	require.NoError(t, db.First(&user, id).Error)
	assert.Equal(t, entities.RoleCustomer, user.Role)
}

func TestRegister_ConcurrentDuplicates(t *testing.T) {
	svc, _ := newTestService(t)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), registration("race@example.com"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	}
	assert.Equal(t, 1, succeeded)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := registration("login@example.com")
	req.Role = "staff"
	req.AdminCode = "SECRET_ADMIN_CODE"
	id, err := svc.Register(ctx, req)
	require.NoError(t, err)

	token, err := svc.Login(ctx, dtos.DTOForUserLogin{Email: "login@example.com", Password: "hunter22"})
	require.NoError(t, err)

	claims, err := utils.ParseAccessToken(token, testutil.TestSecret)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "staff", claims.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registration("known@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, dtos.DTOForUserLogin{Email: "known@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dtos.DTOForUserLogin{Email: "unknown@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_NormalizesEmailLikeRegister(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	decomposed := "jose\u0301@example.com"
	_, err := svc.Register(ctx, registration(decomposed))
	require.NoError(t, err)

	for _, email := range []string{decomposed, "jos\u00e9@example.com", "  " + decomposed + " "} {
		token, err := svc.Login(ctx, dtos.DTOForUserLogin{Email: email, Password: "hunter22"})
		require.NoError(t, err, "email %q", email)
		assert.NotEmpty(t, token)
	}
}
