package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	appauth "github.com/bondyapp/bondy/application/auth"
	"github.com/bondyapp/bondy/cmd/config"
	"github.com/bondyapp/bondy/constant"
	adminmocks "github.com/bondyapp/bondy/mocks/repository/admin"
	redismocks "github.com/bondyapp/bondy/mocks/repository/redis"
	usermocks "github.com/bondyapp/bondy/mocks/repository/user"
	"github.com/bondyapp/bondy/model"
	cerr "github.com/bondyapp/bondy/utils/errors"
)

func assertErrCode(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[want])
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			JWTExpiration:  time.Hour,
			SessionExpTime: time.Hour,
			BcryptCost:     bcrypt.MinCost,
		},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func TestAuthApp_Register(t *testing.T) {
	type fields struct {
		userRepo *usermocks.UserRepository
	}
	tests := []struct {
		name     string
		req      *model.RegisterRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success with id proof number",
			req: &model.RegisterRequest{
				Handle:        "ravi",
				Name:          "Ravi",
				Phone:         "+919000000001",
				Password:      "secret1",
				IDProofNumber: "AADH-1234",
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Handle: "ravi"}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: "+919000000001"}).Return(nil, nil).Once()
				f.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.UserEntity) bool {
					return u.Handle == "ravi" && u.IDProofNumber == "AADH-1234" && u.IDProofImage == "" &&
						u.PasswordHash != "" && u.PasswordHash != "secret1" && u.ID != ""
				})).Return(func(_ context.Context, u *model.UserEntity) *model.UserEntity {
					return u
				}, nil).Once()
			},
		},
		{
			name: "both id proofs rejected",
			req: &model.RegisterRequest{
				Handle:        "ravi",
				Name:          "Ravi",
				Phone:         "+919000000001",
				Password:      "secret1",
				IDProofNumber: "AADH-1234",
				IDProofImage:  "uploads/u-1/proof.jpg",
			},
			mockCall: func(f fields) {},
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "neither id proof rejected",
			req: &model.RegisterRequest{
				Handle:   "ravi",
				Name:     "Ravi",
				Phone:    "+919000000001",
				Password: "secret1",
			},
			mockCall: func(f fields) {},
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "handle already taken",
			req: &model.RegisterRequest{
				Handle:        "ravi",
				Name:          "Ravi",
				Phone:         "+919000000001",
				Password:      "secret1",
				IDProofNumber: "AADH-1234",
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Handle: "ravi"}).
					Return(&model.UserEntity{ID: "u-9", Handle: "ravi"}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
		{
			name: "phone already taken",
			req: &model.RegisterRequest{
				Handle:        "ravi",
				Name:          "Ravi",
				Phone:         "+919000000001",
				Password:      "secret1",
				IDProofNumber: "AADH-1234",
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Handle: "ravi"}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: "+919000000001"}).
					Return(&model.UserEntity{ID: "u-9", Phone: "+919000000001"}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fields{userRepo: usermocks.NewUserRepository(t)}
			tt.mockCall(f)

			app := appauth.NewAuthApp(testConfig(), f.userRepo, adminmocks.NewAdminRepository(t), redismocks.NewRepository(t))
			resp, err := app.Register(context.Background(), tt.req)
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if resp.ID == "" || resp.Handle != tt.req.Handle {
				t.Fatalf("Register() response = %+v", resp)
			}
		})
	}
}

func TestAuthApp_Login(t *testing.T) {
	password := "secret1"

	t.Run("login by handle and validate token", func(t *testing.T) {
		user := &model.UserEntity{
			ID:           "u-1",
			Handle:       "ravi",
			Name:         "Ravi",
			PasswordHash: hashPassword(t, password),
		}
		userRepo := usermocks.NewUserRepository(t)
		userRepo.On("Get", mock.Anything, &model.UserFilter{Handle: "ravi"}).Return(user, nil).Once()

		var jti string
		redisRepo := redismocks.NewRepository(t)
		redisRepo.On("SetSession", mock.Anything, mock.Anything, "u-1", time.Hour).
			Run(func(args mock.Arguments) { jti = args.String(1) }).
			Return(nil).Once()

		app := appauth.NewAuthApp(testConfig(), userRepo, adminmocks.NewAdminRepository(t), redisRepo)
		resp, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "ravi", Password: password})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if resp.Token == "" || resp.Handle != "ravi" {
			t.Fatalf("Login() response = %+v", resp)
		}

		redisRepo.On("GetSession", mock.Anything, jti).Return("u-1", nil).Once()
		gotID, err := app.ValidateUserToken(context.Background(), resp.Token)
		if err != nil {
			t.Fatalf("ValidateUserToken() error = %v", err)
		}
		if gotID != "u-1" {
			t.Fatalf("ValidateUserToken() = %s, want u-1", gotID)
		}
	})

	t.Run("phone identifier queries by phone", func(t *testing.T) {
		user := &model.UserEntity{
			ID:           "u-1",
			Handle:       "ravi",
			PasswordHash: hashPassword(t, password),
		}
		userRepo := usermocks.NewUserRepository(t)
		userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: "+919000000001"}).Return(user, nil).Once()

		redisRepo := redismocks.NewRepository(t)
		redisRepo.On("SetSession", mock.Anything, mock.Anything, "u-1", time.Hour).Return(nil).Once()

		app := appauth.NewAuthApp(testConfig(), userRepo, adminmocks.NewAdminRepository(t), redisRepo)
		_, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "+919000000001", Password: password})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		user := &model.UserEntity{ID: "u-1", Handle: "ravi", PasswordHash: hashPassword(t, password)}
		userRepo := usermocks.NewUserRepository(t)
		userRepo.On("Get", mock.Anything, &model.UserFilter{Handle: "ravi"}).Return(user, nil).Once()

		app := appauth.NewAuthApp(testConfig(), userRepo, adminmocks.NewAdminRepository(t), redismocks.NewRepository(t))
		_, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "ravi", Password: "nope"})
		assertErrCode(t, err, constant.ErrInvalidPassword)
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		userRepo.On("Get", mock.Anything, &model.UserFilter{Handle: "ghost"}).Return(nil, nil).Once()

		app := appauth.NewAuthApp(testConfig(), userRepo, adminmocks.NewAdminRepository(t), redismocks.NewRepository(t))
		_, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "ghost", Password: password})
		assertErrCode(t, err, constant.ErrNotFound)
	})

	t.Run("admin token rejected for user endpoints", func(t *testing.T) {
		admin := &model.AdminEntity{
			ID:           "a-1",
			Email:        "ops@bondy.app",
			PasswordHash: hashPassword(t, password),
			IsActive:     true,
		}
		adminRepo := adminmocks.NewAdminRepository(t)
		adminRepo.On("Get", mock.Anything, &model.AdminFilter{Email: "ops@bondy.app"}).Return(admin, nil).Once()

		redisRepo := redismocks.NewRepository(t)
		redisRepo.On("SetSession", mock.Anything, mock.Anything, "a-1", time.Hour).Return(nil).Once()

		app := appauth.NewAuthApp(testConfig(), usermocks.NewUserRepository(t), adminRepo, redisRepo)
		resp, err := app.AdminLogin(context.Background(), &model.AdminLoginRequest{Email: "ops@bondy.app", Password: password})
		if err != nil {
			t.Fatalf("AdminLogin() error = %v", err)
		}

		if _, err := app.ValidateUserToken(context.Background(), resp.Token); err == nil {
			t.Fatal("ValidateUserToken() accepted an admin token")
		}
	})
}

func TestAuthApp_AdminLogin(t *testing.T) {
	password := "secret1"

	activeAdmin := func(t *testing.T) *model.AdminEntity {
		return &model.AdminEntity{
			ID:           "a-1",
			Name:         "Ops",
			Email:        "ops@bondy.app",
			PasswordHash: hashPassword(t, password),
			Role:         constant.AdminRoleStandard,
			IsActive:     true,
		}
	}

	t.Run("wrong password below threshold records failure", func(t *testing.T) {
		admin := activeAdmin(t)
		admin.FailedLoginCount = 2

		adminRepo := adminmocks.NewAdminRepository(t)
		adminRepo.On("Get", mock.Anything, &model.AdminFilter{Email: "ops@bondy.app"}).Return(admin, nil).Once()
		adminRepo.On("RecordLoginFailure", mock.Anything, "a-1", 3, (*time.Time)(nil)).Return(nil).Once()

		app := appauth.NewAuthApp(testConfig(), usermocks.NewUserRepository(t), adminRepo, redismocks.NewRepository(t))
		_, err := app.AdminLogin(context.Background(), &model.AdminLoginRequest{Email: "ops@bondy.app", Password: "nope"})
		assertErrCode(t, err, constant.ErrInvalidPassword)
	})

	t.Run("fifth failure locks the account", func(t *testing.T) {
		admin := activeAdmin(t)
		admin.FailedLoginCount = 4

		adminRepo := adminmocks.NewAdminRepository(t)
		adminRepo.On("Get", mock.Anything, &model.AdminFilter{Email: "ops@bondy.app"}).Return(admin, nil).Once()
		adminRepo.On("RecordLoginFailure", mock.Anything, "a-1", 5, mock.MatchedBy(func(until *time.Time) bool {
			return until != nil && until.After(time.Now().Add(29*time.Minute))
		})).Return(nil).Once()

		app := appauth.NewAuthApp(testConfig(), usermocks.NewUserRepository(t), adminRepo, redismocks.NewRepository(t))
		_, err := app.AdminLogin(context.Background(), &model.AdminLoginRequest{Email: "ops@bondy.app", Password: "nope"})
		assertErrCode(t, err, constant.ErrAccountLocked)
	})

	t.Run("locked account refuses even the right password", func(t *testing.T) {
		admin := activeAdmin(t)
		until := time.Now().Add(10 * time.Minute)
		admin.FailedLoginCount = 5
		admin.LockedUntil = &until

		adminRepo := adminmocks.NewAdminRepository(t)
		adminRepo.On("Get", mock.Anything, &model.AdminFilter{Email: "ops@bondy.app"}).Return(admin, nil).Once()

		app := appauth.NewAuthApp(testConfig(), usermocks.NewUserRepository(t), adminRepo, redismocks.NewRepository(t))
		_, err := app.AdminLogin(context.Background(), &model.AdminLoginRequest{Email: "ops@bondy.app", Password: password})
		assertErrCode(t, err, constant.ErrAccountLocked)
	})

	t.Run("expired lock admits and resets the counter", func(t *testing.T) {
		admin := activeAdmin(t)
		until := time.Now().Add(-time.Minute)
		admin.FailedLoginCount = 5
		admin.LockedUntil = &until

		adminRepo := adminmocks.NewAdminRepository(t)
		adminRepo.On("Get", mock.Anything, &model.AdminFilter{Email: "ops@bondy.app"}).Return(admin, nil).Once()
		adminRepo.On("ResetLoginFailures", mock.Anything, "a-1").Return(nil).Once()

		redisRepo := redismocks.NewRepository(t)
		redisRepo.On("SetSession", mock.Anything, mock.Anything, "a-1", time.Hour).Return(nil).Once()

		app := appauth.NewAuthApp(testConfig(), usermocks.NewUserRepository(t), adminRepo, redisRepo)
		resp, err := app.AdminLogin(context.Background(), &model.AdminLoginRequest{Email: "ops@bondy.app", Password: password})
		if err != nil {
			t.Fatalf("AdminLogin() error = %v", err)
		}
		if resp.Token == "" || resp.Role != constant.AdminRoleStandard {
			t.Fatalf("AdminLogin() response = %+v", resp)
		}
	})

	t.Run("deactivated admin is forbidden", func(t *testing.T) {
		admin := activeAdmin(t)
		admin.IsActive = false

		adminRepo := adminmocks.NewAdminRepository(t)
		adminRepo.On("Get", mock.Anything, &model.AdminFilter{Email: "ops@bondy.app"}).Return(admin, nil).Once()

		app := appauth.NewAuthApp(testConfig(), usermocks.NewUserRepository(t), adminRepo, redismocks.NewRepository(t))
		_, err := app.AdminLogin(context.Background(), &model.AdminLoginRequest{Email: "ops@bondy.app", Password: password})
		assertErrCode(t, err, constant.ErrForbidden)
	})

	t.Run("unknown email", func(t *testing.T) {
		adminRepo := adminmocks.NewAdminRepository(t)
		adminRepo.On("Get", mock.Anything, &model.AdminFilter{Email: "nobody@bondy.app"}).Return(nil, nil).Once()

		app := appauth.NewAuthApp(testConfig(), usermocks.NewUserRepository(t), adminRepo, redismocks.NewRepository(t))
		_, err := app.AdminLogin(context.Background(), &model.AdminLoginRequest{Email: "nobody@bondy.app", Password: password})
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestAuthApp_ValidateAdminToken(t *testing.T) {
	password := "secret1"

	login := func(t *testing.T, adminRepo *adminmocks.AdminRepository, redisRepo *redismocks.Repository) (appauth.AuthApp, string, string) {
		t.Helper()
		admin := &model.AdminEntity{
			ID:           "a-1",
			Email:        "ops@bondy.app",
			PasswordHash: hashPassword(t, password),
			IsActive:     true,
		}
		adminRepo.On("Get", mock.Anything, &model.AdminFilter{Email: "ops@bondy.app"}).Return(admin, nil).Once()

		var jti string
		redisRepo.On("SetSession", mock.Anything, mock.Anything, "a-1", time.Hour).
			Run(func(args mock.Arguments) { jti = args.String(1) }).
			Return(nil).Once()

		app := appauth.NewAuthApp(testConfig(), usermocks.NewUserRepository(t), adminRepo, redisRepo)
		resp, err := app.AdminLogin(context.Background(), &model.AdminLoginRequest{Email: "ops@bondy.app", Password: password})
		if err != nil {
			t.Fatalf("AdminLogin() error = %v", err)
		}
		return app, resp.Token, jti
	}

	t.Run("valid token with live session", func(t *testing.T) {
		adminRepo := adminmocks.NewAdminRepository(t)
		redisRepo := redismocks.NewRepository(t)
		app, token, jti := login(t, adminRepo, redisRepo)

		redisRepo.On("GetSession", mock.Anything, jti).Return("a-1", nil).Once()
		adminRepo.On("Get", mock.Anything, &model.AdminFilter{ID: "a-1"}).
			Return(&model.AdminEntity{ID: "a-1", IsActive: true}, nil).Once()

		gotID, err := app.ValidateAdminToken(context.Background(), token)
		if err != nil {
			t.Fatalf("ValidateAdminToken() error = %v", err)
		}
		if gotID != "a-1" {
			t.Fatalf("ValidateAdminToken() = %s, want a-1", gotID)
		}
	})

	t.Run("revoked session is rejected", func(t *testing.T) {
		adminRepo := adminmocks.NewAdminRepository(t)
		redisRepo := redismocks.NewRepository(t)
		app, token, jti := login(t, adminRepo, redisRepo)

		redisRepo.On("GetSession", mock.Anything, jti).Return("", errors.New("redis: nil")).Once()

		if _, err := app.ValidateAdminToken(context.Background(), token); err == nil {
			t.Fatal("ValidateAdminToken() accepted a revoked session")
		}
	})

	t.Run("lock acquired after login invalidates the token", func(t *testing.T) {
		adminRepo := adminmocks.NewAdminRepository(t)
		redisRepo := redismocks.NewRepository(t)
		app, token, jti := login(t, adminRepo, redisRepo)

		until := time.Now().Add(10 * time.Minute)
		redisRepo.On("GetSession", mock.Anything, jti).Return("a-1", nil).Once()
		adminRepo.On("Get", mock.Anything, &model.AdminFilter{ID: "a-1"}).
			Return(&model.AdminEntity{ID: "a-1", IsActive: true, LockedUntil: &until}, nil).Once()

		_, err := app.ValidateAdminToken(context.Background(), token)
		assertErrCode(t, err, constant.ErrAccountLocked)
	})

	t.Run("garbage token", func(t *testing.T) {
		app := appauth.NewAuthApp(testConfig(), usermocks.NewUserRepository(t), adminmocks.NewAdminRepository(t), redismocks.NewRepository(t))
		if _, err := app.ValidateAdminToken(context.Background(), "not-a-jwt"); err == nil {
			t.Fatal("ValidateAdminToken() accepted garbage")
		}
	})
}
