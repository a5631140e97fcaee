package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bondyapp/bondy/cmd/config"
	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	adminrepo "github.com/bondyapp/bondy/repository/admin"
	redisrepo "github.com/bondyapp/bondy/repository/redis"
	userrepo "github.com/bondyapp/bondy/repository/user"
	cerr "github.com/bondyapp/bondy/utils/errors"
	"github.com/bondyapp/bondy/utils/logger"
)

// Admin lockout policy: lock after this many consecutive failures, for this long.
const (
	maxLoginFailures = 5
	lockoutDuration  = 30 * time.Minute
)

// Token audiences keep user and admin tokens disjoint.
const (
	audienceUser  = "user"
	audienceAdmin = "admin"
)

type AuthApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	ValidateUserToken(ctx context.Context, tokenString string) (string, error)
	GetProfile(ctx context.Context, userID string) (*model.UserEntity, error)
	UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) error
	AdminLogin(ctx context.Context, req *model.AdminLoginRequest) (*model.AdminLoginResponse, error)
	ValidateAdminToken(ctx context.Context, tokenString string) (string, error)
}

type authAppImpl struct {
	config    *config.Config
	userRepo  userrepo.UserRepository
	adminRepo adminrepo.AdminRepository
	redisRepo redisrepo.Repository
}

func NewAuthApp(config *config.Config, userRepo userrepo.UserRepository, adminRepo adminrepo.AdminRepository, redisRepo redisrepo.Repository) AuthApp {
	return &authAppImpl{
		config:    config,
		userRepo:  userRepo,
		adminRepo: adminRepo,
		redisRepo: redisRepo,
	}
}

func (s *authAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	// One government-ID proof, by number or by image, never both
	hasNumber := req.IDProofNumber != ""
	hasImage := req.IDProofImage != ""
	if hasNumber == hasImage {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Handle: req.Handle})
	if err != nil {
		logger.Error("[Register] err userRepo.Get handle", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, cerr.SetCustomError(constant.ErrCredentialExists)
	}

	existingUser, err = s.userRepo.Get(ctx, &model.UserFilter{Phone: req.Phone})
	if err != nil {
		logger.Error("[Register] err userRepo.Get phone", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, cerr.SetCustomError(constant.ErrCredentialExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.Auth.BcryptCost)
	if err != nil {
		logger.Error("[Register] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	userEntity := &model.UserEntity{
		ID:            uuid.NewString(),
		Handle:        req.Handle,
		Name:          req.Name,
		Phone:         req.Phone,
		PasswordHash:  string(hashedPassword),
		IDProofNumber: req.IDProofNumber,
		IDProofImage:  req.IDProofImage,
	}

	userEntity, err = s.userRepo.Create(ctx, userEntity)
	if err != nil {
		logger.Error("[Register] err userRepo.Create", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrCredentialExists)
	}

	return &model.RegisterResponse{
		ID:     userEntity.ID,
		Name:   userEntity.Name,
		Handle: userEntity.Handle,
	}, nil
}

func (s *authAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	filter := &model.UserFilter{}
	if isPhone(req.Identifier) {
		filter.Phone = req.Identifier
	} else {
		filter.Handle = req.Identifier
	}

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidPassword)
	}

	token, jti, err := s.generateJWT(user.ID, audienceUser)
	if err != nil {
		logger.Error("[Login] err generateJWT", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	err = s.redisRepo.SetSession(ctx, jti, user.ID, s.config.Auth.SessionExpTime)
	if err != nil {
		logger.Error("[Login] err SetSession", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	return &model.LoginResponse{
		Name:   user.Name,
		Handle: user.Handle,
		Token:  token,
	}, nil
}

func (s *authAppImpl) ValidateUserToken(ctx context.Context, tokenString string) (string, error) {
	return s.validateToken(ctx, tokenString, audienceUser)
}

func (s *authAppImpl) GetProfile(ctx context.Context, userID string) (*model.UserEntity, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[GetProfile] err userRepo.Get", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	return user, nil
}

func (s *authAppImpl) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) error {
	if err := s.userRepo.UpdateProfile(ctx, userID, req); err != nil {
		logger.Error("[UpdateProfile] err userRepo.UpdateProfile", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *authAppImpl) AdminLogin(ctx context.Context, req *model.AdminLoginRequest) (*model.AdminLoginResponse, error) {
	admin, err := s.adminRepo.Get(ctx, &model.AdminFilter{Email: req.Email})
	if err != nil {
		logger.Error("[AdminLogin] err adminRepo.Get", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if admin == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	now := time.Now()
	if admin.Locked(now) {
		return nil, cerr.SetCustomError(constant.ErrAccountLocked)
	}
	if !admin.IsActive {
		return nil, cerr.SetCustomError(constant.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		failures := admin.FailedLoginCount + 1
		var lockedUntil *time.Time
		if failures >= maxLoginFailures {
			t := now.Add(lockoutDuration)
			lockedUntil = &t
		}
		if rerr := s.adminRepo.RecordLoginFailure(ctx, admin.ID, failures, lockedUntil); rerr != nil {
			logger.Error("[AdminLogin] err RecordLoginFailure", zap.String("error", rerr.Error()))
		}
		if lockedUntil != nil {
			return nil, cerr.SetCustomError(constant.ErrAccountLocked)
		}
		return nil, cerr.SetCustomError(constant.ErrInvalidPassword)
	}

	// Successful login resets the failure counter and any residual lock
	if admin.FailedLoginCount > 0 || admin.LockedUntil != nil {
		if rerr := s.adminRepo.ResetLoginFailures(ctx, admin.ID); rerr != nil {
			logger.Error("[AdminLogin] err ResetLoginFailures", zap.String("error", rerr.Error()))
		}
	}

	token, jti, err := s.generateJWT(admin.ID, audienceAdmin)
	if err != nil {
		logger.Error("[AdminLogin] err generateJWT", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.SetSession(ctx, jti, admin.ID, s.config.Auth.SessionExpTime); err != nil {
		logger.Error("[AdminLogin] err SetSession", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	return &model.AdminLoginResponse{
		Name:  admin.Name,
		Email: admin.Email,
		Role:  admin.Role,
		Token: token,
	}, nil
}

func (s *authAppImpl) ValidateAdminToken(ctx context.Context, tokenString string) (string, error) {
	adminID, err := s.validateToken(ctx, tokenString, audienceAdmin)
	if err != nil {
		return "", err
	}

	admin, err := s.adminRepo.Get(ctx, &model.AdminFilter{ID: adminID})
	if err != nil {
		return "", fmt.Errorf("admin lookup failed: %w", err)
	}
	if admin == nil {
		return "", fmt.Errorf("admin not found")
	}
	if admin.Locked(time.Now()) {
		return "", cerr.SetCustomError(constant.ErrAccountLocked)
	}
	if !admin.IsActive {
		return "", cerr.SetCustomError(constant.ErrForbidden)
	}
	return adminID, nil
}

func (s *authAppImpl) validateToken(ctx context.Context, tokenString, audience string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid claims")
	}

	// The two token types are disjoint
	if len(claims.Audience) == 0 || claims.Audience[0] != audience {
		return "", fmt.Errorf("wrong token audience")
	}

	actorID := claims.Subject
	if actorID == "" {
		return "", fmt.Errorf("token missing subject")
	}

	jti := claims.ID
	if jti == "" {
		return "", fmt.Errorf("token missing jti")
	}

	sessionActor, err := s.redisRepo.GetSession(ctx, jti)
	if err != nil {
		return "", fmt.Errorf("invalid or expired session")
	}
	if sessionActor != actorID {
		return "", fmt.Errorf("token does not match session")
	}

	return actorID, nil
}

// generateJWT creates a signed token for the actor
func (s *authAppImpl) generateJWT(actorID, audience string) (string, string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := jwt.RegisteredClaims{
		Subject:   actorID,
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}

// isPhone checks if the identifier looks like a phone number
func isPhone(identifier string) bool {
	if identifier == "" {
		return false
	}
	for i, r := range identifier {
		if r == '+' && i == 0 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
