package transport

import (
	"encoding/json"
	"net/http"

	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	utilsContext "github.com/bondyapp/bondy/utils/context"
	cerr "github.com/bondyapp/bondy/utils/errors"
	validatorx "github.com/bondyapp/bondy/utils/validator"
)

// Register handler
// @Summary Register user
// @Description Register a new user with exactly one form of id proof
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} Response{data=model.RegisterResponse}
// @Failure 400 {object} Response
// @Router /api/auth/register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetValidationError(validatorx.Issues(err)))
		return
	}

	res, err := s.AuthApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with handle or phone and receive a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} Response{data=model.LoginResponse}
// @Failure 400 {object} Response
// @Router /api/auth/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetValidationError(validatorx.Issues(err)))
		return
	}

	res, err := s.AuthApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AdminLogin handler
// @Summary Login admin
// @Description Admin login with email; repeated failures lock the account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.AdminLoginRequest true "Admin Login Request"
// @Success 200 {object} Response{data=model.AdminLoginResponse}
// @Failure 423 {object} Response
// @Router /api/auth/admin/login [post]
func (s *RestHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetValidationError(validatorx.Issues(err)))
		return
	}

	res, err := s.AuthApp.AdminLogin(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetProfile handler
// @Summary Get own profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=model.UserEntity}
// @Router /api/auth/profile [get]
func (s *RestHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.AuthApp.GetProfile(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateProfile handler
// @Summary Update own profile
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} Response
// @Router /api/auth/profile [put]
func (s *RestHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.AuthApp.UpdateProfile(ctx, userID, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
