package user

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mthinuay/SingularXpress/internal/shared/apperror"
	usererrors "github.com/Mthinuay/SingularXpress/internal/user/errors"
)

const (
	maxFailedLoginAttempts = 3
	lockoutDuration        = 5 * time.Minute

	otpExpiry = 30 * time.Minute

	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	// ForgotPassword selalu menjawab dengan pesan yang sama supaya
	// keberadaan akun tidak bocor.
	forgotPasswordMessage = "If an account with this email exists, a reset code has been sent."
)

//go:generate mockgen -source=user_service.go -destination=mock_user/mock_service.go -package=mock_user

type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp UserResponse, err error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, otp string) (VerifyOTPResponse, error)
	UpdatePassword(ctx context.Context, email, newPassword string) (string, error)

	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	mailer Mailer
	logger *zap.Logger
}

func NewService(repo Repository, mailer Mailer, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.L()
	}
	return &service{
		repo:   repo,
		mailer: mailer,
		logger: logger.Named("user.service"),
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, UserResponse, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", UserResponse{}, usererrors.ErrInvalidCredentials
	}

	now := time.Now()
	if u.LockoutEnd != nil && u.LockoutEnd.After(now) {
		remaining := u.LockoutEnd.Sub(now)
		minutes := int(remaining.Minutes())
		seconds := int(remaining.Seconds()) % 60
		return "", "", UserResponse{}, usererrors.ErrAccountLocked.WithMessage(fmt.Sprintf(
			"Account locked. Please try again in %d minutes and %d seconds", minutes, seconds,
		))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", "", UserResponse{}, s.recordFailedLogin(ctx, u)
	}

	// Login berhasil, reset counter kegagalan.
	if u.FailedLoginAttempts != 0 || u.LockoutEnd != nil {
		u.FailedLoginAttempts = 0
		u.LockoutEnd = nil
		if err := s.repo.Update(ctx, u); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.String("email", email), zap.Error(err))
		}
	}

	accessToken, err := s.generateToken(u, accessTokenTTL)
	if err != nil {
		return "", "", UserResponse{}, usererrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(u, refreshTokenTTL)
	if err != nil {
		return "", "", UserResponse{}, usererrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, mapToResponse(u), nil
}

func (s *service) recordFailedLogin(ctx context.Context, u *User) error {
	u.FailedLoginAttempts++

	if u.FailedLoginAttempts >= maxFailedLoginAttempts {
		lockedUntil := time.Now().Add(lockoutDuration)
		u.LockoutEnd = &lockedUntil
		if err := s.repo.Update(ctx, u); err != nil {
			s.logger.Warn("failed to persist account lockout", zap.String("email", u.Email), zap.Error(err))
		}
		return usererrors.ErrAccountLocked
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Warn("failed to persist login attempt count", zap.String("email", u.Email), zap.Error(err))
	}

	remaining := maxFailedLoginAttempts - u.FailedLoginAttempts
	return usererrors.ErrInvalidCredentials.WithMessage(fmt.Sprintf(
		"Invalid email or password. %d attempt(s) remaining before account is locked", remaining,
	))
}

func (s *service) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Jangan bocorkan apakah email terdaftar.
		return forgotPasswordMessage, nil
	}

	otp, err := generateOTP()
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeInternalError, "Failed to generate reset code", 500)
	}

	token := &PasswordResetToken{
		Email:     u.Email,
		OTP:       otp,
		ExpiresAt: time.Now().Add(otpExpiry),
	}
	if err := s.repo.CreateResetToken(ctx, token); err != nil {
		return "", mapRepositoryError(err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, u.Email, otp); err != nil {
		s.logger.Error("failed to send password reset email", zap.String("email", u.Email), zap.Error(err))
	}

	return forgotPasswordMessage, nil
}

func (s *service) VerifyOTP(ctx context.Context, email, otp string) (VerifyOTPResponse, error) {
	token, err := s.repo.FindResetToken(ctx, email, otp)
	if err != nil {
		return VerifyOTPResponse{}, usererrors.ErrInvalidOTP
	}

	if time.Now().After(token.ExpiresAt) {
		if err := s.repo.DeleteResetToken(ctx, token.ID); err != nil {
			s.logger.Warn("failed to delete expired reset token", zap.Int64("token_id", token.ID), zap.Error(err))
		}
		return VerifyOTPResponse{}, usererrors.ErrInvalidOTP
	}

	// Token sekali pakai.
	if err := s.repo.DeleteResetToken(ctx, token.ID); err != nil {
		s.logger.Warn("failed to delete used reset token", zap.Int64("token_id", token.ID), zap.Error(err))
	}

	return VerifyOTPResponse{Valid: true, Message: "OTP is valid."}, nil
}

func (s *service) UpdatePassword(ctx context.Context, email, newPassword string) (string, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", mapRepositoryError(err)
	}

	if !ValidatePasswordComplexity(newPassword) {
		return "", usererrors.ErrWeakPassword
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(newPassword)) == nil {
		return "", usererrors.ErrSamePassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeInternalError, "Failed to hash password", 500)
	}

	now := time.Now()
	u.PasswordHash = string(hashed)
	u.ModifiedOn = &now
	u.FailedLoginAttempts = 0
	u.LockoutEnd = nil
	if err := s.repo.Update(ctx, u); err != nil {
		return "", mapRepositoryError(err)
	}

	if err := s.mailer.SendPasswordResetConfirmation(ctx, u.Email); err != nil {
		s.logger.Error("failed to send password change confirmation", zap.String("email", u.Email), zap.Error(err))
	}

	return "Password updated successfully.", nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	email := strings.TrimSpace(req.Email)
	if !ValidateCompanyEmail(email) {
		return UserResponse{}, usererrors.ErrInvalidEmailDomain
	}
	if !ValidatePasswordComplexity(req.Password) {
		return UserResponse{}, usererrors.ErrWeakPassword
	}

	exists, err := s.repo.ExistsByEmail(ctx, email, uuid.Nil)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	if exists {
		return UserResponse{}, usererrors.ErrEmailAlreadyRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to hash password", 500)
	}

	u := &User{
		ID:           uuid.New(),
		UserName:     strings.TrimSpace(req.UserName),
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		CreatedOn:    time.Now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, mapToResponse(&users[i]))
	}
	return responses, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, apperror.InvalidField("id")
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, apperror.InvalidField("id")
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	email := strings.TrimSpace(req.Email)
	if !ValidateCompanyEmail(email) {
		return UserResponse{}, usererrors.ErrInvalidEmailDomain
	}

	exists, err := s.repo.ExistsByEmail(ctx, email, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	if exists {
		return UserResponse{}, usererrors.ErrEmailAlreadyRegistered
	}

	u.UserName = strings.TrimSpace(req.UserName)
	u.Email = email
	u.FirstName = strings.TrimSpace(req.FirstName)
	u.LastName = strings.TrimSpace(req.LastName)

	if req.Password != "" {
		if !ValidatePasswordComplexity(req.Password) {
			return UserResponse{}, usererrors.ErrWeakPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return UserResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to hash password", 500)
		}
		u.PasswordHash = string(hashed)
	}

	now := time.Now()
	u.ModifiedOn = &now
	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(u), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return apperror.InvalidField("id")
	}
	return mapRepositoryError(s.repo.Delete(ctx, userID))
}

func (s *service) generateToken(u *User, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"email":   u.Email,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// generateOTP mengambil 4 digit dari crypto/rand, dipad dengan nol.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

func mapToResponse(u *User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		UserName:  u.UserName,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedOn: u.CreatedOn.Format(time.RFC3339),
	}
	if u.ModifiedOn != nil {
		resp.ModifiedOn = u.ModifiedOn.Format(time.RFC3339)
	}
	return resp
}
