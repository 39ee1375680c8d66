package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"blogapp_backend/internal/auth"
	"blogapp_backend/internal/config"
	"blogapp_backend/internal/email"
	"blogapp_backend/internal/logger"
	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/services/dto"
	"blogapp_backend/pkg/apperrors"
)

type AuthService interface {
	Signup(req *dto.SignupRequest) (*dto.MessageResponse, error)
	Verify(userID, token string) (*dto.MessageResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	ForgotPassword(req *dto.ForgotPasswordRequest) (*dto.MessageResponse, error)
	ResetPassword(req *dto.ResetPasswordRequest) (*dto.MessageResponse, error)
	Signout(userID string) (*dto.MessageResponse, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	cfg           *config.Config
}

func NewAuthService(
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	cfg *config.Config,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		emailProvider: emailProvider,
		cfg:           cfg,
	}
}

// Signup - регистрация нового пользователя.
// Аккаунт создается неподтвержденным, на почту уходит ссылка верификации.
func (s *AuthServiceImpl) Signup(req *dto.SignupRequest) (*dto.MessageResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     username,
		Email:        emailAddr,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	verifyTTL := time.Duration(s.cfg.JWT.VerifyTTLMinutes) * time.Minute
	token, err := auth.GenerateToken(user.ID, false, verifyTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	verifyURL := fmt.Sprintf("%s/api/v1/verify/%s/%s", s.cfg.Server.BaseURL, user.ID, token)

	// Сбой почты не откатывает регистрацию: аккаунт уже создан,
	// пользователю остается запросить письмо повторно.
	if err := s.emailProvider.SendVerification(user.Email, user.Username, verifyURL); err != nil {
		logger.GetLogger().Error("failed to send verification email",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()))
		return nil, apperrors.ErrUpstream(err, "email",
			"Account created, but failed to send verification email. Please contact support or try again later.")
	}

	return &dto.MessageResponse{
		Message: "Account created! Check your email to verify your account.",
	}, nil
}

// Verify - подтверждение email по ссылке из письма.
// Токен должен быть выписан на того же пользователя, чей id в ссылке.
func (s *AuthServiceImpl) Verify(userID, token string) (*dto.MessageResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if user.IsVerified {
		return &dto.MessageResponse{Message: "Account already verified."}, nil
	}

	// Просроченная или чужая ссылка не роняет поток: пользователю
	// уходит новое письмо с новой ссылкой.
	claims, err := auth.ParseToken(token)
	if err != nil || claims.UserID != userID {
		verifyTTL := time.Duration(s.cfg.JWT.VerifyTTLMinutes) * time.Minute
		newToken, genErr := auth.GenerateToken(user.ID, false, verifyTTL)
		if genErr != nil {
			return nil, apperrors.InternalError(genErr)
		}

		verifyURL := fmt.Sprintf("%s/api/v1/verify/%s/%s", s.cfg.Server.BaseURL, user.ID, newToken)
		if sendErr := s.emailProvider.SendVerification(user.Email, user.Username, verifyURL); sendErr != nil {
			logger.GetLogger().Error("failed to resend verification email",
				slog.String("user_id", user.ID),
				slog.String("error", sendErr.Error()))
			return nil, apperrors.ErrUpstream(sendErr, "email", "Failed to send verification email")
		}

		return &dto.MessageResponse{
			Message: "Verification link has expired. A new link has been sent to your email.",
		}, nil
	}

	if err := s.userRepo.SetVerified(user.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.MessageResponse{Message: "Account verified successfully!"}, nil
}

// Login - вход по email и паролю, только для подтвержденных аккаунтов
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotRegistered
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrIncorrectPassword
	}

	if !user.IsVerified {
		return nil, apperrors.ErrUserNotVerified
	}

	sessionTTL := time.Duration(s.cfg.JWT.SessionTTLHours) * time.Hour
	token, err := auth.GenerateToken(user.ID, user.IsAdmin, sessionTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

// ForgotPassword - выпуск токена сброса и отправка ссылки на почту.
// Повторный запрос перезаписывает предыдущий токен.
func (s *AuthServiceImpl) ForgotPassword(req *dto.ForgotPasswordRequest) (*dto.MessageResponse, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotRegistered
		}
		return nil, apperrors.InternalError(err)
	}

	resetTTL := time.Duration(s.cfg.JWT.ResetTTLMinutes) * time.Minute
	token, err := auth.GenerateToken(user.ID, false, resetTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateResetToken(user.ID, token); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.Server.BaseURL, token)

	if err := s.emailProvider.SendPasswordReset(user.Email, user.Username, resetURL); err != nil {
		logger.GetLogger().Error("failed to send password reset email",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()))
		return nil, apperrors.ErrUpstream(err, "email", "Failed to send password reset email")
	}

	return &dto.MessageResponse{
		Message: "Password reset link sent to your email.",
	}, nil
}

// ResetPassword - установка нового пароля по токену из письма.
// Токен одноразовый: после успешного сброса он затирается.
func (s *AuthServiceImpl) ResetPassword(req *dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ErrPasswordsDoNotMatch
	}

	// Токен должен совпадать с сохраненным: старые ссылки и уже
	// использованные токены сюда не проходят.
	user, err := s.userRepo.FindByResetToken(req.Token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNoResetToken
		}
		return nil, apperrors.InternalError(err)
	}

	claims, err := auth.ParseToken(req.Token)
	if err != nil || claims.UserID != user.ID {
		return nil, apperrors.ErrResetLinkExpired
	}

	if auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrPreviousPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateResetToken(user.ID, ""); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.MessageResponse{Message: "Password reset successfully!"}, nil
}

// Signout затирает сохраненный на пользователе токен. Сессионный JWT
// остается валидным до истечения, но висящих маркеров сброса после
// выхода не остается.
func (s *AuthServiceImpl) Signout(userID string) (*dto.MessageResponse, error) {
	if err := s.userRepo.UpdateResetToken(userID, ""); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.MessageResponse{Message: "Signed out successfully"}, nil
}
