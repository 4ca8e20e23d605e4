package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"social-service/internal/models"
	"social-service/internal/repository"
	"social-service/pkg/apperrors"
)

const (
	verificationTTL  = 24 * time.Hour
	passwordResetTTL = 10 * time.Minute
)

type AuthService struct {
	users    repository.UserRepository
	tokens   repository.TokenRepository
	notifier Notifier

	jwtSecret string
	jwtExpire time.Duration
	baseURL   string
}

func NewAuthService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	notifier Notifier,
	jwtSecret string,
	jwtExpire time.Duration,
	baseURL string,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		jwtExpire: jwtExpire,
		baseURL:   baseURL,
	}
}

// Register creates the account and mails a verification link. The raw token
// only lives in the link; the stored copy is hashed.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.Validationf("Email Address already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.PopulatedFriends = []models.UserSummary{}

	rawToken := uuid.NewString() + user.ID.Hex()
	hashedToken, err := bcrypt.GenerateFromPassword([]byte(rawToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash verification token: %w", err)
	}
	if err := s.tokens.CreateVerification(ctx, &models.Verification{
		UserID:    user.ID,
		Token:     string(hashedToken),
		ExpiresAt: time.Now().UTC().Add(verificationTTL),
	}); err != nil {
		return nil, fmt.Errorf("create verification: %w", err)
	}

	link := fmt.Sprintf("%s/api/v1/users/verify/%s/%s", s.baseURL, user.ID.Hex(), rawToken)
	if err := s.notifier.SendEmail(ctx, EmailJob{
		To:       user.Email,
		Subject:  "Email Verification",
		Template: "verify-email",
		Link:     link,
	}); err != nil {
		slog.Warn("verification email publish failed", "email", user.Email, "error", err)
	}

	return user, nil
}

// Login checks credentials and issues a signed token. Every failure mode
// collapses to the same generic auth error.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrAuth)
	}
	if !user.Verified {
		return nil, fmt.Errorf("account not verified: %w", apperrors.ErrAuth)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrAuth)
	}

	token, err := s.IssueToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	friends, err := summariesByID(ctx, s.users, user.Friends)
	if err != nil {
		return nil, err
	}
	user.PopulatedFriends = make([]models.UserSummary, 0, len(user.Friends))
	for _, fid := range user.Friends {
		if summary, ok := friends[fid.Hex()]; ok {
			user.PopulatedFriends = append(user.PopulatedFriends, summary)
		}
	}

	return &models.AuthResponse{User: user, Token: token}, nil
}

// IssueToken signs a token whose subject is the user id, valid for the
// configured expiry (one day by default).
func (s *AuthService) IssueToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(s.jwtExpire).Unix(),
	})
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyEmail consumes a verification link. An expired link deletes both the
// verification record and the never-verified account.
func (s *AuthService) VerifyEmail(ctx context.Context, userID, rawToken string) (string, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", apperrors.NotFoundf("Invalid verification link. Try again later.")
	}

	verification, err := s.tokens.FindVerification(ctx, uid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NotFoundf("Invalid verification link. Try again later.")
		}
		return "", err
	}

	if verification.ExpiresAt.Before(time.Now().UTC()) {
		if err := s.tokens.DeleteVerification(ctx, uid); err != nil {
			return "", fmt.Errorf("delete expired verification: %w", err)
		}
		if err := s.users.Delete(ctx, uid); err != nil {
			return "", fmt.Errorf("delete unverified user: %w", err)
		}
		return "", apperrors.Validationf("Verification token has expired.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(verification.Token), []byte(rawToken)); err != nil {
		return "", apperrors.Validationf("Verification failed or link is invalid")
	}

	if err := s.users.SetVerified(ctx, uid); err != nil {
		return "", err
	}
	if err := s.tokens.DeleteVerification(ctx, uid); err != nil {
		return "", fmt.Errorf("delete verification: %w", err)
	}
	return "Email verified successfully", nil
}

// RequestPasswordReset mails a reset link unless an unexpired one is
// already outstanding.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NotFoundf("Email address not found.")
		}
		return "", err
	}

	existing, err := s.tokens.FindPasswordResetByEmail(ctx, email)
	if err == nil {
		if existing.ExpiresAt.After(time.Now().UTC()) {
			return "Reset password link has already been sent to your email.", nil
		}
		if err := s.tokens.DeletePasswordReset(ctx, existing.UserID); err != nil {
			return "", fmt.Errorf("delete stale reset: %w", err)
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}

	rawToken := uuid.NewString() + user.ID.Hex()
	hashedToken, err := bcrypt.GenerateFromPassword([]byte(rawToken), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash reset token: %w", err)
	}
	if err := s.tokens.CreatePasswordReset(ctx, &models.PasswordReset{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     string(hashedToken),
		ExpiresAt: time.Now().UTC().Add(passwordResetTTL),
	}); err != nil {
		return "", fmt.Errorf("create password reset: %w", err)
	}

	link := fmt.Sprintf("%s/api/v1/users/reset-password/%s/%s", s.baseURL, user.ID.Hex(), rawToken)
	if err := s.notifier.SendEmail(ctx, EmailJob{
		To:       user.Email,
		Subject:  "Password Reset",
		Template: "reset-password",
		Link:     link,
	}); err != nil {
		slog.Warn("reset email publish failed", "email", user.Email, "error", err)
	}
	return "Reset password link has been sent to your email.", nil
}

// ValidateResetLink checks a reset link before the client shows the
// new-password form.
func (s *AuthService) ValidateResetLink(ctx context.Context, userID, rawToken string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperrors.Validationf("Invalid password reset link. Try again")
	}
	if _, err := s.users.FindByID(ctx, uid); err != nil {
		return apperrors.Validationf("Invalid password reset link. Try again")
	}

	reset, err := s.tokens.FindPasswordReset(ctx, uid)
	if err != nil {
		return apperrors.Validationf("Invalid password reset link. Try again")
	}
	if reset.ExpiresAt.Before(time.Now().UTC()) {
		return apperrors.Validationf("Reset Password link has expired. Please try again")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(reset.Token), []byte(rawToken)); err != nil {
		return apperrors.Validationf("Invalid reset password link. Please try again")
	}
	return nil
}

// ChangePassword updates the hash and consumes the reset record.
func (s *AuthService) ChangePassword(ctx context.Context, userID, password string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperrors.NotFoundf("User Not Found")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, uid, string(hashed)); err != nil {
		return err
	}
	if err := s.tokens.DeletePasswordReset(ctx, uid); err != nil {
		return fmt.Errorf("delete password reset: %w", err)
	}
	return nil
}
