package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospital-website-backend/internal/models"
	"hospital-website-backend/internal/repository"
	"hospital-website-backend/internal/security"
	"hospital-website-backend/pkg/utils"
)

type AuthService struct {
	userRepo   *repository.UserRepository
	guard      *security.LoginGuard
	auditor    *security.Auditor
	sessionAge time.Duration
	now        func() time.Time
}

func NewAuthService(
	userRepo *repository.UserRepository,
	guard *security.LoginGuard,
	auditor *security.Auditor,
	sessionAge time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		guard:      guard,
		auditor:    auditor,
		sessionAge: sessionAge,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// RegisterInput is the data needed to create a regular account
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginResult is a signed-in user and the raw session token for the cookie
type LoginResult struct {
	User    *models.User
	Token   string
	Session *models.Session
}

// Register creates a new non-staff account
func (s *AuthService) Register(ctx context.Context, in RegisterInput, clientIP string) (*models.User, error) {
	user, err := s.createUser(ctx, in, false)
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, security.Event{
		Action:   security.ActionRegister,
		ClientIP: clientIP,
		UserID:   &user.ID,
		Details:  fmt.Sprintf("New user registered: %s", user.Username),
	})
	return user, nil
}

// Login authenticates a user and opens a session
// A locked-out IP is refused before credentials are checked
func (s *AuthService) Login(ctx context.Context, username, password, clientIP, userAgent string) (*LoginResult, error) {
	if s.guard.IsLockedOut(ctx, clientIP) {
		s.auditor.Record(ctx, security.Event{
			Action:   security.ActionLockedAttempt,
			ClientIP: clientIP,
			Details:  fmt.Sprintf("Login attempt from locked out IP: %s", clientIP),
			Warning:  true,
		})
		return nil, ErrLockedOut
	}

	// Find user by username
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	// Compare password
	if user == nil || !utils.ComparePassword(user.PasswordHash, password) {
		s.guard.RecordFailure(ctx, clientIP)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.auditor.Record(ctx, security.Event{
			Action:   security.ActionLoginFailed,
			ClientIP: clientIP,
			UserID:   &user.ID,
			Details:  fmt.Sprintf("Login attempt for inactive user: %s", user.Username),
			Warning:  true,
		})
		return nil, ErrAccountDisabled
	}

	token, session, err := s.openSession(ctx, user, clientIP, userAgent)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLogin = &now

	s.guard.Clear(ctx, clientIP)
	s.auditor.Record(ctx, security.Event{
		Action:   security.ActionLoginSuccess,
		ClientIP: clientIP,
		UserID:   &user.ID,
		Details:  fmt.Sprintf("Successful login: %s", user.Username),
	})

	return &LoginResult{User: user, Token: token, Session: session}, nil
}

// Authenticate resolves a session token and slides its expiry forward
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	now := s.now()
	session, err := s.userRepo.FindActiveSession(ctx, utils.HashToken(token), now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.User.IsActive {
		return nil, ErrSessionNotFound
	}

	expiresAt := now.Add(s.sessionAge)
	if err := s.userRepo.TouchSession(ctx, session.ID, now, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	session.LastSeenAt = now
	session.ExpiresAt = expiresAt

	return session, nil
}

// Logout revokes the session behind token
func (s *AuthService) Logout(ctx context.Context, token string, user *models.User, clientIP string) error {
	// Revoke the session
	if err := s.userRepo.RevokeSessionByHash(ctx, utils.HashToken(token)); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.auditor.Record(ctx, security.Event{
		Action:   security.ActionLogout,
		ClientIP: clientIP,
		UserID:   &user.ID,
		Details:  fmt.Sprintf("User logout: %s", user.Username),
	})
	return nil
}

// ProfileInput holds the editable profile fields; nil leaves a field unchanged
type ProfileInput struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UpdateProfile changes the caller's own profile
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, in ProfileInput) (*models.User, error) {
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" {
			taken, err := s.userRepo.EmailExists(ctx, email, user.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if taken {
				return nil, fieldError("email", "A user with that email already exists.")
			}
		}
		user.Email = email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the old password, stores the new one and revokes
// the user's other sessions
func (s *AuthService) ChangePassword(ctx context.Context, user *models.User, sessionID uint, oldPassword, newPassword, clientIP string) error {
	if !utils.ComparePassword(user.PasswordHash, oldPassword) {
		return fieldError("old_password", "Old password is incorrect")
	}
	if err := utils.CheckPasswordStrength(newPassword); err != nil {
		return fieldError("new_password", "New password must be at least 8 characters long and not entirely numeric")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save password: %w", err)
	}
	if err := s.userRepo.RevokeOtherSessions(ctx, user.ID, sessionID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	s.auditor.Record(ctx, security.Event{
		Action:   security.ActionPasswordChange,
		ClientIP: clientIP,
		UserID:   &user.ID,
		Details:  fmt.Sprintf("Password changed: %s", user.Username),
	})
	return nil
}

// CreateAdmin bootstraps the first superuser; refused once one exists
func (s *AuthService) CreateAdmin(ctx context.Context, in RegisterInput, clientIP string) (*models.User, error) {
	exists, err := s.userRepo.SuperuserExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check superusers: %w", err)
	}
	if exists {
		return nil, ErrAdminExists
	}

	user, err := s.CreateSuperuser(ctx, in)
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, security.Event{
		Action:   security.ActionAdminCreated,
		ClientIP: clientIP,
		UserID:   &user.ID,
		Details:  fmt.Sprintf("Admin user created: %s", user.Username),
		Warning:  true,
	})
	return user, nil
}

// CreateSuperuser creates a staff superuser unconditionally
func (s *AuthService) CreateSuperuser(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.createUser(ctx, in, true)
}

func (s *AuthService) createUser(ctx context.Context, in RegisterInput, superuser bool) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	// Check if username already exists
	taken, err := s.userRepo.UsernameExists(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, fieldError("username", "A user with that username already exists.")
	}

	if in.Email != "" {
		taken, err = s.userRepo.EmailExists(ctx, in.Email, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, fieldError("email", "A user with that email already exists.")
		}
	}

	if err := utils.CheckPasswordStrength(in.Password); err != nil {
		return nil, fieldError("password", "This password is too short or entirely numeric. It must contain at least 8 characters.")
	}

	// Hash the password
	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) openSession(ctx context.Context, user *models.User, clientIP, userAgent string) (string, *models.Session, error) {
	token := utils.GenerateSessionToken()
	now := s.now()

	if len(userAgent) > 255 {
		userAgent = userAgent[:255]
	}
	session := &models.Session{
		UserID:     user.ID,
		TokenHash:  utils.HashToken(token),
		ClientIP:   clientIP,
		UserAgent:  userAgent,
		ExpiresAt:  now.Add(s.sessionAge),
		LastSeenAt: now,
	}
	if err := s.userRepo.CreateSession(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}
	return token, session, nil
}
