package repository

import (
	"context"
	"time"

	"hospital-website-backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindUserByUsername finds a user by username
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindUserByID finds a user by ID
func (r *UserRepository) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UsernameExists reports whether username is taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// EmailExists reports whether another user already uses email
func (r *UserRepository) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// SuperuserExists reports whether any superuser account exists
func (r *UserRepository) SuperuserExists(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("is_superuser = ?", true).Count(&count).Error
	return count > 0, err
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return duplicate(r.db.WithContext(ctx).Create(user).Error)
}

// SaveUser persists every field of user
func (r *UserRepository) SaveUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// UpdateLastLogin stamps the last successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_login", at).Error
}

// CreateSession creates a new session
func (r *UserRepository) CreateSession(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindActiveSession finds an unrevoked, unexpired session by token hash
func (r *UserRepository) FindActiveSession(ctx context.Context, hash string, now time.Time) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND revoked = ? AND expires_at > ?", hash, false, now).
		Preload("User").
		First(&session).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &session, nil
}

// TouchSession slides the session expiry forward
func (r *UserRepository) TouchSession(ctx context.Context, id uint, seenAt, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_seen_at": seenAt,
			"expires_at":   expiresAt,
		}).Error
}

// RevokeSessionByHash marks a session as revoked by its token hash
func (r *UserRepository) RevokeSessionByHash(ctx context.Context, hash string) error {
	return r.db.WithContext(ctx).Model(&models.Session{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}

// RevokeOtherSessions revokes every session of a user except keepID
func (r *UserRepository) RevokeOtherSessions(ctx context.Context, userID, keepID uint) error {
	return r.db.WithContext(ctx).Model(&models.Session{}).
		Where("user_id = ? AND id <> ?", userID, keepID).
		Update("revoked", true).Error
}

// DeleteStaleSessions removes expired or revoked sessions
func (r *UserRepository) DeleteStaleSessions(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ? OR revoked = ?", now, true).
		Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
