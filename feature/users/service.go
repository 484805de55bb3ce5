package users

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles the operator allow list.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Add grants a user access. Adding an already allowed user is a no-op and
// the returned bool reports whether a new row was created.
func (s *Service) Add(ctx context.Context, userID int64, username string, isOwner bool) (bool, error) {
	user := AllowedUser{UserID: userID, Username: username, IsOwner: isOwner}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&user)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Remove revokes a user's access. The returned bool reports whether a row
// was deleted.
func (s *Service) Remove(ctx context.Context, userID int64) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&AllowedUser{}, "user_id = ?", userID)
	return res.RowsAffected > 0, res.Error
}

// List returns all allowed users, newest grant first.
func (s *Service) List(ctx context.Context) ([]AllowedUser, error) {
	var list []AllowedUser
	err := s.db.WithContext(ctx).
		Order("added_at DESC, user_id DESC").
		Find(&list).Error
	return list, err
}

// IsAllowed checks whether a user is on the allow list.
func (s *Service) IsAllowed(ctx context.Context, userID int64) (bool, error) {
	var user AllowedUser
	err := s.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
