package tasks

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles monitor task management.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new task service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Add creates an active monitoring task.
func (s *Service) Add(ctx context.Context, label string, ownerID int64, targetIDs []int64) (*Task, error) {
	if targetIDs == nil {
		targetIDs = []int64{}
	}
	encoded, err := json.Marshal(targetIDs)
	if err != nil {
		return nil, err
	}
	task := Task{
		Label:     label,
		OwnerID:   ownerID,
		TargetIDs: string(encoded),
		IsActive:  true,
	}
	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Active lists active tasks, newest first, with target ids decoded.
// Malformed target data decodes to an empty list rather than failing the listing.
func (s *Service) Active(ctx context.Context) ([]View, error) {
	var rows []Task
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(rows))
	for _, r := range rows {
		var targets []int64
		if err := json.Unmarshal([]byte(r.TargetIDs), &targets); err != nil {
			s.logger.Warn("Malformed task target ids", zap.Uint("task_id", r.ID))
			targets = []int64{}
		}
		views = append(views, View{
			ID:        r.ID,
			Label:     r.Label,
			OwnerID:   r.OwnerID,
			TargetIDs: targets,
			IsActive:  r.IsActive,
			CreatedAt: r.CreatedAt,
		})
	}
	return views, nil
}

// Remove deletes a task by id. The returned bool reports whether a row was deleted.
func (s *Service) Remove(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&Task{}, id)
	return res.RowsAffected > 0, res.Error
}
