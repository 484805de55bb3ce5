package alerts

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 50

// Publisher fans newly created alert ids out to a work queue.
type Publisher interface {
	Publish(ctx context.Context, alertID string) error
}

// Service handles the alert lifecycle.
type Service struct {
	db        *gorm.DB
	logger    *zap.Logger
	publisher Publisher
}

// NewService creates a new alert service. publisher may be nil when no queue
// is configured; the notifier then falls back to polling.
func NewService(db *gorm.DB, logger *zap.Logger, publisher Publisher) *Service {
	return &Service{
		db:        db,
		logger:    logger,
		publisher: publisher,
	}
}

// AddInput carries the fields of a new alert.
type AddInput struct {
	AlertUUID   string
	ChatID      int64
	MessageID   int64
	MessageText string
	MessageHash string
	MonitorInfo map[string]any
}

// Add creates a pending alert. A missing uuid is generated.
func (s *Service) Add(ctx context.Context, in AddInput) (*Alert, error) {
	alertUUID := in.AlertUUID
	if alertUUID == "" {
		alertUUID = uuid.NewString()
	}

	info := in.MonitorInfo
	if info == nil {
		info = map[string]any{}
	}
	monitorJSON, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}

	alert := Alert{
		AlertUUID:   alertUUID,
		ChatID:      in.ChatID,
		MessageID:   in.MessageID,
		MessageText: in.MessageText,
		MessageHash: in.MessageHash,
		MonitorInfo: string(monitorJSON),
		Status:      StatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&alert).Error; err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, strconv.FormatUint(uint64(alert.ID), 10)); err != nil {
			// The alert is persisted either way; the notifier's poll loop
			// picks it up if the queue is down.
			s.logger.Warn("Failed to publish alert to queue",
				zap.Uint("alert_id", alert.ID), zap.Error(err))
		}
	}

	return &alert, nil
}

// RaiseDuplicate creates an alert for a detected duplicate message.
// It satisfies the messages feature's Alerter interface.
func (s *Service) RaiseDuplicate(ctx context.Context, chatID, messageID int64, text, hash string, info map[string]any) error {
	_, err := s.Add(ctx, AddInput{
		ChatID:      chatID,
		MessageID:   messageID,
		MessageText: text,
		MessageHash: hash,
		MonitorInfo: info,
	})
	return err
}

// Get returns a single alert by id.
func (s *Service) Get(ctx context.Context, id uint) (*Alert, error) {
	var alert Alert
	if err := s.db.WithContext(ctx).First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// Pending lists pending alerts, oldest first.
func (s *Service) Pending(ctx context.Context, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []Alert
	err := s.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkReplied stores the operator's reply. Only pending alerts transition;
// the returned bool reports whether the update applied.
func (s *Service) MarkReplied(ctx context.Context, id uint, replyText string) (bool, error) {
	now := time.Now().Unix()
	res := s.db.WithContext(ctx).
		Model(&Alert{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":     StatusReplied,
			"reply_text": replyText,
			"replied_at": now,
		})
	return res.RowsAffected > 0, res.Error
}

// Replied lists replied alerts awaiting delivery, oldest reply first.
func (s *Service) Replied(ctx context.Context, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []Alert
	err := s.db.WithContext(ctx).
		Where("status = ?", StatusReplied).
		Order("replied_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkDelivered finishes the alert lifecycle. Only replied alerts transition.
func (s *Service) MarkDelivered(ctx context.Context, id uint) (bool, error) {
	now := time.Now().Unix()
	res := s.db.WithContext(ctx).
		Model(&Alert{}).
		Where("id = ? AND status = ?", id, StatusReplied).
		Updates(map[string]any{
			"status":       StatusDelivered,
			"delivered_at": now,
		})
	return res.RowsAffected > 0, res.Error
}

// Counts returns the number of alerts per status.
func (s *Service) Counts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := s.db.WithContext(ctx).
		Model(&Alert{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

// Recent lists the most recently created alerts.
func (s *Service) Recent(ctx context.Context, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []Alert
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
