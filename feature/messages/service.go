package messages

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEmptyMessage is returned when the normalized message text is empty.
var ErrEmptyMessage = errors.New("empty message text")

// Alerter receives duplicate verdicts that warrant an alert.
type Alerter interface {
	RaiseDuplicate(ctx context.Context, chatID, messageID int64, text, hash string, info map[string]any) error
}

// Service handles message ingestion and duplicate detection.
type Service struct {
	db      *gorm.DB
	logger  *zap.Logger
	window  time.Duration
	maxLen  int
	alerter Alerter
}

// NewService creates a new message service. alerter may be nil; duplicates
// are then recorded without raising alerts.
func NewService(db *gorm.DB, logger *zap.Logger, cfg Config, alerter Alerter) *Service {
	return &Service{
		db:      db,
		logger:  logger,
		window:  cfg.Window(),
		maxLen:  cfg.MaxMessageLength,
		alerter: alerter,
	}
}

// IngestInput carries one observed chat message.
type IngestInput struct {
	ChatID      int64
	MessageID   int64
	SenderID    int64
	SenderName  string
	MessageText string
}

// Verdict is the outcome of ingesting a message.
type Verdict struct {
	IsDuplicate        bool   `json:"duplicate"`
	FirstSeenMessageID *int64 `json:"first_seen_message_id,omitempty"`
}

// Ingest records a message and determines whether an identical message was
// already seen in the same chat inside the duplicate window. The first
// occurrence is stored as first-seen; repeats are flagged and raise an alert.
func (s *Service) Ingest(ctx context.Context, in IngestInput) (*Verdict, error) {
	text := Normalize(in.MessageText)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	hash := HashText(text)
	now := time.Now()
	cutoff := now.Add(-s.window).Unix()

	msg := Message{
		ChatID:      in.ChatID,
		MessageID:   in.MessageID,
		MessageHash: hash,
		MessageText: text,
		SenderID:    in.SenderID,
		SenderName:  in.SenderName,
		Timestamp:   now.Unix(),
	}

	// The lookup and the insert must land atomically; two concurrent copies
	// of the same message could otherwise both pass the lookup and both be
	// recorded as first-seen. On sqlite the transaction holds the pool's
	// single connection for its whole duration; on mysql the locking read
	// blocks the competing insert until commit.
	var verdict Verdict
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lookup := tx.
			Where("chat_id = ? AND message_hash = ? AND ts >= ?", in.ChatID, hash, cutoff).
			Order("id ASC")
		if tx.Dialector.Name() == "mysql" {
			lookup = lookup.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var first Message
		err := lookup.First(&first).Error
		switch {
		case err == nil:
			firstSeen := first.MessageID
			msg.IsDuplicate = true
			msg.FirstSeenMessageID = &firstSeen
			verdict = Verdict{IsDuplicate: true, FirstSeenMessageID: &firstSeen}
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}
		return tx.Create(&msg).Error
	})
	if err != nil {
		return nil, err
	}

	if verdict.IsDuplicate && s.alerter != nil {
		firstSeen := *verdict.FirstSeenMessageID
		info := map[string]any{
			"sender_id":             in.SenderID,
			"sender_name":           in.SenderName,
			"first_seen_message_id": firstSeen,
		}
		if err := s.alerter.RaiseDuplicate(ctx, in.ChatID, in.MessageID, truncate(text, s.maxLen), hash, info); err != nil {
			// The message row stands; a failed alert is logged, not fatal.
			s.logger.Error("Failed to raise duplicate alert",
				zap.Int64("chat_id", in.ChatID),
				zap.Int64("message_id", in.MessageID),
				zap.Error(err))
		} else {
			s.logger.Info("Duplicate detected",
				zap.Int64("chat_id", in.ChatID),
				zap.Int64("message_id", in.MessageID),
				zap.Int64("first_seen_message_id", firstSeen))
		}
	}

	return &verdict, nil
}

// Stats summarizes the message store.
type Stats struct {
	Total      int64 `json:"total"`
	Duplicates int64 `json:"duplicates"`
	Chats      int64 `json:"chats"`
}

// Stats returns counters over the stored messages.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	db := s.db.WithContext(ctx).Model(&Message{})
	if err := db.Count(&st.Total).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&Message{}).Where("is_duplicate = ?", true).Count(&st.Duplicates).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&Message{}).Distinct("chat_id").Count(&st.Chats).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// Prune deletes messages observed before the cutoff and returns how many
// rows were removed.
func (s *Service) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("ts < ?", cutoff.Unix()).
		Delete(&Message{})
	return res.RowsAffected, res.Error
}

// Window returns the configured duplicate window.
func (s *Service) Window() time.Duration {
	return s.window
}

// truncate caps text at max characters. Cutting on a rune boundary keeps
// the result valid UTF-8, which the Bot API requires downstream.
func truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
