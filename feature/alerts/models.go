package alerts

// Alert status lifecycle. Transitions are one-way:
// pending -> replied -> delivered.
const (
	StatusPending   = "pending"
	StatusReplied   = "replied"
	StatusDelivered = "delivered"
)

// Alert records a detected duplicate message awaiting a human reply.
type Alert struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	AlertUUID   string `gorm:"column:alert_uuid" json:"alert_uuid"`
	CreatedAt   int64  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ChatID      int64  `gorm:"column:chat_id" json:"chat_id"`
	MessageID   int64  `gorm:"column:message_id" json:"message_id"`
	MessageText string `gorm:"column:message_text" json:"message_text"`
	MessageHash string `gorm:"column:message_hash" json:"message_hash"`
	MonitorInfo string `gorm:"column:monitor_info" json:"monitor_info"`
	Status      string `gorm:"column:status;index;default:pending" json:"status"`
	ReplyText   string `gorm:"column:reply_text" json:"reply_text"`
	RepliedAt   *int64 `gorm:"column:replied_at" json:"replied_at,omitempty"`
	DeliveredAt *int64 `gorm:"column:delivered_at" json:"delivered_at,omitempty"`
}

// TableName overrides the table name.
func (Alert) TableName() string {
	return "alerts"
}
