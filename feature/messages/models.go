package messages

// Message is a single monitored chat message. The (chat_id, message_hash)
// index backs the duplicate lookup.
type Message struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	ChatID             int64  `gorm:"column:chat_id;index:idx_messages_hash_chat,priority:1" json:"chat_id"`
	MessageID          int64  `gorm:"column:message_id" json:"message_id"`
	MessageHash        string `gorm:"column:message_hash;index:idx_messages_hash_chat,priority:2" json:"message_hash"`
	MessageText        string `gorm:"column:message_text" json:"message_text"`
	SenderID           int64  `gorm:"column:sender_id" json:"sender_id"`
	SenderName         string `gorm:"column:sender_name" json:"sender_name"`
	Timestamp          int64  `gorm:"column:ts" json:"ts"`
	IsDuplicate        bool   `gorm:"column:is_duplicate" json:"is_duplicate"`
	FirstSeenMessageID *int64 `gorm:"column:first_seen_message_id" json:"first_seen_message_id,omitempty"`
}

// TableName overrides the table name.
func (Message) TableName() string {
	return "messages"
}
