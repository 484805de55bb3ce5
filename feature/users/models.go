package users

// AllowedUser is an operator permitted to manage the monitor.
type AllowedUser struct {
	UserID   int64  `gorm:"column:user_id;primaryKey" json:"user_id"`
	Username string `gorm:"column:username" json:"username"`
	IsOwner  bool   `gorm:"column:is_owner;default:false" json:"is_owner"`
	AddedAt  int64  `gorm:"column:added_at;autoCreateTime" json:"added_at"`
}

// TableName overrides the table name.
func (AllowedUser) TableName() string {
	return "allowed_users"
}
