package tasks

// Task is a monitoring assignment: a labelled set of target chats owned by
// an operator. TargetIDs is stored as a JSON array.
type Task struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Label     string `gorm:"column:label" json:"label"`
	OwnerID   int64  `gorm:"column:owner_id" json:"owner_id"`
	TargetIDs string `gorm:"column:target_ids" json:"-"`
	IsActive  bool   `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt int64  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides the table name.
func (Task) TableName() string {
	return "monitor_tasks"
}

// View is a task with its target ids decoded.
type View struct {
	ID        uint    `json:"id"`
	Label     string  `json:"label"`
	OwnerID   int64   `json:"owner_id"`
	TargetIDs []int64 `json:"target_ids"`
	IsActive  bool    `json:"is_active"`
	CreatedAt int64   `json:"created_at"`
}
