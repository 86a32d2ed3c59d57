package model

import "time"

type ModerationAction string

const (
	ModerationActionApprove  ModerationAction = "APPROVE"
	ModerationActionReject   ModerationAction = "REJECT"
	ModerationActionResubmit ModerationAction = "RESUBMIT"
	ModerationActionFeature  ModerationAction = "FEATURE"
)

// 審査ログ（管理者操作ログ）。
// 「どの管理者が」「どのプロジェクトを」「どう遷移させたか」を残す。
type ModerationLog struct {
	ID          int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminUserID int64            `gorm:"not null;index" json:"admin_user_id"`
	ProjectID   int64            `gorm:"not null;index" json:"project_id"`
	Action      ModerationAction `gorm:"type:varchar(20);not null;index" json:"action"`
	FromStatus  ProjectStatus    `gorm:"type:varchar(20);not null" json:"from_status"`
	ToStatus    ProjectStatus    `gorm:"type:varchar(20);not null" json:"to_status"`
	Reason      string           `gorm:"type:text" json:"reason"`
	CreatedAt   time.Time        `gorm:"not null;index" json:"created_at"`
}
