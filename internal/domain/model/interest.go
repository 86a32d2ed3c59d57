package model

import "time"

type InterestKind string

const (
	InterestKindBuying        InterestKind = "buying"
	InterestKindHiring        InterestKind = "hiring"
	InterestKindCollaboration InterestKind = "collaboration"
)

// クライアント/学生からプロジェクトへの関心表明。
// 同じユーザーが同じプロジェクトに出せるのは1件だけ
type Interest struct {
	ID           int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID    int64        `gorm:"not null;index;uniqueIndex:uq_interest_user_project" json:"project_id"`
	UserID       int64        `gorm:"not null;index;uniqueIndex:uq_interest_user_project" json:"user_id"`
	InterestedIn InterestKind `gorm:"type:varchar(50);not null" json:"interested_in"`
	Message      string       `gorm:"type:text;not null" json:"message"`
	CreatedAt    time.Time    `gorm:"not null;index" json:"created_at"`
}
