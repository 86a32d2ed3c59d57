package model

import "time"

type ProjectStatus string

const (
	ProjectStatusPending  ProjectStatus = "pending"
	ProjectStatusApproved ProjectStatus = "approved"
	ProjectStatusRejected ProjectStatus = "rejected"
)

// 学生が投稿するプロジェクト（審査対象のリスティング）
type Project struct {
	ID              int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID      int64         `gorm:"not null;index" json:"category_id"`
	OwnerUserID     int64         `gorm:"not null;index" json:"owner_user_id"`
	Title           string        `gorm:"type:varchar(100);not null" json:"title"`
	Description     string        `gorm:"type:text" json:"description"`
	TechStack       string        `gorm:"type:varchar(255)" json:"tech_stack"`
	GithubLink      string        `gorm:"type:varchar(255)" json:"github_link"`
	DemoLink        string        `gorm:"type:varchar(255)" json:"demo_link"`
	IsForSale       bool          `gorm:"not null;default:false" json:"is_for_sale"`
	Status          ProjectStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Featured        bool          `gorm:"not null;default:false" json:"featured"`
	RejectionReason string        `gorm:"type:text" json:"rejection_reason"`
	ReviewedBy      *int64        `gorm:"index" json:"reviewed_by"`
	Views           int64         `gorm:"not null;default:0" json:"views"`
	ThumbnailURL    string        `gorm:"type:varchar(500)" json:"thumbnail_url"`
	CreatedAt       time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
