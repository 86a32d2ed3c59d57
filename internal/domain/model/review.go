package model

import "time"

// 関心表明に対するレビュー。1関心につき1件まで
type Review struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	InterestID int64     `gorm:"not null;uniqueIndex" json:"interest_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
}
