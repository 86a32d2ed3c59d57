package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// UserIDとGuestEmailはどちらか一方のみ（ゲスト注文はemailだけ持つ）。
// 注文は削除しない。HiddenFromUserは本人の一覧から隠すだけ。
type Order struct {
	ID             int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         *int64      `gorm:"index" json:"user_id"`
	GuestEmail     string      `gorm:"type:varchar(120)" json:"guest_email,omitempty"`
	Status         OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Amount         int64       `gorm:"not null" json:"amount"`
	HiddenFromUser bool        `gorm:"not null;default:false" json:"hidden_from_user"`
	CreatedAt      time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
