package model

import "time"

// UnitPriceSnapshotは注文時点の単価。
// 後からカタログ価格が変わっても過去の注文金額は変わらない。
type OrderItem struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64     `gorm:"not null;index" json:"order_id"`
	MerchandiseID     int64     `gorm:"not null;index" json:"merchandise_id"`
	Quantity          int64     `gorm:"not null" json:"quantity"`
	UnitPriceSnapshot int64     `gorm:"not null" json:"unit_price_snapshot"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
