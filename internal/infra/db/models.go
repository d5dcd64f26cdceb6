package db

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type userModel struct {
	ID             uint   `gorm:"primaryKey"`
	TelegramUserID int64  `gorm:"uniqueIndex;not null"`
	Username       string `gorm:""`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// alertModel has no DeletedAt column: deleting an alert removes the row.
type alertModel struct {
	ID             uint            `gorm:"primaryKey"`
	UserID         uint            `gorm:"index:idx_alerts_user_ticker,priority:1;not null"`
	Ticker         string          `gorm:"size:10;not null;index:idx_alerts_user_ticker,priority:2"`
	Price          decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Direction      string          `gorm:"size:5;not null"`
	Expired        *bool
	ExpirationTime *time.Time
	Triggered      bool `gorm:"not null;default:false;index"`
	TriggeredTime  *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
