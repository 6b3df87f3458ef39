// Package model holds the GORM persistence models. They mirror the tables
// created by the goose migrations and never leave the infra layer.
package model

import "time"

// AccountModel mirrors the 'accounts' table.
type AccountModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Email        *string `gorm:"type:varchar(255)"`
	Login        *string `gorm:"type:varchar(255)"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	IsActive     bool    `gorm:"not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// TokenBlacklistModel mirrors the 'jwt_blacklist' table. Revocation is not
// enforced yet; the table is kept so the schema matches deployed databases.
type TokenBlacklistModel struct {
	ID  int64  `gorm:"primaryKey;autoIncrement"`
	Key string `gorm:"type:varchar(512);not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (TokenBlacklistModel) TableName() string {
	return "jwt_blacklist"
}
