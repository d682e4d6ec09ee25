package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/limits"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SpendingLimitModel is the persistence model for spending limits. The
// composite unique index enforces at most one limit per (user, scope,
// period, category); period fields not used by a scope stay at their zero
// values so the index still applies.
type SpendingLimitModel struct {
	BaseModel
	UserID   uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_limit_period"`
	Scope    string          `gorm:"size:16;not null;uniqueIndex:idx_limit_period"`
	Amount   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Category string          `gorm:"size:255;not null;uniqueIndex:idx_limit_period"`
	Month    int             `gorm:"not null;uniqueIndex:idx_limit_period"`
	Year     int             `gorm:"not null;uniqueIndex:idx_limit_period"`
	Week     int             `gorm:"not null;uniqueIndex:idx_limit_period"`
	Day      time.Time       `gorm:"not null;uniqueIndex:idx_limit_period"`
}

// TableName specifies the table name
func (SpendingLimitModel) TableName() string { return "spending_limits" }

// ToDomain converts SpendingLimitModel to domain Limit
func (m *SpendingLimitModel) ToDomain() *limits.Limit {
	return &limits.Limit{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Scope:      limits.Scope(m.Scope),
		Amount:     m.Amount,
		Category:   m.Category,
		Month:      m.Month,
		Year:       m.Year,
		Week:       m.Week,
		Day:        m.Day,
	}
}

// SpendingLimitModelFromDomain creates a SpendingLimitModel from domain Limit
func SpendingLimitModelFromDomain(l *limits.Limit) *SpendingLimitModel {
	m := &SpendingLimitModel{
		UserID:   l.UserID,
		Scope:    string(l.Scope),
		Amount:   l.Amount,
		Category: l.Category,
		Month:    l.Month,
		Year:     l.Year,
		Week:     l.Week,
		Day:      l.Day,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}
