package models

import "time"

// AccountIndex maps an email to the single store that owns it. The unique
// email key is what enforces "one email, one role" across the three account
// tables; index rows are written in the same transaction as account creation,
// so two concurrent first sign-ins cannot end up in different stores.
type AccountIndex struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;type:varchar(200)" json:"email"`
	Role      Role      `gorm:"type:varchar(20)" json:"role"`
	AccountID uint      `gorm:"index" json:"account_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
