package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage is the persisted form of a relayed chat message. Persistence is
// best-effort history; the relay itself gives no delivery guarantees.
type ChatMessage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UUID       string    `gorm:"uniqueIndex;type:varchar(36)" json:"uuid"`
	Room       string    `gorm:"index;type:varchar(100)" json:"room"`
	SenderID   uint      `json:"senderId"`
	SenderRole Role      `gorm:"type:varchar(20)" json:"senderRole"`
	SenderName string    `gorm:"type:varchar(150)" json:"senderName"`
	Body       string    `gorm:"type:text" json:"body"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate assigns the public identifier.
func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == "" {
		m.UUID = uuid.NewString()
	}
	return nil
}
