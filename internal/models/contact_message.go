package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage 联系消息表
type ContactMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`              // 主键（UUID）
	Name      string    `gorm:"not null" json:"name"`                      // 访客姓名
	Email     string    `gorm:"not null;index" json:"email"`               // 访客邮箱
	Subject   string    `json:"subject"`                                   // 主题
	Message   string    `gorm:"type:text;not null" json:"message"`         // 正文
	Status    string    `gorm:"not null;default:'new';index" json:"status"` // 状态（new/read/replied/archived）
	CreatedAt time.Time `gorm:"index" json:"createdAt"`                    // 创建时间
	UpdatedAt time.Time `json:"updatedAt"`                                 // 更新时间
}

// TableName 指定表名
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// BeforeCreate 创建时生成 UUID 主键
func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
