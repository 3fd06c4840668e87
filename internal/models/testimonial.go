package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Testimonial 客户评价表
type Testimonial struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`                 // 主键（UUID）
	Author    string    `gorm:"not null" json:"author"`                       // 署名
	Company   string    `json:"company"`                                      // 公司
	Title     string    `json:"role"`                                         // 职位
	Content   string    `gorm:"type:text;not null" json:"content"`            // 内容
	Rating    int       `gorm:"not null;default:5" json:"rating"`             // 评分（1-5）
	AvatarURL string    `json:"avatarUrl"`                                    // 头像地址
	Approved  bool      `gorm:"not null;default:false;index" json:"approved"` // 是否审核通过
	Featured  bool      `gorm:"not null;default:false;index" json:"featured"` // 是否精选
	CreatedAt time.Time `gorm:"index" json:"createdAt"`                       // 创建时间
	UpdatedAt time.Time `json:"updatedAt"`                                    // 更新时间
}

// TableName 指定表名
func (Testimonial) TableName() string {
	return "testimonials"
}

// BeforeCreate 创建时生成 UUID 主键
func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
