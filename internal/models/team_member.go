package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamMember 团队成员表
type TeamMember struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`                // 主键（UUID）
	Name        string      `gorm:"not null" json:"name"`                        // 姓名
	Title       string      `gorm:"not null" json:"role"`                        // 职位
	Bio         string      `gorm:"type:text" json:"bio"`                        // 简介
	AvatarURL   string      `json:"avatarUrl"`                                   // 头像地址
	Email       string      `json:"email"`                                      // 邮箱
	GithubURL   string      `json:"githubUrl"`                                   // GitHub 主页
	LinkedinURL string      `json:"linkedinUrl"`                                 // LinkedIn 主页
	Skills      StringArray `gorm:"type:json" json:"skills"`                     // 技能标签
	SortOrder   int         `gorm:"not null;default:0;index" json:"sortOrder"`   // 展示顺序
	IsActive    bool        `gorm:"not null;default:true;index" json:"isActive"` // 是否展示
	CreatedAt   time.Time   `gorm:"index" json:"createdAt"`                      // 创建时间
	UpdatedAt   time.Time   `json:"updatedAt"`                                   // 更新时间
}

// TableName 指定表名
func (TeamMember) TableName() string {
	return "team_members"
}

// BeforeCreate 创建时生成 UUID 主键
func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
