package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project 项目作品表
type Project struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`                      // 主键（UUID）
	Title        string      `gorm:"not null" json:"title"`                             // 标题
	Description  string      `gorm:"type:text" json:"description"`                      // 描述
	Category     string      `gorm:"index" json:"category"`                             // 分类（web/mobile/design/other）
	Status       string      `gorm:"not null;default:'planning';index" json:"status"`   // 状态
	ProjectSize  string      `gorm:"not null;default:'medium'" json:"projectSize"`      // 规模
	Technologies StringArray `gorm:"type:json" json:"technologies"`                     // 技术栈
	Tags         StringArray `gorm:"type:json" json:"tags"`                             // 标签
	Featured     bool        `gorm:"not null;default:false;index" json:"featured"`      // 是否精选
	LiveURL      string      `json:"liveUrl"`                                           // 线上地址
	RepoURL      string      `json:"repoUrl"`                                           // 仓库地址
	ImageURL     string      `json:"imageUrl"`                                          // 封面图
	CreatedAt    time.Time   `gorm:"index" json:"createdAt"`                            // 创建时间
	UpdatedAt    time.Time   `json:"updatedAt"`                                         // 更新时间
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate 创建时生成 UUID 主键
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
