package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permissions 管理员能力开关集合
// canManageUsers 与 role 的关系在写入时由服务层统一推导。
type Permissions struct {
	CanManageUsers        bool `gorm:"not null;default:false" json:"canManageUsers"`         // 管理后台账号
	CanManageProjects     bool `gorm:"not null;default:false" json:"canManageProjects"`      // 管理项目
	CanManageTeam         bool `gorm:"not null;default:false" json:"canManageTeam"`          // 管理团队成员
	CanManageTestimonials bool `gorm:"not null;default:false" json:"canManageTestimonials"`  // 管理评价
	CanManageContacts     bool `gorm:"not null;default:false" json:"canManageContacts"`      // 管理联系消息
}

// AdminUser 管理员表
// github_user_id 为权威外部身份（用户名可改，ID 不变）。
type AdminUser struct {
	ID             string      `gorm:"primaryKey;size:36" json:"id"`                      // 主键（UUID）
	GithubUsername string      `gorm:"uniqueIndex;not null" json:"githubUsername"`        // GitHub 登录名
	GithubUserID   string      `gorm:"uniqueIndex;not null" json:"githubUserId"`          // GitHub 用户 ID
	Email          string      `gorm:"default:''" json:"email"`                           // 联系邮箱
	Role           string      `gorm:"not null;default:'editor';index" json:"role"`       // 角色（super_admin/admin/editor）
	Permissions    Permissions `gorm:"embedded;embeddedPrefix:perm_" json:"permissions"`  // 能力开关
	IsActive       bool        `gorm:"not null;default:true;index" json:"isActive"`       // 是否启用
	LastLoginAt    *time.Time  `json:"lastLoginAt"`                                       // 最后登录时间
	AddedBy        string      `gorm:"default:''" json:"addedBy"`                         // 添加人
	AddedAt        *time.Time  `json:"addedAt"`                                           // 添加时间
	Notes          string      `gorm:"default:''" json:"notes"`                           // 备注
	CreatedAt      time.Time   `gorm:"index" json:"createdAt"`                            // 创建时间
	UpdatedAt      time.Time   `json:"updatedAt"`                                         // 更新时间
}

// TableName 指定表名
func (AdminUser) TableName() string {
	return "admin_users"
}

// BeforeCreate 创建时生成 UUID 主键
func (u *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
