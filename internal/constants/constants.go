package constants

// 管理员角色常量
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
)

// 身份断言中 GitHub 登录名的 claim 类型
const ClaimTypeGitHubLogin = "urn:github:login"

// 项目状态常量
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusArchived   = "archived"
)

// 项目规模常量
const (
	ProjectSizeSmall  = "small"
	ProjectSizeMedium = "medium"
	ProjectSizeLarge  = "large"
)

// 项目分类常量
const (
	ProjectCategoryWeb    = "web"
	ProjectCategoryMobile = "mobile"
	ProjectCategoryDesign = "design"
	ProjectCategoryOther  = "other"
)

// 联系消息状态常量
const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusReplied  = "replied"
	ContactStatusArchived = "archived"
)

// 聊天消息角色常量
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// 聊天流结束哨兵帧
const ChatStreamDoneSentinel = "[DONE]"

// 缓存默认配置常量
const RedisPrefixDefault = "ptk"

// 头像上传场景目录
const UploadSceneAvatar = "avatars"
