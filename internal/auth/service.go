package auth

import (
	"context"
	"strings"
	"time"

	"github.com/patoekipa/internal/cache"
	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/logger"
	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"
)

// Authorization 一次授权判定的完整结果
type Authorization struct {
	Authenticated bool
	Authorized    bool
	Legacy        bool
	Role          string
	Permissions   models.Permissions
	User          *models.AdminUser
	Identity      Identity
}

// Service 管理员授权判定
type Service struct {
	repo         repository.AdminUserRepository
	legacyAdmins map[string]struct{}
	useCache     bool
}

// NewService 创建授权服务
// legacyAdmins 为兜底管理员登录名列表，匹配忽略大小写。
func NewService(repo repository.AdminUserRepository, legacyAdmins []string, useCache bool) *Service {
	set := make(map[string]struct{}, len(legacyAdmins))
	for _, name := range legacyAdmins {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			set[name] = struct{}{}
		}
	}
	return &Service{repo: repo, legacyAdmins: set, useCache: useCache}
}

// IsLegacyAdmin 判断登录名是否在兜底列表中
func (s *Service) IsLegacyAdmin(username string) bool {
	_, ok := s.legacyAdmins[strings.ToLower(strings.TrimSpace(username))]
	return ok
}

// Resolve 解析身份并判定授权，按固定顺序首个命中生效：
//  1. 未认证请求直接返回
//  2. 数据库记录优先：停用记录阻断后续兜底
//  3. 活跃记录按其角色与权限授权
//  4. 无记录时查兜底列表，命中按 super_admin 授权
func (s *Service) Resolve(ctx context.Context, identity Identity) Authorization {
	result := Authorization{Identity: identity}
	if !identity.Authenticated {
		return result
	}
	result.Authenticated = true

	user, err := s.repo.FindByIdentity(identity.GithubUserID, identity.GithubUsername)
	if err != nil {
		logger.Errorw("auth_lookup_failed", "error", err, "github_user_id", identity.GithubUserID)
		return result
	}

	if user != nil {
		if !user.IsActive {
			// 显式停用的管理员不再走兜底列表
			return result
		}
		result.Authorized = true
		result.Role = user.Role
		result.Permissions = DerivePermissions(user.Role, user.Permissions)
		result.User = user
		s.touchLogin(user.ID)
		s.storeSnapshot(ctx, result)
		return result
	}

	if s.IsLegacyAdmin(identity.GithubUsername) {
		result.Authorized = true
		result.Legacy = true
		result.Role = constants.RoleSuperAdmin
		result.Permissions = FullPermissions()
		s.storeSnapshot(ctx, result)
		return result
	}

	return result
}

// LoadUser 按记录 ID 读取管理员记录，用于缓存命中后的回填
func (s *Service) LoadUser(id string) (*models.AdminUser, error) {
	return s.repo.GetByID(id)
}

// touchLogin 尽力更新最近登录时间，失败只记日志
func (s *Service) touchLogin(id string) {
	if err := s.repo.TouchLogin(id, time.Now()); err != nil {
		logger.Warnw("auth_touch_login_failed", "error", err, "admin_user_id", id)
	}
}

func (s *Service) storeSnapshot(ctx context.Context, result Authorization) {
	if !s.useCache || !cache.Enabled() {
		return
	}
	state := cache.AdminAuthState{
		GithubUserID:   result.Identity.GithubUserID,
		GithubUsername: result.Identity.GithubUsername,
		Authorized:     result.Authorized,
		Legacy:         result.Legacy,
		Role:           result.Role,
		Permissions:    result.Permissions,
	}
	if result.User != nil {
		state.RecordID = result.User.ID
	}
	if err := cache.SetAdminAuthState(ctx, &state); err != nil {
		logger.Warnw("auth_snapshot_store_failed", "error", err)
	}
}
