package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patoekipa/internal/models"
)

const authStateCacheTTL = 60 * time.Second

// AdminAuthState 管理端鉴权快照
// 仅用于减少重复的数据库查询；TTL 较短，权限变更时主动失效。
type AdminAuthState struct {
	GithubUserID   string             `json:"github_user_id"`
	GithubUsername string             `json:"github_username"`
	Authorized     bool               `json:"authorized"`
	Legacy         bool               `json:"legacy"`
	Role           string             `json:"role"`
	Permissions    models.Permissions `json:"permissions"`
	RecordID       string             `json:"record_id"`
	UpdatedAt      int64              `json:"updated_at"`
}

func adminAuthStateKey(githubUserID, githubUsername string) string {
	id := strings.TrimSpace(githubUserID)
	if id != "" {
		return fmt.Sprintf("auth:admin:id:%s", id)
	}
	return fmt.Sprintf("auth:admin:login:%s", strings.ToLower(strings.TrimSpace(githubUsername)))
}

// GetAdminAuthState 获取管理端鉴权快照
func GetAdminAuthState(ctx context.Context, githubUserID, githubUsername string) (*AdminAuthState, bool, error) {
	if githubUserID == "" && githubUsername == "" {
		return nil, false, nil
	}
	var state AdminAuthState
	hit, err := GetJSON(ctx, adminAuthStateKey(githubUserID, githubUsername), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAdminAuthState 写入管理端鉴权快照
func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || (state.GithubUserID == "" && state.GithubUsername == "") {
		return nil
	}
	state.UpdatedAt = time.Now().Unix()
	return SetJSON(ctx, adminAuthStateKey(state.GithubUserID, state.GithubUsername), state, authStateCacheTTL)
}

// DelAdminAuthState 删除管理端鉴权快照
func DelAdminAuthState(ctx context.Context, githubUserID, githubUsername string) error {
	if githubUserID == "" && githubUsername == "" {
		return nil
	}
	if githubUserID != "" {
		if err := Del(ctx, adminAuthStateKey(githubUserID, "")); err != nil {
			return err
		}
	}
	if githubUsername != "" {
		return Del(ctx, adminAuthStateKey("", githubUsername))
	}
	return nil
}
