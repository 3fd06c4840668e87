package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/patoekipa/internal/constants"
)

// clientPrincipal 托管平台 OAuth 代理注入的身份断言
// 格式由平台决定：base64 编码的 JSON，含用户 ID 与 claims 数组。
type clientPrincipal struct {
	IdentityProvider string           `json:"identityProvider"`
	UserID           string           `json:"userId"`
	UserDetails      string           `json:"userDetails"`
	UserRoles        []string         `json:"userRoles"`
	Claims           []principalClaim `json:"claims"`
}

type principalClaim struct {
	Typ string `json:"typ"`
	Val string `json:"val"`
}

// Identity 解码后的调用者身份
type Identity struct {
	Authenticated  bool
	GithubUserID   string
	GithubUsername string
}

// DecodePrincipal 解码身份断言头
// 任何解码失败都降级为未认证，绝不向上层抛错。
func DecodePrincipal(headerValue string) Identity {
	raw := strings.TrimSpace(headerValue)
	if raw == "" {
		return Identity{}
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		// 部分代理使用 URL-safe 编码
		decoded, err = base64.URLEncoding.DecodeString(raw)
		if err != nil {
			return Identity{}
		}
	}

	var principal clientPrincipal
	if err := json.Unmarshal(decoded, &principal); err != nil {
		return Identity{}
	}

	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return Identity{}
	}

	username := ""
	for _, claim := range principal.Claims {
		if claim.Typ == constants.ClaimTypeGitHubLogin {
			username = strings.TrimSpace(claim.Val)
			break
		}
	}
	if username == "" {
		username = strings.TrimSpace(principal.UserDetails)
	}

	return Identity{
		Authenticated:  true,
		GithubUserID:   userID,
		GithubUsername: username,
	}
}
