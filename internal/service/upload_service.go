package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/patoekipa/internal/config"
	"github.com/patoekipa/internal/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UploadService 头像上传服务
type UploadService struct {
	cfg config.UploadConfig
}

// NewUploadService 创建上传服务
func NewUploadService(cfg config.UploadConfig) *UploadService {
	return &UploadService{cfg: cfg}
}

// AvatarFile 已上传头像的描述
type AvatarFile struct {
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	SignedURL string    `json:"signedUrl,omitempty"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type uploadURLClaims struct {
	Filename string `json:"file"`
	jwt.RegisteredClaims
}

// SaveAvatar 保存头像文件，返回文件描述
func (s *UploadService) SaveAvatar(file *multipart.FileHeader) (*AvatarFile, error) {
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return nil, ErrUploadTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions) {
			return nil, ErrUploadUnsupported
		}
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// 读取文件头部识别 MIME 类型，不信任客户端声明
	buffer := make([]byte, 512)
	if _, err := src.Read(buffer); err != nil && err != io.EOF {
		return nil, err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return nil, err
	}
	contentType := http.DetectContentType(buffer)
	if len(s.cfg.AllowedTypes) > 0 {
		allowed := false
		for _, t := range s.cfg.AllowedTypes {
			if strings.EqualFold(contentType, t) {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, ErrUploadUnsupported
		}
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	dir := filepath.Join(s.cfg.Dir, constants.UploadSceneAvatar)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return nil, err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	return s.describe(filename, file.Size, time.Now()), nil
}

// ListAvatars 列出已上传头像，按更新时间倒序
func (s *UploadService) ListAvatars() ([]AvatarFile, error) {
	dir := filepath.Join(s.cfg.Dir, constants.UploadSceneAvatar)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []AvatarFile{}, nil
		}
		return nil, err
	}

	files := make([]AvatarFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, *s.describe(entry.Name(), info.Size(), info.ModTime()))
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].UpdatedAt.After(files[j].UpdatedAt)
	})
	return files, nil
}

// DeleteAvatar 删除头像文件
func (s *UploadService) DeleteAvatar(filename string) error {
	cleaned := filepath.Base(strings.TrimSpace(filename))
	if cleaned == "" || cleaned == "." || cleaned == string(filepath.Separator) {
		return NewValidationError("filename is required")
	}
	path := filepath.Join(s.cfg.Dir, constants.UploadSceneAvatar, cleaned)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// SignURL 为头像文件生成带时效的访问令牌
func (s *UploadService) SignURL(filename string) (string, error) {
	cleaned := filepath.Base(strings.TrimSpace(filename))
	expire := time.Duration(s.cfg.SignExpireMinutes) * time.Minute
	if expire <= 0 {
		expire = 15 * time.Minute
	}
	now := time.Now()
	claims := uploadURLClaims{
		Filename: cleaned,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SignSecret))
}

// VerifySignedURL 校验访问令牌与文件名是否匹配
func (s *UploadService) VerifySignedURL(tokenString, filename string) error {
	claims := &uploadURLClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SignSecret), nil
	})
	if err != nil || !token.Valid {
		return ErrSignatureInvalid
	}
	if claims.Filename != filepath.Base(strings.TrimSpace(filename)) {
		return ErrSignatureInvalid
	}
	return nil
}

// AvatarPath 头像文件的磁盘路径
func (s *UploadService) AvatarPath(filename string) string {
	return filepath.Join(s.cfg.Dir, constants.UploadSceneAvatar, filepath.Base(filename))
}

func (s *UploadService) describe(filename string, size int64, updatedAt time.Time) *AvatarFile {
	file := &AvatarFile{
		Filename:  filename,
		URL:       fmt.Sprintf("/uploads/%s/%s", constants.UploadSceneAvatar, filename),
		Size:      size,
		UpdatedAt: updatedAt,
	}
	if signed, err := s.SignURL(filename); err == nil {
		file.SignedURL = file.URL + "?token=" + signed
	}
	return file
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}
