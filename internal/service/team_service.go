package service

import (
	"strings"

	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"
)

// TeamService 团队成员业务服务
type TeamService struct {
	repo repository.TeamRepository
}

// NewTeamService 创建团队服务
func NewTeamService(repo repository.TeamRepository) *TeamService {
	return &TeamService{repo: repo}
}

// TeamMemberInput 创建/更新团队成员输入
type TeamMemberInput struct {
	Name        string
	Title       string
	Bio         string
	AvatarURL   string
	Email       string
	GithubURL   string
	LinkedinURL string
	Skills      []string
	SortOrder   int
	IsActive    *bool
}

func (input TeamMemberInput) validate() error {
	if strings.TrimSpace(input.Name) == "" {
		return NewValidationError("name is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return NewValidationError("role is required")
	}
	return nil
}

// ListPublic 获取公开团队列表，仅含启用成员
func (s *TeamService) ListPublic() ([]models.TeamMember, error) {
	return s.repo.List(repository.TeamListFilter{OnlyActive: true})
}

// List 获取团队列表（管理端）
func (s *TeamService) List(filter repository.TeamListFilter) ([]models.TeamMember, error) {
	return s.repo.List(filter)
}

// GetByID 获取单个成员
func (s *TeamService) GetByID(id string) (*models.TeamMember, error) {
	member, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}
	return member, nil
}

// Create 创建团队成员
func (s *TeamService) Create(input TeamMemberInput) (*models.TeamMember, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	member := &models.TeamMember{
		Name:        strings.TrimSpace(input.Name),
		Title:       strings.TrimSpace(input.Title),
		Bio:         input.Bio,
		AvatarURL:   input.AvatarURL,
		Email:       strings.TrimSpace(input.Email),
		GithubURL:   input.GithubURL,
		LinkedinURL: input.LinkedinURL,
		Skills:      models.StringArray(input.Skills),
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}
	if err := s.repo.Create(member); err != nil {
		return nil, err
	}
	return member, nil
}

// Update 更新团队成员
func (s *TeamService) Update(id string, input TeamMemberInput) (*models.TeamMember, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	member, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}

	member.Name = strings.TrimSpace(input.Name)
	member.Title = strings.TrimSpace(input.Title)
	member.Bio = input.Bio
	member.AvatarURL = input.AvatarURL
	member.Email = strings.TrimSpace(input.Email)
	member.GithubURL = input.GithubURL
	member.LinkedinURL = input.LinkedinURL
	member.Skills = models.StringArray(input.Skills)
	member.SortOrder = input.SortOrder
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}

	if err := s.repo.Update(member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete 删除团队成员
func (s *TeamService) Delete(id string) error {
	affected, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
