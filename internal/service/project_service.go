package service

import (
	"strings"

	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"
)

// ProjectService 项目业务服务
type ProjectService struct {
	repo repository.ProjectRepository
}

// NewProjectService 创建项目服务
func NewProjectService(repo repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// ProjectInput 创建/更新项目输入
type ProjectInput struct {
	Title        string
	Description  string
	Category     string
	Status       string
	ProjectSize  string
	Technologies []string
	Tags         []string
	Featured     *bool
	LiveURL      string
	RepoURL      string
	ImageURL     string
}

func validProjectStatus(status string) bool {
	switch status {
	case constants.ProjectStatusPlanning, constants.ProjectStatusInProgress,
		constants.ProjectStatusCompleted, constants.ProjectStatusArchived:
		return true
	}
	return false
}

func validProjectSize(size string) bool {
	switch size {
	case constants.ProjectSizeSmall, constants.ProjectSizeMedium, constants.ProjectSizeLarge:
		return true
	}
	return false
}

// List 获取项目列表
func (s *ProjectService) List(filter repository.ProjectListFilter) ([]models.Project, error) {
	return s.repo.List(filter)
}

// GetByID 获取单个项目
func (s *ProjectService) GetByID(id string) (*models.Project, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

// Create 创建项目
// 状态与规模缺省时取 planning / medium。
func (s *ProjectService) Create(input ProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, NewValidationError("title is required")
	}
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.ProjectStatusPlanning
	}
	if !validProjectStatus(status) {
		return nil, NewValidationError("invalid status")
	}
	size := strings.TrimSpace(input.ProjectSize)
	if size == "" {
		size = constants.ProjectSizeMedium
	}
	if !validProjectSize(size) {
		return nil, NewValidationError("invalid projectSize")
	}

	project := &models.Project{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Category:     strings.TrimSpace(input.Category),
		Status:       status,
		ProjectSize:  size,
		Technologies: models.StringArray(input.Technologies),
		Tags:         models.StringArray(input.Tags),
		LiveURL:      input.LiveURL,
		RepoURL:      input.RepoURL,
		ImageURL:     input.ImageURL,
	}
	if input.Featured != nil {
		project.Featured = *input.Featured
	}
	if err := s.repo.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update 更新项目
func (s *ProjectService) Update(id string, input ProjectInput) (*models.Project, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, NewValidationError("title is required")
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = project.Status
	}
	if !validProjectStatus(status) {
		return nil, NewValidationError("invalid status")
	}
	size := strings.TrimSpace(input.ProjectSize)
	if size == "" {
		size = project.ProjectSize
	}
	if !validProjectSize(size) {
		return nil, NewValidationError("invalid projectSize")
	}

	project.Title = strings.TrimSpace(input.Title)
	project.Description = input.Description
	project.Category = strings.TrimSpace(input.Category)
	project.Status = status
	project.ProjectSize = size
	project.Technologies = models.StringArray(input.Technologies)
	project.Tags = models.StringArray(input.Tags)
	project.LiveURL = input.LiveURL
	project.RepoURL = input.RepoURL
	project.ImageURL = input.ImageURL
	if input.Featured != nil {
		project.Featured = *input.Featured
	}

	if err := s.repo.Update(project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete 删除项目
func (s *ProjectService) Delete(id string) error {
	affected, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
