package service

import (
	"strings"

	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"
)

// TestimonialService 客户评价业务服务
type TestimonialService struct {
	repo repository.TestimonialRepository
}

// NewTestimonialService 创建评价服务
func NewTestimonialService(repo repository.TestimonialRepository) *TestimonialService {
	return &TestimonialService{repo: repo}
}

// TestimonialInput 创建/更新评价输入
type TestimonialInput struct {
	Author    string
	Company   string
	Title     string
	Content   string
	Rating    *int
	AvatarURL string
	Approved  *bool
	Featured  *bool
}

func (input TestimonialInput) validate() error {
	if strings.TrimSpace(input.Author) == "" {
		return NewValidationError("author is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return NewValidationError("content is required")
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return NewValidationError("rating must be between 1 and 5")
	}
	return nil
}

// ListPublic 获取公开评价，仅含已审核条目
func (s *TestimonialService) ListPublic(filter repository.TestimonialListFilter) ([]models.Testimonial, error) {
	approved := true
	filter.Approved = &approved
	return s.repo.List(filter)
}

// List 获取评价列表（管理端）
func (s *TestimonialService) List(filter repository.TestimonialListFilter) ([]models.Testimonial, error) {
	return s.repo.List(filter)
}

// GetByID 获取单条评价
func (s *TestimonialService) GetByID(id string) (*models.Testimonial, error) {
	testimonial, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if testimonial == nil {
		return nil, ErrNotFound
	}
	return testimonial, nil
}

// Create 创建评价，默认未审核
func (s *TestimonialService) Create(input TestimonialInput) (*models.Testimonial, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	testimonial := &models.Testimonial{
		Author:    strings.TrimSpace(input.Author),
		Company:   strings.TrimSpace(input.Company),
		Title:     strings.TrimSpace(input.Title),
		Content:   strings.TrimSpace(input.Content),
		Rating:    5,
		AvatarURL: input.AvatarURL,
	}
	if input.Rating != nil {
		testimonial.Rating = *input.Rating
	}
	if input.Approved != nil {
		testimonial.Approved = *input.Approved
	}
	if input.Featured != nil {
		testimonial.Featured = *input.Featured
	}
	if err := s.repo.Create(testimonial); err != nil {
		return nil, err
	}
	return testimonial, nil
}

// Update 更新评价
func (s *TestimonialService) Update(id string, input TestimonialInput) (*models.Testimonial, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	testimonial, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if testimonial == nil {
		return nil, ErrNotFound
	}

	testimonial.Author = strings.TrimSpace(input.Author)
	testimonial.Company = strings.TrimSpace(input.Company)
	testimonial.Title = strings.TrimSpace(input.Title)
	testimonial.Content = strings.TrimSpace(input.Content)
	testimonial.AvatarURL = input.AvatarURL
	if input.Rating != nil {
		testimonial.Rating = *input.Rating
	}
	if input.Approved != nil {
		testimonial.Approved = *input.Approved
	}
	if input.Featured != nil {
		testimonial.Featured = *input.Featured
	}

	if err := s.repo.Update(testimonial); err != nil {
		return nil, err
	}
	return testimonial, nil
}

// Delete 删除评价
func (s *TestimonialService) Delete(id string) error {
	affected, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
