package service

import (
	"net/mail"
	"strings"

	"github.com/patoekipa/internal/constants"
	"github.com/patoekipa/internal/models"
	"github.com/patoekipa/internal/repository"
)

// ContactService 联系消息业务服务
type ContactService struct {
	repo repository.ContactRepository
}

// NewContactService 创建联系消息服务
func NewContactService(repo repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// ContactInput 提交联系消息输入
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func validContactStatus(status string) bool {
	switch status {
	case constants.ContactStatusNew, constants.ContactStatusRead,
		constants.ContactStatusReplied, constants.ContactStatusArchived:
		return true
	}
	return false
}

// Submit 提交联系消息（公开端）
func (s *ContactService) Submit(input ContactInput) (*models.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, NewValidationError("name is required")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, NewValidationError("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, NewValidationError("invalid email address")
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, NewValidationError("message is required")
	}

	record := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: strings.TrimSpace(input.Subject),
		Message: message,
		Status:  constants.ContactStatusNew,
	}
	if err := s.repo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// List 分页获取联系消息（管理端）
func (s *ContactService) List(filter repository.ContactListFilter) ([]models.ContactMessage, int64, error) {
	if filter.Status != "" && !validContactStatus(filter.Status) {
		return nil, 0, NewValidationError("invalid status")
	}
	return s.repo.List(filter)
}

// GetByID 获取单条消息
func (s *ContactService) GetByID(id string) (*models.ContactMessage, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

// UpdateStatus 更新消息处理状态
func (s *ContactService) UpdateStatus(id string, status string) (*models.ContactMessage, error) {
	status = strings.TrimSpace(status)
	if !validContactStatus(status) {
		return nil, NewValidationError("invalid status")
	}
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	record.Status = status
	if err := s.repo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete 删除消息
func (s *ContactService) Delete(id string) error {
	affected, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
