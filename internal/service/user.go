package service

import (
	"fmt"
	"strings"

	"jalaali-calendar-bot/internal/models"
	"jalaali-calendar-bot/internal/repository"
	"jalaali-calendar-bot/pkg/jalaali"

	"github.com/sirupsen/logrus"
)

type UserService struct {
	repo   repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// EnsureUser registers a chat on first contact and keeps its names current.
func (s *UserService) EnsureUser(chatID int64, username, firstName, lastName string) (*models.User, error) {
	user, created, err := s.repo.GetOrCreate(&models.User{
		ChatID:    chatID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Role:      models.RoleClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if created {
		s.logger.WithField("chat_id", chatID).Info("User registered")
		return user, nil
	}

	if user.Username == username && user.FirstName == firstName && user.LastName == lastName {
		return user, nil
	}

	user.Username = username
	user.FirstName = firstName
	user.LastName = lastName
	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// GetUser returns ErrUserNotFound for unknown chats.
func (s *UserService) GetUser(chatID int64) (*models.User, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) IsAdmin(chatID int64) (bool, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return false, err
	}

	return user != nil && user.IsAdmin(), nil
}

// InitializeAdmin promotes (or creates) the configured admin chat. Zero means
// no admin is configured.
func (s *UserService) InitializeAdmin(adminChatID int64) error {
	if adminChatID == 0 {
		return nil
	}

	existing, err := s.repo.GetByChatID(adminChatID)
	if err != nil {
		return err
	}

	if existing != nil {
		if existing.IsAdmin() {
			return nil
		}
		return s.repo.UpdateRole(adminChatID, models.RoleAdmin)
	}

	return s.repo.Create(&models.User{
		ChatID:    adminChatID,
		Username:  "admin",
		FirstName: "مدیر",
		Role:      models.RoleAdmin,
	})
}

// SetRole changes the role of targetChatID on behalf of adminChatID.
func (s *UserService) SetRole(adminChatID, targetChatID int64, role models.Role) error {
	isAdmin, err := s.IsAdmin(adminChatID)
	if err != nil {
		return fmt.Errorf("failed to check admin: %w", err)
	}
	if !isAdmin {
		s.logger.WithField("chat_id", adminChatID).Warn("Unauthorized role change")
		return ErrForbidden
	}

	target, err := s.repo.GetByChatID(targetChatID)
	if err != nil {
		return fmt.Errorf("failed to get target user: %w", err)
	}
	if target == nil {
		return ErrUserNotFound
	}

	if err := s.repo.UpdateRole(targetChatID, role); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"admin":  adminChatID,
		"target": targetChatID,
		"role":   role,
	}).Info("Role updated")
	return nil
}

// FormatStats renders user statistics and the admin list.
func (s *UserService) FormatStats() (string, error) {
	total, admins, err := s.repo.GetStats()
	if err != nil {
		return "", err
	}
	adminUsers, err := s.repo.GetAdmins()
	if err != nil {
		return "", err
	}

	lines := []string{
		"📊 آمار ربات",
		"",
		fmt.Sprintf("👥 کاربران: %s", jalaali.ToPersianDigits(total)),
		fmt.Sprintf("👑 مدیران: %s", jalaali.ToPersianDigits(admins)),
	}
	for i, u := range adminUsers {
		lines = append(lines, fmt.Sprintf("%s. %s (%d)", jalaali.ToPersianDigits(i+1), u.DisplayName(), u.ChatID))
	}

	return strings.Join(lines, "\n"), nil
}
