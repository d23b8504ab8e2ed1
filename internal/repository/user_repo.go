package repository

import (
	"errors"

	"jalaali-calendar-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type UserRepository interface {
	Create(user *models.User) error
	GetOrCreate(user *models.User) (stored *models.User, created bool, err error)
	GetByChatID(chatID int64) (*models.User, error)
	Update(user *models.User) error
	UpdateRole(chatID int64, role models.Role) error
	Exists(chatID int64) (bool, error)
	GetAdmins() ([]*models.User, error)
	GetStats() (total int, admins int, err error)
}

type GormUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormUserRepository(db *gorm.DB, logger *logrus.Logger) (*GormUserRepository, error) {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate users table")
		return nil, err
	}

	logger.Debug("User repository initialized")

	return &GormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormUserRepository) Create(user *models.User) error {
	exists, err := r.Exists(user.ChatID)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	if err := r.db.Create(user).Error; err != nil {
		r.logger.WithError(err).WithField("chat_id", user.ChatID).Error("Failed to create user")
		return err
	}
	return nil
}

// GetOrCreate inserts user unless its chat is already registered and returns
// the stored row. Concurrent calls for one chat all get the same row.
func (r *GormUserRepository) GetOrCreate(user *models.User) (*models.User, bool, error) {
	result := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_id"}},
			DoNothing: true,
		}).
		Create(user)
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("chat_id", user.ChatID).Error("Failed to register user")
		return nil, false, result.Error
	}
	if result.RowsAffected == 1 {
		return user, true, nil
	}

	stored, err := r.GetByChatID(user.ChatID)
	if err != nil {
		return nil, false, err
	}
	if stored == nil {
		return nil, false, ErrUserNotFound
	}
	return stored, false, nil
}

// GetByChatID returns nil, nil when the chat is unknown.
func (r *GormUserRepository) GetByChatID(chatID int64) (*models.User, error) {
	var user models.User
	result := r.db.Where("chat_id = ?", chatID).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("chat_id", chatID).Error("Failed to get user")
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) Update(user *models.User) error {
	result := r.db.Model(&models.User{}).
		Where("chat_id = ?", user.ChatID).
		Updates(map[string]interface{}{
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		})

	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("chat_id", user.ChatID).Error("Failed to update user")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *GormUserRepository) UpdateRole(chatID int64, role models.Role) error {
	result := r.db.Model(&models.User{}).
		Where("chat_id = ?", chatID).
		Update("role", role)

	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("chat_id", chatID).Error("Failed to update role")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	r.logger.WithFields(logrus.Fields{
		"chat_id": chatID,
		"role":    role,
	}).Info("User role updated")
	return nil
}

func (r *GormUserRepository) Exists(chatID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("chat_id = ?", chatID).Count(&count).Error
	return count > 0, err
}

func (r *GormUserRepository) GetAdmins() ([]*models.User, error) {
	var admins []*models.User
	err := r.db.Where("role = ?", models.RoleAdmin).Order("id").Find(&admins).Error
	return admins, err
}

func (r *GormUserRepository) GetStats() (int, int, error) {
	var total, admins int64

	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		r.logger.WithError(err).Error("Failed to count users")
		return 0, 0, err
	}

	err := r.db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&admins).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to count admins")
		return 0, 0, err
	}

	return int(total), int(admins), nil
}
