package service

import (
	"errors"
	"io"
	"time"

	"jalaali-calendar-bot/internal/models"
	"jalaali-calendar-bot/pkg/jalaali"

	"github.com/sirupsen/logrus"
)

var errNotImplemented = errors.New("not implemented")

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type mockUserRepository struct {
	users map[int64]*models.User
	err   error
}

func newMockUserRepository(users ...*models.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[int64]*models.User)}
	for _, u := range users {
		m.users[u.ChatID] = u
	}
	return m
}

func (m *mockUserRepository) Create(user *models.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[user.ChatID]; ok {
		return errors.New("user already exists")
	}
	user.ID = uint(len(m.users) + 1)
	m.users[user.ChatID] = user
	return nil
}

func (m *mockUserRepository) GetOrCreate(user *models.User) (*models.User, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	if existing, ok := m.users[user.ChatID]; ok {
		return existing, false, nil
	}
	user.ID = uint(len(m.users) + 1)
	m.users[user.ChatID] = user
	return user, true, nil
}

func (m *mockUserRepository) GetByChatID(chatID int64) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users[chatID], nil
}

func (m *mockUserRepository) Update(user *models.User) error {
	if m.err != nil {
		return m.err
	}
	m.users[user.ChatID] = user
	return nil
}

func (m *mockUserRepository) UpdateRole(chatID int64, role models.Role) error {
	if m.err != nil {
		return m.err
	}
	u, ok := m.users[chatID]
	if !ok {
		return ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (m *mockUserRepository) Exists(chatID int64) (bool, error) {
	_, ok := m.users[chatID]
	return ok, m.err
}

func (m *mockUserRepository) GetAdmins() ([]*models.User, error) {
	var admins []*models.User
	for _, u := range m.users {
		if u.IsAdmin() {
			admins = append(admins, u)
		}
	}
	return admins, m.err
}

func (m *mockUserRepository) GetStats() (int, int, error) {
	admins, _ := m.GetAdmins()
	return len(m.users), len(admins), m.err
}

type mockHolidayRepository struct {
	createFunc            func(day *models.Holiday) error
	replaceYearFunc       func(jy int, days []models.Holiday) error
	getByDateFunc         func(d jalaali.Date) (*models.Holiday, error)
	getByJalaaliMonthFunc func(jy, jm int) ([]models.Holiday, error)
	isHolidayFunc         func(d jalaali.Date) (bool, error)
	countYearFunc         func(jy int) (int64, error)
}

func (m *mockHolidayRepository) Create(day *models.Holiday) error {
	if m.createFunc != nil {
		return m.createFunc(day)
	}
	return errNotImplemented
}

func (m *mockHolidayRepository) ReplaceYear(jy int, days []models.Holiday) error {
	if m.replaceYearFunc != nil {
		return m.replaceYearFunc(jy, days)
	}
	return errNotImplemented
}

func (m *mockHolidayRepository) GetByDate(d jalaali.Date) (*models.Holiday, error) {
	if m.getByDateFunc != nil {
		return m.getByDateFunc(d)
	}
	return nil, nil
}

func (m *mockHolidayRepository) GetByJalaaliMonth(jy, jm int) ([]models.Holiday, error) {
	if m.getByJalaaliMonthFunc != nil {
		return m.getByJalaaliMonthFunc(jy, jm)
	}
	return nil, nil
}

func (m *mockHolidayRepository) IsHoliday(d jalaali.Date) (bool, error) {
	if m.isHolidayFunc != nil {
		return m.isHolidayFunc(d)
	}
	return false, nil
}

func (m *mockHolidayRepository) CountYear(jy int) (int64, error) {
	if m.countYearFunc != nil {
		return m.countYearFunc(jy)
	}
	return 0, errNotImplemented
}

type mockEventRepository struct {
	createFunc         func(event *models.Event) error
	getByIDFunc        func(id uint) (*models.Event, error)
	deleteFunc         func(id uint) error
	getByUserDateFunc  func(userID uint, d jalaali.Date) ([]*models.Event, error)
	getByUserMonthFunc func(userID uint, jy, jm int) ([]*models.Event, error)
	getUpcomingFunc    func(userID uint, from time.Time, limit int) ([]*models.Event, error)
}

func (m *mockEventRepository) Create(event *models.Event) error {
	if m.createFunc != nil {
		return m.createFunc(event)
	}
	return errNotImplemented
}

func (m *mockEventRepository) GetByID(id uint) (*models.Event, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(id)
	}
	return nil, errNotImplemented
}

func (m *mockEventRepository) Delete(id uint) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(id)
	}
	return errNotImplemented
}

func (m *mockEventRepository) GetByUserDate(userID uint, d jalaali.Date) ([]*models.Event, error) {
	if m.getByUserDateFunc != nil {
		return m.getByUserDateFunc(userID, d)
	}
	return nil, nil
}

func (m *mockEventRepository) GetByUserMonth(userID uint, jy, jm int) ([]*models.Event, error) {
	if m.getByUserMonthFunc != nil {
		return m.getByUserMonthFunc(userID, jy, jm)
	}
	return nil, nil
}

func (m *mockEventRepository) GetUpcoming(userID uint, from time.Time, limit int) ([]*models.Event, error) {
	if m.getUpcomingFunc != nil {
		return m.getUpcomingFunc(userID, from, limit)
	}
	return nil, errNotImplemented
}
