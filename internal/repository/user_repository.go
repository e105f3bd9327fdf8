package repository

import (
	"errors"
	"fmt"

	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrDeleteTodos is returned when removing a user's todos fails inside the cascade transaction.
	ErrDeleteTodos = errors.New("user repository: delete owned todos failed")
	// ErrDeleteUser is returned when removing the user row fails inside the cascade transaction.
	ErrDeleteUser = errors.New("user repository: delete user failed")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteWithTodos removes a user and all owned todos atomically. The cascade
// is an explicit application-level step, not a database trigger, so either
// everything is removed or nothing is.
func (r *GormUserRepository) DeleteWithTodos(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Todo{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteTodos, err)
		}

		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteUser, err)
		}

		return nil
	})
}
