package repositories

import (
	"github.com/yourusername/lendmarket/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users. It holds an explicit
// handle rather than a package-global session so tests can run against an
// isolated database.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user into the database
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByEmail retrieves a user by email, exact-case match.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	result := r.db.First(&user, "email = ?", email)
	return user, result.Error
}

// FindByID retrieves a user by its ID
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	result := r.db.First(&user, "id = ?", id)
	return user, result.Error
}

// ExistsByEmail checks whether a user with the email is already registered
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Delete removes a user from the database
func (r *UserRepository) Delete(id string) error {
	result := r.db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountReferences counts operations and bids still pointing at the user.
// Deletion is refused while this is non-zero.
func (r *UserRepository) CountReferences(id string) (int64, error) {
	var operations int64
	if err := r.db.Model(&models.Operation{}).Where("operator_id = ?", id).Count(&operations).Error; err != nil {
		return 0, err
	}
	var bids int64
	if err := r.db.Model(&models.Bid{}).Where("investor_id = ?", id).Count(&bids).Error; err != nil {
		return 0, err
	}
	return operations + bids, nil
}
