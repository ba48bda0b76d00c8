package repositories

import (
	"github.com/shopspring/decimal"
	"github.com/yourusername/lendmarket/models"
	"gorm.io/gorm"
)

// OperationRepository handles database operations for funding operations
type OperationRepository struct {
	db *gorm.DB
}

// NewOperationRepository creates a new operation repository instance
func NewOperationRepository(db *gorm.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

// Create inserts a new operation into the database
func (r *OperationRepository) Create(op *models.Operation) error {
	return r.db.Create(op).Error
}

// FindByID retrieves an operation by its ID
func (r *OperationRepository) FindByID(id string) (models.Operation, error) {
	var op models.Operation
	result := r.db.First(&op, "id = ?", id)
	return op, result.Error
}

// FindAll retrieves all operations in creation order
func (r *OperationRepository) FindAll() ([]models.Operation, error) {
	var ops []models.Operation
	result := r.db.Order("created_at").Find(&ops)
	return ops, result.Error
}

// FindOpen retrieves open operations in creation order
func (r *OperationRepository) FindOpen() ([]models.Operation, error) {
	var ops []models.Operation
	result := r.db.Where("status = ?", true).Order("created_at").Find(&ops)
	return ops, result.Error
}

// SetStatus flips an operation to the given status
func (r *OperationRepository) SetStatus(id string, status bool) error {
	return r.db.Model(&models.Operation{}).Where("id = ?", id).Update("status", status).Error
}

// AddToCurrentAmount increments current_amount at the database level, guarded
// on the operation still being open. Returns the number of rows updated so
// the caller can tell a closed operation from a missing one.
func (r *OperationRepository) AddToCurrentAmount(tx *gorm.DB, id string, amount decimal.Decimal) (int64, error) {
	result := tx.Model(&models.Operation{}).
		Where("id = ? AND status = ?", id, true).
		Update("current_amount", gorm.Expr("current_amount + ?", amount))
	return result.RowsAffected, result.Error
}

// DB returns the underlying database handle for transactional work
func (r *OperationRepository) DB() *gorm.DB {
	return r.db
}
