package repository

import (
	"strings"

	"github.com/CampusLinkHQ/CampusLink/app/models"
	"gorm.io/gorm"
)

// accountIndexRepository implements AccountIndexRepository
type accountIndexRepository struct {
	db *gorm.DB
}

// NewAccountIndexRepository creates a new account index repository instance
func NewAccountIndexRepository(db *gorm.DB) AccountIndexRepository {
	return &accountIndexRepository{db: db}
}

// Get returns the index row owning the email, if any.
func (r *accountIndexRepository) Get(email string) (*models.AccountIndex, error) {
	var idx models.AccountIndex
	err := r.db.Where("email = ?", strings.ToLower(email)).First(&idx).Error
	if err != nil {
		return nil, err
	}
	return &idx, nil
}

// CreateWithAccount creates the account and its index row in one transaction.
// A duplicate email loses on the index's unique key and rolls back the
// account insert, so at most one store ever owns an email.
func (r *accountIndexRepository) CreateWithAccount(acc models.Account, role models.Role) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(acc).Error; err != nil {
			return err
		}
		idx := models.AccountIndex{
			Email:     strings.ToLower(acc.AccountEmail()),
			Role:      role,
			AccountID: acc.AccountID(),
		}
		return tx.Create(&idx).Error
	})
}

// UpdateWithAccount saves the account and, when its email changed, moves the
// index row to the new address in the same transaction. A new email already
// owned by another account loses on the unique key and rolls everything back.
func (r *accountIndexRepository) UpdateWithAccount(acc models.Account, role models.Role, previousEmail string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(acc).Error; err != nil {
			return err
		}
		newEmail := strings.ToLower(acc.AccountEmail())
		previousEmail = strings.ToLower(previousEmail)
		if newEmail == previousEmail {
			return nil
		}
		res := tx.Model(&models.AccountIndex{}).
			Where("email = ? AND role = ?", previousEmail, role).
			Update("email", newEmail)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// rows predating the index have no entry to move; backfill one
			// so the email change still contends on the unique key
			idx := models.AccountIndex{
				Email:     newEmail,
				Role:      role,
				AccountID: acc.AccountID(),
			}
			return tx.Create(&idx).Error
		}
		return nil
	})
}

// IsDuplicateKey reports whether err is a unique constraint violation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}
