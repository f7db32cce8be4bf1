package repository

import (
	"time"

	"github.com/CampusLinkHQ/CampusLink/app/models"
	"gorm.io/gorm"
)

// AccountRepository is the common interface over the three role-scoped
// account stores. Each store holds exactly one account shape; the resolver
// walks them in models.LookupOrder.
type AccountRepository interface {
	Role() models.Role
	Create(acc models.Account) error
	GetByID(id uint) (models.Account, error)
	GetByEmail(email string) (models.Account, error)
	GetByGoogleID(sub string) (models.Account, error)
	Update(acc models.Account) error
}

// AccountIndexRepository maintains the unified email -> role index that
// enforces cross-store email uniqueness.
type AccountIndexRepository interface {
	Get(email string) (*models.AccountIndex, error)
	// CreateWithAccount writes the account and its index row in one
	// transaction; the unique email key makes concurrent first sign-ins
	// collide instead of double-creating.
	CreateWithAccount(acc models.Account, role models.Role) error
	// UpdateWithAccount persists the account and moves its index row when
	// the email changed, atomically.
	UpdateWithAccount(acc models.Account, role models.Role, previousEmail string) error
}

// StudentDirectoryRepository serves the public student lookup endpoint.
type StudentDirectoryRepository interface {
	GetByEmail(email string) (*models.Student, error)
	GetByRollNumber(rollNumber string) (*models.Student, error)
}

// RideRepository defines ride listing persistence.
type RideRepository interface {
	Create(ride *models.Ride) error
	GetByUUID(uuid string) (*models.Ride, error)
	ListUpcoming(after time.Time, limit int) ([]models.Ride, error)
	Delete(id uint) error
}

// ChatRepository stores relayed messages as best-effort history.
type ChatRepository interface {
	Create(msg *models.ChatMessage) error
	RecentByRoom(room string, limit int) ([]models.ChatMessage, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Students     AccountRepository
	Faculty      AccountRepository
	Admins       AccountRepository
	AccountIndex AccountIndexRepository
	Directory    StudentDirectoryRepository
	Rides        RideRepository
	Chat         ChatRepository
}

// ByRole returns the account store owning the given role, or nil.
func (r *Repositories) ByRole(role models.Role) AccountRepository {
	switch role {
	case models.RoleStudent:
		return r.Students
	case models.RoleFaculty:
		return r.Faculty
	case models.RoleAdmin:
		return r.Admins
	}
	return nil
}

// InLookupOrder returns the account stores in resolver priority order.
func (r *Repositories) InLookupOrder() []AccountRepository {
	return []AccountRepository{r.Students, r.Faculty, r.Admins}
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Students:     NewStudentRepository(db),
		Faculty:      NewFacultyRepository(db),
		Admins:       NewAdminRepository(db),
		AccountIndex: NewAccountIndexRepository(db),
		Directory:    NewStudentDirectoryRepository(db),
		Rides:        NewRideRepository(db),
		Chat:         NewChatRepository(db),
	}
}
