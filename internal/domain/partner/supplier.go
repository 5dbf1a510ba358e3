package partner

import (
	"strings"

	"github.com/almacen/backend/internal/domain/shared"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

// Supplier represents a supplier in the partner context
type Supplier struct {
	shared.BaseAggregateRoot
	Document    string         `gorm:"type:varchar(50);not null;uniqueIndex"` // NIT
	Name        string         `gorm:"type:varchar(200);not null"`
	ContactName string         `gorm:"type:varchar(100)"`
	Phone       string         `gorm:"type:varchar(50);index"`
	Email       string         `gorm:"type:varchar(200);index"`
	Address     string         `gorm:"type:text"`
	Status      SupplierStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes       string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(document, name string) (*Supplier, error) {
	if err := validateDocument(document); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	supplier := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Document:          strings.TrimSpace(document),
		Name:              name,
		Status:            SupplierStatusActive,
	}

	supplier.AddDomainEvent(NewSupplierCreatedEvent(supplier))

	return supplier, nil
}

// Update updates the supplier's basic information
func (s *Supplier) Update(name, contactName, phone, email, address string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT", "Contact name cannot exceed 100 characters")
	}

	s.Name = name
	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.Address = address
	s.Touch()
	s.IncrementVersion()

	return nil
}

// Activate activates the supplier
func (s *Supplier) Activate() {
	s.Status = SupplierStatusActive
	s.Touch()
	s.IncrementVersion()
}

// Deactivate deactivates the supplier
func (s *Supplier) Deactivate() {
	s.Status = SupplierStatusInactive
	s.Touch()
	s.IncrementVersion()
}

// IsActive returns true if the supplier is active
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}
