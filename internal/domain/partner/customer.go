package partner

import (
	"strings"

	"github.com/almacen/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer represents a customer in the partner context
type Customer struct {
	shared.BaseAggregateRoot
	Document string         `gorm:"type:varchar(50);not null;uniqueIndex"` // Cedula or NIT
	Name     string         `gorm:"type:varchar(200);not null"`
	Phone    string         `gorm:"type:varchar(50);index"`
	Email    string         `gorm:"type:varchar(200);index"`
	Address  string         `gorm:"type:text"`
	Status   CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes    string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(document, name string) (*Customer, error) {
	if err := validateDocument(document); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Document:          strings.TrimSpace(document),
		Name:              name,
		Status:            CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name, phone, email, address string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	c.Name = name
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Activate activates the customer
func (c *Customer) Activate() {
	c.Status = CustomerStatusActive
	c.Touch()
	c.IncrementVersion()
}

// Deactivate deactivates the customer
func (c *Customer) Deactivate() {
	c.Status = CustomerStatusInactive
	c.Touch()
	c.IncrementVersion()
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// validateDocument validates a customer or supplier document number
func validateDocument(document string) error {
	document = strings.TrimSpace(document)
	if document == "" {
		return shared.NewDomainError("INVALID_DOCUMENT", "Document cannot be empty")
	}
	if len(document) > 50 {
		return shared.NewDomainError("INVALID_DOCUMENT", "Document cannot exceed 50 characters")
	}
	return nil
}

// validatePartnerName validates a partner name
func validatePartnerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
