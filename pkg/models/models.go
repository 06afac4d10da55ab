package models

import (
	"time"

	"github.com/google/uuid"
)

/* =============================== Enums ================================== */

// Role defines the type of admin user in the system.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleHR    Role = "hr"
)

// EmployeeStatus defines lifecycle states for an employee.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
	EmployeeExited   EmployeeStatus = "exited"
)

/* =============================== Entities =============================== */

// User is an HR administrator who can sign in.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         Role      `gorm:"type:varchar(20);not null"`
	Name         string
	CreatedAt    time.Time
}

// Organization is the employer or a partner company.
type Organization struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name               string    `gorm:"not null"`
	Email              string    `gorm:"index"`
	ContactNumber      string    `gorm:"index"`
	Website            string
	PanNumber          string `gorm:"index"`
	GstNumber          string `gorm:"index"`
	CinNumber          string `gorm:"index"`
	RegistrationNumber string `gorm:"index"`
	AccountNumber      string
	AccountHolderName  string
	IfscCode           string
	Address            string
	Pincode            string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Client is a company employees can be deployed to.
type Client struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID *uuid.UUID `gorm:"type:uuid;index"`
	Name           string     `gorm:"not null"`
	Email          string     `gorm:"index"`
	ContactNumber  string     `gorm:"index"`
	GstNumber      string     `gorm:"index"`
	Pincode        string
	CreatedAt      time.Time
}

// Employee carries personal, statutory, bank and deployment details.
type Employee struct {
	ID                     uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID         *uuid.UUID `gorm:"type:uuid;index"`
	FirstName              string     `gorm:"not null"`
	LastName               string
	Email                  string `gorm:"index"`
	OfficialEmail          string `gorm:"index"`
	ContactNumber          string `gorm:"index"`
	AlternateContactNumber string
	DateOfBirth            *time.Time     `gorm:"type:date"`
	Status                 EmployeeStatus `gorm:"type:varchar(20);default:'active'"`

	// Statutory
	PanNumber      string `gorm:"index"`
	AadharNumber   string `gorm:"index"`
	PassportNumber string `gorm:"index"`
	UanNumber      string `gorm:"index"`
	EsiNumber      string `gorm:"index"`
	SsnNumber      string `gorm:"index"`
	PolicyNumber   string `gorm:"index"`

	// Bank
	AccountNumber     string `gorm:"index"`
	AccountHolderName string
	IfscCode          string

	// Deployment. Exactly one of ClientID / ClientStatus is set.
	ClientID                 *uuid.UUID `gorm:"type:uuid;index"`
	ClientStatus             string     `gorm:"type:varchar(30)"`
	DateOfJoining            *time.Time `gorm:"type:date"`
	DateOfOnboardingToClient *time.Time `gorm:"type:date"`
	DateOfClientOffboarding  *time.Time `gorm:"type:date"`
	BillingStartDate         *time.Time `gorm:"type:date"`
	BillingStopDate          *time.Time `gorm:"type:date"`

	Allowances []EmployeeAllowance

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployeeAllowance is one salary component.
type EmployeeAllowance struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AllowanceType string    `gorm:"not null"`
	AmountPaise   int64     `gorm:"not null"` // stored in paise to avoid float issues
}

// Asset is company equipment issued to employees.
type Asset struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EmployeeID   *uuid.UUID `gorm:"type:uuid;index"`
	Name         string     `gorm:"not null"`
	SerialNumber string     `gorm:"index"`
	CreatedAt    time.Time
}

// EmployeeHistory is an audit log entry for employee changes.
type EmployeeHistory struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null;index"`  // who performed the action
	Action     string    `gorm:"type:varchar(50);not null"` // e.g. created, updated, client_changed
	Detail     string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// All lists every entity for AutoMigrate.
func All() []any {
	return []any{
		&User{}, &Organization{}, &Client{}, &Employee{},
		&EmployeeAllowance{}, &Asset{}, &EmployeeHistory{},
	}
}
