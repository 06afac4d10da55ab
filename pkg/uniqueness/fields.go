// Package uniqueness asks the backend whether a field value is already
// held by another record and merges the answer into a validation.Session.
package uniqueness

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownField = errors.New("unknown uniqueness field")

// Field is the kind of value being checked, as named on the wire.
type Field string

const (
	Email              Field = "EMAIL"
	ContactNumber      Field = "CONTACT_NUMBER"
	PANNumber          Field = "PAN_NUMBER"
	GST                Field = "GST"
	AadharNumber       Field = "AADHAR_NUMBER"
	AccountNumber      Field = "ACCOUNT_NUMBER"
	PassportNumber     Field = "PASSPORT_NUMBER"
	PFUANNumber        Field = "PF_UAN_NUMBER"
	ESINumber          Field = "ESI_NUMBER"
	SSNNumber          Field = "SSN_NUMBER"
	PolicyNumber       Field = "POLICY_NUMBER"
	SerialNumber       Field = "SERIAL_NUMBER"
	RegistrationNumber Field = "REGISTRATION_NUMBER"
	CINNumber          Field = "CIN_NUMBER"
	AccountHolderName  Field = "ACCOUNT_HOLDER_NAME"
)

// Below this many characters a value is not checked remotely.
var minLengths = map[Field]int{
	Email:              5,
	ContactNumber:      10,
	PANNumber:          10,
	GST:                15,
	AadharNumber:       12,
	AccountNumber:      9,
	PassportNumber:     8,
	PFUANNumber:        12,
	ESINumber:          10,
	SSNNumber:          9,
	PolicyNumber:       5,
	SerialNumber:       3,
	RegistrationNumber: 5,
	CINNumber:          21,
	AccountHolderName:  3,
}

// Fields lists every supported kind.
func Fields() []Field {
	return []Field{
		Email, ContactNumber, PANNumber, GST, AadharNumber, AccountNumber,
		PassportNumber, PFUANNumber, ESINumber, SSNNumber, PolicyNumber,
		SerialNumber, RegistrationNumber, CINNumber, AccountHolderName,
	}
}

// ParseField accepts the wire name case-insensitively.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := minLengths[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

// MinLength is the default shortest value checked for f.
func (f Field) MinLength() int {
	if n, ok := minLengths[f]; ok {
		return n
	}
	return 3
}

// Mode selects the create or edit endpoint.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Request describes one uniqueness lookup. ExcludeID and FieldColumn are
// only sent in edit mode so a record does not collide with itself.
type Request struct {
	Field       Field
	Value       string
	Mode        Mode
	ExcludeID   string
	FieldColumn string
}
