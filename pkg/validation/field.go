package validation

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/aldoetobex/hrms-backend/pkg/patterns"
)

var ErrUnknownField = errors.New("unknown field")

const (
	MsgUnrecognizedField = "Unrecognized field"
	MsgInvalidDate       = "Enter a valid date in YYYY-MM-DD format"
	MsgDOBInFuture       = "Date of birth cannot be in the future"
	MsgDOBAfterJoining   = "Date of birth must be before date of joining"
	MsgUnderage          = "Employee must be at least 18 years old"
	MsgSameAsContact     = "Alternate contact number must differ from contact number"
	MsgPercentage        = "Percentage must be between 0 and 100"

	minAgeYears = 18
)

// FieldValidator maps (field, value, snapshot) to an error message.
// The empty string means valid; empty values are always valid here since
// required-ness is enforced on submit.
type FieldValidator struct {
	// Strict rejects fields with no rule instead of passing them.
	Strict bool

	now    func() time.Time
	warned sync.Map
}

func NewFieldValidator() *FieldValidator {
	return &FieldValidator{now: time.Now}
}

// Default is the permissive validator used by ValidateField.
var Default = NewFieldValidator()

// ValidateField runs Default.Validate.
func ValidateField(field string, value any, snap Snapshot) string {
	return Default.Validate(field, value, snap)
}

// Validate returns the error message for value, or "" when it is valid.
// Unknown fields pass with a one-time warning unless Strict is set.
func (v *FieldValidator) Validate(field string, value any, snap Snapshot) string {
	msg, err := v.Check(field, value, snap)
	if errors.Is(err, ErrUnknownField) {
		if v.Strict {
			return MsgUnrecognizedField
		}
		if _, seen := v.warned.LoadOrStore(baseName(field), true); !seen {
			log.Warnw("no validation rule for field", "field", field)
		}
		return ""
	}
	return msg
}

// Check is Validate with unknown fields reported as ErrUnknownField.
func (v *FieldValidator) Check(field string, value any, snap Snapshot) (string, error) {
	kind := Resolve(field)
	if kind == KindUnknown {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	s := toString(value)
	if s == "" {
		return "", nil
	}
	return v.rule(kind, field, s, snap), nil
}

func (v *FieldValidator) rule(kind FieldKind, field, s string, snap Snapshot) string {
	switch kind {
	case KindDate:
		if _, ok := ParseDate(s); !ok {
			return MsgInvalidDate
		}
		return ""

	case KindDateOfBirth:
		dob, ok := ParseDate(s)
		if !ok {
			return MsgInvalidDate
		}
		now := v.clock()
		if dob.After(now) {
			return MsgDOBInFuture
		}
		if dob.AddDate(minAgeYears, 0, 0).After(now) {
			return MsgUnderage
		}
		if j, ok := lookup(snap, sibling(field, KeyJoining)); ok {
			if join, ok := ParseDate(j); ok && !dob.Before(join) {
				return MsgDOBAfterJoining
			}
		}
		return ""

	case KindAlternateMobile:
		if !patterns.Mobile.Match(s) {
			return patterns.Mobile.Message
		}
		if c, ok := lookup(snap, sibling(field, "contactNumber")); ok && c == s {
			return MsgSameAsContact
		}
		return ""

	case KindPercentage:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 || f > 100 {
			return MsgPercentage
		}
		return ""
	}

	p, ok := patternFor[kind]
	if !ok || p.Match(s) {
		return ""
	}
	return p.Message
}

func (v *FieldValidator) clock() time.Time {
	if v.now == nil {
		return time.Now()
	}
	return v.now()
}
