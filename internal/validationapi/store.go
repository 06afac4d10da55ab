package validationapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aldoetobex/hrms-backend/pkg/uniqueness"
)

var (
	ErrColumnNotAllowed = errors.New("column not allowed for field")
	ErrInvalidExcludeID = errors.New("invalid excludeId")
)

type column struct {
	table string
	name  string
}

// columns whitelists where each field kind must be unique. Column names are
// interpolated into SQL, so they only ever come from this table.
var columns = map[uniqueness.Field][]column{
	uniqueness.Email: {
		{"employees", "email"}, {"employees", "official_email"},
		{"organizations", "email"}, {"clients", "email"},
	},
	uniqueness.ContactNumber: {
		{"employees", "contact_number"}, {"organizations", "contact_number"}, {"clients", "contact_number"},
	},
	uniqueness.PANNumber:          {{"employees", "pan_number"}, {"organizations", "pan_number"}},
	uniqueness.GST:                {{"organizations", "gst_number"}, {"clients", "gst_number"}},
	uniqueness.AadharNumber:       {{"employees", "aadhar_number"}},
	uniqueness.AccountNumber:      {{"employees", "account_number"}, {"organizations", "account_number"}},
	uniqueness.PassportNumber:     {{"employees", "passport_number"}},
	uniqueness.PFUANNumber:        {{"employees", "uan_number"}},
	uniqueness.ESINumber:          {{"employees", "esi_number"}},
	uniqueness.SSNNumber:          {{"employees", "ssn_number"}},
	uniqueness.PolicyNumber:       {{"employees", "policy_number"}},
	uniqueness.SerialNumber:       {{"assets", "serial_number"}},
	uniqueness.RegistrationNumber: {{"organizations", "registration_number"}},
	uniqueness.CINNumber:          {{"organizations", "cin_number"}},
	uniqueness.AccountHolderName:  {{"employees", "account_holder_name"}, {"organizations", "account_holder_name"}},
}

// Store answers uniqueness questions from the database. It implements
// uniqueness.Client so the same Checker runs in handlers and remotely.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Exists(ctx context.Context, req uniqueness.Request) (bool, error) {
	cols, err := resolveColumns(req.Field, req.FieldColumn)
	if err != nil {
		return false, err
	}

	var exclude *uuid.UUID
	if req.Mode == uniqueness.ModeEdit && req.ExcludeID != "" {
		id, err := uuid.Parse(req.ExcludeID)
		if err != nil {
			return false, fmt.Errorf("%w: %q", ErrInvalidExcludeID, req.ExcludeID)
		}
		exclude = &id
	}

	value := strings.TrimSpace(req.Value)
	for _, col := range cols {
		q := s.db.WithContext(ctx).
			Table(col.table).
			Where(fmt.Sprintf("LOWER(%s) = LOWER(?)", col.name), value)
		if exclude != nil {
			q = q.Where("id <> ?", *exclude)
		}
		var cnt int64
		if err := q.Count(&cnt).Error; err != nil {
			return false, err
		}
		if cnt > 0 {
			return true, nil
		}
	}
	return false, nil
}

// resolveColumns narrows the field's columns to fieldColumn when given.
// fieldColumn may be "pan_number", "panNumber" or "employees.pan_number".
func resolveColumns(f uniqueness.Field, fieldColumn string) ([]column, error) {
	cols, ok := columns[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", uniqueness.ErrUnknownField, f)
	}
	fieldColumn = strings.TrimSpace(fieldColumn)
	if fieldColumn == "" {
		return cols, nil
	}

	table, name := "", toSnake(fieldColumn)
	if i := strings.LastIndex(fieldColumn, "."); i >= 0 {
		table, name = fieldColumn[:i], toSnake(fieldColumn[i+1:])
	}

	var out []column
	for _, c := range cols {
		if c.name == name && (table == "" || c.table == table) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s %q", ErrColumnNotAllowed, f, fieldColumn)
	}
	return out, nil
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
