package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldoetobex/hrms-backend/pkg/patterns"
)

func fixedValidator(now string) *FieldValidator {
	t, _ := time.Parse(time.DateOnly, now)
	fv := NewFieldValidator()
	fv.now = func() time.Time { return t }
	return fv
}

func TestResolve(t *testing.T) {
	tests := []struct {
		field string
		want  FieldKind
	}{
		{"panNumber", KindPAN},
		{"PANNUMBER", KindPAN},
		{"employeeSalaryDTO.allowances.0.allowanceType", KindAllowanceType},
		{"employeeSalaryDTO.allowances[2].amount", KindAmount},
		{"address.permanentPincode", KindPincode},
		{"bankDetails.ifscCode", KindIFSC},
		{"reportingManagerEmail", KindEmail},
		{"effectiveDate", KindDate},
		{"favouriteColour", KindUnknown},
		{"", KindUnknown},
		{"0.1", KindUnknown},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Resolve(tc.field), tc.field)
	}
}

func TestValidate_PAN(t *testing.T) {
	fv := NewFieldValidator()
	for _, s := range []string{"ABCDE1234F", "ZZZZZ0000Z"} {
		assert.Empty(t, fv.Validate("panNumber", s, nil), s)
	}
	for _, s := range []string{"abcde1234f", "ABCDE1234", "1234567890", "ABCDE12345", "ABCD-1234F"} {
		assert.Equal(t, patterns.PAN.Message, fv.Validate("panNumber", s, nil), s)
	}
}

func TestValidate_EmptyIsValidForEveryKnownField(t *testing.T) {
	fv := NewFieldValidator()
	fv.Strict = true
	for _, f := range KnownFields() {
		assert.Empty(t, fv.Validate(f, "", MapSnapshot{}), f)
		assert.Empty(t, fv.Validate(f, "   ", MapSnapshot{}), f)
		assert.Empty(t, fv.Validate(f, nil, MapSnapshot{}), f)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	fv := fixedValidator("2025-06-01")
	snap := MapSnapshot{"dateOfJoining": "2020-01-01", "contactNumber": "9876543210"}
	cases := []struct {
		field string
		value any
	}{
		{"panNumber", "bad"},
		{"dateOfBirth", "2021-01-01"},
		{"alternateContactNumber", "9876543210"},
		{"unknownThing", "x"},
	}
	for _, c := range cases {
		first := fv.Validate(c.field, c.value, snap)
		assert.Equal(t, first, fv.Validate(c.field, c.value, snap), c.field)
	}
}

func TestValidate_NestedPathDispatchesOnBaseName(t *testing.T) {
	fv := NewFieldValidator()
	assert.Equal(t, patterns.AllowanceType.Message,
		fv.Validate("employeeSalaryDTO.allowances.0.allowanceType", "HRA#1", nil))
	assert.Empty(t, fv.Validate("employeeSalaryDTO.allowances.0.allowanceType", "House Rent", nil))
	assert.Equal(t, patterns.Amount.Message,
		fv.Validate("employeeSalaryDTO.allowances.0.amount", "12.345", nil))
	assert.Empty(t, fv.Validate("employeeSalaryDTO.allowances.0.amount", 1500.5, nil))
}

func TestValidate_UnknownField(t *testing.T) {
	fv := NewFieldValidator()
	assert.Empty(t, fv.Validate("favouriteColour", "anything at all", nil))

	msg, err := fv.Check("favouriteColour", "x", nil)
	require.ErrorIs(t, err, ErrUnknownField)
	assert.Empty(t, msg)

	fv.Strict = true
	assert.Equal(t, MsgUnrecognizedField, fv.Validate("favouriteColour", "x", nil))
}

func TestValidate_Dates(t *testing.T) {
	fv := fixedValidator("2025-06-01")

	assert.Empty(t, fv.Validate("dateOfJoining", "2024-02-29", nil))
	assert.Equal(t, MsgInvalidDate, fv.Validate("dateOfJoining", "2023-02-29", nil))
	assert.Equal(t, MsgInvalidDate, fv.Validate("billingStopDate", "01/02/2024", nil))

	assert.Equal(t, MsgDOBInFuture, fv.Validate("dateOfBirth", "2026-01-01", nil))
	assert.Equal(t, MsgUnderage, fv.Validate("dateOfBirth", "2010-01-01", nil))
	assert.Empty(t, fv.Validate("dateOfBirth", "1990-05-20", nil))

	snap := MapSnapshot{"dateOfJoining": "1990-01-01"}
	assert.Equal(t, MsgDOBAfterJoining, fv.Validate("dateOfBirth", "1990-05-20", snap))
}

func TestValidate_AlternateContactReadsSibling(t *testing.T) {
	fv := NewFieldValidator()
	snap := MapSnapshot{
		"emergency": map[string]any{"contactNumber": "9876543210"},
	}
	assert.Equal(t, MsgSameAsContact, fv.Validate("emergency.alternateContactNumber", "9876543210", snap))
	assert.Empty(t, fv.Validate("emergency.alternateContactNumber", "9876543211", snap))
	assert.Equal(t, patterns.Mobile.Message, fv.Validate("alternateContactNumber", "12345", snap))
}

func TestValidate_Percentage(t *testing.T) {
	fv := NewFieldValidator()
	assert.Empty(t, fv.Validate("taxPercentage", "18", nil))
	assert.Empty(t, fv.Validate("taxPercentage", 12.5, nil))
	assert.Equal(t, MsgPercentage, fv.Validate("taxPercentage", "101", nil))
	assert.Equal(t, MsgPercentage, fv.Validate("taxPercentage", "abc", nil))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ABCDE1234F", Normalize("panNumber", " abcde 1234f "))
	assert.Equal(t, "hr@acme.in", Normalize("officialEmail", "HR@Acme.IN"))
	assert.Equal(t, "9876543210", Normalize("contactNumber", "+91 98765-43210"))
	assert.Equal(t, "234567890123", Normalize("aadharNumber", "2345 6789 0123"))
	assert.Equal(t, "Free text", Normalize("remarks", " Free text "))
}

func TestMapSnapshot_Lookup(t *testing.T) {
	snap := MapSnapshot{
		"employeeSalaryDTO": map[string]any{
			"allowances": []any{
				map[string]any{"amount": float64(2500)},
			},
		},
		"name": "  Asha ",
		"nil":  nil,
	}
	v, ok := snap.Lookup("employeeSalaryDTO.allowances.0.amount")
	require.True(t, ok)
	assert.Equal(t, "2500", v)

	v, ok = snap.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, "Asha", v)

	_, ok = snap.Lookup("employeeSalaryDTO.allowances.3.amount")
	assert.False(t, ok)
	_, ok = snap.Lookup("nil")
	assert.False(t, ok)
}

func TestValidateField_PermissiveDefault(t *testing.T) {
	assert.Empty(t, ValidateField("favouriteColour", "blue", nil))
	assert.Equal(t, patterns.GST.Message, ValidateField("gstNumber", "22ABCDE1234F1Y5", nil))
	assert.Empty(t, ValidateField("bankDetails.accountNumber", 123456789012, nil))
}
