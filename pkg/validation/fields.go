package validation

import (
	"strings"

	"github.com/aldoetobex/hrms-backend/pkg/patterns"
)

// FieldKind is the rule a form field is validated with.
type FieldKind int

const (
	KindUnknown FieldKind = iota
	KindEmail
	KindMobile
	KindAlternateMobile
	KindPincode
	KindPAN
	KindGST
	KindCIN
	KindRegistrationNumber
	KindIFSC
	KindAccountNumber
	KindAccountHolderName
	KindAadhaar
	KindPassport
	KindUAN
	KindESI
	KindSSN
	KindPolicyNumber
	KindSerialNumber
	KindPersonName
	KindAllowanceType
	KindAmount
	KindPercentage
	KindDate
	KindDateOfBirth
	KindWebsite
)

var kindNames = map[FieldKind]string{
	KindUnknown:            "unknown",
	KindEmail:              "email",
	KindMobile:             "mobile",
	KindAlternateMobile:    "alternate_mobile",
	KindPincode:            "pincode",
	KindPAN:                "pan",
	KindGST:                "gst",
	KindCIN:                "cin",
	KindRegistrationNumber: "registration_number",
	KindIFSC:               "ifsc",
	KindAccountNumber:      "account_number",
	KindAccountHolderName:  "account_holder_name",
	KindAadhaar:            "aadhaar",
	KindPassport:           "passport",
	KindUAN:                "uan",
	KindESI:                "esi",
	KindSSN:                "ssn",
	KindPolicyNumber:       "policy_number",
	KindSerialNumber:       "serial_number",
	KindPersonName:         "person_name",
	KindAllowanceType:      "allowance_type",
	KindAmount:             "amount",
	KindPercentage:         "percentage",
	KindDate:               "date",
	KindDateOfBirth:        "date_of_birth",
	KindWebsite:            "website",
}

func (k FieldKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// patternFor maps the kinds that are a plain format check to their pattern.
var patternFor = map[FieldKind]patterns.Pattern{
	KindEmail:              patterns.Email,
	KindMobile:             patterns.Mobile,
	KindAlternateMobile:    patterns.Mobile,
	KindPincode:            patterns.Pincode,
	KindPAN:                patterns.PAN,
	KindGST:                patterns.GST,
	KindCIN:                patterns.CIN,
	KindRegistrationNumber: patterns.RegistrationNumber,
	KindIFSC:               patterns.IFSC,
	KindAccountNumber:      patterns.AccountNumber,
	KindAccountHolderName:  patterns.AccountHolderName,
	KindAadhaar:            patterns.Aadhaar,
	KindPassport:           patterns.Passport,
	KindUAN:                patterns.UAN,
	KindESI:                patterns.ESI,
	KindSSN:                patterns.SSN,
	KindPolicyNumber:       patterns.PolicyNumber,
	KindSerialNumber:       patterns.SerialNumber,
	KindPersonName:         patterns.PersonName,
	KindAllowanceType:      patterns.AllowanceType,
	KindAmount:             patterns.Amount,
	KindWebsite:            patterns.Website,
}

// Field names are matched lowercased on the last non-index path segment.
var fieldKinds = map[string]FieldKind{
	"email":         KindEmail,
	"officialemail": KindEmail,
	"personalemail": KindEmail,
	"companyemail":  KindEmail,

	"mobile":                 KindMobile,
	"mobilenumber":           KindMobile,
	"contactnumber":          KindMobile,
	"phonenumber":            KindMobile,
	"emergencycontactnumber": KindMobile,
	"alternatecontactnumber": KindAlternateMobile,

	"pincode": KindPincode,

	"pan":                KindPAN,
	"pannumber":          KindPAN,
	"gst":                KindGST,
	"gstin":              KindGST,
	"gstnumber":          KindGST,
	"cin":                KindCIN,
	"cinnumber":          KindCIN,
	"registrationnumber": KindRegistrationNumber,

	"ifsc":              KindIFSC,
	"ifsccode":          KindIFSC,
	"accountnumber":     KindAccountNumber,
	"bankaccountnumber": KindAccountNumber,
	"accountholdername": KindAccountHolderName,

	"aadharnumber":   KindAadhaar,
	"aadhaarnumber":  KindAadhaar,
	"passportnumber": KindPassport,
	"uannumber":      KindUAN,
	"pfuannumber":    KindUAN,
	"esinumber":      KindESI,
	"ssn":            KindSSN,
	"ssnnumber":      KindSSN,
	"policynumber":   KindPolicyNumber,
	"serialnumber":   KindSerialNumber,

	"firstname":         KindPersonName,
	"middlename":        KindPersonName,
	"lastname":          KindPersonName,
	"fathername":        KindPersonName,
	"mothername":        KindPersonName,
	"spousename":        KindPersonName,
	"nomineename":       KindPersonName,
	"contactpersonname": KindPersonName,

	"allowancetype": KindAllowanceType,
	"amount":        KindAmount,
	"basicsalary":   KindAmount,
	"ctc":           KindAmount,
	"grosssalary":   KindAmount,
	"hourlyrate":    KindAmount,
	"billingrate":   KindAmount,
	"percentage":    KindPercentage,

	"dateofbirth":              KindDateOfBirth,
	"dateofjoining":            KindDate,
	"dateofonboardingtoclient": KindDate,
	"dateofclientoffboarding":  KindDate,
	"billingstartdate":         KindDate,
	"billingstopdate":          KindDate,

	"website":    KindWebsite,
	"websiteurl": KindWebsite,
}

// Checked in order when no exact name matches.
var fieldSuffixes = []struct {
	suffix string
	kind   FieldKind
}{
	{"pincode", KindPincode},
	{"email", KindEmail},
	{"ifsccode", KindIFSC},
	{"pannumber", KindPAN},
	{"gstnumber", KindGST},
	{"contactnumber", KindMobile},
	{"mobilenumber", KindMobile},
	{"phonenumber", KindMobile},
	{"accountnumber", KindAccountNumber},
	{"amount", KindAmount},
	{"percentage", KindPercentage},
	{"date", KindDate},
}

// baseName returns the lowercased last non-numeric segment of a dot path:
// "employeeSalaryDTO.allowances.0.allowanceType" -> "allowancetype".
func baseName(field string) string {
	segs := splitPath(field)
	for i := len(segs) - 1; i >= 0; i-- {
		if !isIndex(segs[i]) {
			return strings.ToLower(segs[i])
		}
	}
	return ""
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Resolve finds the kind a field path is validated as.
func Resolve(field string) FieldKind {
	name := baseName(field)
	if name == "" {
		return KindUnknown
	}
	if k, ok := fieldKinds[name]; ok {
		return k
	}
	for _, s := range fieldSuffixes {
		if strings.HasSuffix(name, s.suffix) {
			return s.kind
		}
	}
	return KindUnknown
}

// KnownFields lists every exact field name with a rule.
func KnownFields() []string {
	out := make([]string, 0, len(fieldKinds))
	for name := range fieldKinds {
		out = append(out, name)
	}
	return out
}
