// Package patterns holds the canonical formats of HR domain fields
// together with the message shown when a value does not match.
package patterns

import "regexp"

// Pattern pairs a format with its human-readable error message.
type Pattern struct {
	Name    string
	Regexp  *regexp.Regexp
	Message string
}

// Match reports whether s is in the pattern's format.
func (p Pattern) Match(s string) bool { return p.Regexp.MatchString(s) }

func def(name, expr, msg string) Pattern {
	return Pattern{Name: name, Regexp: regexp.MustCompile(expr), Message: msg}
}

/* ============================= Contact ================================= */

var (
	Email = def("email",
		`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`,
		"Enter a valid email address")

	// Indian mobile: 10 digits starting 6-9.
	Mobile = def("mobile",
		`^[6-9][0-9]{9}$`,
		"Enter a valid 10-digit mobile number starting with 6, 7, 8 or 9")

	Pincode = def("pincode",
		`^[0-9]{6}$`,
		"Pincode must be exactly 6 digits")
)

/* ============================ Tax & company ============================ */

var (
	// 5 letters, 4 digits, 1 letter. e.g. ABCDE1234F
	PAN = def("pan",
		`^[A-Z]{5}[0-9]{4}[A-Z]$`,
		"PAN must be 5 letters, 4 digits and 1 letter (e.g. ABCDE1234F)")

	// State code, PAN, entity number, 'Z', checksum.
	GST = def("gst",
		`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`,
		"GST number must be a valid 15-character GSTIN (e.g. 22ABCDE1234F1Z5)")

	// Listing status, industry code, state, year, ownership, registration number.
	CIN = def("cin",
		`^[LU][0-9]{5}[A-Z]{2}[0-9]{4}[A-Z]{3}[0-9]{6}$`,
		"CIN must be a valid 21-character corporate identification number")

	RegistrationNumber = def("registration_number",
		`^[A-Za-z0-9/\-]{5,30}$`,
		"Registration number must be 5-30 letters, digits, '/' or '-'")
)

/* =============================== Banking =============================== */

var (
	// 4 letters, a zero, 6 alphanumerics.
	IFSC = def("ifsc",
		`^[A-Z]{4}0[A-Z0-9]{6}$`,
		"IFSC must be 4 letters, followed by 0 and 6 letters or digits (e.g. SBIN0001234)")

	AccountNumber = def("account_number",
		`^[0-9]{9,18}$`,
		"Account number must be 9 to 18 digits")

	AccountHolderName = def("account_holder_name",
		`^[A-Za-z][A-Za-z .']{1,99}$`,
		"Account holder name may contain only letters, spaces, full stops and apostrophes")
)

/* ========================= Identity & statutory ======================== */

var (
	Aadhaar = def("aadhaar",
		`^[2-9][0-9]{11}$`,
		"Aadhaar number must be 12 digits and cannot start with 0 or 1")

	Passport = def("passport",
		`^[A-Z][0-9]{7}$`,
		"Passport number must be 1 letter followed by 7 digits")

	UAN = def("uan",
		`^[0-9]{12}$`,
		"PF UAN must be exactly 12 digits")

	ESI = def("esi",
		`^([0-9]{10}|[0-9]{17})$`,
		"ESI number must be 10 or 17 digits")

	SSN = def("ssn",
		`^[0-9]{3}-?[0-9]{2}-?[0-9]{4}$`,
		"SSN must be 9 digits (e.g. 123-45-6789)")

	PolicyNumber = def("policy_number",
		`^[A-Za-z0-9/\-]{5,25}$`,
		"Policy number must be 5-25 letters, digits, '/' or '-'")

	SerialNumber = def("serial_number",
		`^[A-Za-z0-9\-]{3,30}$`,
		"Serial number must be 3-30 letters, digits or '-'")
)

/* ================================ Misc ================================= */

var (
	PersonName = def("person_name",
		`^[A-Za-z][A-Za-z .'\-]{0,79}$`,
		"Name may contain only letters, spaces, full stops, apostrophes and hyphens")

	AllowanceType = def("allowance_type",
		`^[A-Za-z][A-Za-z &/\-]{1,49}$`,
		"Allowance type may contain only letters, spaces, '&', '/' and '-'")

	// Non-negative, at most two decimals.
	Amount = def("amount",
		`^[0-9]{1,12}(\.[0-9]{1,2})?$`,
		"Enter a valid amount (up to 2 decimal places)")

	ISODate = def("iso_date",
		`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`,
		"Enter a valid date in YYYY-MM-DD format")

	Website = def("website",
		`^(https?://)?[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}(/\S*)?$`,
		"Enter a valid website address")
)

// All lists every pattern, in declaration order.
func All() []Pattern {
	return []Pattern{
		Email, Mobile, Pincode,
		PAN, GST, CIN, RegistrationNumber,
		IFSC, AccountNumber, AccountHolderName,
		Aadhaar, Passport, UAN, ESI, SSN, PolicyNumber, SerialNumber,
		PersonName, AllowanceType, Amount, ISODate, Website,
	}
}

// ByName finds a pattern by its Name.
func ByName(name string) (Pattern, bool) {
	for _, p := range All() {
		if p.Name == name {
			return p, true
		}
	}
	return Pattern{}, false
}
