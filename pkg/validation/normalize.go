package validation

import "strings"

var stripSpacing = strings.NewReplacer(" ", "", "-", "")

// Normalize is the formatter applied to raw input before validation.
func Normalize(field string, value string) string {
	value = strings.TrimSpace(value)
	switch Resolve(field) {
	case KindPAN, KindGST, KindCIN, KindIFSC, KindPassport:
		return strings.ToUpper(strings.ReplaceAll(value, " ", ""))
	case KindEmail:
		return strings.ToLower(value)
	case KindMobile, KindAlternateMobile:
		value = stripSpacing.Replace(value)
		if len(value) == 13 && strings.HasPrefix(value, "+91") {
			value = value[3:]
		}
		return value
	case KindAadhaar, KindAccountNumber, KindUAN, KindESI:
		return stripSpacing.Replace(value)
	case KindPincode:
		return strings.ReplaceAll(value, " ", "")
	}
	return value
}
