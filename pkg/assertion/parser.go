package assertion

import "strings"

// ParseCorrespondence splits a compact correspondence reference of
// the form "name:arg" into its components. If no colon is present
// the entire string is the name and arg is "". An empty reference
// means "equal".
//
// Examples:
//
//	"tolerance:0.01"   -> ("tolerance", "0.01")
//	"case_insensitive" -> ("case_insensitive", "")
//	""                 -> ("equal", "")
func ParseCorrespondence(s string) (name, arg string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCorrespondence, ""
	}
	name, arg, _ = strings.Cut(s, ":")
	return strings.TrimSpace(name), strings.TrimSpace(arg)
}
