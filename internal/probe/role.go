package probe

import (
	"strconv"
	"strings"
)

// rolePrefixes generalizes the teacher's exact-match RoleValidator list:
// here a prefix also matches when followed by a separator and a numeric
// suffix, e.g. "support.1", "admin-2", "team_07".
var rolePrefixes = []string{
	"admin",
	"support",
	"info",
	"sales",
	"contact",
	"help",
	"marketing",
	"team",
	"billing",
	"office",
	"noreply",
	"no-reply",
	"postmaster",
	"webmaster",
	"abuse",
	"hr",
}

// Role reports whether localPart names a role/shared mailbox rather than an
// individual, per §4.2: exact prefix match, or prefix followed by
// "." / "-" / "_" and a digit suffix.
func Role(localPart string) (isRole bool, role string) {
	lp := strings.ToLower(localPart)

	for _, prefix := range rolePrefixes {
		if lp == prefix {
			return true, prefix
		}
		if rest, ok := strings.CutPrefix(lp, prefix); ok && len(rest) > 1 {
			sep, suffix := rest[:1], rest[1:]
			if (sep == "." || sep == "-" || sep == "_") && isDigits(suffix) {
				return true, prefix
			}
		}
	}
	return false, ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}
