package featureflags

import (
	"os"
	"strings"
)

// EnforceAuth forces token verification on every route not explicitly
// marked public, regardless of the per-route auth flag.
const EnforceAuth = "ENFORCE_AUTH"

// Enabled reports whether a flag is switched on via environment
// variable. Flags are read as FLAG_<NAME>=1/true/yes/on.
func Enabled(name string) bool {
	v := os.Getenv("FLAG_" + strings.ToUpper(name))
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
