package sanitize

// Rule maps a case-insensitive substring pattern to a safe user-facing
// message. Rules are evaluated in order; the first match wins.
type Rule struct {
	Pattern string
	Message string
}

// FallbackMessage is returned when no rule matches and verbose mode is off.
const FallbackMessage = "An unexpected error occurred. Please try again."

// DefaultRules returns the built-in classification table. Ordering matters:
// specific patterns precede broad ones within each family, and the
// authentication family precedes storage and transport.
func DefaultRules() []Rule {
	return []Rule{
		// Authentication failures.
		{Pattern: "invalid login credentials", Message: "Invalid email or password."},
		{Pattern: "invalid credentials", Message: "Invalid email or password."},
		{Pattern: "user not found", Message: "Invalid email or password."},
		{Pattern: "email not confirmed", Message: "Please verify your email address before signing in."},
		{Pattern: "too many requests", Message: "Too many attempts. Please wait a moment and try again."},
		{Pattern: "rate limit", Message: "Too many attempts. Please wait a moment and try again."},
		{Pattern: "invalid email", Message: "Please enter a valid email address."},
		{Pattern: "password should be", Message: "Password does not meet the security requirements."},
		{Pattern: "weak password", Message: "Password does not meet the security requirements."},

		// Storage constraint violations.
		{Pattern: "duplicate key", Message: "This record already exists."},
		{Pattern: "unique constraint", Message: "This record already exists."},
		{Pattern: "already registered", Message: "This record already exists."},
		{Pattern: "foreign key", Message: "This operation references data that no longer exists."},
		{Pattern: "violates check constraint", Message: "The provided data is invalid."},
		{Pattern: "null value", Message: "A required field is missing."},
		{Pattern: "not-null", Message: "A required field is missing."},

		// Transport failures.
		{Pattern: "failed to fetch", Message: "Network error. Please check your connection and try again."},
		{Pattern: "connection refused", Message: "Unable to reach the server. Please try again."},
		{Pattern: "timeout", Message: "The request timed out. Please try again."},
		{Pattern: "timed out", Message: "The request timed out. Please try again."},
		{Pattern: "network", Message: "Network error. Please check your connection and try again."},
	}
}
