package domain

// ResponseLength is the user's preferred reply verbosity.
type ResponseLength string

const (
	ResponseShort  ResponseLength = "short"
	ResponseMedium ResponseLength = "medium"
	ResponseLong   ResponseLength = "long"
)

// NormalizeResponseLength coerces any out-of-enum value to medium.
// Invalid preferences are never rejected, only defaulted.
func NormalizeResponseLength(s string) ResponseLength {
	switch ResponseLength(s) {
	case ResponseShort, ResponseMedium, ResponseLong:
		return ResponseLength(s)
	default:
		return ResponseMedium
	}
}

// GenderPreferNotToSay is excluded from agent context even though it is
// a valid stored value.
const GenderPreferNotToSay = "prefer_not_to_say"

// UserProfile holds stored preferences that condition how replies are
// phrased. A profile is overwritten as a whole on every save; CreatedAt
// is carried forward from the prior record.
type UserProfile struct {
	UserID         string         `json:"-"`
	Name           string         `json:"userName"`
	AgeBracket     string         `json:"age"`
	Occupation     string         `json:"occupation"`
	Gender         string         `json:"gender"`
	ResponseLength ResponseLength `json:"responseLength"`
	CreatedAt      string         `json:"createdAt,omitempty"`
	UpdatedAt      string         `json:"updatedAt,omitempty"`
}

// HasContextAttributes reports whether any attribute would appear in the
// agent context block.
func (p UserProfile) HasContextAttributes() bool {
	if p.Name != "" || p.AgeBracket != "" || p.Occupation != "" {
		return true
	}
	return p.Gender != "" && p.Gender != GenderPreferNotToSay
}
