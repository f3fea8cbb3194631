package config

// Range bounds a string field's length.
type Range struct {
	Min int
	Max int
}

// Limits are the request field bounds the HTTP layer validates against and
// the domain re-checks defensively.
type Limits struct {
	Name        Range
	Email       Range
	PhoneNSN    Range
	Password    Range
	DeviceToken Range
}

// DefaultLimits returns the fixed field bounds.
func DefaultLimits() Limits {
	return Limits{
		Name:        Range{Min: 8, Max: 64},
		Email:       Range{Min: 6, Max: 256},
		PhoneNSN:    Range{Min: 4, Max: 13},
		Password:    Range{Min: 8, Max: 64},
		DeviceToken: Range{Min: 0, Max: 1024},
	}
}

// Contains reports whether n falls inside the range.
func (r Range) Contains(n int) bool { return n >= r.Min && n <= r.Max }
