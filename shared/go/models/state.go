package models

// usStates is the fixed 51-entry enumeration (50 states plus DC)
// accepted by venue and artist forms.
var usStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

var stateSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(usStates))
	for _, s := range usStates {
		set[s] = struct{}{}
	}
	return set
}()

// IsState reports whether code is one of the accepted state codes.
// Matching is exact; no case folding.
func IsState(code string) bool {
	_, ok := stateSet[code]
	return ok
}

// States returns the accepted state codes in form-display order.
func States() []string {
	out := make([]string, len(usStates))
	copy(out, usStates)
	return out
}
