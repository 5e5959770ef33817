package types

// Scope represents a named time window for agenda listings
type Scope string

const (
	ScopeToday Scope = "today"
	ScopeWeek  Scope = "week"
	ScopeAll   Scope = "all"
)

// AllScopes returns all valid scopes
func AllScopes() []Scope {
	return []Scope{ScopeToday, ScopeWeek, ScopeAll}
}

// IsValid checks if the scope is valid
func (s Scope) IsValid() bool {
	switch s {
	case ScopeToday, ScopeWeek, ScopeAll:
		return true
	default:
		return false
	}
}

// String returns the string representation of the scope
func (s Scope) String() string {
	return string(s)
}
