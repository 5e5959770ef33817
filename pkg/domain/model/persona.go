package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultPersonaName is used when no persona file is configured
const DefaultPersonaName = "Raziel"

// Persona describes how the assistant presents itself: the display name used
// in replies, the nickname prefixes that count as a direct mention, and
// optional extra guidance appended to the completion system prompt.
type Persona struct {
	Name      string   `toml:"name"`
	Nicknames []string `toml:"nicknames"`
	Guidance  string   `toml:"guidance"`
}

// DefaultPersona returns the built-in persona
func DefaultPersona() *Persona {
	return &Persona{
		Name:      DefaultPersonaName,
		Nicknames: []string{strings.ToLower(DefaultPersonaName)},
	}
}

// Validate checks if the persona is valid
func (p *Persona) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return goerr.New("persona name is required")
	}
	for i, n := range p.Nicknames {
		if strings.TrimSpace(n) == "" {
			return goerr.New("persona nickname must not be empty", goerr.V("index", i))
		}
	}
	return nil
}

// MentionForms returns every textual form that counts as addressing the
// assistant by name, lowercased for case-insensitive prefix matching.
func (p *Persona) MentionForms() []string {
	forms := make([]string, 0, len(p.Nicknames)+1)
	forms = append(forms, strings.ToLower(p.Name))
	for _, n := range p.Nicknames {
		forms = append(forms, strings.ToLower(n))
	}
	return forms
}
