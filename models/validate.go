package models

import (
	"fmt"
	"strings"
)

// FieldError is one failed validation rule, addressed to the form field that
// caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NormalizeCardInput trims whitespace and collapses the two "no image"
// spellings into one: a storage key without a URL is dropped, so an empty URL
// always means no file is stored. A URL without a key is left for
// ValidateSetInput to reject.
func NormalizeCardInput(in CardInput) CardInput {
	in.Term = strings.TrimSpace(in.Term)
	in.Definition = strings.TrimSpace(in.Definition)
	in.TermURL = strings.TrimSpace(in.TermURL)
	in.TermKey = strings.TrimSpace(in.TermKey)
	in.DefinitionURL = strings.TrimSpace(in.DefinitionURL)
	in.DefinitionKey = strings.TrimSpace(in.DefinitionKey)

	if in.TermURL == "" {
		in.TermKey = ""
	}
	if in.DefinitionURL == "" {
		in.DefinitionKey = ""
	}
	return in
}

// NormalizeCardInputs applies NormalizeCardInput to every submitted card.
func NormalizeCardInputs(cards []CardInput) []CardInput {
	out := make([]CardInput, len(cards))
	for i, c := range cards {
		out[i] = NormalizeCardInput(c)
	}
	return out
}

// ValidateSetInput checks a submitted set against the data model rules:
// non-empty name, at least one card, term and definition on every card, and a
// storage key for every attached image. Inputs should be normalized first.
// An empty result means the set may be persisted.
func ValidateSetInput(name string, cards []CardInput) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	}
	if len(cards) == 0 {
		errs = append(errs, FieldError{Field: "cards", Message: "At least one card is required"})
	}

	for i, card := range cards {
		if card.Term == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("cards[%d].term", i),
				Message: "Term is required",
			})
		}
		if card.Definition == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("cards[%d].definition", i),
				Message: "Definition is required",
			})
		}
		if card.TermURL != "" && card.TermKey == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("cards[%d].termKey", i),
				Message: "Image key is required when an image is attached",
			})
		}
		if card.DefinitionURL != "" && card.DefinitionKey == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("cards[%d].definitionKey", i),
				Message: "Image key is required when an image is attached",
			})
		}
	}

	return errs
}

// ValidateFolderInput checks a submitted folder name and color.
func ValidateFolderInput(name, color string) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	}
	if _, ok := ParseColor(color); !ok {
		errs = append(errs, FieldError{Field: "color", Message: "Color must be one of the palette values"})
	}

	return errs
}
