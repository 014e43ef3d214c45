package catalog

import (
	"fmt"
	"strings"
)

// ValidationError represents a single seed validation problem.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates seed problems into one error value.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return "invalid catalog seed: " + strings.Join(msgs, "; ")
}

// ValidateItems checks a full seed set: ids must be unique and non-empty,
// prices non-negative, categories known, and add-ons well formed.
func ValidateItems(items []MenuItem) []ValidationError {
	var errors []ValidationError

	seen := make(map[string]bool)
	for i, item := range items {
		prefix := fmt.Sprintf("items[%d]", i)

		if strings.TrimSpace(item.ID) == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".id",
				Message: "id is required",
			})
		} else if seen[item.ID] {
			errors = append(errors, ValidationError{
				Field:   prefix + ".id",
				Message: fmt.Sprintf("duplicate id %q", item.ID),
			})
		}
		seen[item.ID] = true

		if strings.TrimSpace(item.Name) == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".name",
				Message: "name is required",
			})
		}

		if item.Price < 0 {
			errors = append(errors, ValidationError{
				Field:   prefix + ".price",
				Message: "price cannot be negative",
			})
		}

		if !item.Category.Valid() {
			errors = append(errors, ValidationError{
				Field:   prefix + ".category",
				Message: fmt.Sprintf("unknown category %q", item.Category),
			})
		}

		for j, addOn := range item.AddOns {
			if strings.TrimSpace(addOn.Name) == "" {
				errors = append(errors, ValidationError{
					Field:   fmt.Sprintf("%s.add_ons[%d].name", prefix, j),
					Message: "add-on name is required",
				})
			}
			if addOn.Price < 0 {
				errors = append(errors, ValidationError{
					Field:   fmt.Sprintf("%s.add_ons[%d].price", prefix, j),
					Message: "add-on price cannot be negative",
				})
			}
		}
	}

	return errors
}

// normalizeItem enforces the customizable invariant: items that cannot
// be customized carry no add-ons.
func normalizeItem(item MenuItem) MenuItem {
	if !item.Customizable {
		item.AddOns = nil
		return item
	}
	if len(item.AddOns) > 0 {
		addOns := make([]AddOn, len(item.AddOns))
		copy(addOns, item.AddOns)
		item.AddOns = addOns
	}
	return item
}
