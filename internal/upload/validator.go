package upload

import (
	"fmt"
	"strings"
)

type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// ValidateGroup runs every field rule over one request group and collects
// all failing messages; it never short-circuits on the first defect. It is
// a pure function over the group, so the empty-parts rule is checked even
// though the grouper cannot produce such a group.
func ValidateGroup(group *RequestGroup) ValidationResult {
	var errs []string

	if strings.TrimSpace(group.ShipmentNumber) == "" {
		errs = append(errs, "Shipment number is required")
	}
	if len(group.Parts) == 0 {
		errs = append(errs, "At least one part with quantity is required")
	}

	for i, part := range group.Parts {
		if strings.TrimSpace(part.PartNumber) == "" {
			errs = append(errs, fmt.Sprintf("Part number is required for part %d", i+1))
		}
		if part.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("Valid quantity is required for part %d", i+1))
		}
		if strings.TrimSpace(part.TrailerNumber) == "" {
			errs = append(errs, fmt.Sprintf("Trailer number is required for part %d", i+1))
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
