package services

import (
	"strings"

	"catalog-service/apperrors"
	"catalog-service/models"
)

// ValidateVariants checks and normalizes a product's variants in place:
// attribute labels must be unique per product (case-insensitive), options
// are deduplicated and upper-cased, and every variant's quantity map must
// carry exactly one non-negative count per normalized option.
func ValidateVariants(variants []models.Variant) error {
	seen := make(map[string]bool, len(variants))

	for i := range variants {
		v := &variants[i]

		attribute := strings.ToLower(strings.TrimSpace(v.Attribute))
		if seen[attribute] {
			return apperrors.BadRequest("Duplicate attribute", "Duplicate attribute: "+v.Attribute)
		}
		seen[attribute] = true

		if len(v.Options) == 0 || v.Quantity == nil {
			return apperrors.BadRequest("Invalid options and Quantity",
				"One or more product variants have an invalid option/quantity combination")
		}

		options := dedupeUpper(v.Options)

		quantity := make(map[string]int, len(v.Quantity))
		for option, count := range v.Quantity {
			quantity[strings.ToUpper(option)] = count
		}

		if len(quantity) != len(options) {
			return apperrors.BadRequest("Invalid options and Quantity",
				"One or more product variants have an invalid option/quantity combination")
		}
		for _, option := range options {
			if _, ok := quantity[option]; !ok {
				return apperrors.BadRequest("Invalid options and Quantity",
					"One or more product variants have an invalid option/quantity combination")
			}
		}

		for _, count := range quantity {
			if count < 0 {
				return apperrors.BadRequest("Invalid quantity value",
					"One or more product variants have an invalid quantity value")
			}
		}

		v.Options = options
		v.Quantity = quantity
	}

	return nil
}

func dedupeUpper(options []string) []string {
	seen := make(map[string]bool, len(options))
	deduped := make([]string, 0, len(options))
	for _, option := range options {
		upper := strings.ToUpper(option)
		if !seen[upper] {
			seen[upper] = true
			deduped = append(deduped, upper)
		}
	}
	return deduped
}
