package validation

import (
	"fmt"
	"strings"
)

// ProductCategories is the fixed set of marketplace categories a seller may
// declare on an application.
var ProductCategories = []string{
	"Orthodontics",
	"Equipment",
	"Dental Care",
	"Surgery",
	"Cosmetic",
	"Instruments",
}

var productCategorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ProductCategories))
	for _, c := range ProductCategories {
		m[c] = struct{}{}
	}
	return m
}()

// SellerApplicationInput is the validated subset of a seller application form.
type SellerApplicationInput struct {
	BusinessName      string
	BusinessType      string
	BusinessEmail     string
	ProductCategories []string
	ExperienceYears   int
}

// ValidateSellerApplication checks required fields and category membership.
func ValidateSellerApplication(in SellerApplicationInput) error {
	if strings.TrimSpace(in.BusinessName) == "" {
		return fmt.Errorf("business_name is required")
	}
	if strings.TrimSpace(in.BusinessType) == "" {
		return fmt.Errorf("business_type is required")
	}
	if in.BusinessEmail != "" {
		if err := ValidateEmail(in.BusinessEmail); err != nil {
			return fmt.Errorf("business_email: %w", err)
		}
	}
	if in.ExperienceYears < 0 || in.ExperienceYears > 80 {
		return fmt.Errorf("experience_years must be between 0 and 80")
	}
	if len(in.ProductCategories) == 0 {
		return fmt.Errorf("at least one product category is required")
	}
	for _, c := range in.ProductCategories {
		if _, ok := productCategorySet[c]; !ok {
			return fmt.Errorf("unknown product category %q", c)
		}
	}
	return nil
}
