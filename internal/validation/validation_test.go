package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ng!Passw0rd", false},
		{"too short", "Sh0rt!pw", true},
		{"no uppercase", "all!lower0case12", true},
		{"no lowercase", "ALL!UPPER0CASE12", true},
		{"no digit", "No!Digits!Here!!", true},
		{"no special char", "NoSpecialChar123", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("dr_smith42"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("has spaces"))
	assert.Error(t, ValidateUsername("semi;colon"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("dentist@clinic.example.org"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
}

func TestValidateSellerApplication(t *testing.T) {
	valid := SellerApplicationInput{
		BusinessName:      "Molar Instruments",
		BusinessType:      "manufacturer",
		BusinessEmail:     "contact@molar.example",
		ProductCategories: []string{"Instruments", "Equipment"},
		ExperienceYears:   10,
	}
	assert.NoError(t, ValidateSellerApplication(valid))

	tests := []struct {
		name   string
		mutate func(*SellerApplicationInput)
	}{
		{"missing name", func(in *SellerApplicationInput) { in.BusinessName = "  " }},
		{"missing type", func(in *SellerApplicationInput) { in.BusinessType = "" }},
		{"bad email", func(in *SellerApplicationInput) { in.BusinessEmail = "nope" }},
		{"no categories", func(in *SellerApplicationInput) { in.ProductCategories = nil }},
		{"unknown category", func(in *SellerApplicationInput) { in.ProductCategories = []string{"Groceries"} }},
		{"negative experience", func(in *SellerApplicationInput) { in.ExperienceYears = -1 }},
		{"implausible experience", func(in *SellerApplicationInput) { in.ExperienceYears = 120 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			assert.Error(t, ValidateSellerApplication(in))
		})
	}
}

func TestValidateSellerApplicationAllowsEmptyEmail(t *testing.T) {
	in := SellerApplicationInput{
		BusinessName:      "Quiet Dental Goods",
		BusinessType:      "retailer",
		ProductCategories: []string{"Dental Care"},
	}
	assert.NoError(t, ValidateSellerApplication(in))
}
