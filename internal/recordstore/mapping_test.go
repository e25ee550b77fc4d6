package recordstore

import (
	"testing"

	"github.com/harborlight/intake/internal/form"
)

func TestBuildFieldsSkipsEmptyValues(t *testing.T) {
	fields := BuildFields(form.TransactionFormData{})
	if len(fields) != 0 {
		t.Fatalf("expected no fields for empty form data, got %v", fields)
	}
}

func TestBuildFieldsCoercesNumericFields(t *testing.T) {
	fields := BuildFields(form.TransactionFormData{
		PropertyData: &form.PropertyData{SalePrice: "$350,000.00"},
		CommissionData: &form.CommissionData{
			TotalCommissionPercent: "6.0",
		},
	})
	if got := fields[FieldSalePrice]; got != 350000.0 {
		t.Fatalf("sale price = %v (%T), want 350000.0", got, got)
	}
	if got := fields[FieldTotalPercent]; got != 6.0 {
		t.Fatalf("total percent = %v (%T), want 6.0", got, got)
	}
}

func TestBuildFieldsDropsUnparseableNumbers(t *testing.T) {
	fields := BuildFields(form.TransactionFormData{
		PropertyData: &form.PropertyData{SalePrice: "call for price"},
	})
	if _, ok := fields[FieldSalePrice]; ok {
		t.Fatalf("expected unparseable sale price to be dropped, got %v", fields[FieldSalePrice])
	}
}

func TestBuildFieldsFormatsPhone(t *testing.T) {
	fields := BuildFields(form.TransactionFormData{
		AgentData: &form.AgentData{Phone: "1 512 555 1234"},
	})
	if got := fields[FieldAgentPhone]; got != "(512) 555-1234" {
		t.Fatalf("phone = %v, want (512) 555-1234", got)
	}
}

func TestBuildFieldsBooleanCoercion(t *testing.T) {
	fields := BuildFields(form.TransactionFormData{
		PropertyDetailsData: &form.PropertyDetailsData{
			HomeWarranty:       true,
			ResaleCertRequired: false,
		},
	})
	if got := fields[FieldHomeWarranty]; got != true {
		t.Fatalf("home warranty = %v, want true", got)
	}
	// False toggles are empty values and must be skipped, not written.
	if _, ok := fields[FieldResaleCert]; ok {
		t.Fatal("expected false toggle to be skipped")
	}
}

func TestFormatPhoneNumberPassThrough(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5125551234", "(512) 555-1234"},
		{"15125551234", "(512) 555-1234"},
		{"555-1234", "555-1234"},
		{"ext 42", "ext 42"},
	}
	for _, tc := range tests {
		if got := formatPhoneNumber(tc.in); got != tc.want {
			t.Errorf("formatPhoneNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormFromFieldsRoundTripsScalars(t *testing.T) {
	fields := map[string]any{
		FieldAgentName:    "Pat Alvarez",
		FieldAgentRole:    form.RoleDualAgent,
		FieldAddress:      "100 Main St",
		FieldSalePrice:    350000.0,
		FieldTotalPercent: "6.0",
	}
	data := FormFromFields(fields)
	if data.AgentData == nil || data.AgentData.Name != "Pat Alvarez" {
		t.Fatalf("agent data = %+v", data.AgentData)
	}
	if data.PropertyData == nil || data.PropertyData.SalePrice != "350000" {
		t.Fatalf("property data = %+v", data.PropertyData)
	}
	if data.CommissionData == nil || data.CommissionData.TotalCommissionPercent != "6.0" {
		t.Fatalf("commission data = %+v", data.CommissionData)
	}
}
