package validate

import (
	"testing"

	"github.com/harborlight/intake/internal/form"
)

func TestStepUnknownStepReturnsNoFindings(t *testing.T) {
	findings := Step(42, form.TransactionFormData{})
	if len(findings) != 0 {
		t.Fatalf("expected no findings for unknown step, got %v", findings)
	}
}

func TestStepAgentRequiresRoleAndName(t *testing.T) {
	findings := Step(form.StepAgent, form.TransactionFormData{})
	if len(findings[FieldAgentRole]) == 0 {
		t.Fatal("expected missing role finding")
	}
	if len(findings[FieldAgentName]) == 0 {
		t.Fatal("expected missing name finding")
	}
}

func TestStepAgentRejectsUnknownRole(t *testing.T) {
	data := form.TransactionFormData{AgentData: &form.AgentData{
		Role:  "TRIPLE AGENT",
		Name:  "Pat Alvarez",
		Email: "pat@example.com",
	}}
	findings := Step(form.StepAgent, data)
	if len(findings[FieldAgentRole]) == 0 {
		t.Fatal("expected role finding for unknown role")
	}
	if len(findings[FieldAgentName]) != 0 {
		t.Fatalf("unexpected name finding: %v", findings[FieldAgentName])
	}
}

func TestStepPermissiveBlocksOnlyOnCriticalFields(t *testing.T) {
	// Agent email is missing, but email is not step-critical; the gate must
	// still allow the step to advance.
	data := form.TransactionFormData{AgentData: &form.AgentData{
		Role: form.RoleBuyersAgent,
		Name: "Pat Alvarez",
	}}
	result := StepPermissive(form.StepAgent, data)
	if !result.CanProceed {
		t.Fatalf("expected CanProceed=true, errors=%v", result.Errors)
	}
	if len(result.Warnings[FieldAgentEmail]) == 0 {
		t.Fatal("expected advisory finding for missing email")
	}
	if len(result.MissingFields) != 0 {
		t.Fatalf("expected no missing critical fields, got %v", result.MissingFields)
	}
}

func TestStepPermissiveBlocksWhenCriticalFieldMissing(t *testing.T) {
	data := form.TransactionFormData{AgentData: &form.AgentData{
		Email: "pat@example.com",
	}}
	result := StepPermissive(form.StepAgent, data)
	if result.CanProceed {
		t.Fatal("expected CanProceed=false when role and name are missing")
	}
	if len(result.Errors[FieldAgentRole]) == 0 || len(result.Errors[FieldAgentName]) == 0 {
		t.Fatalf("expected blocking findings for role and name, got %v", result.Errors)
	}
	if len(result.MissingFields) != 2 {
		t.Fatalf("expected two missing fields, got %v", result.MissingFields)
	}
}

func TestStepPermissiveReviewCriticalFields(t *testing.T) {
	data := form.TransactionFormData{
		AgentData: &form.AgentData{Role: form.RoleDualAgent, Name: "Pat Alvarez"},
		SignatureData: &form.SignatureData{
			Signature:     "Pat Alvarez",
			TermsAccepted: true,
			InfoConfirmed: true,
		},
	}
	result := StepPermissive(form.StepReview, data)
	if !result.CanProceed {
		t.Fatalf("expected review step to pass, errors=%v", result.Errors)
	}

	data.SignatureData.TermsAccepted = false
	result = StepPermissive(form.StepReview, data)
	if result.CanProceed {
		t.Fatal("expected review step to block without accepted terms")
	}
	if len(result.Errors[FieldTermsAccepted]) == 0 {
		t.Fatal("expected blocking finding for terms")
	}
}

func TestClientsStepRequiresAtLeastOneClient(t *testing.T) {
	findings := Step(form.StepClients, form.TransactionFormData{})
	if len(findings[FieldClients]) == 0 {
		t.Fatal("expected finding for empty client list")
	}

	data := form.TransactionFormData{Clients: []form.Client{
		{Name: "A", Type: form.ClientTypeBuyer},
	}}
	findings = Step(form.StepClients, data)
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findings)
	}
}

func TestClientsStepReportsPerClientFindings(t *testing.T) {
	data := form.TransactionFormData{Clients: []form.Client{
		{Name: "A", Type: form.ClientTypeBuyer},
		{Email: "not-an-email", Type: "TENANT"},
	}}
	findings := Step(form.StepClients, data)
	if len(findings["clients[1].name"]) == 0 {
		t.Fatal("expected name finding for second client")
	}
	if len(findings["clients[1].email"]) == 0 {
		t.Fatal("expected email finding for second client")
	}
	if len(findings["clients[1].type"]) == 0 {
		t.Fatal("expected type finding for second client")
	}
	if len(findings["clients[0].name"]) != 0 {
		t.Fatal("unexpected finding for first client")
	}
}

func TestCommissionRoleConditionalRequirements(t *testing.T) {
	tests := []struct {
		role          string
		wantListing   bool
		wantBuyerSide bool
	}{
		{form.RoleListingAgent, true, false},
		{form.RoleBuyersAgent, false, true},
		{form.RoleDualAgent, true, true},
	}
	for _, tc := range tests {
		t.Run(tc.role, func(t *testing.T) {
			data := form.TransactionFormData{
				AgentData:      &form.AgentData{Role: tc.role},
				CommissionData: &form.CommissionData{},
			}
			findings := Step(form.StepCommission, data)
			if got := len(findings[FieldCommissionListing]) > 0; got != tc.wantListing {
				t.Errorf("listing finding = %v, want %v", got, tc.wantListing)
			}
			if got := len(findings[FieldCommissionBuyers]) > 0; got != tc.wantBuyerSide {
				t.Errorf("buyer finding = %v, want %v", got, tc.wantBuyerSide)
			}
		})
	}
}

func TestCommissionRejectsOutOfRangePercent(t *testing.T) {
	data := form.TransactionFormData{
		AgentData:      &form.AgentData{Role: form.RoleBuyersAgent},
		CommissionData: &form.CommissionData{BuyersAgentPercent: "250"},
	}
	findings := Step(form.StepCommission, data)
	if len(findings[FieldCommissionBuyers]) == 0 {
		t.Fatal("expected range finding for 250 percent")
	}
}

func TestToggleGatesDependentField(t *testing.T) {
	details := &form.PropertyDetailsData{}
	data := form.TransactionFormData{PropertyDetailsData: details}

	findings := Step(form.StepPropertyDetails, data)
	if len(findings[FieldHOAName]) != 0 {
		t.Fatal("HOA name must not be required while toggle is off")
	}

	details.ResaleCertRequired = true
	findings = Step(form.StepPropertyDetails, data)
	if len(findings[FieldHOAName]) == 0 {
		t.Fatal("HOA name must be required once toggle is on")
	}

	details.HOAName = "Oakwood HOA"
	findings = Step(form.StepPropertyDetails, data)
	if len(findings[FieldHOAName]) != 0 {
		t.Fatalf("unexpected HOA finding: %v", findings[FieldHOAName])
	}
}

func TestHomeWarrantyToggleAdvisoryUnderDefaultPolicy(t *testing.T) {
	data := form.TransactionFormData{
		PropertyDetailsData: &form.PropertyDetailsData{HomeWarranty: true},
	}
	result := StepPermissive(form.StepPropertyDetails, data)
	if !result.CanProceed {
		t.Fatalf("default policy must not block on warranty fields, errors=%v", result.Errors)
	}
	if len(result.Warnings[FieldWarrantyCompany]) == 0 || len(result.Warnings[FieldWarrantyCost]) == 0 {
		t.Fatalf("expected advisory warranty findings, got %v", result.Warnings)
	}
}

func TestHomeWarrantyToggleBlockingUnderCriticalPolicy(t *testing.T) {
	policy := Policy{Critical: map[int][]string{
		form.StepPropertyDetails: {FieldWarrantyCompany, FieldWarrantyCost},
	}}
	data := form.TransactionFormData{
		PropertyDetailsData: &form.PropertyDetailsData{HomeWarranty: true},
	}
	result := StepPermissiveWithPolicy(form.StepPropertyDetails, data, policy)
	if result.CanProceed {
		t.Fatal("critical policy must block on missing warranty fields")
	}
	if len(result.Errors[FieldWarrantyCompany]) == 0 || len(result.Errors[FieldWarrantyCost]) == 0 {
		t.Fatalf("expected blocking warranty findings, got %v", result.Errors)
	}

	// Turning the toggle off removes the requirement entirely.
	data.PropertyDetailsData.HomeWarranty = false
	result = StepPermissiveWithPolicy(form.StepPropertyDetails, data, policy)
	if !result.CanProceed {
		t.Fatalf("expected no findings with toggle off, errors=%v", result.Errors)
	}
}

func TestPropertyStepFindings(t *testing.T) {
	data := form.TransactionFormData{PropertyData: &form.PropertyData{
		Address:     "100 Main St, Austin TX",
		MLSNumber:   "bad-mls",
		SalePrice:   "$-100",
		ClosingDate: "1999-01-01",
	}}
	findings := Step(form.StepProperty, data)
	if len(findings[FieldPropertyMLS]) == 0 {
		t.Fatal("expected MLS finding")
	}
	if len(findings[FieldPropertySalePrice]) == 0 {
		t.Fatal("expected sale price finding")
	}
	if len(findings[FieldPropertyClosingDate]) == 0 {
		t.Fatal("expected closing date finding")
	}
	if len(findings[FieldPropertyAddress]) != 0 {
		t.Fatal("unexpected address finding")
	}
}
