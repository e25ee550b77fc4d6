// Package validate implements the per-step validation gate for the intake
// form. Step returns raw findings for one step; StepPermissive reclassifies
// findings as blocking or advisory against a per-step critical-field policy.
//
// Validation never fails: both entry points are pure and total, returning
// empty collections when there is nothing to report.
package validate

import (
	"fmt"
	"sort"
	"time"

	"github.com/harborlight/intake/internal/form"
)

// Field keys reported by the gate. Keys address the aggregate with dotted
// paths so clients can attach messages to individual inputs.
const (
	FieldAgentRole                = "agentData.role"
	FieldAgentName                = "agentData.name"
	FieldAgentEmail               = "agentData.email"
	FieldAgentPhone               = "agentData.phone"
	FieldPropertyAddress          = "propertyData.address"
	FieldPropertyMLS              = "propertyData.mlsNumber"
	FieldPropertySalePrice        = "propertyData.salePrice"
	FieldPropertyContractDate     = "propertyData.contractDate"
	FieldPropertyClosingDate      = "propertyData.closingDate"
	FieldClients                  = "clients"
	FieldCommissionTotal          = "commissionData.totalCommissionPercent"
	FieldCommissionListing        = "commissionData.listingAgentPercent"
	FieldCommissionBuyers         = "commissionData.buyersAgentPercent"
	FieldCommissionTransactionFee = "commissionData.transactionFee"
	FieldHOAName                  = "propertyDetailsData.hoaName"
	FieldCOInfo                   = "propertyDetailsData.coInfo"
	FieldFirstRightDetails        = "propertyDetailsData.firstRightDetails"
	FieldAttorneyName             = "propertyDetailsData.attorneyName"
	FieldWarrantyCompany          = "propertyDetailsData.warrantyCompany"
	FieldWarrantyCost             = "propertyDetailsData.warrantyCost"
	FieldTitleName                = "titleCompanyData.name"
	FieldTitleEmail               = "titleCompanyData.email"
	FieldTitlePhone               = "titleCompanyData.phone"
	FieldDocumentsContract        = "documentsData.contract"
	FieldSignature                = "signatureData.signature"
	FieldTermsAccepted            = "signatureData.termsAccepted"
	FieldInfoConfirmed            = "signatureData.infoConfirmed"
)

// Result is the permissive validation outcome for one step.
type Result struct {
	Errors        map[string][]string `json:"errors"`
	Warnings      map[string][]string `json:"warnings"`
	MissingFields []string            `json:"missingFields"`
	CanProceed    bool                `json:"canProceed"`
}

// Policy names the fields whose absence blocks step advancement. Findings on
// any other field are advisory. The zero value blocks nothing.
type Policy struct {
	Critical map[int][]string
}

// DefaultPolicy blocks on the agent identity step and the final review step;
// every other step is advisory-only.
func DefaultPolicy() Policy {
	return Policy{Critical: map[int][]string{
		form.StepAgent:  {FieldAgentRole, FieldAgentName},
		form.StepReview: {FieldAgentName, FieldSignature, FieldTermsAccepted, FieldInfoConfirmed},
	}}
}

func (p Policy) criticalSet(step int) map[string]bool {
	set := make(map[string]bool, len(p.Critical[step]))
	for _, field := range p.Critical[step] {
		set[field] = true
	}
	return set
}

type findings map[string][]string

func (f findings) add(field, message string) {
	f[field] = append(f[field], message)
}

// Step validates one form step against the full current data snapshot and
// returns field findings. Unknown steps and absent optional structures produce
// no entries.
func Step(step int, data form.TransactionFormData) map[string][]string {
	return stepAt(step, data, time.Now())
}

// StepPermissive wraps Step and splits findings into blocking errors and
// advisory warnings using DefaultPolicy.
func StepPermissive(step int, data form.TransactionFormData) Result {
	return StepPermissiveWithPolicy(step, data, DefaultPolicy())
}

// StepPermissiveWithPolicy is StepPermissive with an explicit critical-field
// policy.
func StepPermissiveWithPolicy(step int, data form.TransactionFormData, policy Policy) Result {
	all := Step(step, data)
	critical := policy.criticalSet(step)

	result := Result{
		Errors:   map[string][]string{},
		Warnings: map[string][]string{},
	}
	for field, messages := range all {
		if critical[field] {
			result.Errors[field] = messages
			result.MissingFields = append(result.MissingFields, field)
		} else {
			result.Warnings[field] = messages
		}
	}
	sort.Strings(result.MissingFields)
	result.CanProceed = len(result.Errors) == 0
	return result
}

func stepAt(step int, data form.TransactionFormData, now time.Time) map[string][]string {
	f := findings{}
	switch step {
	case form.StepAgent:
		validateAgent(f, data.AgentData)
	case form.StepProperty:
		validateProperty(f, data.PropertyData, now)
	case form.StepClients:
		validateClients(f, data.Clients)
	case form.StepCommission:
		validateCommission(f, data)
	case form.StepPropertyDetails:
		validatePropertyDetails(f, data.PropertyDetailsData)
	case form.StepTitleCompany:
		validateTitleCompany(f, data.TitleCompanyData)
	case form.StepDocuments:
		validateDocuments(f, data.DocumentsData)
	case form.StepAdditionalInfo:
		// Free text only; nothing to validate.
	case form.StepReview:
		validateReview(f, data)
	}
	return f
}

func validateAgent(f findings, agent *form.AgentData) {
	if agent == nil {
		f.add(FieldAgentRole, "Agent role is required")
		f.add(FieldAgentName, "Agent name is required")
		return
	}
	switch agent.Role {
	case form.RoleBuyersAgent, form.RoleListingAgent, form.RoleDualAgent:
	case "":
		f.add(FieldAgentRole, "Agent role is required")
	default:
		f.add(FieldAgentRole, "Agent role must be BUYERS AGENT, LISTING AGENT, or DUAL AGENT")
	}
	if blank(agent.Name) {
		f.add(FieldAgentName, "Agent name is required")
	}
	if blank(agent.Email) {
		f.add(FieldAgentEmail, "Agent email is required")
	} else if !validEmail(agent.Email) {
		f.add(FieldAgentEmail, "Agent email is not a valid email address")
	}
	if !blank(agent.Phone) && !validPhone(agent.Phone) {
		f.add(FieldAgentPhone, "Agent phone must be a 10-digit phone number")
	}
}

func validateProperty(f findings, property *form.PropertyData, now time.Time) {
	if property == nil {
		f.add(FieldPropertyAddress, "Property address is required")
		return
	}
	if blank(property.Address) {
		f.add(FieldPropertyAddress, "Property address is required")
	}
	if !blank(property.MLSNumber) && !validMLS(property.MLSNumber) {
		f.add(FieldPropertyMLS, "MLS number must be six digits with an optional prefix")
	}
	if blank(property.SalePrice) {
		f.add(FieldPropertySalePrice, "Sale price is required")
	} else if !validCurrency(property.SalePrice) {
		f.add(FieldPropertySalePrice, "Sale price must be a non-negative amount")
	}
	if !blank(property.ContractDate) && !validDate(property.ContractDate) {
		f.add(FieldPropertyContractDate, "Contract date is not a valid date")
	}
	if blank(property.ClosingDate) {
		f.add(FieldPropertyClosingDate, "Closing date is required")
	} else if !validClosingDate(property.ClosingDate, now) {
		f.add(FieldPropertyClosingDate, "Closing date must fall within the next 90 days")
	}
}

func validateClients(f findings, clients []form.Client) {
	if len(clients) == 0 {
		f.add(FieldClients, "At least one client is required")
		return
	}
	for i, client := range clients {
		if blank(client.Name) {
			f.add(fmt.Sprintf("clients[%d].name", i), "Client name is required")
		}
		if !blank(client.Email) && !validEmail(client.Email) {
			f.add(fmt.Sprintf("clients[%d].email", i), "Client email is not a valid email address")
		}
		if !blank(client.Phone) && !validPhone(client.Phone) {
			f.add(fmt.Sprintf("clients[%d].phone", i), "Client phone must be a 10-digit phone number")
		}
		if client.Type != form.ClientTypeBuyer && client.Type != form.ClientTypeSeller {
			f.add(fmt.Sprintf("clients[%d].type", i), "Client type must be BUYER or SELLER")
		}
	}
}

// validateCommission applies the role-conditional requirement: listing-side
// percentages are mandatory for LISTING/DUAL agents, the buyer-side
// percentage for BUYERS/DUAL agents.
func validateCommission(f findings, data form.TransactionFormData) {
	role := data.RoleLabel()
	listingSide := role == form.RoleListingAgent || role == form.RoleDualAgent
	buyerSide := role == form.RoleBuyersAgent || role == form.RoleDualAgent

	c := data.CommissionData
	if c == nil {
		if listingSide {
			f.add(FieldCommissionTotal, "Total commission percentage is required")
			f.add(FieldCommissionListing, "Listing agent percentage is required")
		}
		if buyerSide {
			f.add(FieldCommissionBuyers, "Buyers agent percentage is required")
		}
		return
	}

	requirePercent := func(field, value, label string, required bool) {
		if blank(value) {
			if required {
				f.add(field, label+" is required")
			}
			return
		}
		if !validPercent(value) {
			f.add(field, label+" must be a number between 0 and 100")
		}
	}

	requirePercent(FieldCommissionTotal, c.TotalCommissionPercent, "Total commission percentage", listingSide)
	requirePercent(FieldCommissionListing, c.ListingAgentPercent, "Listing agent percentage", listingSide)
	requirePercent(FieldCommissionBuyers, c.BuyersAgentPercent, "Buyers agent percentage", buyerSide)

	if !blank(c.TransactionFee) && !validCurrency(c.TransactionFee) {
		f.add(FieldCommissionTransactionFee, "Transaction fee must be a non-negative amount")
	}
}

// validatePropertyDetails enforces the toggle rule: each boolean flag gates
// exactly one dependent field that is required only while the flag is true.
// Requiredness is evaluated against the current snapshot, so flipping a
// toggle changes the dependent field's status without a separate trigger.
func validatePropertyDetails(f findings, details *form.PropertyDetailsData) {
	if details == nil {
		return
	}
	if details.ResaleCertRequired && blank(details.HOAName) {
		f.add(FieldHOAName, "HOA name is required when a resale certificate is required")
	}
	if details.CORequired && blank(details.COInfo) {
		f.add(FieldCOInfo, "Certificate of occupancy details are required")
	}
	if details.FirstRightOfRefusal && blank(details.FirstRightDetails) {
		f.add(FieldFirstRightDetails, "First right of refusal details are required")
	}
	if details.AttorneyRepresentation && blank(details.AttorneyName) {
		f.add(FieldAttorneyName, "Attorney name is required")
	}
	if details.HomeWarranty {
		if blank(details.WarrantyCompany) {
			f.add(FieldWarrantyCompany, "Warranty company is required when a home warranty is included")
		}
		if blank(details.WarrantyCost) {
			f.add(FieldWarrantyCost, "Warranty cost is required when a home warranty is included")
		} else if !validCurrency(details.WarrantyCost) {
			f.add(FieldWarrantyCost, "Warranty cost must be a non-negative amount")
		}
	} else if !blank(details.WarrantyCost) && !validCurrency(details.WarrantyCost) {
		f.add(FieldWarrantyCost, "Warranty cost must be a non-negative amount")
	}
}

func validateTitleCompany(f findings, title *form.TitleCompanyData) {
	if title == nil {
		return
	}
	if blank(title.Name) {
		f.add(FieldTitleName, "Title company name is required")
	}
	if !blank(title.Email) && !validEmail(title.Email) {
		f.add(FieldTitleEmail, "Title company email is not a valid email address")
	}
	if !blank(title.Phone) && !validPhone(title.Phone) {
		f.add(FieldTitlePhone, "Title company phone must be a 10-digit phone number")
	}
}

func validateDocuments(f findings, documents *form.DocumentsData) {
	if documents == nil || !documents.Contract {
		f.add(FieldDocumentsContract, "Executed contract is required")
	}
}

func validateReview(f findings, data form.TransactionFormData) {
	if data.AgentData == nil || blank(data.AgentData.Name) {
		f.add(FieldAgentName, "Agent name is required")
	}
	sig := data.SignatureData
	if sig == nil || blank(sig.Signature) {
		f.add(FieldSignature, "Signature is required")
	}
	if sig == nil || !sig.TermsAccepted {
		f.add(FieldTermsAccepted, "Terms must be accepted")
	}
	if sig == nil || !sig.InfoConfirmed {
		f.add(FieldInfoConfirmed, "Information must be confirmed as accurate")
	}
}
