// Package form defines the transaction intake form data model.
//
// A TransactionFormData aggregate is owned by the client session until
// submission. Sub-structures map one-to-one to the intake form's steps; all
// values arrive as strings from the form layer and are coerced where needed by
// downstream consumers.
package form

// Agent roles accepted by the intake form. The role decides which commission
// fields are mandatory.
const (
	RoleBuyersAgent  = "BUYERS AGENT"
	RoleListingAgent = "LISTING AGENT"
	RoleDualAgent    = "DUAL AGENT"
)

// Client roles within the transaction.
const (
	ClientTypeBuyer  = "BUYER"
	ClientTypeSeller = "SELLER"
)

// Form step numbers. Validation policy and handlers address steps by these
// identifiers.
const (
	StepAgent           = 1
	StepProperty        = 2
	StepClients         = 3
	StepCommission      = 4
	StepPropertyDetails = 5
	StepTitleCompany    = 6
	StepDocuments       = 7
	StepAdditionalInfo  = 8
	StepReview          = 9
)

// AgentData identifies the submitting agent.
type AgentData struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// PropertyData describes the property under contract.
type PropertyData struct {
	Address       string `json:"address"`
	MLSNumber     string `json:"mlsNumber"`
	SalePrice     string `json:"salePrice"`
	ContractDate  string `json:"contractDate"`
	ClosingDate   string `json:"closingDate"`
	LockboxCode   string `json:"lockboxCode"`
	AlarmCode     string `json:"alarmCode"`
	OccupancyInfo string `json:"occupancyInfo"`
}

// Client is one buyer or seller attached to the transaction. Display order is
// the slice order; logic never depends on insertion order.
type Client struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	MaritalStatus string `json:"maritalStatus"`
	Type          string `json:"type"`
}

// CommissionData carries role-conditional percentages and fee flags.
type CommissionData struct {
	TotalCommissionPercent     string `json:"totalCommissionPercent"`
	ListingAgentPercent        string `json:"listingAgentPercent"`
	BuyersAgentPercent         string `json:"buyersAgentPercent"`
	BrokerageSplit             string `json:"brokerageSplit"`
	ReferralFee                string `json:"referralFee"`
	TransactionFee             string `json:"transactionFee"`
	TransactionFeePaidBySeller bool   `json:"transactionFeePaidBySeller"`
}

// PropertyDetailsData holds boolean toggles, each gating exactly one dependent
// field that is required only while the toggle is true.
type PropertyDetailsData struct {
	ResaleCertRequired     bool   `json:"resaleCertRequired"`
	HOAName                string `json:"hoaName"`
	CORequired             bool   `json:"coRequired"`
	COInfo                 string `json:"coInfo"`
	FirstRightOfRefusal    bool   `json:"firstRightOfRefusal"`
	FirstRightDetails      string `json:"firstRightDetails"`
	AttorneyRepresentation bool   `json:"attorneyRepresentation"`
	AttorneyName           string `json:"attorneyName"`
	HomeWarranty           bool   `json:"homeWarranty"`
	WarrantyCompany        string `json:"warrantyCompany"`
	WarrantyCost           string `json:"warrantyCost"`
}

// TitleCompanyData identifies the title company handling closing.
type TitleCompanyData struct {
	Name         string `json:"name"`
	ClosingAgent string `json:"closingAgent"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
}

// AdditionalInfoData is free text from the agent.
type AdditionalInfoData struct {
	Notes string `json:"notes"`
}

// SignatureData is only meaningful, and only validated, at the review step.
type SignatureData struct {
	Signature     string `json:"signature"`
	TermsAccepted bool   `json:"termsAccepted"`
	InfoConfirmed bool   `json:"infoConfirmed"`
	SignedAt      string `json:"signedAt"`
}

// DocumentsData is the received-documents checklist.
type DocumentsData struct {
	Contract            bool `json:"contract"`
	SellersDisclosure   bool `json:"sellersDisclosure"`
	LeadBasedPaint      bool `json:"leadBasedPaint"`
	ThirdPartyFinancing bool `json:"thirdPartyFinancing"`
	OptionFeeReceipt    bool `json:"optionFeeReceipt"`
	EarnestMoneyReceipt bool `json:"earnestMoneyReceipt"`
}

// TransactionFormData is the aggregate root submitted by the intake form.
type TransactionFormData struct {
	AgentData           *AgentData           `json:"agentData,omitempty"`
	PropertyData        *PropertyData        `json:"propertyData,omitempty"`
	Clients             []Client             `json:"clients,omitempty"`
	CommissionData      *CommissionData      `json:"commissionData,omitempty"`
	PropertyDetailsData *PropertyDetailsData `json:"propertyDetailsData,omitempty"`
	TitleCompanyData    *TitleCompanyData    `json:"titleCompanyData,omitempty"`
	AdditionalInfoData  *AdditionalInfoData  `json:"additionalInfoData,omitempty"`
	SignatureData       *SignatureData       `json:"signatureData,omitempty"`
	DocumentsData       *DocumentsData       `json:"documentsData,omitempty"`
}

// RoleLabel returns the agent role or an empty string when agent data is absent.
func (d TransactionFormData) RoleLabel() string {
	if d.AgentData == nil {
		return ""
	}
	return d.AgentData.Role
}

// ClientsOfType returns the clients matching the given type in display order.
func (d TransactionFormData) ClientsOfType(clientType string) []Client {
	var out []Client
	for _, c := range d.Clients {
		if c.Type == clientType {
			out = append(out, c)
		}
	}
	return out
}
