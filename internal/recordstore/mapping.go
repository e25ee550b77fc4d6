package recordstore

import (
	"strconv"
	"strings"

	"github.com/harborlight/intake/internal/form"
)

// External field names in the record store. Keeping them as named constants
// next to the mapping table eliminates silent identifier typos.
const (
	FieldAgentName      = "Agent Name"
	FieldAgentRole      = "Agent Role"
	FieldAgentEmail     = "Agent Email"
	FieldAgentPhone     = "Agent Phone"
	FieldAddress        = "Property Address"
	FieldMLSNumber      = "MLS Number"
	FieldSalePrice      = "Sale Price"
	FieldContractDate   = "Contract Date"
	FieldClosingDate    = "Closing Date"
	FieldLockboxCode    = "Lockbox Code"
	FieldAlarmCode      = "Alarm Code"
	FieldOccupancy      = "Occupancy"
	FieldTotalPercent   = "Total Commission %"
	FieldListingPercent = "Listing Agent %"
	FieldBuyersPercent  = "Buyers Agent %"
	FieldBrokerSplit    = "Brokerage Split %"
	FieldReferralFee    = "Referral Fee %"
	FieldTxnFee         = "Transaction Fee"
	FieldTxnFeeSeller   = "Transaction Fee Paid By Seller"
	FieldResaleCert     = "Resale Certificate Required"
	FieldHOAName        = "HOA Name"
	FieldCORequired     = "CO Required"
	FieldCOInfo         = "CO Info"
	FieldFirstRight     = "First Right of Refusal"
	FieldFirstRightInfo = "First Right Details"
	FieldAttorneyRep    = "Attorney Representation"
	FieldAttorneyName   = "Attorney Name"
	FieldHomeWarranty   = "Home Warranty"
	FieldWarrantyCo     = "Warranty Company"
	FieldWarrantyCost   = "Warranty Cost"
	FieldTitleCompany   = "Title Company"
	FieldClosingAgent   = "Closing Agent"
	FieldTitlePhone     = "Title Phone"
	FieldTitleEmail     = "Title Email"
	FieldTitleAddress   = "Title Address"
	FieldNotes          = "Notes"
	FieldSignature      = "Signature"
	FieldSignedAt       = "Signed At"
	FieldBuyers         = "Buyers"
	FieldSellers        = "Sellers"
	FieldCoverSheetURL  = "Cover Sheet URL"
)

// formatKind selects the per-field coercion applied before writing a value.
type formatKind int

const (
	formatRaw formatKind = iota
	formatCurrency
	formatPercent
	formatPhone
	formatBool
)

// fieldMapping binds one logical form field to its external identifier and
// formatter. The table is static so a missing or misspelled identifier is a
// compile-time absence, not a silent runtime drop.
type fieldMapping struct {
	external string
	kind     formatKind
	source   func(form.TransactionFormData) any
}

var transactionFields = []fieldMapping{
	{FieldAgentName, formatRaw, func(d form.TransactionFormData) any { return agent(d).Name }},
	{FieldAgentRole, formatRaw, func(d form.TransactionFormData) any { return agent(d).Role }},
	{FieldAgentEmail, formatRaw, func(d form.TransactionFormData) any { return agent(d).Email }},
	{FieldAgentPhone, formatPhone, func(d form.TransactionFormData) any { return agent(d).Phone }},
	{FieldAddress, formatRaw, func(d form.TransactionFormData) any { return property(d).Address }},
	{FieldMLSNumber, formatRaw, func(d form.TransactionFormData) any { return property(d).MLSNumber }},
	{FieldSalePrice, formatCurrency, func(d form.TransactionFormData) any { return property(d).SalePrice }},
	{FieldContractDate, formatRaw, func(d form.TransactionFormData) any { return property(d).ContractDate }},
	{FieldClosingDate, formatRaw, func(d form.TransactionFormData) any { return property(d).ClosingDate }},
	{FieldLockboxCode, formatRaw, func(d form.TransactionFormData) any { return property(d).LockboxCode }},
	{FieldAlarmCode, formatRaw, func(d form.TransactionFormData) any { return property(d).AlarmCode }},
	{FieldOccupancy, formatRaw, func(d form.TransactionFormData) any { return property(d).OccupancyInfo }},
	{FieldTotalPercent, formatPercent, func(d form.TransactionFormData) any { return commission(d).TotalCommissionPercent }},
	{FieldListingPercent, formatPercent, func(d form.TransactionFormData) any { return commission(d).ListingAgentPercent }},
	{FieldBuyersPercent, formatPercent, func(d form.TransactionFormData) any { return commission(d).BuyersAgentPercent }},
	{FieldBrokerSplit, formatPercent, func(d form.TransactionFormData) any { return commission(d).BrokerageSplit }},
	{FieldReferralFee, formatPercent, func(d form.TransactionFormData) any { return commission(d).ReferralFee }},
	{FieldTxnFee, formatCurrency, func(d form.TransactionFormData) any { return commission(d).TransactionFee }},
	{FieldTxnFeeSeller, formatBool, func(d form.TransactionFormData) any { return commission(d).TransactionFeePaidBySeller }},
	{FieldResaleCert, formatBool, func(d form.TransactionFormData) any { return details(d).ResaleCertRequired }},
	{FieldHOAName, formatRaw, func(d form.TransactionFormData) any { return details(d).HOAName }},
	{FieldCORequired, formatBool, func(d form.TransactionFormData) any { return details(d).CORequired }},
	{FieldCOInfo, formatRaw, func(d form.TransactionFormData) any { return details(d).COInfo }},
	{FieldFirstRight, formatBool, func(d form.TransactionFormData) any { return details(d).FirstRightOfRefusal }},
	{FieldFirstRightInfo, formatRaw, func(d form.TransactionFormData) any { return details(d).FirstRightDetails }},
	{FieldAttorneyRep, formatBool, func(d form.TransactionFormData) any { return details(d).AttorneyRepresentation }},
	{FieldAttorneyName, formatRaw, func(d form.TransactionFormData) any { return details(d).AttorneyName }},
	{FieldHomeWarranty, formatBool, func(d form.TransactionFormData) any { return details(d).HomeWarranty }},
	{FieldWarrantyCo, formatRaw, func(d form.TransactionFormData) any { return details(d).WarrantyCompany }},
	{FieldWarrantyCost, formatCurrency, func(d form.TransactionFormData) any { return details(d).WarrantyCost }},
	{FieldTitleCompany, formatRaw, func(d form.TransactionFormData) any { return title(d).Name }},
	{FieldClosingAgent, formatRaw, func(d form.TransactionFormData) any { return title(d).ClosingAgent }},
	{FieldTitlePhone, formatPhone, func(d form.TransactionFormData) any { return title(d).Phone }},
	{FieldTitleEmail, formatRaw, func(d form.TransactionFormData) any { return title(d).Email }},
	{FieldTitleAddress, formatRaw, func(d form.TransactionFormData) any { return title(d).Address }},
	{FieldNotes, formatRaw, func(d form.TransactionFormData) any {
		if d.AdditionalInfoData == nil {
			return ""
		}
		return d.AdditionalInfoData.Notes
	}},
	{FieldSignature, formatRaw, func(d form.TransactionFormData) any {
		if d.SignatureData == nil {
			return ""
		}
		return d.SignatureData.Signature
	}},
	{FieldSignedAt, formatRaw, func(d form.TransactionFormData) any {
		if d.SignatureData == nil {
			return ""
		}
		return d.SignatureData.SignedAt
	}},
}

// BuildFields resolves the mapping table against form data. Logical fields
// whose source value is empty are skipped, never written as blanks.
func BuildFields(data form.TransactionFormData) map[string]any {
	fields := make(map[string]any, len(transactionFields))
	for _, m := range transactionFields {
		value, ok := formatValue(m.kind, m.source(data))
		if !ok {
			continue
		}
		fields[m.external] = value
	}
	return fields
}

// clientFields maps one client onto the client table's columns.
func clientFields(client form.Client) map[string]any {
	fields := map[string]any{}
	put := func(name, value string) {
		if strings.TrimSpace(value) != "" {
			fields[name] = value
		}
	}
	put("Name", client.Name)
	put("Email", client.Email)
	put("Address", client.Address)
	put("Marital Status", client.MaritalStatus)
	put("Type", client.Type)
	if phone, ok := formatValue(formatPhone, client.Phone); ok {
		fields["Phone"] = phone
	}
	return fields
}

// FormFromFields rebuilds the scalar portion of form data from stored record
// fields. Link lists are left unresolved.
func FormFromFields(fields map[string]any) form.TransactionFormData {
	str := func(name string) string {
		switch v := fields[name].(type) {
		case string:
			return v
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return ""
		}
	}
	boolean := func(name string) bool {
		v, _ := fields[name].(bool)
		return v
	}

	data := form.TransactionFormData{}
	if str(FieldAgentName) != "" || str(FieldAgentRole) != "" {
		data.AgentData = &form.AgentData{
			Name:  str(FieldAgentName),
			Role:  str(FieldAgentRole),
			Email: str(FieldAgentEmail),
			Phone: str(FieldAgentPhone),
		}
	}
	if str(FieldAddress) != "" || str(FieldSalePrice) != "" {
		data.PropertyData = &form.PropertyData{
			Address:       str(FieldAddress),
			MLSNumber:     str(FieldMLSNumber),
			SalePrice:     str(FieldSalePrice),
			ContractDate:  str(FieldContractDate),
			ClosingDate:   str(FieldClosingDate),
			OccupancyInfo: str(FieldOccupancy),
		}
	}
	if str(FieldTotalPercent) != "" || str(FieldListingPercent) != "" || str(FieldBuyersPercent) != "" {
		data.CommissionData = &form.CommissionData{
			TotalCommissionPercent:     str(FieldTotalPercent),
			ListingAgentPercent:        str(FieldListingPercent),
			BuyersAgentPercent:         str(FieldBuyersPercent),
			BrokerageSplit:             str(FieldBrokerSplit),
			ReferralFee:                str(FieldReferralFee),
			TransactionFee:             str(FieldTxnFee),
			TransactionFeePaidBySeller: boolean(FieldTxnFeeSeller),
		}
	}
	return data
}

// nilField accessors keep the mapping table total over partially filled
// aggregates.
func agent(d form.TransactionFormData) form.AgentData {
	if d.AgentData == nil {
		return form.AgentData{}
	}
	return *d.AgentData
}

func property(d form.TransactionFormData) form.PropertyData {
	if d.PropertyData == nil {
		return form.PropertyData{}
	}
	return *d.PropertyData
}

func commission(d form.TransactionFormData) form.CommissionData {
	if d.CommissionData == nil {
		return form.CommissionData{}
	}
	return *d.CommissionData
}

func details(d form.TransactionFormData) form.PropertyDetailsData {
	if d.PropertyDetailsData == nil {
		return form.PropertyDetailsData{}
	}
	return *d.PropertyDetailsData
}

func title(d form.TransactionFormData) form.TitleCompanyData {
	if d.TitleCompanyData == nil {
		return form.TitleCompanyData{}
	}
	return *d.TitleCompanyData
}

func formatValue(kind formatKind, value any) (any, bool) {
	if kind == formatBool {
		b, ok := value.(bool)
		if !ok || !b {
			return nil, false
		}
		return true, true
	}

	s, ok := value.(string)
	if !ok {
		return nil, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	switch kind {
	case formatCurrency, formatPercent:
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				return r
			}
			return -1
		}, s)
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	case formatPhone:
		return formatPhoneNumber(s), true
	default:
		return s, true
	}
}

// formatPhoneNumber normalizes ten-digit numbers to "(XXX) XXX-XXXX" and
// passes anything else through untouched.
func formatPhoneNumber(value string) string {
	var digits []rune
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return value
	}
	d := string(digits)
	return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
}
