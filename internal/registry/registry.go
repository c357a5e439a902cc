package registry

// DocumentType is a named category of legal document with a fixed
// required-field schema.
type DocumentType string

const (
	NDA                  DocumentType = "NDA"
	PartnershipAgreement DocumentType = "Partnership Agreement"
	FreelanceContract    DocumentType = "Freelance Contract"
	EmploymentContract   DocumentType = "Employment Contract"
	LeaseAgreement       DocumentType = "Lease Agreement"
	PowerOfAttorney      DocumentType = "Power of Attorney"
	SalesAgreement       DocumentType = "Sales Agreement"
	ConsultingAgreement  DocumentType = "Consulting Agreement"
	LoanAgreement        DocumentType = "Loan Agreement"
	ServiceAgreement     DocumentType = "Service Agreement"
)

// typeOrder fixes the order types are presented in (dropdown order in the UI).
var typeOrder = []DocumentType{
	NDA,
	PartnershipAgreement,
	FreelanceContract,
	EmploymentContract,
	LeaseAgreement,
	PowerOfAttorney,
	SalesAgreement,
	ConsultingAgreement,
	LoanAgreement,
	ServiceAgreement,
}

// fieldsByType maps every document type to its ordered required fields.
// Field order is the validation order: the first empty field in this order
// is the one reported to the user.
var fieldsByType = map[DocumentType][]string{
	NDA:                  {"partyOne", "partyTwo", "effectiveDate"},
	PartnershipAgreement: {"partnerOne", "partnerTwo", "startDate", "businessPurpose"},
	FreelanceContract:    {"freelancer", "client", "projectDescription", "paymentTerms"},
	EmploymentContract:   {"employer", "employee", "jobTitle", "startDate", "salary"},
	LeaseAgreement:       {"landlord", "tenant", "propertyAddress", "leaseStartDate", "rentAmount"},
	PowerOfAttorney:      {"grantor", "grantee", "authorityScope", "effectiveDate"},
	SalesAgreement:       {"seller", "buyer", "itemDescription", "price", "saleDate"},
	ConsultingAgreement:  {"consultant", "client", "servicesProvided", "fee", "duration"},
	LoanAgreement:        {"lender", "borrower", "loanAmount", "interestRate", "repaymentDate"},
	ServiceAgreement:     {"provider", "recipient", "serviceDescription", "cost", "startDate"},
}

// Types returns all known document types in presentation order.
func Types() []DocumentType {
	out := make([]DocumentType, len(typeOrder))
	copy(out, typeOrder)
	return out
}

// Known reports whether t has a registered field schema.
func Known(t DocumentType) bool {
	_, ok := fieldsByType[t]
	return ok
}

// Fields returns the ordered required field names for t. The result is a
// copy; callers may mutate it freely. An unknown type yields nil — that is
// a configuration bug in the caller, not a runtime condition.
func Fields(t DocumentType) []string {
	src, ok := fieldsByType[t]
	if !ok {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
