// Package registry is the single source of truth for which document types a
// carrier must submit and the order admins review them in. UI label maps are
// projections of this table, never a parallel source.
package registry

import (
	"sort"

	"github.com/sanyam-ls/loadsmart-backend/internal/models"
)

// Requirement describes one expected document type for a carrier type.
type Requirement struct {
	DocumentType    string   `json:"document_type"`
	DisplayName     string   `json:"display_name"`
	DisplayPriority int      `json:"display_priority"`
	FormatsAccepted []string `json:"formats_accepted"`
}

// unknownPriority sorts document types the registry does not recognize after
// every registered type. The registry is additive: unknown types are accepted,
// never rejected.
const unknownPriority = 10000

var pdfOrImage = []string{"pdf", "jpg", "jpeg", "png"}

// Solo owner-operator identity and vehicle documents, in review order.
var soloRequirements = []Requirement{
	{DocumentType: "aadhaar_card", DisplayName: "Aadhaar Card", DisplayPriority: 10, FormatsAccepted: pdfOrImage},
	{DocumentType: "pan_card", DisplayName: "PAN Card", DisplayPriority: 20, FormatsAccepted: pdfOrImage},
	{DocumentType: "driver_license", DisplayName: "Driving License", DisplayPriority: 30, FormatsAccepted: pdfOrImage},
	{DocumentType: "vehicle_permit", DisplayName: "Vehicle Permit", DisplayPriority: 40, FormatsAccepted: pdfOrImage},
	{DocumentType: "rc_certificate", DisplayName: "Registration Certificate (RC)", DisplayPriority: 50, FormatsAccepted: pdfOrImage},
	{DocumentType: "insurance_policy", DisplayName: "Vehicle Insurance", DisplayPriority: 60, FormatsAccepted: pdfOrImage},
	{DocumentType: "fitness_certificate", DisplayName: "Fitness Certificate", DisplayPriority: 70, FormatsAccepted: pdfOrImage},
}

// Enterprise fleet business registration documents, in review order.
var enterpriseRequirements = []Requirement{
	{DocumentType: "certificate_of_incorporation", DisplayName: "Certificate of Incorporation", DisplayPriority: 10, FormatsAccepted: []string{"pdf"}},
	{DocumentType: "trade_license", DisplayName: "Trade License", DisplayPriority: 20, FormatsAccepted: pdfOrImage},
	{DocumentType: "address_proof", DisplayName: "Registered Address Proof", DisplayPriority: 30, FormatsAccepted: pdfOrImage},
	{DocumentType: "pan_card", DisplayName: "Company PAN", DisplayPriority: 40, FormatsAccepted: pdfOrImage},
	{DocumentType: "gstin_certificate", DisplayName: "GSTIN Certificate", DisplayPriority: 50, FormatsAccepted: pdfOrImage},
	{DocumentType: "tan_certificate", DisplayName: "TAN Certificate", DisplayPriority: 60, FormatsAccepted: pdfOrImage},
}

// Legacy free-form types still seen on old applications. Not required for
// submission, but they get a stable low priority instead of sorting as
// unknown.
var legacyTypes = []Requirement{
	{DocumentType: "fleet_proof", DisplayName: "Fleet Ownership Proof", DisplayPriority: 900, FormatsAccepted: pdfOrImage},
	{DocumentType: "other", DisplayName: "Other Document", DisplayPriority: 910, FormatsAccepted: pdfOrImage},
}

// RequirementsFor returns the required document types for a carrier type in
// display order. Unknown carrier types get an empty requirement set rather
// than an error.
func RequirementsFor(carrierType models.CarrierType) []Requirement {
	switch carrierType {
	case models.CarrierTypeSolo:
		return append([]Requirement(nil), soloRequirements...)
	case models.CarrierTypeEnterprise:
		return append([]Requirement(nil), enterpriseRequirements...)
	default:
		return nil
	}
}

// RequiredTypes returns just the document type keys required at submission.
func RequiredTypes(carrierType models.CarrierType) []string {
	reqs := RequirementsFor(carrierType)
	types := make([]string, 0, len(reqs))
	for _, r := range reqs {
		types = append(types, r.DocumentType)
	}
	return types
}

// PriorityOf returns the display priority for a document type under the given
// carrier type. Types the registry does not know sort last.
func PriorityOf(carrierType models.CarrierType, documentType string) int {
	for _, r := range RequirementsFor(carrierType) {
		if r.DocumentType == documentType {
			return r.DisplayPriority
		}
	}
	for _, r := range legacyTypes {
		if r.DocumentType == documentType {
			return r.DisplayPriority
		}
	}
	return unknownPriority
}

// DisplayNameOf returns a human label for a document type, falling back to
// the raw key for unregistered types.
func DisplayNameOf(carrierType models.CarrierType, documentType string) string {
	for _, r := range RequirementsFor(carrierType) {
		if r.DocumentType == documentType {
			return r.DisplayName
		}
	}
	for _, r := range legacyTypes {
		if r.DocumentType == documentType {
			return r.DisplayName
		}
	}
	return documentType
}

// SortDocuments orders records by registry priority for the carrier type,
// unknown types last, ties broken by upload time ascending.
func SortDocuments(carrierType models.CarrierType, docs []*models.DocumentRecord) {
	sort.SliceStable(docs, func(i, j int) bool {
		pi := PriorityOf(carrierType, docs[i].DocumentType)
		pj := PriorityOf(carrierType, docs[j].DocumentType)
		if pi != pj {
			return pi < pj
		}
		return docs[i].UploadedAt.Before(docs[j].UploadedAt)
	})
}
