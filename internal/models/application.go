package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ApplicationStatus is the lifecycle state of a verification application.
type ApplicationStatus string

const (
	ApplicationStatusDraft       ApplicationStatus = "draft"
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusApproved    ApplicationStatus = "approved"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusOnHold      ApplicationStatus = "on_hold"
)

// Terminal reports whether no further transitions are allowed from s.
// rejected is terminal for the application; the carrier starts a new one.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// Reviewable reports whether an admin may decide the application from s.
func (s ApplicationStatus) Reviewable() bool {
	return s == ApplicationStatusPending || s == ApplicationStatusUnderReview
}

// SoloDetails carries the identity fields collected from owner-operators.
// Opaque to the engine beyond presence checks.
type SoloDetails struct {
	AadhaarNumber string `json:"aadhaar_number,omitempty"`
	PANNumber     string `json:"pan_number,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
	BankAccount   string `json:"bank_account,omitempty"`
	BankIFSC      string `json:"bank_ifsc,omitempty"`
}

// EnterpriseDetails carries the business registration fields collected from
// fleet companies.
type EnterpriseDetails struct {
	CompanyName string `json:"company_name,omitempty"`
	CINNumber   string `json:"cin_number,omitempty"`
	PANNumber   string `json:"pan_number,omitempty"`
	GSTINNumber string `json:"gstin_number,omitempty"`
	TANNumber   string `json:"tan_number,omitempty"`
	BankAccount string `json:"bank_account,omitempty"`
	BankIFSC    string `json:"bank_ifsc,omitempty"`
}

// VerificationApplication is one onboarding attempt by a carrier. Which of
// the two detail blocks is meaningful is keyed by CarrierType.
type VerificationApplication struct {
	gorm.Model

	ApplicationID string            `json:"application_id" gorm:"uniqueIndex"`
	CarrierID     string            `json:"carrier_id" gorm:"index;uniqueIndex:uni_active_application,where:status <> 'rejected'"`
	CarrierType   CarrierType       `json:"carrier_type" gorm:"index"`
	Status        ApplicationStatus `json:"status" gorm:"default:draft;index"`

	SubmittedAt     *time.Time `json:"submitted_at"`
	ReviewedBy      string     `json:"reviewed_by"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	RejectionReason string     `json:"rejection_reason,omitempty"` // set only while rejected
	HoldNotes       string     `json:"hold_notes,omitempty"`       // set only while on_hold

	Solo       SoloDetails       `json:"solo_details,omitempty" gorm:"embedded;embeddedPrefix:solo_"`
	Enterprise EnterpriseDetails `json:"enterprise_details,omitempty" gorm:"embedded;embeddedPrefix:ent_"`

	// Version is the optimistic concurrency token; every successful status
	// write increments it, stale writers get a conflict.
	Version int `json:"version" gorm:"default:0"`
}

// BeforeCreate hook to auto-generate ApplicationID
func (a *VerificationApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ApplicationID == "" {
		a.ApplicationID = fmt.Sprintf("APP%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}
	if a.Status == "" {
		a.Status = ApplicationStatusDraft
	}
	return nil
}

// SortKey is the admin queue ordering key: submitted_at when present,
// created_at otherwise. Queues list latest first.
func (a *VerificationApplication) SortKey() time.Time {
	if a.SubmittedAt != nil {
		return *a.SubmittedAt
	}
	return a.CreatedAt
}

// ApplicationView is what getApplication returns: the aggregate plus its
// documents sorted by registry priority.
type ApplicationView struct {
	Application *VerificationApplication `json:"application"`
	Documents   []*DocumentRecord        `json:"documents"`
}
