package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DocumentStatus is the review state of a single uploaded document.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// DocumentRecord is the metadata for one uploaded compliance document. The
// engine never touches file bytes; FileReference is an opaque pointer into
// the file store. Records are never deleted - a re-upload of the same type
// supersedes the older record.
type DocumentRecord struct {
	gorm.Model

	DocumentID    string         `json:"document_id" gorm:"uniqueIndex"`
	ApplicationID string         `json:"application_id" gorm:"index"`
	DocumentType  string         `json:"document_type" gorm:"index"` // registry key, e.g. "aadhaar_card"
	FileReference string         `json:"file_reference"`
	UploadedAt    time.Time      `json:"uploaded_at"`
	Status        DocumentStatus `json:"status" gorm:"default:pending"`

	RejectionReason string     `json:"rejection_reason,omitempty"` // set only while rejected
	ReviewedBy      string     `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`

	// Superseded marks records replaced by a newer upload of the same type;
	// superseded records are kept for audit but excluded from review.
	Superseded bool `json:"superseded" gorm:"default:false;index"`
}

// BeforeCreate hook to auto-generate DocumentID and stamp upload time
func (d *DocumentRecord) BeforeCreate(tx *gorm.DB) error {
	if d.DocumentID == "" {
		d.DocumentID = fmt.Sprintf("DOC%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now()
	}
	if d.Status == "" {
		d.Status = DocumentStatusPending
	}
	return nil
}

// DocumentUpload is the request body for recording an uploaded document.
type DocumentUpload struct {
	DocumentType  string `json:"document_type" validate:"required"`
	FileReference string `json:"file_reference" validate:"required"`
}
