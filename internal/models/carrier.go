package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// CarrierType distinguishes owner-operators from fleet companies.
type CarrierType string

const (
	CarrierTypeSolo       CarrierType = "solo"
	CarrierTypeEnterprise CarrierType = "enterprise"
)

// Valid reports whether the carrier type is one of the known values.
func (t CarrierType) Valid() bool {
	return t == CarrierTypeSolo || t == CarrierTypeEnterprise
}

// Carrier represents a marketplace participant offering trucking capacity.
// A carrier owns at most one active verification application at a time.
type Carrier struct {
	gorm.Model

	CarrierID   string      `json:"carrier_id" gorm:"uniqueIndex"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone" gorm:"uniqueIndex"` // WhatsApp number - unique
	Email       string      `json:"email"`
	City        string      `json:"city"`
	CarrierType CarrierType `json:"carrier_type" gorm:"index"`

	// FleetSize is conventionally 1 for solo carriers but carrier_type stays
	// authoritative when legacy rows disagree.
	FleetSize int `json:"fleet_size" gorm:"default:1"`
}

// BeforeCreate hook to auto-generate CarrierID and normalize data
func (c *Carrier) BeforeCreate(tx *gorm.DB) error {
	if c.CarrierID == "" {
		c.CarrierID = fmt.Sprintf("CAR%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}

	// Normalize phone number (ensure it starts with +91 if not already)
	if c.Phone != "" && !strings.HasPrefix(c.Phone, "+") {
		c.Phone = "+91" + strings.TrimPrefix(c.Phone, "91")
	}

	if c.FleetSize < 1 {
		c.FleetSize = 1
	}

	return nil
}

// CarrierRegistration is used for new carrier registration
type CarrierRegistration struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	City        string `json:"city"`
	CarrierType string `json:"carrier_type" validate:"required,oneof=solo enterprise"`
	FleetSize   int    `json:"fleet_size" validate:"omitempty,min=1"`
}
