package models

import (
	"fmt"
	"strings"
	"time"
)

type Occupation string

const (
	OccupationStudent  Occupation = "student"
	OccupationWorking  Occupation = "working"
	OccupationBusiness Occupation = "business"
	OccupationOther    Occupation = "other"
)

type TenantStatus string

const (
	TenantActive   TenantStatus = "active"
	TenantInactive TenantStatus = "inactive"
)

type EmergencyContact struct {
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Relationship string `bson:"relationship,omitempty" json:"relationship,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Tenant is a resident registered against a hostel.
type Tenant struct {
	ID                string           `bson:"_id" json:"id"`
	Name              string           `bson:"name" json:"name"`
	CNIC              string           `bson:"cnic" json:"cnic"`
	ContactNumber     string           `bson:"contactNumber" json:"contactNumber"`
	Email             string           `bson:"email,omitempty" json:"email,omitempty"`
	HostelID          string           `bson:"hostel" json:"hostel"`
	EmergencyContact  EmergencyContact `bson:"emergencyContact" json:"emergencyContact"`
	Occupation        Occupation       `bson:"occupation" json:"occupation"`
	OccupationDetails string           `bson:"occupationDetails,omitempty" json:"occupationDetails,omitempty"`
	Status            TenantStatus     `bson:"status" json:"status"`
	Notes             string           `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time        `bson:"updatedAt" json:"updatedAt"`
}

func (t *Tenant) BeforeChange(now time.Time) {
	if t.Status == "" {
		t.Status = TenantActive
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

func (t *Tenant) Validate() error {
	var problems []string
	if strings.TrimSpace(t.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(t.CNIC) == "" {
		problems = append(problems, "cnic is required")
	}
	if strings.TrimSpace(t.ContactNumber) == "" {
		problems = append(problems, "contactNumber is required")
	}
	if strings.TrimSpace(t.HostelID) == "" {
		problems = append(problems, "hostel is required")
	}
	switch t.Occupation {
	case OccupationStudent, OccupationWorking, OccupationBusiness, OccupationOther:
	default:
		problems = append(problems, fmt.Sprintf("occupation %q is not supported", t.Occupation))
	}
	switch t.Status {
	case TenantActive, TenantInactive:
	default:
		problems = append(problems, fmt.Sprintf("status %q is not supported", t.Status))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}
