package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation is wrapped by every Validate failure in this package.
var ErrValidation = errors.New("validation failed")

type RoomType string

const (
	RoomTypeMale   RoomType = "male"
	RoomTypeFemale RoomType = "female"
	RoomTypeMixed  RoomType = "mixed"
)

var RoomTypes = []RoomType{RoomTypeMale, RoomTypeFemale, RoomTypeMixed}

type BedsPerRoom string

const (
	BedsSingle BedsPerRoom = "single"
	BedsDouble BedsPerRoom = "double"
	BedsTriple BedsPerRoom = "triple"
)

var BedsPerRoomOptions = []BedsPerRoom{BedsSingle, BedsDouble, BedsTriple}

type Facility string

const (
	FacilityWiFi             Facility = "WiFi"
	FacilityAC               Facility = "AC"
	FacilityLaundry          Facility = "Laundry"
	FacilityKitchen          Facility = "Kitchen"
	FacilitySecurity         Facility = "24/7 Security"
	FacilityAttachedBathroom Facility = "Attached Bathroom"
	FacilityParking          Facility = "Parking"
	FacilityGenerator        Facility = "Generator/UPS"
)

var Facilities = []Facility{
	FacilityWiFi,
	FacilityAC,
	FacilityAttachedBathroom,
	FacilityKitchen,
	FacilityLaundry,
	FacilityParking,
	FacilitySecurity,
	FacilityGenerator,
}

const maxGalleryImages = 10

type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

type Address struct {
	Street     string   `bson:"street" json:"street"`
	Area       string   `bson:"area" json:"area"`
	City       string   `bson:"city" json:"city"`
	PostalCode string   `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Location   Location `bson:"location" json:"location"`
}

// Occupant is a person currently living in a hostel, as listed on the
// hostel record itself.
type Occupant struct {
	Name       string    `bson:"name" json:"name"`
	RoomNumber string    `bson:"roomNumber" json:"roomNumber"`
	StartDate  time.Time `bson:"startDate" json:"startDate"`
	EndDate    time.Time `bson:"endDate" json:"endDate"`
}

type Hostel struct {
	ID          string  `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description" json:"description"`
	Address     Address `bson:"address" json:"address"`

	Thumbnail string   `bson:"thumbnail" json:"thumbnail"`
	Images    []string `bson:"images" json:"images"`

	TotalRooms    int         `bson:"totalRooms" json:"totalRooms"`
	TotalBeds     int         `bson:"totalBeds" json:"totalBeds"`
	OccupiedBeds  int         `bson:"occupiedBeds" json:"occupiedBeds"`
	AvailableBeds int         `bson:"availableBeds" json:"availableBeds"`
	BedsPerRoom   BedsPerRoom `bson:"bedsPerRoom" json:"bedsPerRoom"`
	RoomType      RoomType    `bson:"roomType" json:"roomType"`

	RentPerBed      float64 `bson:"rentPerBed" json:"rentPerBed"`
	SecurityDeposit float64 `bson:"securityDeposit" json:"securityDeposit"`

	Facilities []Facility `bson:"facilities" json:"facilities"`
	Occupants  []Occupant `bson:"tenants,omitempty" json:"tenants,omitempty"`

	Manager       string `bson:"manager" json:"manager"`
	ContactNumber string `bson:"contactNumber" json:"contactNumber"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasFacility reports whether f is offered by the hostel.
func (h *Hostel) HasFacility(f Facility) bool {
	for _, have := range h.Facilities {
		if have == f {
			return true
		}
	}
	return false
}

// BeforeChange keeps the derived fields consistent before a write.
func (h *Hostel) BeforeChange(now time.Time) {
	h.AvailableBeds = h.TotalBeds - h.OccupiedBeds
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	h.UpdatedAt = now
}

func (h *Hostel) Validate() error {
	var problems []string

	required := []struct{ field, value string }{
		{"name", h.Name},
		{"description", h.Description},
		{"address.street", h.Address.Street},
		{"address.area", h.Address.Area},
		{"address.city", h.Address.City},
		{"thumbnail", h.Thumbnail},
		{"manager", h.Manager},
		{"contactNumber", h.ContactNumber},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, r.field+" is required")
		}
	}

	if h.TotalRooms < 1 {
		problems = append(problems, "totalRooms must be at least 1")
	}
	if h.TotalBeds < 1 {
		problems = append(problems, "totalBeds must be at least 1")
	}
	if h.OccupiedBeds < 0 {
		problems = append(problems, "occupiedBeds must not be negative")
	}
	if h.OccupiedBeds > h.TotalBeds {
		problems = append(problems, "occupiedBeds must not exceed totalBeds")
	}
	if h.RentPerBed < 0 {
		problems = append(problems, "rentPerBed must not be negative")
	}
	if h.SecurityDeposit < 0 {
		problems = append(problems, "securityDeposit must not be negative")
	}
	if len(h.Images) > maxGalleryImages {
		problems = append(problems, fmt.Sprintf("at most %d gallery images are allowed", maxGalleryImages))
	}
	if !IsRoomType(string(h.RoomType)) {
		problems = append(problems, fmt.Sprintf("roomType %q is not supported", h.RoomType))
	}
	if !IsBedsPerRoom(string(h.BedsPerRoom)) {
		problems = append(problems, fmt.Sprintf("bedsPerRoom %q is not supported", h.BedsPerRoom))
	}
	for _, f := range h.Facilities {
		if !IsFacility(string(f)) {
			problems = append(problems, fmt.Sprintf("facility %q is not supported", f))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

func IsRoomType(v string) bool {
	for _, rt := range RoomTypes {
		if string(rt) == v {
			return true
		}
	}
	return false
}

func IsBedsPerRoom(v string) bool {
	for _, b := range BedsPerRoomOptions {
		if string(b) == v {
			return true
		}
	}
	return false
}

func IsFacility(v string) bool {
	for _, f := range Facilities {
		if string(f) == v {
			return true
		}
	}
	return false
}
