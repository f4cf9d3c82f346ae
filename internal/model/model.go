// Package model defines domain entities exchanged with the CareLink backend.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Role distinguishes the two marketplace sides (plus admins).
type Role string

const (
	RolePatient Role = "patient"
	RoleNurse   Role = "nurse"
	RoleAdmin   Role = "admin"
)

// AccountStatus tracks moderation state of an account.
type AccountStatus string

const (
	AccountPending   AccountStatus = "pending"
	AccountApproved  AccountStatus = "approved"
	AccountSuspended AccountStatus = "suspended"
)

// User is an account as returned by the backend.
type User struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Role      Role          `json:"role"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Location is a WGS84 point used for nurse proximity search.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NurseProfile carries the nurse-specific part of an account.
type NurseProfile struct {
	UserID          uuid.UUID `json:"userId"`
	Name            string    `json:"name"`
	LicenceNumber   string    `json:"licenceNumber"`
	YearsExperience int       `json:"yearsExperience"`
	Specialties     []string  `json:"specialties,omitempty"`
	HourlyRate      float64   `json:"hourlyRate"`
	Location        Location  `json:"location"`
	Rating          float64   `json:"rating"` // average, 0 when unrated
	ReviewCount     int       `json:"reviewCount"`
	DistanceKm      float64   `json:"distanceKm,omitempty"` // filled by nearby search
}

// RequestStatus is the lifecycle state of a care request.
type RequestStatus string

const (
	RequestOpen      RequestStatus = "open"
	RequestAccepted  RequestStatus = "accepted"
	RequestCompleted RequestStatus = "completed"
	RequestCancelled RequestStatus = "cancelled"
)

// CareRequest is a patient's posting for home-nursing service.
type CareRequest struct {
	ID          uuid.UUID     `json:"id"`
	PatientID   uuid.UUID     `json:"patientId"`
	Title       string        `json:"title"`
	Details     string        `json:"details,omitempty"`
	Address     string        `json:"address"`
	Location    Location      `json:"location"`
	ScheduledAt time.Time     `json:"scheduledAt"`
	Hours       int           `json:"hours"`  // expected duration
	Budget      float64       `json:"budget"` // offered total, 0 = negotiable
	Status      RequestStatus `json:"status"`
	NurseID     uuid.UUID     `json:"nurseId"` // zero until accepted
	CreatedAt   time.Time     `json:"createdAt"`
}

// ApplicationStatus is the lifecycle state of a nurse's application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is a nurse's offer on an open care request.
type Application struct {
	ID        uuid.UUID         `json:"id"`
	RequestID uuid.UUID         `json:"requestId"`
	NurseID   uuid.UUID         `json:"nurseId"`
	Price     float64           `json:"price"`
	Message   string            `json:"message,omitempty"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Review is a rating left after a completed request. Rating is 1..5.
type Review struct {
	ID        uuid.UUID `json:"id"`
	RequestID uuid.UUID `json:"requestId"`
	RaterID   uuid.UUID `json:"raterId"`
	RateeID   uuid.UUID `json:"rateeId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Tokens is the credential material issued at login: the bearer token and
// its expiry as read from the JWT exp claim (zero for opaque tokens).
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time
}
