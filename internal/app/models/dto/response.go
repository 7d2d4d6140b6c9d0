package dto

import (
	"time"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
)

// APIResponse is the standard envelope for successful responses
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// SlotStatus reports the conversion state of one attachment slot
type SlotStatus struct {
	Slot  models.DocumentSlot `json:"slot" example:"akta"`
	State models.SlotState    `json:"state" example:"READY"`
	Error string              `json:"error,omitempty"`
}

// SessionResponse is the working state of one form session
type SessionResponse struct {
	SessionID  string                  `json:"sessionId"`
	View       string                  `json:"view" example:"form"`
	Fields     models.ApplicantDetails `json:"fields"`
	Slots      []SlotStatus            `json:"slots"`
	Submitting bool                    `json:"submitting"`
}

// LoginResponse carries the admin session token
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn" example:"43200"`
}

// RegistrationSummary is the dashboard row for one applicant record
type RegistrationSummary struct {
	ID               string             `json:"id" example:"K7X2QD"`
	Institution      models.Institution `json:"institution"`
	FullName         string             `json:"fullName"`
	GradeSection     string             `json:"tingkatRombel"`
	Phone            string             `json:"noTelepon"`
	AidStatus        models.AidStatus   `json:"statusKipPip"`
	DocumentCount    int                `json:"documentCount" example:"5"`
	DocumentTotal    int                `json:"documentTotal" example:"6"`
	RegistrationDate time.Time          `json:"registrationDate"`
}

// NewRegistrationSummary builds the dashboard row from a record
func NewRegistrationSummary(record *models.ApplicantRecord) RegistrationSummary {
	return RegistrationSummary{
		ID:               record.ID,
		Institution:      record.Institution,
		FullName:         record.FullName,
		GradeSection:     record.GradeSection,
		Phone:            record.Phone,
		AidStatus:        record.AidStatus,
		DocumentCount:    record.DocumentCount(),
		DocumentTotal:    len(models.DocumentSlots),
		RegistrationDate: record.RegistrationDate,
	}
}

// ChromeResponse is the public portal chrome derived from settings
type ChromeResponse struct {
	LogoApp      string              `json:"logoApp,omitempty"`
	LogoMTs      string              `json:"logoMts,omitempty"`
	LogoMA       string              `json:"logoMa,omitempty"`
	AcademicYear string              `json:"tahunPelajaran"`
	IntakeStatus models.IntakeStatus `json:"gelombangStatus"`
}

// PlacementResponse is the structured advisory placement suggestion
type PlacementResponse struct {
	Suggestion string `json:"suggestion" example:"VII-A"`
	Reason     string `json:"reason"`
}

// ReviewResponse is the free-text advisory feedback
type ReviewResponse struct {
	Feedback string `json:"feedback"`
}
