package dto

import (
	"github.com/darulhuda/ppdb-portal/internal/app/models"
)

// LoginRequest carries the admin credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required"`
}

// StartSessionRequest opens a form session for one admission track
type StartSessionRequest struct {
	Institution models.Institution `json:"institution" binding:"required" example:"MTs"`
}

// FieldUpdateRequest is a partial update of the working state. Pointer fields
// distinguish "not sent" from "cleared". Age is absent on purpose: it is
// derived from the birth date and never accepted from the client.
type FieldUpdateRequest struct {
	FullName         *string           `json:"fullName,omitempty"`
	Gender           *models.Gender    `json:"jenisKelamin,omitempty"`
	BirthPlace       *string           `json:"tempatLahir,omitempty"`
	BirthDate        *string           `json:"tanggalLahir,omitempty"`
	GradeSection     *string           `json:"tingkatRombel,omitempty"`
	EnrollmentStatus *string           `json:"status,omitempty"`
	Address          *string           `json:"alamat,omitempty"`
	Phone            *string           `json:"noTelepon,omitempty"`
	SpecialNeeds     *string           `json:"kebutuhanKhusus,omitempty"`
	Disability       *string           `json:"disabilitas,omitempty"`
	AidStatus        *models.AidStatus `json:"statusKipPip,omitempty"`
	AidCardNumber    *string           `json:"nomorKipPip,omitempty"`

	FatherName       *string `json:"namaAyah,omitempty"`
	FatherEducation  *string `json:"pendidikanAyah,omitempty"`
	FatherOccupation *string `json:"pekerjaanAyah,omitempty"`
	FatherAddress    *string `json:"alamatAyah,omitempty"`
	FatherPhone      *string `json:"noHpAyah,omitempty"`

	MotherName       *string `json:"namaIbu,omitempty"`
	MotherEducation  *string `json:"pendidikanIbu,omitempty"`
	MotherOccupation *string `json:"pekerjaanIbu,omitempty"`
	MotherAddress    *string `json:"alamatIbu,omitempty"`
	MotherPhone      *string `json:"noHpIbu,omitempty"`

	GuardianName       *string `json:"namaWali,omitempty"`
	GuardianEducation  *string `json:"pendidikanWali,omitempty"`
	GuardianOccupation *string `json:"pekerjaanWali,omitempty"`
	GuardianAddress    *string `json:"alamatWali,omitempty"`
	GuardianPhone      *string `json:"noHpWali,omitempty"`
}

// UpdateSettingsRequest fully overwrites the system settings
type UpdateSettingsRequest struct {
	AcademicYear string              `json:"tahunPelajaran" binding:"required" example:"2025/2026"`
	IntakeStatus models.IntakeStatus `json:"gelombangStatus" binding:"required" example:"Buka"`
}

// PlacementRequest asks the advisory service for a grade/section suggestion
type PlacementRequest struct {
	Institution models.Institution `json:"institution" binding:"required" example:"MTs"`
	Age         int                `json:"age" binding:"required,min=1" example:"13"`
}
