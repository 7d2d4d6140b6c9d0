package models

import (
	"time"
)

// ApplicantDetails carries every applicant-entered field of a submission.
// JSON keys match the blob layout the original portal persisted, so an
// existing store rehydrates unchanged.
type ApplicantDetails struct {
	Institution Institution `json:"institution" example:"MTs"` // Admission track the applicant chose

	// Personal data
	FullName         string `json:"fullName" example:"Ahmad Fauzi"`
	Gender           Gender `json:"jenisKelamin" example:"Laki-laki"`
	BirthPlace       string `json:"tempatLahir" example:"Kediri"`
	BirthDate        string `json:"tanggalLahir" example:"2011-04-12"` // ISO date (yyyy-mm-dd), as entered on the form
	GradeSection     string `json:"tingkatRombel" example:"VII-A"`
	Age              int    `json:"umur" example:"13"` // Derived from BirthDate, never entered directly
	EnrollmentStatus string `json:"status" example:"Pendaftar Baru"`
	Address          string `json:"alamat"`
	Phone            string `json:"noTelepon" example:"081234567890"`
	SpecialNeeds     string `json:"kebutuhanKhusus" example:"Tidak Ada"`
	Disability       string `json:"disabilitas" example:"Tidak Ada"`

	// Financial aid (KIP/PIP)
	AidStatus     AidStatus `json:"statusKipPip" example:"Tidak Ada"`
	AidCardNumber string    `json:"nomorKipPip,omitempty"` // Meaningful only when AidStatus is present

	// Father
	FatherName       string `json:"namaAyah"`
	FatherEducation  string `json:"pendidikanAyah"`
	FatherOccupation string `json:"pekerjaanAyah"`
	FatherAddress    string `json:"alamatAyah"`
	FatherPhone      string `json:"noHpAyah"`

	// Mother
	MotherName       string `json:"namaIbu"`
	MotherEducation  string `json:"pendidikanIbu"`
	MotherOccupation string `json:"pekerjaanIbu"`
	MotherAddress    string `json:"alamatIbu"`
	MotherPhone      string `json:"noHpIbu"`

	// Legal guardian (every field optional)
	GuardianName       string `json:"namaWali,omitempty"`
	GuardianEducation  string `json:"pendidikanWali,omitempty"`
	GuardianOccupation string `json:"pekerjaanWali,omitempty"`
	GuardianAddress    string `json:"alamatWali,omitempty"`
	GuardianPhone      string `json:"noHpWali,omitempty"`

	// Attached documents, each either empty or an inline data representation
	BirthCertificateFile string `json:"fileAkta,omitempty"`
	FamilyCardFile       string `json:"fileKK,omitempty"`
	DiplomaFile          string `json:"fileIjazah,omitempty"`
	PhotoFile            string `json:"fileFoto,omitempty"`
	ParentIDFile         string `json:"fileKtpOrtu,omitempty"`
	AidCardFile          string `json:"fileKipPip,omitempty"`
}

// ApplicantRecord is a finalized submission. Created once, in full, when a
// form session passes validation; never edited or deleted afterwards.
type ApplicantRecord struct {
	ID string `json:"id" example:"K7X2QD"` // Short uppercase registration number, assigned at creation
	ApplicantDetails
	RegistrationDate time.Time `json:"registrationDate"` // Stamped at creation, immutable
}

// Document returns the inline content of one attachment slot
func (d *ApplicantDetails) Document(slot DocumentSlot) string {
	switch slot {
	case SlotBirthCertificate:
		return d.BirthCertificateFile
	case SlotFamilyCard:
		return d.FamilyCardFile
	case SlotDiploma:
		return d.DiplomaFile
	case SlotPhoto:
		return d.PhotoFile
	case SlotParentID:
		return d.ParentIDFile
	case SlotAidCard:
		return d.AidCardFile
	}
	return ""
}

// SetDocument stores inline content into one attachment slot
func (d *ApplicantDetails) SetDocument(slot DocumentSlot, content string) {
	switch slot {
	case SlotBirthCertificate:
		d.BirthCertificateFile = content
	case SlotFamilyCard:
		d.FamilyCardFile = content
	case SlotDiploma:
		d.DiplomaFile = content
	case SlotPhoto:
		d.PhotoFile = content
	case SlotParentID:
		d.ParentIDFile = content
	case SlotAidCard:
		d.AidCardFile = content
	}
}

// DocumentCount returns how many of the six slots hold content
func (d *ApplicantDetails) DocumentCount() int {
	count := 0
	for _, slot := range DocumentSlots {
		if d.Document(slot) != "" {
			count++
		}
	}
	return count
}
