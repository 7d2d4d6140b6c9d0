package models

// Institution identifies one of the two admission tracks. The value doubles
// as the display code on the printed form.
type Institution string

const (
	InstitutionMTs Institution = "MTs" // Madrasah Tsanawiyah (lower secondary)
	InstitutionMA  Institution = "MA"  // Madrasah Aliyah (upper secondary)
)

// Valid reports whether the institution is one of the two known tracks
func (i Institution) Valid() bool {
	return i == InstitutionMTs || i == InstitutionMA
}

// Gender enumerates the two accepted values, serialized with the labels the
// original form stores.
type Gender string

const (
	GenderMale   Gender = "Laki-laki"
	GenderFemale Gender = "Perempuan"
)

// Valid reports whether the gender is one of the enumerated values
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// AidStatus marks whether the applicant holds a need-based financial-aid
// (KIP/PIP) card.
type AidStatus string

const (
	AidPresent AidStatus = "Ada"
	AidAbsent  AidStatus = "Tidak Ada"
)

// Valid reports whether the aid status is one of the enumerated values
func (a AidStatus) Valid() bool {
	return a == AidPresent || a == AidAbsent
}

// IntakeStatus describes the state of the current admission window
type IntakeStatus string

const (
	IntakeOpen     IntakeStatus = "Buka"
	IntakeClosed   IntakeStatus = "Tutup"
	IntakeUpcoming IntakeStatus = "Segera Dibuka"
)

// Valid reports whether the intake status is one of the enumerated values
func (s IntakeStatus) Valid() bool {
	return s == IntakeOpen || s == IntakeClosed || s == IntakeUpcoming
}

// DocumentSlot names one of the six attachment slots on the form
type DocumentSlot string

const (
	SlotBirthCertificate DocumentSlot = "akta"
	SlotFamilyCard       DocumentSlot = "kk"
	SlotDiploma          DocumentSlot = "ijazah"
	SlotPhoto            DocumentSlot = "foto"
	SlotParentID         DocumentSlot = "ktpOrtu"
	SlotAidCard          DocumentSlot = "kipPip"
)

// DocumentSlots lists every slot in form order
var DocumentSlots = []DocumentSlot{
	SlotBirthCertificate,
	SlotFamilyCard,
	SlotDiploma,
	SlotPhoto,
	SlotParentID,
	SlotAidCard,
}

// Valid reports whether the slot is one of the six known slots
func (s DocumentSlot) Valid() bool {
	for _, slot := range DocumentSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotState tracks an asynchronous file conversion for one document slot
type SlotState string

const (
	SlotEmpty   SlotState = "EMPTY"
	SlotPending SlotState = "PENDING"
	SlotReady   SlotState = "READY"
	SlotFailed  SlotState = "FAILED"
)
