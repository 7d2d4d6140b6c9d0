package models

// SystemSettings is the singleton portal configuration. JSON keys match the
// blob layout the original portal persisted.
type SystemSettings struct {
	LogoMTs      string       `json:"logoMts,omitempty"` // Inline image for the MTs letterhead
	LogoMA       string       `json:"logoMa,omitempty"`  // Inline image for the MA letterhead
	LogoApp      string       `json:"logoApp,omitempty"` // Inline image for the portal chrome
	AcademicYear string       `json:"tahunPelajaran" example:"2024/2025"`
	IntakeStatus IntakeStatus `json:"gelombangStatus" example:"Buka"`
}

// LogoSlot names one of the three configurable logos
type LogoSlot string

const (
	LogoSlotApp LogoSlot = "app"
	LogoSlotMTs LogoSlot = "mts"
	LogoSlotMA  LogoSlot = "ma"
)

// Valid reports whether the logo slot is known
func (s LogoSlot) Valid() bool {
	return s == LogoSlotApp || s == LogoSlotMTs || s == LogoSlotMA
}

// DefaultSettings returns the configuration used before an admin saves one
func DefaultSettings() SystemSettings {
	return SystemSettings{
		AcademicYear: "2024/2025",
		IntakeStatus: IntakeOpen,
	}
}
