package models

import "time"

// Letterhead is the institution-dependent header of the printed form
type Letterhead struct {
	FoundationName  string `json:"foundationName"`
	InstitutionName string `json:"institutionName"`
	Address         string `json:"address"`
	NSM             string `json:"nsm"`  // Madrasah statistics number
	NPSN            string `json:"npsn"` // National school identifier
	Logo            string `json:"logo,omitempty"`
}

// DocumentRow is one label/value line inside a document section
type DocumentRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DocumentSection groups rows under a numbered heading
type DocumentSection struct {
	Title string        `json:"title"`
	Rows  []DocumentRow `json:"rows"`
}

// ChecklistItem is one entry of the document-completeness checklist.
// Checked reflects slot presence only, not content validity.
type ChecklistItem struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
	Note    string `json:"note,omitempty"`
}

// PhotoBox describes the fixed-position pass-photo region of the page.
// Measurements are millimetres on an A4 portrait page.
type PhotoBox struct {
	Present     bool    `json:"present"`
	Content     string  `json:"content,omitempty"` // Inline image when present
	Placeholder string  `json:"placeholder,omitempty"`
	TopMM       float64 `json:"topMm"`
	RightMM     float64 `json:"rightMm"`
	WidthCM     float64 `json:"widthCm"`
	HeightCM    float64 `json:"heightCm"`
}

// SignatureBlock is the two-column signature area at the foot of the form
type SignatureBlock struct {
	PlaceAndDate string `json:"placeAndDate"`
	LeftCaption  string `json:"leftCaption"`
	LeftRole     string `json:"leftRole"`
	LeftName     string `json:"leftName"`
	RightRole    string `json:"rightRole"`
	RightName    string `json:"rightName"`
}

// Document is the fully laid-out admission form for one applicant, produced
// by the composer and consumed by both the preview endpoint and the exporter.
type Document struct {
	Letterhead   Letterhead        `json:"letterhead"`
	Title        string            `json:"title"`
	AcademicYear string            `json:"academicYear"`
	Photo        PhotoBox          `json:"photo"`
	Sections     []DocumentSection `json:"sections"`
	Checklist    []ChecklistItem   `json:"checklist"`
	Signature    SignatureBlock    `json:"signature"`
	Footer       string            `json:"footer"`
	GeneratedAt  time.Time         `json:"generatedAt"`
}
