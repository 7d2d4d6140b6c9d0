package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
	"github.com/darulhuda/ppdb-portal/internal/pkg/helpers"
)

// Letterhead constants of the printed admission form
const (
	foundationName = "YAYASAN PONDOK PESANTREN DARUL HUDA"
	foundationAddr = "Jl. Darul Huda No. 123, Kabupaten Kediri, Jawa Timur"
	documentTitle  = "FORMULIR PENDAFTARAN PESERTA DIDIK BARU"
	signaturePlace = "Kediri"
)

// letterheads maps each admission track to its registered identity
var letterheads = map[models.Institution]models.Letterhead{
	models.InstitutionMTs: {
		FoundationName:  foundationName,
		InstitutionName: "MADRASAH TSANAWIYAH DARUL HUDA",
		Address:         foundationAddr,
		NSM:             "121235060001",
		NPSN:            "20580001",
	},
	models.InstitutionMA: {
		FoundationName:  foundationName,
		InstitutionName: "MADRASAH ALIYAH DARUL HUDA",
		Address:         foundationAddr,
		NSM:             "131235060001",
		NPSN:            "20580002",
	},
}

// ComposerService lays out the printable admission form. Compose is a pure
// function of its inputs: same record, settings and instant give the same
// document.
type ComposerService struct{}

// NewComposerService creates a new ComposerService
func NewComposerService() *ComposerService {
	return &ComposerService{}
}

// Compose builds the fixed-layout admission form for one record. The
// institution selects the letterhead and logo; everything else comes from the
// record and the given instant.
func (s *ComposerService) Compose(record *models.ApplicantRecord, settings models.SystemSettings, now time.Time) *models.Document {
	letterhead := letterheads[record.Institution]
	switch record.Institution {
	case models.InstitutionMTs:
		letterhead.Logo = settings.LogoMTs
	case models.InstitutionMA:
		letterhead.Logo = settings.LogoMA
	}

	return &models.Document{
		Letterhead:   letterhead,
		Title:        documentTitle,
		AcademicYear: settings.AcademicYear,
		Photo: models.PhotoBox{
			Present:     record.PhotoFile != "",
			Content:     record.PhotoFile,
			Placeholder: "PAS FOTO 3 x 4",
			TopMM:       125,
			RightMM:     15,
			WidthCM:     3,
			HeightCM:    4,
		},
		Sections: []models.DocumentSection{
			applicantSection(record),
			guardianSection(record),
		},
		Checklist: checklist(record),
		Signature: models.SignatureBlock{
			PlaceAndDate: fmt.Sprintf("%s, %s", signaturePlace, helpers.FormatIndonesianDate(now)),
			LeftCaption:  "Mengetahui,",
			LeftRole:     "Orang Tua / Wali Murid",
			LeftName:     "( ............................................ )",
			RightRole:    "Calon Peserta Didik",
			RightName:    fmt.Sprintf("( %s )", strings.ToUpper(record.FullName)),
		},
		Footer:      fmt.Sprintf("* Dokumen ini dicetak otomatis melalui Sistem PPDB Online Darul Huda pada %s", helpers.FormatIndonesianTimestamp(now)),
		GeneratedAt: now,
	}
}

func applicantSection(record *models.ApplicantRecord) models.DocumentSection {
	return models.DocumentSection{
		Title: "I. DATA CALON PESERTA DIDIK",
		Rows: []models.DocumentRow{
			{Label: "Nomor Pendaftaran", Value: strings.ToUpper(record.ID)},
			{Label: "Nama Lengkap", Value: strings.ToUpper(record.FullName)},
			{Label: "Jenis Kelamin", Value: string(record.Gender)},
			{Label: "Tempat, Tanggal Lahir", Value: fmt.Sprintf("%s, %s", record.BirthPlace, formatBirthDate(record.BirthDate))},
			{Label: "Tingkat / Rombel", Value: record.GradeSection},
			{Label: "Alamat Domisili", Value: record.Address},
			{Label: "Nomor HP / WA", Value: record.Phone},
		},
	}
}

// guardianSection renders the parent block. The legal-guardian rows appear
// only when a guardian name was supplied; the aid row folds status and card
// number into one line.
func guardianSection(record *models.ApplicantRecord) models.DocumentSection {
	rows := []models.DocumentRow{
		{Label: "Nama Ayah Kandung", Value: record.FatherName},
		{Label: "Pekerjaan Ayah", Value: record.FatherOccupation},
		{Label: "Nama Ibu Kandung", Value: record.MotherName},
		{Label: "Pekerjaan Ibu", Value: record.MotherOccupation},
		{Label: "Nomor HP Ortu", Value: firstNonEmpty(record.FatherPhone, record.MotherPhone)},
	}
	if record.GuardianName != "" {
		rows = append(rows,
			models.DocumentRow{Label: "Nama Wali", Value: record.GuardianName},
			models.DocumentRow{Label: "Pekerjaan Wali", Value: record.GuardianOccupation},
		)
	}

	aid := "TIDAK ADA"
	if record.AidStatus == models.AidPresent {
		aid = fmt.Sprintf("ADA (%s)", record.AidCardNumber)
	}
	rows = append(rows, models.DocumentRow{Label: "Status KIP/PIP", Value: aid})

	return models.DocumentSection{
		Title: "II. DATA ORANG TUA / WALI",
		Rows:  rows,
	}
}

// checklist mirrors the two-column completeness grid of the printed form,
// in its reading order.
func checklist(record *models.ApplicantRecord) []models.ChecklistItem {
	items := []models.ChecklistItem{
		{Label: "Fotocopy Akta Kelahiran", Checked: record.BirthCertificateFile != ""},
		{Label: "Pas Foto 3x4 (Background Merah)", Checked: record.PhotoFile != ""},
		{Label: "Fotocopy Kartu Keluarga", Checked: record.FamilyCardFile != ""},
		{Label: "Fotocopy KTP Orang Tua / Wali", Checked: record.ParentIDFile != ""},
		{Label: "Fotocopy Ijazah/SKL (Legalisir)", Checked: record.DiplomaFile != ""},
		{Label: "Fotocopy KIP/PIP/PKH", Checked: record.AidCardFile != ""},
	}
	if record.AidStatus != models.AidPresent {
		items[len(items)-1].Note = "(N/A)"
	}
	return items
}

// formatBirthDate renders the stored ISO date in Indonesian long form,
// passing unparseable values through untouched.
func formatBirthDate(value string) string {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return helpers.FormatIndonesianDate(t)
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
