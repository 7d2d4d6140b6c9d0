package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
)

func composerRecord() *models.ApplicantRecord {
	return &models.ApplicantRecord{
		ID: "k7x2qd",
		ApplicantDetails: models.ApplicantDetails{
			Institution:      models.InstitutionMTs,
			FullName:         "Ahmad Fauzi",
			Gender:           models.GenderMale,
			BirthPlace:       "Kediri",
			BirthDate:        "2011-04-12",
			GradeSection:     "VII-A",
			Address:          "Dusun Krajan RT 01 RW 02",
			Phone:            "081234567890",
			AidStatus:        models.AidAbsent,
			FatherName:       "Budi Santoso",
			FatherOccupation: "Petani",
			FatherPhone:      "081234567891",
			MotherName:       "Siti Aminah",
			MotherOccupation: "Ibu Rumah Tangga",
			PhotoFile:        "data:image/jpeg;base64,Zm90bw==",
		},
		RegistrationDate: time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestComposeLetterheadFollowsInstitution(t *testing.T) {
	composer := NewComposerService()
	settings := models.SystemSettings{
		AcademicYear: "2024/2025",
		IntakeStatus: models.IntakeOpen,
		LogoMTs:      "data:image/png;base64,bXRz",
		LogoMA:       "data:image/png;base64,bWE=",
	}
	now := time.Date(2024, 7, 2, 10, 0, 0, 0, time.UTC)

	record := composerRecord()
	doc := composer.Compose(record, settings, now)
	assert.Equal(t, "MADRASAH TSANAWIYAH DARUL HUDA", doc.Letterhead.InstitutionName)
	assert.Equal(t, "121235060001", doc.Letterhead.NSM)
	assert.Equal(t, "20580001", doc.Letterhead.NPSN)
	assert.Equal(t, settings.LogoMTs, doc.Letterhead.Logo)

	record.Institution = models.InstitutionMA
	doc = composer.Compose(record, settings, now)
	assert.Equal(t, "MADRASAH ALIYAH DARUL HUDA", doc.Letterhead.InstitutionName)
	assert.Equal(t, "131235060001", doc.Letterhead.NSM)
	assert.Equal(t, "20580002", doc.Letterhead.NPSN)
	assert.Equal(t, settings.LogoMA, doc.Letterhead.Logo)
}

func TestComposeApplicantSection(t *testing.T) {
	composer := NewComposerService()
	now := time.Date(2024, 7, 2, 10, 0, 0, 0, time.UTC)

	doc := composer.Compose(composerRecord(), models.DefaultSettings(), now)
	require.NotEmpty(t, doc.Sections)
	rows := doc.Sections[0].Rows

	assert.Equal(t, "I. DATA CALON PESERTA DIDIK", doc.Sections[0].Title)
	assert.Equal(t, models.DocumentRow{Label: "Nomor Pendaftaran", Value: "K7X2QD"}, rows[0])
	assert.Equal(t, models.DocumentRow{Label: "Nama Lengkap", Value: "AHMAD FAUZI"}, rows[1])
	assert.Equal(t, models.DocumentRow{Label: "Tempat, Tanggal Lahir", Value: "Kediri, 12 April 2011"}, rows[3])
}

func TestComposeGuardianRowsOnlyWithGuardianName(t *testing.T) {
	composer := NewComposerService()
	now := time.Now()

	record := composerRecord()
	doc := composer.Compose(record, models.DefaultSettings(), now)
	for _, row := range doc.Sections[1].Rows {
		assert.NotEqual(t, "Nama Wali", row.Label)
	}

	record.GuardianName = "Hasan Basri"
	record.GuardianOccupation = "Pedagang"
	doc = composer.Compose(record, models.DefaultSettings(), now)
	labels := make([]string, 0)
	for _, row := range doc.Sections[1].Rows {
		labels = append(labels, row.Label)
	}
	assert.Contains(t, labels, "Nama Wali")
	assert.Contains(t, labels, "Pekerjaan Wali")
}

func TestComposeAidRow(t *testing.T) {
	composer := NewComposerService()
	now := time.Now()

	record := composerRecord()
	doc := composer.Compose(record, models.DefaultSettings(), now)
	rows := doc.Sections[1].Rows
	assert.Equal(t, "TIDAK ADA", rows[len(rows)-1].Value)

	record.AidStatus = models.AidPresent
	record.AidCardNumber = "1234567890"
	doc = composer.Compose(record, models.DefaultSettings(), now)
	rows = doc.Sections[1].Rows
	assert.Equal(t, "ADA (1234567890)", rows[len(rows)-1].Value)
}

func TestComposeChecklistMarksPresenceAndAidNote(t *testing.T) {
	composer := NewComposerService()
	record := composerRecord()

	doc := composer.Compose(record, models.DefaultSettings(), time.Now())
	require.Len(t, doc.Checklist, len(models.DocumentSlots))

	byLabel := make(map[string]models.ChecklistItem)
	for _, item := range doc.Checklist {
		byLabel[item.Label] = item
	}
	assert.True(t, byLabel["Pas Foto 3x4 (Background Merah)"].Checked)
	assert.False(t, byLabel["Fotocopy Akta Kelahiran"].Checked)
	assert.Equal(t, "(N/A)", byLabel["Fotocopy KIP/PIP/PKH"].Note)
}

func TestComposeIsDeterministicForFixedInstant(t *testing.T) {
	composer := NewComposerService()
	record := composerRecord()
	settings := models.DefaultSettings()
	now := time.Date(2024, 7, 2, 10, 0, 0, 0, time.UTC)

	first := composer.Compose(record, settings, now)
	second := composer.Compose(record, settings, now)
	assert.Equal(t, first, second)
	assert.Equal(t, "Kediri, 2 Juli 2024", first.Signature.PlaceAndDate)
	assert.Contains(t, first.Footer, "2 Juli 2024 10.00.00")
}

func TestComposeNeverMutatesInputs(t *testing.T) {
	composer := NewComposerService()
	record := composerRecord()
	original := *record
	settings := models.DefaultSettings()

	_ = composer.Compose(record, settings, time.Now())
	assert.Equal(t, original, *record)
}
