package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
	"github.com/darulhuda/ppdb-portal/internal/pkg/helpers"
	"github.com/darulhuda/ppdb-portal/internal/pkg/inline"
)

// ExportService renders composed documents and the registration listing as
// xlsx workbooks. Every failure wraps ErrExportFailed so callers can offer a
// retry instead of a dead end.
type ExportService struct {
	composer *ComposerService
	logger   zerolog.Logger
}

// NewExportService creates a new ExportService
func NewExportService(composer *ComposerService, logger zerolog.Logger) *ExportService {
	return &ExportService{
		composer: composer,
		logger:   logger,
	}
}

// DocumentFilename names the downloaded admission form,
// e.g. "PPDB_MTs_Ahmad_Fauzi.xlsx"
func DocumentFilename(record *models.ApplicantRecord) string {
	name := strings.Join(strings.Fields(record.FullName), "_")
	return fmt.Sprintf("PPDB_%s_%s.xlsx", record.Institution, name)
}

// ExportDocument renders one applicant's admission form as a workbook
func (s *ExportService) ExportDocument(record *models.ApplicantRecord, settings models.SystemSettings, now time.Time) ([]byte, error) {
	doc := s.composer.Compose(record, settings, now)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Formulir"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExportFailed, err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExportFailed, err)
	}
	if err := f.SetColWidth(sheet, "B", "D", 22); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExportFailed, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExportFailed, err)
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F0F0F0"}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExportFailed, err)
	}

	row := 1
	writeMerged := func(text string, style int) {
		cell := fmt.Sprintf("A%d", row)
		_ = f.MergeCell(sheet, cell, fmt.Sprintf("D%d", row))
		_ = f.SetCellValue(sheet, cell, text)
		if style != 0 {
			_ = f.SetCellStyle(sheet, cell, cell, style)
		}
		row++
	}

	writeMerged(doc.Letterhead.FoundationName, headerStyle)
	writeMerged(doc.Letterhead.InstitutionName, headerStyle)
	writeMerged(doc.Letterhead.Address, 0)
	writeMerged(fmt.Sprintf("NSM: %s | NPSN: %s", doc.Letterhead.NSM, doc.Letterhead.NPSN), 0)
	row++
	writeMerged(doc.Title, headerStyle)
	writeMerged(fmt.Sprintf("Tahun Pelajaran %s", doc.AcademicYear), 0)
	row++

	if doc.Photo.Present {
		if err := s.embedImage(f, sheet, fmt.Sprintf("D%d", row), doc.Photo.Content); err != nil {
			s.logger.Warn().Err(err).Str("id", record.ID).Msg("Photo could not be embedded, exporting without it")
		}
	}

	for _, section := range doc.Sections {
		writeMerged(section.Title, sectionStyle)
		for _, r := range section.Rows {
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Label)
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ": "+r.Value)
			row++
		}
		row++
	}

	writeMerged("III. KETERANGAN KELENGKAPAN BERKAS", sectionStyle)
	for _, item := range doc.Checklist {
		mark := "☐"
		if item.Checked {
			mark = "☑"
		}
		label := item.Label
		if item.Note != "" {
			label += " " + item.Note
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s %s", mark, label))
		row++
	}
	row++

	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), doc.Signature.LeftCaption)
	_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), doc.Signature.PlaceAndDate)
	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), doc.Signature.LeftRole)
	_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), doc.Signature.RightRole)
	row += 4
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), doc.Signature.LeftName)
	_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), doc.Signature.RightName)
	row += 2
	writeMerged(doc.Footer, 0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error().Err(err).Str("id", record.ID).Msg("Workbook serialization failed")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

// ExportRegistrations renders the admin listing as a workbook, one applicant
// per row in submission order.
func (s *ExportService) ExportRegistrations(records []models.ApplicantRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Pendaftar"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExportFailed, err)
	}

	headers := []string{
		"Nomor Pendaftaran", "Lembaga", "Nama Lengkap", "Jenis Kelamin",
		"Tempat Lahir", "Tanggal Lahir", "Umur", "Tingkat - Rombel",
		"No Telepon", "Alamat", "Status KIP/PIP", "Nomor KIP/PIP",
		"Nama Ayah", "Nama Ibu", "Jumlah Berkas", "Tanggal Daftar",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrExportFailed, err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrExportFailed, err)
		}
	}

	for i, record := range records {
		values := []interface{}{
			record.ID,
			string(record.Institution),
			record.FullName,
			string(record.Gender),
			record.BirthPlace,
			record.BirthDate,
			record.Age,
			record.GradeSection,
			record.Phone,
			record.Address,
			string(record.AidStatus),
			record.AidCardNumber,
			record.FatherName,
			record.MotherName,
			fmt.Sprintf("%d/%d", record.DocumentCount(), len(models.DocumentSlots)),
			helpers.FormatIndonesianTimestamp(record.RegistrationDate),
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", apperrors.ErrExportFailed, err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("%w: %v", apperrors.ErrExportFailed, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error().Err(err).Msg("Listing serialization failed")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

// embedImage decodes one inline image and anchors it at the given cell
func (s *ExportService) embedImage(f *excelize.File, sheet, cell, content string) error {
	mediaType, data, err := inline.Decode(content)
	if err != nil {
		return err
	}
	ext := ""
	switch mediaType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	default:
		return fmt.Errorf("media type %s cannot be embedded", mediaType)
	}
	return f.AddPictureFromBytes(sheet, cell, &excelize.Picture{
		Extension: ext,
		File:      data,
		Format:    &excelize.GraphicOptions{ScaleX: 0.5, ScaleY: 0.5},
	})
}
