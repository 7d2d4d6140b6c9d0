package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/darulhuda/ppdb-portal/internal/app/flow"
	"github.com/darulhuda/ppdb-portal/internal/app/models"
	"github.com/darulhuda/ppdb-portal/internal/app/models/dto"
	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
	"github.com/darulhuda/ppdb-portal/internal/pkg/helpers"
	"github.com/darulhuda/ppdb-portal/internal/pkg/inline"
)

// slotEntry tracks one attachment slot's conversion state within a session
type slotEntry struct {
	state   models.SlotState
	lastErr string
}

// formSession is the server-held working state of one applicant filling the
// form. All access goes through its own mutex, so field edits and conversion
// completions can interleave without racing.
type formSession struct {
	mu         sync.Mutex
	id         string
	view       flow.View
	details    models.ApplicantDetails
	slots      map[models.DocumentSlot]*slotEntry
	submitting bool
	createdAt  time.Time
}

// fieldRule declares one submission requirement: a label for the error
// message, an accessor for the value, and an optional condition under which
// the rule applies at all.
type fieldRule struct {
	key   string
	label string
	value func(*models.ApplicantDetails) string
	when  func(*models.ApplicantDetails) bool
}

// requiredFields is the full submission-blocking rule set. Guardian fields
// are absent on purpose: they are optional in every combination. The
// aid-conditioned rules apply only while aid status is present.
var requiredFields = []fieldRule{
	{key: "fullName", label: "Nama Lengkap", value: func(d *models.ApplicantDetails) string { return d.FullName }},
	{key: "tempatLahir", label: "Tempat Lahir", value: func(d *models.ApplicantDetails) string { return d.BirthPlace }},
	{key: "tanggalLahir", label: "Tanggal Lahir", value: func(d *models.ApplicantDetails) string { return d.BirthDate }},
	{key: "tingkatRombel", label: "Tingkat - Rombel", value: func(d *models.ApplicantDetails) string { return d.GradeSection }},
	{key: "noTelepon", label: "No Telepon / WhatsApp", value: func(d *models.ApplicantDetails) string { return d.Phone }},
	{key: "alamat", label: "Alamat Lengkap Siswa", value: func(d *models.ApplicantDetails) string { return d.Address }},

	{key: "namaAyah", label: "Nama Ayah", value: func(d *models.ApplicantDetails) string { return d.FatherName }},
	{key: "noHpAyah", label: "No HP Ayah", value: func(d *models.ApplicantDetails) string { return d.FatherPhone }},
	{key: "pendidikanAyah", label: "Pendidikan Ayah", value: func(d *models.ApplicantDetails) string { return d.FatherEducation }},
	{key: "pekerjaanAyah", label: "Pekerjaan Ayah", value: func(d *models.ApplicantDetails) string { return d.FatherOccupation }},
	{key: "alamatAyah", label: "Alamat Lengkap Ayah", value: func(d *models.ApplicantDetails) string { return d.FatherAddress }},

	{key: "namaIbu", label: "Nama Ibu", value: func(d *models.ApplicantDetails) string { return d.MotherName }},
	{key: "noHpIbu", label: "No HP Ibu", value: func(d *models.ApplicantDetails) string { return d.MotherPhone }},
	{key: "pendidikanIbu", label: "Pendidikan Ibu", value: func(d *models.ApplicantDetails) string { return d.MotherEducation }},
	{key: "pekerjaanIbu", label: "Pekerjaan Ibu", value: func(d *models.ApplicantDetails) string { return d.MotherOccupation }},
	{key: "alamatIbu", label: "Alamat Lengkap Ibu", value: func(d *models.ApplicantDetails) string { return d.MotherAddress }},

	{key: "nomorKipPip", label: "Nomor KIP/PIP", value: func(d *models.ApplicantDetails) string { return d.AidCardNumber },
		when: func(d *models.ApplicantDetails) bool { return d.AidStatus == models.AidPresent }},
	{key: "fileKipPip", label: "Fotocopy KIP/PIP/PKH", value: func(d *models.ApplicantDetails) string { return d.AidCardFile },
		when: func(d *models.ApplicantDetails) bool { return d.AidStatus == models.AidPresent }},

	{key: "fileAkta", label: "Fotocopy Akta Kelahiran", value: func(d *models.ApplicantDetails) string { return d.BirthCertificateFile }},
	{key: "fileKK", label: "Fotocopy Kartu Keluarga", value: func(d *models.ApplicantDetails) string { return d.FamilyCardFile }},
	{key: "fileIjazah", label: "Fotocopy Ijazah/SKL", value: func(d *models.ApplicantDetails) string { return d.DiplomaFile }},
	{key: "fileFoto", label: "Pas Foto 3x4", value: func(d *models.ApplicantDetails) string { return d.PhotoFile }},
	{key: "fileKtpOrtu", label: "Fotocopy KTP Orang Tua / Wali", value: func(d *models.ApplicantDetails) string { return d.ParentIDFile }},
}

// SessionService owns every live form session: field edits, asynchronous
// document conversion, the submit and cancel contracts, and the per-session
// view flow.
type SessionService struct {
	registrationService *RegistrationService
	maxUploadSize       int64
	submitDelay         time.Duration
	logger              zerolog.Logger

	mu           sync.RWMutex
	sessions     map[string]*formSession
	intakeStatus models.IntakeStatus
}

// NewSessionService creates a new SessionService. The initial intake status
// comes from the stored settings; later changes arrive through OnSettingsChanged.
func NewSessionService(registrationService *RegistrationService, intakeStatus models.IntakeStatus, maxUploadSize int64, submitDelay time.Duration, logger zerolog.Logger) *SessionService {
	return &SessionService{
		registrationService: registrationService,
		maxUploadSize:       maxUploadSize,
		submitDelay:         submitDelay,
		logger:              logger,
		sessions:            make(map[string]*formSession),
		intakeStatus:        intakeStatus,
	}
}

// OnSettingsChanged keeps the intake gate current. Registered as a settings
// listener at bootstrap; already-open sessions are unaffected.
func (s *SessionService) OnSettingsChanged(settings models.SystemSettings) {
	s.mu.Lock()
	s.intakeStatus = settings.IntakeStatus
	s.mu.Unlock()
}

// Start opens a new form session for one admission track
func (s *SessionService) Start(req dto.StartSessionRequest) (*dto.SessionResponse, error) {
	if !req.Institution.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown institution %q", req.Institution))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.intakeStatus != models.IntakeOpen {
		return nil, apperrors.ErrIntakeClosed
	}

	view, err := flow.Next(flow.Initial(), flow.EventChooseInstitution)
	if err != nil {
		return nil, err
	}

	session := &formSession{
		id:   uuid.New().String(),
		view: view,
		details: models.ApplicantDetails{
			Institution:      req.Institution,
			Gender:           models.GenderMale,
			EnrollmentStatus: "Pendaftar Baru",
			SpecialNeeds:     "Tidak Ada",
			Disability:       "Tidak Ada",
			AidStatus:        models.AidAbsent,
		},
		slots:     make(map[models.DocumentSlot]*slotEntry, len(models.DocumentSlots)),
		createdAt: time.Now(),
	}
	for _, slot := range models.DocumentSlots {
		session.slots[slot] = &slotEntry{state: models.SlotEmpty}
	}
	s.sessions[session.id] = session

	s.logger.Info().Str("sessionId", session.id).Str("institution", string(req.Institution)).Msg("Form session started")
	return s.response(session), nil
}

// Get returns the working state of one session
func (s *SessionService) Get(sessionID string) (*dto.SessionResponse, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return s.response(session), nil
}

// UpdateFields applies a partial field update to the working state. The
// derived age is recomputed whenever the birth date changes; it is never
// writable directly. Setting aid status to absent clears the conditioned
// fields in the same update.
func (s *SessionService) UpdateFields(sessionID string, req dto.FieldUpdateRequest) (*dto.SessionResponse, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.view != flow.ViewForm {
		return nil, apperrors.ErrSessionClosed
	}
	if session.submitting {
		return nil, apperrors.ErrSessionSubmitting
	}

	d := &session.details
	applyString(&d.FullName, req.FullName)
	applyString(&d.BirthPlace, req.BirthPlace)
	applyString(&d.GradeSection, req.GradeSection)
	applyString(&d.EnrollmentStatus, req.EnrollmentStatus)
	applyString(&d.Address, req.Address)
	applyString(&d.Phone, req.Phone)
	applyString(&d.SpecialNeeds, req.SpecialNeeds)
	applyString(&d.Disability, req.Disability)
	applyString(&d.AidCardNumber, req.AidCardNumber)

	applyString(&d.FatherName, req.FatherName)
	applyString(&d.FatherEducation, req.FatherEducation)
	applyString(&d.FatherOccupation, req.FatherOccupation)
	applyString(&d.FatherAddress, req.FatherAddress)
	applyString(&d.FatherPhone, req.FatherPhone)

	applyString(&d.MotherName, req.MotherName)
	applyString(&d.MotherEducation, req.MotherEducation)
	applyString(&d.MotherOccupation, req.MotherOccupation)
	applyString(&d.MotherAddress, req.MotherAddress)
	applyString(&d.MotherPhone, req.MotherPhone)

	applyString(&d.GuardianName, req.GuardianName)
	applyString(&d.GuardianEducation, req.GuardianEducation)
	applyString(&d.GuardianOccupation, req.GuardianOccupation)
	applyString(&d.GuardianAddress, req.GuardianAddress)
	applyString(&d.GuardianPhone, req.GuardianPhone)

	if req.Gender != nil {
		if !req.Gender.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown gender %q", *req.Gender))
		}
		d.Gender = *req.Gender
	}

	if req.AidStatus != nil {
		if !req.AidStatus.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown aid status %q", *req.AidStatus))
		}
		d.AidStatus = *req.AidStatus
		if d.AidStatus == models.AidAbsent {
			d.AidCardNumber = ""
			d.AidCardFile = ""
			session.slots[models.SlotAidCard] = &slotEntry{state: models.SlotEmpty}
		}
	}

	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("birth date %q is not a valid date (yyyy-mm-dd)", *req.BirthDate))
		}
		d.BirthDate = *req.BirthDate
		d.Age = helpers.ComputeAge(birthDate, time.Now())
	}

	return s.responseLocked(session), nil
}

// UploadDocument converts one uploaded file into its inline representation
// and stores it in the named slot. The slot is Pending for the duration of
// the conversion; field edits on other requests interleave freely because the
// session lock is released while the file is read and encoded.
func (s *SessionService) UploadDocument(sessionID string, slot models.DocumentSlot, file *multipart.FileHeader) (*dto.SessionResponse, error) {
	if !slot.Valid() {
		return nil, apperrors.ErrUnknownDocumentSlot
	}

	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if session.view != flow.ViewForm {
		session.mu.Unlock()
		return nil, apperrors.ErrSessionClosed
	}
	if session.submitting {
		session.mu.Unlock()
		return nil, apperrors.ErrSessionSubmitting
	}
	entry := session.slots[slot]
	if entry.state == models.SlotPending {
		session.mu.Unlock()
		return nil, apperrors.ErrConversionPending
	}
	entry.state = models.SlotPending
	entry.lastErr = ""
	session.mu.Unlock()

	content, convErr := inline.FromMultipart(file, s.maxUploadSize)

	session.mu.Lock()
	defer session.mu.Unlock()
	if convErr != nil {
		entry.state = models.SlotFailed
		entry.lastErr = convErr.Error()
		s.logger.Warn().Err(convErr).Str("sessionId", sessionID).Str("slot", string(slot)).Msg("Document conversion failed")
		return s.responseLocked(session), fmt.Errorf("%w: %v", apperrors.ErrConversionFailed, convErr)
	}

	session.details.SetDocument(slot, content)
	entry.state = models.SlotReady
	s.logger.Debug().Str("sessionId", sessionID).Str("slot", string(slot)).Msg("Document converted")
	return s.responseLocked(session), nil
}

// validateLocked checks every applicable requirement against the working
// state; caller holds the session lock.
func validateLocked(session *formSession) *dto.ValidationErrors {
	errs := dto.NewValidationErrors()
	for _, rule := range requiredFields {
		if rule.when != nil && !rule.when(&session.details) {
			continue
		}
		if strings.TrimSpace(rule.value(&session.details)) == "" {
			errs.AddError(rule.key, rule.label+" wajib diisi")
		}
	}
	return errs
}

// Submit validates the working state and finalizes it into an applicant
// record. It refuses while any conversion is in flight, and the submitting
// latch refuses repeat submission until the first attempt resolves.
func (s *SessionService) Submit(ctx context.Context, sessionID string) (*models.ApplicantRecord, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if session.view != flow.ViewForm {
		session.mu.Unlock()
		return nil, apperrors.ErrSessionClosed
	}
	if session.submitting {
		session.mu.Unlock()
		return nil, apperrors.ErrSessionSubmitting
	}
	for _, slot := range models.DocumentSlots {
		if session.slots[slot].state == models.SlotPending {
			session.mu.Unlock()
			return nil, apperrors.ErrConversionPending
		}
	}
	if errs := validateLocked(session); errs.HasErrors() {
		session.mu.Unlock()
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "required fields missing").
			WithDetails(map[string]interface{}{"errors": errs.Errors})
	}

	session.submitting = true
	details := session.details
	if details.AidStatus == models.AidAbsent {
		details.AidCardNumber = ""
		details.AidCardFile = ""
	}
	session.mu.Unlock()

	// The original portal showed a short "submitting" interval before
	// confirming; the latch above covers it.
	select {
	case <-time.After(s.submitDelay):
	case <-ctx.Done():
		session.mu.Lock()
		session.submitting = false
		session.mu.Unlock()
		return nil, ctx.Err()
	}

	record, err := s.registrationService.Create(ctx, details)

	session.mu.Lock()
	defer session.mu.Unlock()
	session.submitting = false
	if err != nil {
		return nil, err
	}

	// The session is discarded rather than parked on the success view; the
	// created record is the response and the confirmation screen lives on it.
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	return record, nil
}

// Cancel discards the session's working state; nothing is persisted
func (s *SessionService) Cancel(sessionID string) error {
	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	if session.submitting {
		session.mu.Unlock()
		return apperrors.ErrSessionSubmitting
	}
	if _, err := flow.Next(session.view, flow.EventCancel); err != nil {
		session.mu.Unlock()
		return err
	}
	session.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.logger.Info().Str("sessionId", sessionID).Msg("Form session cancelled")
	return nil
}

// Draft returns a loosely-typed copy of the working state for the advisory
// review call.
func (s *SessionService) Draft(sessionID string) (map[string]interface{}, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	d := session.details
	return map[string]interface{}{
		"fullName":     d.FullName,
		"jenisKelamin": string(d.Gender),
		"tempatLahir":  d.BirthPlace,
		"tanggalLahir": d.BirthDate,
		"umur":         d.Age,
		"alamat":       d.Address,
		"noTelepon":    d.Phone,
		"namaAyah":     d.FatherName,
		"noHpAyah":     d.FatherPhone,
		"namaIbu":      d.MotherName,
		"noHpIbu":      d.MotherPhone,
	}, nil
}

func (s *SessionService) lookup(sessionID string) (*formSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionService) response(session *formSession) *dto.SessionResponse {
	session.mu.Lock()
	defer session.mu.Unlock()
	return s.responseLocked(session)
}

// responseLocked snapshots the session into its transport shape; caller
// holds the session lock.
func (s *SessionService) responseLocked(session *formSession) *dto.SessionResponse {
	slots := make([]dto.SlotStatus, 0, len(models.DocumentSlots))
	for _, slot := range models.DocumentSlots {
		entry := session.slots[slot]
		slots = append(slots, dto.SlotStatus{
			Slot:  slot,
			State: entry.state,
			Error: entry.lastErr,
		})
	}
	return &dto.SessionResponse{
		SessionID:  session.id,
		View:       string(session.view),
		Fields:     session.details,
		Slots:      slots,
		Submitting: session.submitting,
	}
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
