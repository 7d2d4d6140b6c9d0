// Package services holds the portal's business logic:
//
//   - AuthService: admin dashboard login
//   - SessionService: live form sessions, uploads, submit/cancel
//   - RegistrationService: finalized applicant records
//   - SettingsService: portal configuration and change propagation
//   - ComposerService: printable admission form layout
//   - ExportService: xlsx renderings of documents and listings
package services
