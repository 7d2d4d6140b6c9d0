package repositories

// Repositories holds all repository instances
type Repositories struct {
	Registrations *RegistrationRepository
	Settings      *SettingsRepository
}

// NewRepositories creates a new Repositories container over one KVStore
func NewRepositories(kv KVStore) *Repositories {
	return &Repositories{
		Registrations: NewRegistrationRepository(kv),
		Settings:      NewSettingsRepository(kv),
	}
}
