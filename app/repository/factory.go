package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Repositories struct holds all repository instances
type Repositories struct {
	User              UserRepository
	Validation        ValidationRepository
	SubscriptionEvent SubscriptionEventRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:              NewUserRepository(db),
		Validation:        NewValidationRepository(db),
		SubscriptionEvent: NewSubscriptionEventRepository(db),
	}
}

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetValidationRepository returns the validation repository instance
func (f *Factory) GetValidationRepository() ValidationRepository {
	return f.GetRepositories().Validation
}

// GetSubscriptionEventRepository returns the subscription event repository instance
func (f *Factory) GetSubscriptionEventRepository() SubscriptionEventRepository {
	return f.GetRepositories().SubscriptionEvent
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance. It is
// nil when no database is configured; callers run in store-less demo mode.
func GetGlobalFactory() *Factory {
	return globalFactory
}
