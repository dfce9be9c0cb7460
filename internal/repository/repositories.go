package repository

import (
	"github.com/deppfellow/world-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	City *CityRepository
}

// NewRepositories builds the repositories on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		City: NewCityRepository(s.DB.Pool),
	}
}
