package repositories

import (
	"fuyublog/internal/models"
)

// PostRepository defines the interface for post data access.
type PostRepository interface {
	GetAll() ([]models.Post, error)
	GetByAuthor(author string) ([]models.Post, error)
	GetByID(id uint) (*models.Post, error)
	SearchByTitle(keyword string) ([]models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id uint) error
}
