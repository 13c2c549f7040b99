package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"fuyublog/internal/models"
	"fuyublog/internal/repositories"
	"fuyublog/pkg/rabbitmq"

	"github.com/google/uuid"
)

var (
	// ErrPostNotFound is returned when the requested post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotOwner is returned when the requester is not the post's author.
	ErrNotOwner = errors.New("not the author of this post")
)

// PostService handles business logic related to posts, including the
// ownership gate on every mutating operation.
type PostService struct {
	postRepo repositories.PostRepository
	mqClient *rabbitmq.Client // optional, nil skips event publishing
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repositories.PostRepository, mqClient *rabbitmq.Client) *PostService {
	return &PostService{
		postRepo: postRepo,
		mqClient: mqClient,
	}
}

// GetAllPosts retrieves all posts.
func (s *PostService) GetAllPosts() ([]models.Post, error) {
	return s.postRepo.GetAll()
}

// GetPostsByAuthor retrieves all posts written by the given author.
func (s *PostService) GetPostsByAuthor(author string) ([]models.Post, error) {
	return s.postRepo.GetByAuthor(author)
}

// GetPostByID retrieves a single post by its ID.
func (s *PostService) GetPostByID(id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// SearchPosts retrieves posts whose title contains the keyword.
func (s *PostService) SearchPosts(keyword string) ([]models.Post, error) {
	return s.postRepo.SearchByTitle(keyword)
}

// CreatePost persists a new post. The author always comes from the caller's
// session, never from submitted form data.
func (s *PostService) CreatePost(title, content, author string) (*models.Post, error) {
	post := &models.Post{
		Title:   title,
		Content: content,
		Author:  author,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.publishEvent("post.created", map[string]interface{}{
		"event_id": uuid.New().String(),
		"post_id":  post.ID,
		"author":   post.Author,
		"title":    post.Title,
	})

	return post, nil
}

// UpdatePost applies a new title and content to a post. Only the stored
// author may update it; everyone else gets ErrNotOwner and no change occurs.
func (s *PostService) UpdatePost(id uint, requester, title, content string) error {
	post, err := s.GetPostByID(id)
	if err != nil {
		return err
	}

	if post.Author != requester {
		return ErrNotOwner
	}

	post.Title = title
	post.Content = content
	if err := s.postRepo.Update(post); err != nil {
		return fmt.Errorf("failed to update post %d: %w", id, err)
	}
	return nil
}

// DeletePost removes a post under the same ownership check as UpdatePost.
func (s *PostService) DeletePost(id uint, requester string) error {
	post, err := s.GetPostByID(id)
	if err != nil {
		return err
	}

	if post.Author != requester {
		return ErrNotOwner
	}

	if err := s.postRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}

	s.publishEvent("post.deleted", map[string]interface{}{
		"event_id": uuid.New().String(),
		"post_id":  id,
		"author":   post.Author,
	})

	return nil
}

// publishEvent sends a post lifecycle event to RabbitMQ. Publishing is best
// effort: failures are logged and never fail the request.
func (s *PostService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}

	if err := s.mqClient.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
