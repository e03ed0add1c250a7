package product

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/khanabid1694/sj-server/internal/storage"
)

var (
	ErrMissingFields = errors.New("title and category are required")
	ErrNoImage       = errors.New("an image file or image URL is required")
)

// CreateInput carries the fields of a product creation request. File, if
// set, is uploaded to the object store and takes precedence over ImageURL.
type CreateInput struct {
	Title       string
	Description string
	Weight      string
	Category    string
	ImageURL    string
	File        io.Reader
	Filename    string
}

// UpdateInput mirrors CreateInput with every field optional.
type UpdateInput struct {
	Title       *string
	Description *string
	Weight      *string
	Category    *string
	ImageURL    *string
	File        io.Reader
	Filename    string
}

type Service interface {
	Create(ctx context.Context, input CreateInput) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo     Repository
	uploader storage.Uploader
}

func NewService(repo Repository, uploader storage.Uploader) Service {
	return &service{repo: repo, uploader: uploader}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Product, error) {
	if input.Title == "" || input.Category == "" {
		return nil, ErrMissingFields
	}
	if input.File == nil && input.ImageURL == "" {
		return nil, ErrNoImage
	}

	imageURL := input.ImageURL
	if input.File != nil {
		uploaded, err := s.uploader.Upload(ctx, input.File, input.Filename)
		if err != nil {
			log.Error().Err(err).Str("filename", input.Filename).Msg("service: image upload failed")
			return nil, fmt.Errorf("service: failed to upload image: %w", err)
		}
		imageURL = uploaded
	}

	created, err := s.repo.Create(ctx, &Product{
		Title:       input.Title,
		Description: input.Description,
		Image:       imageURL,
		Weight:      input.Weight,
		Category:    input.Category,
	})
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create product in repository")
		return nil, fmt.Errorf("service: failed to create product: %w", err)
	}

	log.Info().Int64("product_id", created.ID).Str("title", created.Title).Msg("service: product created")
	return created, nil
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list products in repository")
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}
	return products, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*Product, error) {
	upd := Update{
		Title:       input.Title,
		Description: input.Description,
		Weight:      input.Weight,
		Category:    input.Category,
	}

	// A new file replaces the image; a bare URL does too. Neither means
	// the stored image is kept as-is.
	if input.File != nil {
		uploaded, err := s.uploader.Upload(ctx, input.File, input.Filename)
		if err != nil {
			log.Error().Err(err).Str("filename", input.Filename).Msg("service: image upload failed")
			return nil, fmt.Errorf("service: failed to upload image: %w", err)
		}
		upd.Image = &uploaded
	} else if input.ImageURL != nil && *input.ImageURL != "" {
		upd.Image = input.ImageURL
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Int64("product_id", id).Msg("service: product not found for update")
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to update product in repository")
		return nil, fmt.Errorf("service: failed to update product: %w", err)
	}

	log.Info().Int64("product_id", id).Msg("service: product updated")
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to delete product in repository")
		return fmt.Errorf("service: failed to delete product: %w", err)
	}

	log.Info().Int64("product_id", id).Msg("service: product deleted")
	return nil
}
