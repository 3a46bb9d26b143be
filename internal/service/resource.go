// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// The service receives a repository.ResourceRepository (interface), not
// a concrete *sqlite.DB — in tests we pass an in-memory mock, and the
// service never imports the sqlite package at all. It also returns
// domain errors (apperror.*), never HTTP status codes; the handler owns
// that translation.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/lgsobral/eduhub/internal/apperror"
	"github.com/lgsobral/eduhub/internal/model"
	"github.com/lgsobral/eduhub/internal/repository"
)

// Field constraints for resources. Defined as constants (not magic
// numbers) so they are easy to find, change, and reference in messages.
const (
	TitleMinLength       = 3
	TitleMaxLength       = 255
	DescriptionMinLength = 10
	DescriptionMaxLength = 5000
	URLMaxLength         = 2048
	MaxTags              = 10
	MaxTagLength         = 100

	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ResourceService handles business logic for educational resources:
// field validation on writes and the filtered, paginated query engine
// on reads.
type ResourceService struct {
	repo   repository.ResourceRepository
	logger *slog.Logger
}

// NewResourceService creates a new ResourceService.
func NewResourceService(repo repository.ResourceRepository, logger *slog.Logger) *ResourceService {
	return &ResourceService{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput carries the fields of a create request. All fields except
// Tags are required; validation happens in Create, not at decode time.
type CreateInput struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	ResourceType model.ResourceType `json:"resource_type"`
	URL          string             `json:"url"`
	Tags         []string           `json:"tags"`
}

// UpdateInput carries a partial update. Pointer fields distinguish
// "field not sent" (nil — keep the stored value) from "field sent"
// (non-nil — replace and re-validate). This is how PATCH-style partial
// semantics survive JSON decoding, where a missing key and a zero value
// are otherwise indistinguishable.
type UpdateInput struct {
	Title        *string             `json:"title"`
	Description  *string             `json:"description"`
	ResourceType *model.ResourceType `json:"resource_type"`
	URL          *string             `json:"url"`
	Tags         *[]string           `json:"tags"`
}

// ListInput carries the raw query-engine parameters. Zero values mean
// "use the default" for Page and PageSize and "no filter" for Search
// and ResourceType.
type ListInput struct {
	Search       string
	ResourceType string
	Page         int
	PageSize     int
}

// Create validates and saves a new resource.
func (s *ResourceService) Create(ctx context.Context, in CreateInput) (*model.Resource, error) {
	title := strings.TrimSpace(in.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(in.Description)
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	if !in.ResourceType.Valid() {
		return nil, apperror.ValidationFailed("resource_type",
			"resource_type must be one of: video, pdf, link")
	}

	rawURL := strings.TrimSpace(in.URL)
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	resource := &model.Resource{
		Title:        title,
		Description:  description,
		ResourceType: in.ResourceType,
		URL:          rawURL,
		Tags:         tags,
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		s.logger.Error("failed to create resource",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	s.logger.Info("resource created",
		slog.String("id", resource.ID),
		slog.String("title", resource.Title),
		slog.String("type", string(resource.ResourceType)),
	)

	return resource, nil
}

// GetByID retrieves a resource by its ID.
// Returns apperror.ErrNotFound if the resource doesn't exist.
func (s *ResourceService) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "resource ID is required")
	}

	return s.repo.GetByID(ctx, id)
}

// List is the query engine: it turns (search, type, page, page_size)
// into one stable, deterministic page of the collection plus totals.
//
// Ordering is newest-first with the id as tie-breaker — a total order,
// so repeating the same query against an unchanged store yields the
// same slice every time, and enumerating pages 1..total_pages walks
// each matching resource exactly once.
//
// An out-of-range page is NOT an error and is NOT clamped: it returns
// empty items with the same total/total_pages metadata page 1 would
// carry. The frontend treats that as "you paged too far", not a failure.
func (s *ResourceService) List(ctx context.Context, in ListInput) (*model.Page, error) {
	page := in.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, apperror.ValidationFailed("page", "page must be 1 or greater")
	}

	pageSize := in.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 {
		return nil, apperror.ValidationFailed("page_size", "page_size must be 1 or greater")
	}
	if pageSize > MaxPageSize {
		return nil, apperror.ValidationFailed("page_size",
			fmt.Sprintf("page_size must be %d or less", MaxPageSize))
	}

	filter := repository.Filter{
		// An empty (or whitespace-only) search term means "no filter".
		Search: strings.TrimSpace(in.Search),
	}

	if typeFilter := strings.TrimSpace(in.ResourceType); typeFilter != "" {
		rt := model.ResourceType(typeFilter)
		if !rt.Valid() {
			return nil, apperror.ValidationFailed("resource_type",
				"resource_type filter must be one of: video, pdf, link")
		}
		filter.ResourceType = rt
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("failed to count resources", slog.String("error", err.Error()))
		return nil, fmt.Errorf("counting resources: %w", err)
	}

	// Ceiling division, floored at 1 so an empty collection still
	// reports one (empty) page.
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	items, err := s.repo.List(ctx, filter, repository.ListOptions{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		s.logger.Error("failed to list resources", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing resources: %w", err)
	}

	return &model.Page{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Update merges a partial update into an existing resource.
//
// Fetch-then-update: confirm the row exists, apply only the supplied
// fields to the fetched copy, re-validate what changed, save. The
// repository refreshes updated_at on every save — including for an
// empty partial, which therefore changes updated_at and nothing else.
func (s *ResourceService) Update(ctx context.Context, id string, in UpdateInput) (*model.Resource, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "resource ID is required")
	}

	resource, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		resource.Title = title
	}

	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if err := validateDescription(description); err != nil {
			return nil, err
		}
		resource.Description = description
	}

	if in.ResourceType != nil {
		if !in.ResourceType.Valid() {
			return nil, apperror.ValidationFailed("resource_type",
				"resource_type must be one of: video, pdf, link")
		}
		resource.ResourceType = *in.ResourceType
	}

	if in.URL != nil {
		rawURL := strings.TrimSpace(*in.URL)
		if err := validateURL(rawURL); err != nil {
			return nil, err
		}
		resource.URL = rawURL
	}

	if in.Tags != nil {
		tags, err := normalizeTags(*in.Tags)
		if err != nil {
			return nil, err
		}
		resource.Tags = tags
	}

	if err := s.repo.Update(ctx, resource); err != nil {
		s.logger.Error("failed to update resource",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating resource: %w", err)
	}

	s.logger.Info("resource updated", slog.String("id", resource.ID))

	return resource, nil
}

// Delete removes a resource permanently.
// Returns apperror.ErrNotFound if the resource doesn't exist — also for
// a repeat delete of the same id; the second call must not pretend to
// have deleted something.
func (s *ResourceService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "resource ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("resource deleted", slog.String("id", id))
	return nil
}

// === FIELD VALIDATORS ===
// Shared by Create and Update so the merged result of a partial update
// obeys exactly the same constraints as a fresh create.

func validateTitle(title string) error {
	if len(title) < TitleMinLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("title must be at least %d characters", TitleMinLength))
	}
	if len(title) > TitleMaxLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", TitleMaxLength))
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) < DescriptionMinLength {
		return apperror.ValidationFailed("description",
			fmt.Sprintf("description must be at least %d characters", DescriptionMinLength))
	}
	if len(description) > DescriptionMaxLength {
		return apperror.ValidationFailed("description",
			fmt.Sprintf("description must be %d characters or less", DescriptionMaxLength))
	}
	return nil
}

// validateURL accepts absolute http/https URLs only. Restricting the
// scheme blocks javascript: and data: URLs, which would otherwise reach
// the frontend as clickable links.
func validateURL(rawURL string) error {
	if rawURL == "" {
		return apperror.ValidationFailed("url", "url is required")
	}
	if len(rawURL) > URLMaxLength {
		return apperror.ValidationFailed("url",
			fmt.Sprintf("url must be %d characters or less", URLMaxLength))
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return apperror.ValidationFailed("url", "url is not a valid URL")
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return apperror.ValidationFailed("url",
			"url must be an absolute http:// or https:// URL")
	}
	return nil
}

// normalizeTags lowercases, trims, and deduplicates tags, dropping
// blanks. Normalizing BEFORE counting means "Math" and "math" collapse
// into one entry instead of tripping the limit — and makes the whole
// operation idempotent: normalizing an already-normalized list is a
// no-op.
func normalizeTags(tags []string) ([]string, error) {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))

	for _, tag := range tags {
		clean := strings.ToLower(strings.TrimSpace(tag))
		if clean == "" || seen[clean] {
			continue
		}
		if len(clean) > MaxTagLength {
			return nil, apperror.ValidationFailed("tags",
				fmt.Sprintf("each tag must be %d characters or less", MaxTagLength))
		}
		seen[clean] = true
		normalized = append(normalized, clean)
	}

	if len(normalized) > MaxTags {
		return nil, apperror.ValidationFailed("tags",
			fmt.Sprintf("a resource can have at most %d tags", MaxTags))
	}

	return normalized, nil
}
