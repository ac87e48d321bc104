package services

import (
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// categoryService handles category management, always scoped to the
// calling user
type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface) CategoryServiceInterface {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

// CreateCategory creates a category owned by the user
func (s *categoryService) CreateCategory(userID uuid.UUID, name string) (*models.Category, error) {
	category := &models.Category{
		UserID: userID,
		Name:   name,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("category created", "user_id", userID, "category_id", category.ID)

	return category, nil
}

// ListCategories returns the user's categories
func (s *categoryService) ListCategories(userID uuid.UUID) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// RenameCategory changes the category name. Categories owned by other
// users behave as if they do not exist.
func (s *categoryService) RenameCategory(userID, categoryID uuid.UUID, name string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(userID, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory removes the category. Dependent transactions are kept
// with their category reference cleared.
func (s *categoryService) DeleteCategory(userID, categoryID uuid.UUID) error {
	if err := s.categoryRepo.Delete(userID, categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	slog.Info("category deleted", "user_id", userID, "category_id", categoryID)

	return nil
}
