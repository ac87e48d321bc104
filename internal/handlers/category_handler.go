package handlers

import (
	"net/http"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category endpoints. Every operation is scoped to
// the authenticated user; categories of other users behave as if absent.
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Create handles category creation
// @Summary Create a category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CategoryRequest true "Category name"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Router /api/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	category, err := h.categoryService.CreateCategory(userID, req.Name)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, categoryResponse(category))
}

// List returns all categories owned by the authenticated user
// @Summary List categories
// @Tags Categories
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Router /api/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categories, err := h.categoryService.ListCategories(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, categoryResponse(&categories[i]))
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: responses,
		Meta: map[string]interface{}{"total": len(responses)},
	})
}

// Update renames a category
// @Summary Rename a category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.CategoryRequest true "New category name"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} errors.ErrorResponse "Category not found - CATEGORY_001"
// @Router /api/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		return SendError(c, errors.CategoryInvalidID)
	}

	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	category, err := h.categoryService.RenameCategory(userID, categoryID, req.Name)
	if err != nil {
		if err == services.ErrCategoryNotFound {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, categoryResponse(category))
}

// Delete removes a category. Transactions that referenced it are kept and
// become uncategorized.
// @Summary Delete a category
// @Tags Categories
// @Security BearerAuth
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse "Category not found - CATEGORY_001"
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		return SendError(c, errors.CategoryInvalidID)
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		if err == services.ErrCategoryNotFound {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Category deleted successfully",
	})
}

func categoryResponse(category *models.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
	}
}
