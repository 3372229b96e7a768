package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase    *category.ListCategoriesUseCase
	getUseCase     *category.GetCategoryUseCase
	createUseCase  *category.CreateCategoryUseCase
	updateUseCase  *category.UpdateCategoryUseCase
	deleteUseCase  *category.DeleteCategoryUseCase
	suggestUseCase *category.SuggestCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	getUseCase *category.GetCategoryUseCase,
	createUseCase *category.CreateCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
	suggestUseCase *category.SuggestCategoriesUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:    listUseCase,
		getUseCase:     getUseCase,
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	categoryType, ok := typeQuery(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		UserID:       userID,
		CategoryType: categoryType,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Get handles GET /categories/:id requests.
func (c *CategoryController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	categoryID, ok := pathID(ctx, "category")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), category.GetCategoryInput{
		CategoryID: categoryID,
		UserID:     userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// Suggest handles GET /categories/suggestions?label= requests.
func (c *CategoryController) Suggest(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	label := ctx.Query("label")
	if label == "" {
		badRequest(ctx, "label is required", string(domainerror.ErrCodeEmptyCategoryLabel))
		return
	}
	categoryType, ok := typeQuery(ctx)
	if !ok {
		return
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), category.SuggestCategoriesInput{
		UserID:       userID,
		Label:        label,
		CategoryType: categoryType,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategorySuggestionListResponse(output.Suggestions))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	categoryType, err := entity.ParseCategoryType(req.Type)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		Label:  req.Label,
		Type:   categoryType,
		UserID: userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// UpdateLabel handles PATCH /categories/:id/label requests.
func (c *CategoryController) UpdateLabel(ctx *gin.Context) {
	var req dto.UpdateCategoryLabelRequest
	c.update(ctx, &req, func(input *category.UpdateCategoryInput) error {
		input.Label = &req.Label
		return nil
	})
}

// UpdateType handles PATCH /categories/:id/type requests.
func (c *CategoryController) UpdateType(ctx *gin.Context) {
	var req dto.UpdateCategoryTypeRequest
	c.update(ctx, &req, func(input *category.UpdateCategoryInput) error {
		categoryType, err := entity.ParseCategoryType(req.Type)
		if err != nil {
			return err
		}
		input.Type = &categoryType
		return nil
	})
}

func (c *CategoryController) update(ctx *gin.Context, req any, set func(*category.UpdateCategoryInput) error) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	categoryID, ok := pathID(ctx, "category")
	if !ok {
		return
	}
	if err := ctx.ShouldBindJSON(req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	input := category.UpdateCategoryInput{
		CategoryID: categoryID,
		UserID:     userID,
	}
	if err := set(&input); err != nil {
		handleDomainError(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// Delete handles DELETE /categories/:id requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	categoryID, ok := pathID(ctx, "category")
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		CategoryID: categoryID,
		UserID:     userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// typeQuery parses the optional ?type= filter or writes a 400.
func typeQuery(ctx *gin.Context) (*entity.CategoryType, bool) {
	raw := ctx.Query("type")
	if raw == "" {
		return nil, true
	}
	categoryType, err := entity.ParseCategoryType(raw)
	if err != nil {
		handleDomainError(ctx, err)
		return nil, false
	}
	return &categoryType, true
}
