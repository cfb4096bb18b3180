package main

import (
	"net/http"

	"financetracker/ledger"

	"github.com/gin-gonic/gin"
)

// Category handler functions

// @Summary Get all categories
// @Description Retrieve all categories visible in the caller's scope
// @Tags categories
// @Produce json
// @Success 200 {object} map[string]interface{} "data: list of categories"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/categories [get]
func getCategories(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	categories, err := queries.ListCategories(ctx, scopeFrom(c))
	if err != nil {
		respondWithDatabaseError(c, err, "Error fetching categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// @Summary Get category
// @Description Retrieve a single category by ID
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} map[string]interface{} "data: category"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /api/categories/{id} [get]
func getCategory(c *gin.Context) {
	id := c.Param("id")
	if err := validateID("id", id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	category, err := queries.GetCategory(ctx, scopeFrom(c), id)
	if err != nil {
		respondWithDatabaseError(c, err, "Error fetching category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}

// @Summary Create category
// @Description Create a new category in the caller's scope
// @Tags categories
// @Accept json
// @Produce json
// @Param category body CategoryRequest true "Category data (name required)"
// @Success 201 {object} map[string]interface{} "data: created category"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 409 {object} map[string]interface{} "Category already exists"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/categories [post]
func createCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := validateName(req.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	category, err := queries.CreateCategory(ctx, scopeFrom(c), ledger.CreateCategoryParams{Name: req.Name})
	if err != nil {
		respondWithDatabaseError(c, err, "Error creating category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": category})
}

// @Summary Update category
// @Description Rename a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body CategoryRequest true "Category data"
// @Success 200 {object} map[string]interface{} "data: updated category"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 409 {object} map[string]interface{} "Category already exists"
// @Router /api/categories/{id} [patch]
func updateCategory(c *gin.Context) {
	id := c.Param("id")
	if err := validateID("id", id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := validateName(req.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	category, err := queries.UpdateCategory(ctx, scopeFrom(c), ledger.UpdateCategoryParams{ID: id, Name: req.Name})
	if err != nil {
		respondWithDatabaseError(c, err, "Error updating category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}

// @Summary Delete category
// @Description Delete a category. Its transactions become uncategorized.
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} map[string]interface{} "data: deleted category id"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /api/categories/{id} [delete]
func deleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := validateID("id", id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	deleted, err := queries.DeleteCategories(ctx, scopeFrom(c), []string{id})
	if err != nil {
		respondWithDatabaseError(c, err, "Error deleting category")
		return
	}
	if len(deleted) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": deleted[0]}})
}

// @Summary Bulk delete categories
// @Description Delete several categories at once. IDs outside the caller's scope are ignored.
// @Tags categories
// @Accept json
// @Produce json
// @Param request body BulkDeleteRequest true "IDs to delete"
// @Success 200 {object} map[string]interface{} "data: deleted ids"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Router /api/categories/bulk-delete [post]
func bulkDeleteCategories(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := validateIDs(req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	deleted, err := queries.DeleteCategories(ctx, scopeFrom(c), req.IDs)
	if err != nil {
		respondWithDatabaseError(c, err, "Error deleting categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": deleted})
}
