package main

import (
	"net/http"

	"financetracker/ledger"

	"github.com/gin-gonic/gin"
)

// Account handler functions

// @Summary Get all accounts
// @Description Retrieve all accounts visible in the caller's scope
// @Tags accounts
// @Produce json
// @Param X-User-Id header string true "Caller user ID"
// @Param X-Org-Id header string false "Active organization ID"
// @Success 200 {object} map[string]interface{} "data: list of accounts"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/accounts [get]
func getAccounts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	accounts, err := queries.ListAccounts(ctx, scopeFrom(c))
	if err != nil {
		respondWithDatabaseError(c, err, "Error fetching accounts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": accounts})
}

// @Summary Get account
// @Description Retrieve a single account by ID
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]interface{} "data: account"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /api/accounts/{id} [get]
func getAccount(c *gin.Context) {
	id := c.Param("id")
	if err := validateID("id", id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	account, err := queries.GetAccount(ctx, scopeFrom(c), id)
	if err != nil {
		respondWithDatabaseError(c, err, "Error fetching account")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": account})
}

// @Summary Create account
// @Description Create a new account owned by the caller's scope
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body AccountRequest true "Account data (name required, role optional)"
// @Success 201 {object} map[string]interface{} "data: created account"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/accounts [post]
func createAccount(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := validateName(req.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role, err := ledger.ParseAccountRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	account, err := queries.CreateAccount(ctx, scopeFrom(c), ledger.CreateAccountParams{Name: req.Name, Role: role})
	if err != nil {
		respondWithDatabaseError(c, err, "Error creating account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": account})
}

// @Summary Update account
// @Description Rename an account or change its role
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param account body AccountRequest true "Account data"
// @Success 200 {object} map[string]interface{} "data: updated account"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /api/accounts/{id} [patch]
func updateAccount(c *gin.Context) {
	id := c.Param("id")
	if err := validateID("id", id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := validateName(req.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// An empty role keeps the current one.
	var role ledger.AccountRole
	if req.Role != "" {
		var err error
		if role, err = ledger.ParseAccountRole(req.Role); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	account, err := queries.UpdateAccount(ctx, scopeFrom(c), ledger.UpdateAccountParams{ID: id, Name: req.Name, Role: role})
	if err != nil {
		respondWithDatabaseError(c, err, "Error updating account")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": account})
}

// @Summary Delete account
// @Description Delete an account and all of its transactions
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]interface{} "data: deleted account id"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /api/accounts/{id} [delete]
func deleteAccount(c *gin.Context) {
	id := c.Param("id")
	if err := validateID("id", id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	deleted, err := queries.DeleteAccounts(ctx, scopeFrom(c), []string{id})
	if err != nil {
		respondWithDatabaseError(c, err, "Error deleting account")
		return
	}
	if len(deleted) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": deleted[0]}})
}

// @Summary Bulk delete accounts
// @Description Delete several accounts at once. IDs outside the caller's scope are ignored.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body BulkDeleteRequest true "IDs to delete"
// @Success 200 {object} map[string]interface{} "data: deleted ids"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Router /api/accounts/bulk-delete [post]
func bulkDeleteAccounts(c *gin.Context) {
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

	deleted, err := queries.DeleteAccounts(ctx, scopeFrom(c), req.IDs)
	if err != nil {
		respondWithDatabaseError(c, err, "Error deleting accounts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": deleted})
}
