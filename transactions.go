package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"financetracker/ledger"

	"github.com/gin-gonic/gin"
)

// csvDateLayouts are the date formats accepted in uploaded CSV files
var csvDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Transaction handler functions

// toCreateParams validates a transaction request body
func toCreateParams(req TransactionRequest) (ledger.CreateTransactionParams, error) {
	if req.Amount == nil {
		return ledger.CreateTransactionParams{}, errors.New("amount is required")
	}
	if strings.TrimSpace(req.Payee) == "" {
		return ledger.CreateTransactionParams{}, errors.New("payee cannot be empty")
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return ledger.CreateTransactionParams{}, err
	}
	if err := validateID("accountId", req.AccountID); err != nil {
		return ledger.CreateTransactionParams{}, err
	}

	params := ledger.CreateTransactionParams{
		Amount:    *req.Amount,
		Payee:     strings.TrimSpace(req.Payee),
		Notes:     req.Notes,
		Date:      date,
		AccountID: req.AccountID,
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		if err := validateID("categoryId", *req.CategoryID); err != nil {
			return ledger.CreateTransactionParams{}, err
		}
		params.CategoryID = req.CategoryID
	}
	return params, nil
}

// @Summary Get transactions
// @Description List transactions in the caller's scope, newest first, with account and category names
// @Tags transactions
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param accountId query string false "Account ID"
// @Param categoryId query string false "Category ID"
// @Success 200 {object} map[string]interface{} "data: list of transactions"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions [get]
func getTransactions(c *gin.Context) {
	var filter ledger.TransactionFilter
	if from := c.Query("from"); from != "" {
		d, err := parseDate("from", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.From = &d
	}
	if to := c.Query("to"); to != "" {
		d, err := parseDate("to", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.To = &d
	}
	if filter.AccountID = c.Query("accountId"); filter.AccountID != "" {
		if err := validateID("accountId", filter.AccountID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if filter.CategoryID = c.Query("categoryId"); filter.CategoryID != "" {
		if err := validateID("categoryId", filter.CategoryID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	transactions, err := queries.ListTransactions(ctx, scopeFrom(c), filter)
	if err != nil {
		respondWithDatabaseError(c, err, "Error fetching transactions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transactions})
}

// @Summary Get transaction
// @Description Retrieve a single transaction by ID
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]interface{} "data: transaction"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /api/transactions/{id} [get]
func getTransaction(c *gin.Context) {
	id := c.Param("id")
	if err := validateID("id", id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	transaction, err := queries.GetTransaction(ctx, scopeFrom(c), id)
	if err != nil {
		respondWithDatabaseError(c, err, "Error fetching transaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transaction})
}

// @Summary Create transaction
// @Description Create a transaction. Amount is in milliunits; negative amounts are expenses.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body TransactionRequest true "Transaction data"
// @Success 201 {object} map[string]interface{} "data: created transaction"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Account or category not found"
// @Router /api/transactions [post]
func createTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	params, err := toCreateParams(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	created, err := queries.CreateTransactions(ctx, scopeFrom(c), []ledger.CreateTransactionParams{params})
	if err != nil {
		respondWithDatabaseError(c, err, "Error creating transaction")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created[0]})
}

// @Summary Bulk create transactions
// @Description Create several transactions at once. Either all are created or none.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactions body []TransactionRequest true "Transactions"
// @Success 201 {object} map[string]interface{} "data: created transactions"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Account or category not found"
// @Router /api/transactions/bulk-create [post]
func bulkCreateTransactions(c *gin.Context) {
	var reqs []TransactionRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(reqs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transactions cannot be empty"})
		return
	}

	params := make([]ledger.CreateTransactionParams, 0, len(reqs))
	for i, req := range reqs {
		p, err := toCreateParams(req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("transaction %d: %v", i, err)})
			return
		}
		params = append(params, p)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	created, err := queries.CreateTransactions(ctx, scopeFrom(c), params)
	if err != nil {
		respondWithDatabaseError(c, err, "Error creating transactions")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// parseCSVRow converts one date,payee,amount[,notes] record
func parseCSVRow(record []string, accountID string) (ledger.CreateTransactionParams, error) {
	if len(record) < 3 {
		return ledger.CreateTransactionParams{}, errors.New("expected at least 3 columns")
	}

	var date time.Time
	var err error
	raw := strings.TrimSpace(record[0])
	for _, layout := range csvDateLayouts {
		if date, err = time.Parse(layout, raw); err == nil {
			break
		}
	}
	if err != nil {
		return ledger.CreateTransactionParams{}, fmt.Errorf("invalid date %q", raw)
	}

	payee := strings.TrimSpace(record[1])
	if payee == "" {
		return ledger.CreateTransactionParams{}, errors.New("empty payee")
	}

	amount, err := ledger.ParseAmount(record[2])
	if err != nil {
		return ledger.CreateTransactionParams{}, err
	}

	params := ledger.CreateTransactionParams{
		Amount:    amount,
		Payee:     payee,
		Date:      time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		AccountID: accountID,
	}
	if len(record) > 3 {
		if notes := strings.TrimSpace(record[3]); notes != "" {
			params.Notes = &notes
		}
	}
	return params, nil
}

// @Summary Upload CSV file
// @Description Import transactions into an account from a CSV file with columns date,payee,amount[,notes]. Amounts are decimal currency values. Invalid rows are skipped and counted.
// @Tags transactions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file to upload"
// @Param accountId formData string true "Target account ID"
// @Success 200 {object} map[string]interface{} "Upload successful - returns message, data array, and skipped_rows count"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions/upload-csv [post]
func uploadCSV(c *gin.Context) {
	accountID := c.PostForm("accountId")
	if err := validateID("accountId", accountID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	log := requestLogger(c)
	params := make([]ledger.CreateTransactionParams, 0)
	skippedRows := 0

	for line := 0; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skippedRows++
				continue
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading CSV file"})
			return
		}

		// Skip header row if present
		if line == 0 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "date") {
			continue
		}

		p, err := parseCSVRow(record, accountID)
		if err != nil {
			log.Debug().Err(err).Int("line", line+1).Msg("Skipping CSV row")
			skippedRows++
			continue
		}
		params = append(params, p)
	}

	transactions := make([]ledger.Transaction, 0)
	if len(params) > 0 {
		ctx, cancel := requestContext(c)
		defer cancel()

		created, err := queries.CreateTransactions(ctx, scopeFrom(c), params)
		if err != nil {
			respondWithDatabaseError(c, err, "Error importing CSV transactions")
			return
		}
		transactions = created
	}

	log.Info().
		Str("file", header.Filename).
		Int("imported", len(transactions)).
		Int("skipped", skippedRows).
		Msg("CSV imported")

	c.JSON(http.StatusOK, gin.H{
		"message":      "CSV uploaded successfully",
		"data":         transactions,
		"skipped_rows": skippedRows,
	})
}

// @Summary Update transaction
// @Description Replace the fields of a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body TransactionRequest true "Transaction data"
// @Success 200 {object} map[string]interface{} "data: updated transaction"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /api/transactions/{id} [patch]
func updateTransaction(c *gin.Context) {
	id := c.Param("id")
	if err := validateID("id", id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	params, err := toCreateParams(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	transaction, err := queries.UpdateTransaction(ctx, scopeFrom(c), ledger.UpdateTransactionParams{
		ID:                      id,
		CreateTransactionParams: params,
	})
	if err != nil {
		respondWithDatabaseError(c, err, "Error updating transaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transaction})
}

// @Summary Delete single transaction
// @Description Delete a specific transaction by ID
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]interface{} "data: deleted transaction id"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions/{id} [delete]
func deleteTransaction(c *gin.Context) {
	id := c.Param("id")
	if err := validateID("id", id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	deleted, err := queries.DeleteTransactions(ctx, scopeFrom(c), []string{id})
	if err != nil {
		respondWithDatabaseError(c, err, "Error deleting transaction")
		return
	}
	if len(deleted) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": deleted[0]}})
}

// @Summary Bulk delete transactions
// @Description Delete several transactions at once. IDs outside the caller's scope are ignored.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body BulkDeleteRequest true "IDs to delete"
// @Success 200 {object} map[string]interface{} "data: deleted ids"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Router /api/transactions/bulk-delete [post]
func bulkDeleteTransactions(c *gin.Context) {
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

	deleted, err := queries.DeleteTransactions(ctx, scopeFrom(c), req.IDs)
	if err != nil {
		respondWithDatabaseError(c, err, "Error deleting transactions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": deleted})
}
