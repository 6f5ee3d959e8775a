package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
	"github.com/SscSPs/commerce_lifecycle_app/internal/middleware"
)

const proofFormField = "proof"

// transactionHandler handles HTTP requests for orders and remittances.
type transactionHandler struct {
	transactions portssvc.TransactionSvcFacade
	proofs       portssvc.ProofStore
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, proofs portssvc.ProofStore) *transactionHandler {
	return &transactionHandler{transactions: ts, proofs: proofs}
}

// registerTransactionRoutes registers order, remittance and lifecycle routes.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, proofs portssvc.ProofStore) {
	h := newTransactionHandler(ts, proofs)

	rg.POST("/orders", h.createOrder)

	remittances := rg.Group("/remittances")
	{
		remittances.GET("/quote", h.quoteRemittance)
		remittances.POST("", h.createRemittance)
	}

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.GET("/:transactionID", h.getTransaction)
		txns.GET("/:transactionID/history", h.listHistory)
		txns.POST("/:transactionID/payment-proof", h.submitPaymentProof)
		txns.POST("/:transactionID/validate-payment", h.validatePayment)
		txns.POST("/:transactionID/reject-payment", h.rejectPayment)
		txns.POST("/:transactionID/start-processing", h.startProcessing)
		txns.POST("/:transactionID/ship", h.markShipped)
		txns.POST("/:transactionID/confirm-delivery", h.confirmDelivery)
		txns.POST("/:transactionID/complete", h.complete)
		txns.POST("/:transactionID/cancel", h.cancel)
	}
}

// createOrder godoc
// @Summary Place an order
// @Description Prices the lines at current catalog prices and reserves stock for every constituent item
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Order lines"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient stock"
// @Security BearerAuth
// @Router /orders [post]
func (h *transactionHandler) createOrder(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	txn, err := h.transactions.CreateOrder(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// quoteRemittance godoc
// @Summary Quote a remittance
// @Description Computes commission, total and delivered amount without creating anything
// @Tags remittances
// @Produce json
// @Param profileID query string true "Commission profile ID"
// @Param amount query string true "Amount to send"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /remittances/quote [get]
func (h *transactionHandler) quoteRemittance(c *gin.Context) {
	var params dto.QuoteRemittanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}
	quote, err := h.transactions.QuoteRemittance(c.Request.Context(), params.ProfileID, params.Amount)
	if err != nil {
		respondError(c, err, "Failed to quote remittance")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// createRemittance godoc
// @Summary Start a remittance
// @Description Snapshots the commission profile and recomputes every figure server-side
// @Tags remittances
// @Accept json
// @Produce json
// @Param remittance body dto.CreateRemittanceRequest true "Remittance details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /remittances [post]
func (h *transactionHandler) createRemittance(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateRemittanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	txn, err := h.transactions.CreateRemittance(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create remittance")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Customers see their own transactions; admins see all and may filter by owner
// @Tags transactions
// @Produce json
// @Param kind query string false "ORDER or REMITTANCE"
// @Param status query string false "Lifecycle status"
// @Param ownerID query string false "Owner filter (admin only)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}
	resp, err := h.transactions.ListTransactions(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	txn, err := h.transactions.GetTransaction(c.Request.Context(), actor, c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listHistory godoc
// @Summary List the recorded transitions of a transaction
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {array} dto.HistoryEntryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/history [get]
func (h *transactionHandler) listHistory(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	entries, err := h.transactions.ListHistory(c.Request.Context(), actor, c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve history")
		return
	}
	c.JSON(http.StatusOK, dto.ToHistoryResponses(entries))
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// uploadProof stores the multipart file field and returns its reference.
// The caller must be able to see the transaction before anything is written.
func (h *transactionHandler) uploadProof(c *gin.Context, actor domain.Actor, transactionID string) (string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if h.proofs == nil {
		c.JSON(http.StatusNotImplemented, ErrorResponse{Error: "Proof uploads are not enabled"})
		return "", false
	}
	if _, err := h.transactions.GetTransaction(c.Request.Context(), actor, transactionID); err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return "", false
	}

	fh, err := c.FormFile(proofFormField)
	if err != nil {
		bindError(c, err, "proof upload")
		return "", false
	}
	f, err := fh.Open()
	if err != nil {
		bindError(c, err, "proof upload")
		return "", false
	}
	defer f.Close()

	ref, err := h.proofs.Save(c.Request.Context(), transactionID, fh.Filename, f)
	if err != nil {
		respondError(c, err, "Failed to store proof")
		return "", false
	}
	logger.Info("Proof stored", slog.String("transaction_id", transactionID), slog.String("proof_ref", ref), slog.Int64("size", fh.Size))
	return ref, true
}

// discardUpload removes a stored proof the transition did not accept.
func (h *transactionHandler) discardUpload(c *gin.Context, ref string) {
	if err := h.proofs.Remove(c.Request.Context(), ref); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Warn("Failed to remove unused proof", slog.String("proof_ref", ref), slog.String("error", err.Error()))
	}
}

// submitPaymentProof godoc
// @Summary Submit a payment proof
// @Description Accepts either a multipart upload in field "proof" or JSON with an existing proofRef
// @Tags transactions
// @Accept json,mpfd
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param body body dto.SubmitPaymentProofRequest false "Existing proof reference"
// @Param proof formData file false "Proof file"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/payment-proof [post]
func (h *transactionHandler) submitPaymentProof(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	transactionID := c.Param("transactionID")

	var proofRef string
	uploaded := isMultipart(c)
	if uploaded {
		if proofRef, ok = h.uploadProof(c, actor, transactionID); !ok {
			return
		}
	} else {
		var req dto.SubmitPaymentProofRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err, "request format")
			return
		}
		proofRef = req.ProofRef
	}

	txn, err := h.transactions.SubmitPaymentProof(c.Request.Context(), actor, transactionID, proofRef)
	if err != nil {
		if uploaded {
			h.discardUpload(c, proofRef)
		}
		respondError(c, err, "Failed to submit payment proof")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// simpleTransition wraps lifecycle calls that need no body.
func (h *transactionHandler) simpleTransition(fallback string, call func(c *gin.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorOrAbort(c)
		if !ok {
			return
		}
		txn, err := call(c, actor, c.Param("transactionID"))
		if err != nil {
			respondError(c, err, fallback)
			return
		}
		c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
	}
}

// validatePayment godoc
// @Summary Validate a payment (admin)
// @Description Commits reserved stock for orders; exactly one of two concurrent calls succeeds
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/validate-payment [post]
func (h *transactionHandler) validatePayment(c *gin.Context) {
	h.simpleTransition("Failed to validate payment", func(c *gin.Context, actor domain.Actor, id string) (*domain.Transaction, error) {
		return h.transactions.ValidatePayment(c.Request.Context(), actor, id)
	})(c)
}

// rejectPayment godoc
// @Summary Reject a payment (admin)
// @Description Releases reserved stock and returns the payment to PENDING for resubmission
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param body body dto.RejectPaymentRequest true "Reason"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/reject-payment [post]
func (h *transactionHandler) rejectPayment(c *gin.Context) {
	var req dto.RejectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	h.simpleTransition("Failed to reject payment", func(c *gin.Context, actor domain.Actor, id string) (*domain.Transaction, error) {
		return h.transactions.RejectPayment(c.Request.Context(), actor, id, req.Reason)
	})(c)
}

// startProcessing godoc
// @Summary Start processing (admin)
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/start-processing [post]
func (h *transactionHandler) startProcessing(c *gin.Context) {
	h.simpleTransition("Failed to start processing", func(c *gin.Context, actor domain.Actor, id string) (*domain.Transaction, error) {
		return h.transactions.StartProcessing(c.Request.Context(), actor, id)
	})(c)
}

// markShipped godoc
// @Summary Mark an order shipped (admin)
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/ship [post]
func (h *transactionHandler) markShipped(c *gin.Context) {
	h.simpleTransition("Failed to mark shipped", func(c *gin.Context, actor domain.Actor, id string) (*domain.Transaction, error) {
		return h.transactions.MarkShipped(c.Request.Context(), actor, id)
	})(c)
}

// confirmDelivery godoc
// @Summary Confirm delivery
// @Description Admins confirm any delivery; a remittance recipient may confirm their own. A proof is optional.
// @Tags transactions
// @Accept json,mpfd
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param body body dto.ConfirmDeliveryRequest false "Existing proof reference"
// @Param proof formData file false "Delivery proof file"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/confirm-delivery [post]
func (h *transactionHandler) confirmDelivery(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	transactionID := c.Param("transactionID")

	var proofRef *string
	uploaded := isMultipart(c)
	switch {
	case uploaded:
		ref, ok := h.uploadProof(c, actor, transactionID)
		if !ok {
			return
		}
		proofRef = &ref
	case c.Request.ContentLength > 0:
		var req dto.ConfirmDeliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err, "request format")
			return
		}
		proofRef = req.ProofRef
	}

	txn, err := h.transactions.ConfirmDelivery(c.Request.Context(), actor, transactionID, proofRef)
	if err != nil {
		if uploaded {
			h.discardUpload(c, *proofRef)
		}
		respondError(c, err, "Failed to confirm delivery")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// complete godoc
// @Summary Complete a delivered transaction (admin)
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/complete [post]
func (h *transactionHandler) complete(c *gin.Context) {
	h.simpleTransition("Failed to complete transaction", func(c *gin.Context, actor domain.Actor, id string) (*domain.Transaction, error) {
		return h.transactions.Complete(c.Request.Context(), actor, id)
	})(c)
}

// cancel godoc
// @Summary Cancel a transaction
// @Description Owners cancel their own, admins any. Releases or restocks held inventory.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param body body dto.CancelTransactionRequest true "Reason"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/cancel [post]
func (h *transactionHandler) cancel(c *gin.Context) {
	var req dto.CancelTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	h.simpleTransition("Failed to cancel transaction", func(c *gin.Context, actor domain.Actor, id string) (*domain.Transaction, error) {
		return h.transactions.Cancel(c.Request.Context(), actor, id, req.Reason)
	})(c)
}
