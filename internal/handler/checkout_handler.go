package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/aiclases-pricing/internal/dto"
	"github.com/anyulbade/aiclases-pricing/internal/middleware"
	"github.com/anyulbade/aiclases-pricing/internal/service"
)

const maxWebhookBody = 1 << 20

// Signature headers, in lookup order.
var signatureHeaders = []string{"Stripe-Signature", "X-Signature", "X-Webhook-Signature"}

type CheckoutHandler struct {
	checkout *service.CheckoutService
	webhooks *service.WebhookService
}

func NewCheckoutHandler(checkout *service.CheckoutService, webhooks *service.WebhookService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, webhooks: webhooks}
}

func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	user, _ := middleware.CurrentUser(c)
	res, err := h.checkout.CreateCheckout(c.Request.Context(), user, &req, requestSignals(c))
	if err != nil {
		if field, msg, ok := service.ValidationField(err); ok {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
				Error:  "validation failed",
				Errors: []dto.ValidationError{{Field: field, Message: msg}},
			})
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		Provider:   res.Session.Provider,
		SessionID:  res.Session.ID,
		URL:        res.Session.URL,
		SandboxURL: res.Session.SandboxURL,
		Status:     res.Session.Status,
		Amount:     res.Session.Amount,
		Currency:   res.Session.Currency,
		Package:    res.Offer,
	})
}

func (h *CheckoutHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	var signature string
	for _, header := range signatureHeaders {
		if signature = c.GetHeader(header); signature != "" {
			break
		}
	}

	if _, err := h.webhooks.Handle(c.Request.Context(), c.Param("provider"), payload, signature); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{Received: true})
}
