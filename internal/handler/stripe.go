package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"fundchamps/internal/dto"
	"fundchamps/internal/service"

	"github.com/labstack/echo/v4"
)

const webhookBodyLimit = 1024 * 1024 // 1MiB

type StripeHandler struct {
	stripeService service.StripeService
}

func NewStripeHandler(stripeService service.StripeService) *StripeHandler {
	return &StripeHandler{
		stripeService: stripeService,
	}
}

func (h *StripeHandler) Donate(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.DonateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request payload",
		})
	}

	resp, err := h.stripeService.CreateDonationSession(ctx, &req)
	if errors.Is(err, service.ErrInvalidDonation) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "name and a positive amount are required",
		})
	}
	if err != nil {
		return fmt.Errorf("create donation session: %w", err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Webhook passes the raw body through to the service untouched; the Stripe
// signature covers these exact bytes.
func (h *StripeHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, webhookBodyLimit))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "unreadable request body",
		})
	}

	err = h.stripeService.HandleWebhook(ctx, c.Request().Header, body)
	switch {
	case errors.Is(err, service.ErrSignatureVerification), errors.Is(err, service.ErrMalformedPayload):
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
	case err != nil:
		// 5xx makes the processor retry; the reconciler is idempotent so a
		// retry cannot double-count.
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "webhook processing failed",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
