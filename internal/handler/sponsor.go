package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"fundchamps/internal/dto"
	"fundchamps/internal/service"

	"github.com/labstack/echo/v4"
)

type SponsorHandler struct {
	sponsorService  service.SponsorService
	campaignService service.CampaignService
}

func NewSponsorHandler(sponsorService service.SponsorService, campaignService service.CampaignService) *SponsorHandler {
	return &SponsorHandler{
		sponsorService:  sponsorService,
		campaignService: campaignService,
	}
}

func (h *SponsorHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SponsorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request payload",
		})
	}

	resp, err := h.sponsorService.CreatePledge(ctx, &req)
	if errors.Is(err, service.ErrInvalidSponsor) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "name and a positive amount are required",
		})
	}
	if err != nil {
		return fmt.Errorf("create pledge: %w", err)
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *SponsorHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	resp, err := h.sponsorService.List(ctx, c.QueryParam("status"))
	if err != nil {
		return fmt.Errorf("list sponsors: %w", err)
	}

	return c.JSON(http.StatusOK, map[string]any{"items": resp})
}

func (h *SponsorHandler) Approve(c echo.Context) error {
	return h.transition(c, h.sponsorService.Approve)
}

func (h *SponsorHandler) Reject(c echo.Context) error {
	return h.transition(c, h.sponsorService.Reject)
}

func (h *SponsorHandler) transition(c echo.Context, apply func(context.Context, string) error) error {
	ctx := c.Request().Context()

	err := apply(ctx, c.Param("uuid"))
	switch {
	case errors.Is(err, service.ErrSponsorNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "sponsor not found"})
	case errors.Is(err, service.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, map[string]string{"error": "sponsor is not pending"})
	case err != nil:
		return fmt.Errorf("update sponsor status: %w", err)
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (h *SponsorHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.sponsorService.Delete(ctx, c.Param("uuid"))
	if errors.Is(err, service.ErrSponsorNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "sponsor not found"})
	}
	if err != nil {
		return fmt.Errorf("delete sponsor: %w", err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *SponsorHandler) CreateCampaignGoal(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CampaignGoalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request payload",
		})
	}

	resp, err := h.campaignService.CreateGoal(ctx, &req)
	if errors.Is(err, service.ErrInvalidGoal) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "goal must be positive",
		})
	}
	if err != nil {
		return fmt.Errorf("create campaign goal: %w", err)
	}

	return c.JSON(http.StatusCreated, resp)
}
