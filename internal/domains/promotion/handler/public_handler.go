package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dto "hotel-backend/internal/domains/promotion/model"
	"hotel-backend/internal/domains/promotion/service"
	"hotel-backend/internal/shared/response"
)

type PublicHandler struct {
	service service.ServiceInterface
}

func NewPublicHandler(promotionService service.ServiceInterface) *PublicHandler {
	return &PublicHandler{service: promotionService}
}

func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	promotions := rg.Group("/promotions")
	{
		promotions.POST("/eligibility", h.CheckEligibility)
	}
}

// CheckEligibility lists promotions the customer qualifies for.
//
// @Summary      Check promotion eligibility
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Param        request body dto.CheckEligibilityRequest true "Customer, services and optional as-of date"
// @Success      200 {object} response.Response{data=dto.CheckEligibilityResponse}
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /v1/promotions/eligibility [post]
func (h *PublicHandler) CheckEligibility(c *gin.Context) {
	var req dto.CheckEligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.FromError(c, err)
		return
	}

	result, err := h.service.CheckEligibility(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
