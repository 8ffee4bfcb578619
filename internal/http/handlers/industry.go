package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jeremiahbrem/biztime/internal/http/response"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
	"github.com/jeremiahbrem/biztime/internal/services"
)

type IndustryHandler struct {
	log        *logger.Logger
	industries services.IndustryService
}

func NewIndustryHandler(log *logger.Logger, industries services.IndustryService) *IndustryHandler {
	return &IndustryHandler{log: log.With("handler", "IndustryHandler"), industries: industries}
}

type createIndustryRequest struct {
	ICode    string `json:"i_code" binding:"required"`
	Industry string `json:"industry" binding:"required"`
}

type associateRequest struct {
	CompCode string `json:"comp_code" binding:"required"`
}

// ListIndustries godoc
// @Summary List industries with their companies
// @Description Industries without companies are omitted
// @Tags industries
// @Produce json
// @Success 200 {object} map[string]interface{} "{industries: [{i_code, industry, companies}]}"
// @Router /industries [get]
func (h *IndustryHandler) ListIndustries(c *gin.Context) {
	listings, err := h.industries.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"industries": listings})
}

// CreateIndustry godoc
// @Summary Create an industry
// @Tags industries
// @Accept json
// @Produce json
// @Param industry body createIndustryRequest true "Industry"
// @Success 201 {object} map[string]interface{} "{industry: Industry}"
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 409 {object} response.ErrorEnvelope
// @Router /industries [post]
func (h *IndustryHandler) CreateIndustry(c *gin.Context) {
	var req createIndustryRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	industry, err := h.industries.Create(c.Request.Context(), req.ICode, req.Industry)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"industry": industry})
}

// AssociateCompany godoc
// @Summary Add a company to an industry
// @Tags industries
// @Accept json
// @Produce json
// @Param i_code path string true "Industry code"
// @Param association body associateRequest true "Company"
// @Success 201 {object} map[string]interface{} "{association: {indust_code, comp_code}}"
// @Failure 404 {object} response.ErrorEnvelope
// @Failure 409 {object} response.ErrorEnvelope
// @Router /industries/{i_code} [post]
func (h *IndustryHandler) AssociateCompany(c *gin.Context) {
	var req associateRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	assoc, err := h.industries.Associate(c.Request.Context(), c.Param("i_code"), req.CompCode)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"association": gin.H{
		"indust_code": assoc.IndustCode,
		"comp_code":   assoc.CompCode,
	}})
}

func (h *IndustryHandler) fail(c *gin.Context, err error) {
	logFailure(h.log, c, err)
	response.RespondAPIError(c, err)
}
