package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jeremiahbrem/biztime/internal/http/response"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
	"github.com/jeremiahbrem/biztime/internal/services"
)

type CompanyHandler struct {
	log       *logger.Logger
	companies services.CompanyService
}

func NewCompanyHandler(log *logger.Logger, companies services.CompanyService) *CompanyHandler {
	return &CompanyHandler{log: log.With("handler", "CompanyHandler"), companies: companies}
}

type createCompanyRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ListCompanies godoc
// @Summary List companies
// @Description Returns every company's code and name, ordered by code
// @Tags companies
// @Produce json
// @Success 200 {object} map[string]interface{} "{companies: [{code, name}]}"
// @Failure 500 {object} response.ErrorEnvelope
// @Router /companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companies.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(companies))
	for _, co := range companies {
		out = append(out, gin.H{"code": co.Code, "name": co.Name})
	}
	response.RespondOK(c, gin.H{"companies": out})
}

// GetCompany godoc
// @Summary Get a company
// @Description Returns a company with its industry names and invoice ids
// @Tags companies
// @Produce json
// @Param code path string true "Company code"
// @Success 200 {object} map[string]interface{} "{company: CompanyDetail}"
// @Failure 404 {object} response.ErrorEnvelope
// @Router /companies/{code} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companies.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"company": company})
}

// CreateCompany godoc
// @Summary Create a company
// @Description Creates a company. The code defaults to a slug of the name.
// @Tags companies
// @Accept json
// @Produce json
// @Param company body createCompanyRequest true "Company"
// @Success 201 {object} map[string]interface{} "{company: Company}"
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 409 {object} response.ErrorEnvelope
// @Router /companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	company, err := h.companies.Create(c.Request.Context(), services.CreateCompanyInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"company": company})
}

// UpdateCompany godoc
// @Summary Update a company
// @Description Replaces name and description. The code cannot be changed.
// @Tags companies
// @Accept json
// @Produce json
// @Param code path string true "Company code"
// @Param company body updateCompanyRequest true "Company"
// @Success 200 {object} map[string]interface{} "{company: Company}"
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /companies/{code} [put]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	var req updateCompanyRequest
	if err := bindJSON(c, &req, "code"); err != nil {
		h.fail(c, err)
		return
	}
	company, err := h.companies.Update(c.Request.Context(), c.Param("code"), req.Name, req.Description)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"company": company})
}

// DeleteCompany godoc
// @Summary Delete a company
// @Description Deletes a company together with its invoices and industry links
// @Tags companies
// @Produce json
// @Param code path string true "Company code"
// @Success 200 {object} response.MessageEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /companies/{code} [delete]
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	if err := h.companies.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.fail(c, err)
		return
	}
	response.RespondDeleted(c)
}

func (h *CompanyHandler) fail(c *gin.Context, err error) {
	logFailure(h.log, c, err)
	response.RespondAPIError(c, err)
}
