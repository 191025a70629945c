package handlers

import (
	"net/http"
	"strconv"

	"safarpay/internal/domain"
	"safarpay/internal/http/middleware"
	"safarpay/internal/repositories"
	"safarpay/internal/services"

	"github.com/gin-gonic/gin"
)

func settlementService(c *gin.Context) services.SettlementService {
	return services.SettlementService{
		SettlementRepo: repositories.SettlementRepository{},
		UserRepo:       repositories.UserRepository{},
		RequestID:      middleware.GetRequestID(c),
	}
}

// GET /api/settlements/owner
//
// pendingBalance is served both at the top level and inside summary; the
// mobile clients in the field read either shape.
func GetOwnerSettlement(c *gin.Context) {
	summary, details, err := settlementService(c).OwnerOverview(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pendingBalance": summary.PendingBalance,
		"summary":        summary,
		"paymentDetails": details,
	})
}

// GET /api/settlements/history
func GetSettlementHistory(c *gin.Context) {
	history, err := settlementService(c).History(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": history})
}

type settlementRequestBody struct {
	PaymentMethod  string `json:"paymentMethod"`
	PaymentDetails string `json:"paymentDetails"`
}

// POST /api/settlements/request
func RequestSettlement(c *gin.Context) {
	var req settlementRequestBody
	if !BindJSONOrError(c, &req) {
		return
	}

	settlement, err := settlementService(c).Request(middleware.GetUserID(c), req.PaymentMethod, req.PaymentDetails)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"settlement": settlement})
}

// GET /api/settlements/approvals (admin)
//
// Returns a bare array: the admin screen iterates the response directly.
func GetPendingApprovals(c *gin.Context) {
	approvals, err := settlementService(c).Approvals()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, approvals)
}

type approveRequestBody struct {
	TransactionReference string  `json:"transactionReference"`
	AdminNotes           *string `json:"adminNotes"`
}

// POST /api/settlements/approve/:id (admin)
func ApproveSettlement(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid settlement id")
		return
	}

	var req approveRequestBody
	if !BindJSONOrError(c, &req) {
		return
	}
	notes := ""
	if req.AdminNotes != nil {
		notes = *req.AdminNotes
	}

	if err := settlementService(c).Approve(id, req.TransactionReference, notes); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approved": id})
}

// GET /api/settlements/:id/receipt
func GetSettlementReceipt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid settlement id")
		return
	}

	settlement, err := repositories.SettlementRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	auth := middleware.GetAuth(c)
	if auth.Role != domain.RoleAdmin && settlement.OwnerID != auth.UserID {
		RespondError(c, http.StatusForbidden, "not your settlement")
		return
	}

	svc := services.ReceiptService{
		SettlementRepo: repositories.SettlementRepository{},
		UserRepo:       repositories.UserRepository{},
		RequestID:      middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.SettlementReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
