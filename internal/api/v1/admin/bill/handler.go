package bill

import (
	"billsplit-backend/internal/services"
	"billsplit-backend/internal/utils"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *services.BillService
}

func NewHandler(svc *services.BillService) *Handler {
	return &Handler{svc: svc}
}

func billID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid bill ID"))
		return 0, false
	}
	return uint(id), true
}

func userID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user ID"))
		return 0, false
	}
	return uint(id), true
}

func mapBillError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBillNotFound), errors.Is(err, services.ErrPaymentEntryNotFound):
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
	case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrMissingProof):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Server Error"))
	}
}

// Create godoc
// @Summary Create a new bill and notify members
// @Description Splits the total across active members and mails each of them
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body CreateBillRequest true "Bill"
// @Success 201 {object} utils.Response{data=models.Bill}
// @Failure 400 {object} utils.Response
// @Router /admin/bills [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBillRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	created, err := h.svc.CreateBill(req.TotalAmount, req.Description, req.UpiID)
	if err != nil {
		mapBillError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Bill created successfully", created))
}

// List godoc
// @Summary List every bill
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]models.Bill}
// @Router /admin/bills [get]
func (h *Handler) List(c *gin.Context) {
	bills, err := h.svc.ListBills()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch bills"))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Bills retrieved successfully", bills))
}

// Active godoc
// @Summary List bills with at least one outstanding payment
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]models.Bill}
// @Router /admin/bills/active [get]
func (h *Handler) Active(c *gin.Context) {
	bills, err := h.svc.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch active bills"))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Active bills retrieved successfully", bills))
}

// Completed godoc
// @Summary List fully settled bills
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]models.Bill}
// @Router /admin/bills/completed [get]
func (h *Handler) Completed(c *gin.Context) {
	bills, err := h.svc.ListCompleted()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch completed bills"))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Completed bills retrieved successfully", bills))
}

// Approve godoc
// @Summary Approve a member's payment
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Bill ID"
// @Param userId path int true "User ID"
// @Param input body ModerateRequest false "Optional message"
// @Success 200 {object} utils.Response{data=models.Payment}
// @Failure 404 {object} utils.Response
// @Router /admin/bills/{id}/approve/{userId} [put]
func (h *Handler) Approve(c *gin.Context) {
	bID, ok := billID(c)
	if !ok {
		return
	}
	uID, ok := userID(c)
	if !ok {
		return
	}

	var req ModerateRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	payment, err := h.svc.ApprovePayment(bID, uID, req.Message)
	if err != nil {
		mapBillError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payment approved", payment))
}

// Decline godoc
// @Summary Decline a member's payment
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Bill ID"
// @Param userId path int true "User ID"
// @Param input body ModerateRequest false "Optional message"
// @Success 200 {object} utils.Response{data=models.Payment}
// @Failure 404 {object} utils.Response
// @Router /admin/bills/{id}/decline/{userId} [put]
func (h *Handler) Decline(c *gin.Context) {
	bID, ok := billID(c)
	if !ok {
		return
	}
	uID, ok := userID(c)
	if !ok {
		return
	}

	var req ModerateRequest
	_ = c.ShouldBindJSON(&req)

	payment, err := h.svc.DeclinePayment(bID, uID, req.Message)
	if err != nil {
		mapBillError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payment declined", payment))
}

// Remind godoc
// @Summary Mail a reminder to every member still Unpaid
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Bill ID"
// @Success 200 {object} utils.Response{data=services.ReminderResult}
// @Failure 404 {object} utils.Response
// @Router /admin/bills/{id}/remind [post]
func (h *Handler) Remind(c *gin.Context) {
	bID, ok := billID(c)
	if !ok {
		return
	}

	result, err := h.svc.SendBillReminder(bID)
	if err != nil {
		mapBillError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Reminders dispatched", result))
}

// Delete godoc
// @Summary Delete a bill and all its payments
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Bill ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/bills/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	bID, ok := billID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteBill(bID); err != nil {
		mapBillError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Bill removed", nil))
}
