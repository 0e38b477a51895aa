package bill

import (
	"billsplit-backend/internal/models"
	"billsplit-backend/internal/services"
	"billsplit-backend/internal/storage"
	"billsplit-backend/internal/utils"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc   *services.BillService
	store storage.ProofStore
}

func NewHandler(svc *services.BillService, store storage.ProofStore) *Handler {
	return &Handler{svc: svc, store: store}
}

func currentUser(c *gin.Context) (models.User, bool) {
	userRaw, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := userRaw.(models.User)
	return user, ok
}

// History godoc
// @Summary List all bills with my payment status
// @Description Every bill newest-first, annotated with the caller's payment entry or Not_Involved
// @Tags bills
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]services.UserBill}
// @Router /bills [get]
func (h *Handler) History(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	bills, err := h.svc.HistoryForUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch bills"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Bills retrieved successfully", bills))
}

// Pending godoc
// @Summary List bills I still owe on
// @Tags bills
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]services.UserBill}
// @Router /bills/pending [get]
func (h *Handler) Pending(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	bills, err := h.svc.PendingForUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch pending bills"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Pending bills retrieved successfully", bills))
}

// Overview godoc
// @Summary My totals and recent bills
// @Tags bills
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=services.Overview}
// @Router /bills/overview [get]
func (h *Handler) Overview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	overview, err := h.svc.OverviewForUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to build overview"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Overview retrieved successfully", overview))
}

// UploadProof godoc
// @Summary Upload payment proof for a bill
// @Description Stores the proof image and moves my payment to Pending_Approval
// @Tags bills
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Bill ID"
// @Param paymentProof formData file true "Proof image"
// @Success 200 {object} utils.Response{data=models.Payment}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /bills/{id}/pay [post]
func (h *Handler) UploadProof(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	billID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid bill ID"))
		return
	}

	file, err := c.FormFile("paymentProof")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Please upload a file"))
		return
	}

	proofURL, err := h.store.Save(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to store proof: "+err.Error()))
		return
	}

	payment, err := h.svc.UploadProof(uint(billID), user.ID, proofURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBillNotFound), errors.Is(err, services.ErrPaymentEntryNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		case errors.Is(err, services.ErrMissingProof):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to upload proof"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Payment proof uploaded", payment))
}
