package bill_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"billsplit-backend/internal/api/v1/bill"
	"billsplit-backend/internal/database"
	"billsplit-backend/internal/models"
	"billsplit-backend/internal/services"
	"billsplit-backend/internal/storage"
	"billsplit-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type noopNotifier struct{}

func (noopNotifier) NewBill(users []models.User, b models.Bill)     {}
func (noopNotifier) Reminder(user models.User, b models.Bill) error { return nil }
func (noopNotifier) Receipt(user models.User, b models.Bill) error  { return nil }

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.User{}, &models.Bill{}, &models.Payment{})
	db.AutoMigrate(&models.User{}, &models.Bill{}, &models.Payment{})

	database.DB = db
	database.RedisClient = nil
	logger.Log = zap.NewNop()
}

func seedMember(name string) models.User {
	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashedpassword",
		Role:     models.RoleUser,
		Status:   models.StatusActive,
	}
	database.DB.Create(&user)
	return user
}

// setupRouter registers the user bill routes behind a stub auth middleware
// that injects the given user into the context.
func setupRouter(t *testing.T, svc *services.BillService, user models.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	r := gin.New()
	authorized := r.Group("/api/v1")
	authorized.Use(func(c *gin.Context) {
		c.Set("user", user)
		c.Next()
	})
	bill.RegisterRoutes(authorized, svc, store)
	return r
}

func proofRequest(t *testing.T, url string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("paymentProof", "proof.png")
	assert.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadProofHandler(t *testing.T) {
	setupTestDB()
	member := seedMember("m1")

	svc := services.NewBillService(noopNotifier{}, "admin@upi")
	created, err := svc.CreateBill(50, "Internet", "")
	assert.NoError(t, err)

	router := setupRouter(t, svc, member)

	req := proofRequest(t, fmt.Sprintf("/api/v1/bills/%d/pay", created.ID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Payment
	database.DB.Where("bill_id = ? AND user_id = ?", created.ID, member.ID).First(&stored)
	assert.Equal(t, models.PaymentPendingApproval, stored.Status)
	assert.NotEmpty(t, stored.ProofURL)
}

func TestUploadProofHandlerMissingFile(t *testing.T) {
	setupTestDB()
	member := seedMember("m1")

	svc := services.NewBillService(noopNotifier{}, "admin@upi")
	created, err := svc.CreateBill(50, "Internet", "")
	assert.NoError(t, err)

	router := setupRouter(t, svc, member)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/bills/%d/pay", created.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadProofHandlerNotParticipant(t *testing.T) {
	setupTestDB()
	seedMember("m1")

	svc := services.NewBillService(noopNotifier{}, "admin@upi")
	created, err := svc.CreateBill(50, "Internet", "")
	assert.NoError(t, err)

	// Joined after the bill was created, so no payment entry exists
	outsider := seedMember("outsider")
	router := setupRouter(t, svc, outsider)

	req := proofRequest(t, fmt.Sprintf("/api/v1/bills/%d/pay", created.ID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPendingAndOverviewHandlers(t *testing.T) {
	setupTestDB()
	member := seedMember("m1")
	seedMember("m2")
	seedMember("m3")

	svc := services.NewBillService(noopNotifier{}, "admin@upi")
	created, err := svc.CreateBill(100, "Electricity", "")
	assert.NoError(t, err)

	router := setupRouter(t, svc, member)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bills/pending", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var pendingResp struct {
		Data []services.UserBill `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pendingResp))
	assert.Len(t, pendingResp.Data, 1)
	assert.Equal(t, created.ID, pendingResp.Data[0].Bill.ID)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bills/overview", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var overviewResp struct {
		Data services.Overview `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &overviewResp))
	assert.Equal(t, 33.33, overviewResp.Data.TotalPending)
	assert.Equal(t, 0.0, overviewResp.Data.TotalPaid)

	// Approve and watch the pending list empty out
	_, err = svc.ApprovePayment(created.ID, member.ID, "")
	assert.NoError(t, err)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bills/pending", nil))
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pendingResp))
	assert.Empty(t, pendingResp.Data)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bills/overview", nil))
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &overviewResp))
	assert.Equal(t, 33.33, overviewResp.Data.TotalPaid)
}

func TestHistoryHandler(t *testing.T) {
	setupTestDB()
	seedMember("m1")

	svc := services.NewBillService(noopNotifier{}, "admin@upi")
	_, err := svc.CreateBill(10, "Before joining", "")
	assert.NoError(t, err)

	late := seedMember("latecomer")
	router := setupRouter(t, svc, late)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bills", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []services.UserBill `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, models.PaymentNotInvolved, resp.Data[0].MyPayment.Status)
}
