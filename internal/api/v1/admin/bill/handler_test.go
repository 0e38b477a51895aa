package bill_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"billsplit-backend/internal/api/v1/admin/bill"
	"billsplit-backend/internal/database"
	"billsplit-backend/internal/models"
	"billsplit-backend/internal/services"
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

func setupRouter(svc *services.BillService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	admin := r.Group("/api/v1/admin")
	bill.RegisterRoutes(admin, svc)
	return r
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

func TestCreateBillHandler(t *testing.T) {
	setupTestDB()
	seedMember("m1")
	seedMember("m2")
	seedMember("m3")

	svc := services.NewBillService(noopNotifier{}, "admin@upi")
	router := setupRouter(svc)

	body, _ := json.Marshal(map[string]interface{}{
		"total_amount": 100,
		"description":  "Electricity",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/bills", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status int         `json:"status"`
		Data   models.Bill `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 33.33, resp.Data.IndividualShare)
	assert.Equal(t, "admin@upi", resp.Data.UpiID)
	assert.Len(t, resp.Data.Payments, 3)
}

func TestCreateBillHandlerInvalidAmount(t *testing.T) {
	setupTestDB()

	svc := services.NewBillService(noopNotifier{}, "admin@upi")
	router := setupRouter(svc)

	body := []byte(`{"total_amount": -5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/bills", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApprovePaymentHandler(t *testing.T) {
	setupTestDB()
	member := seedMember("m1")

	svc := services.NewBillService(noopNotifier{}, "admin@upi")
	created, err := svc.CreateBill(50, "Internet", "")
	assert.NoError(t, err)

	router := setupRouter(svc)

	url := fmt.Sprintf("/api/v1/admin/bills/%d/approve/%d", created.ID, member.ID)
	req := httptest.NewRequest(http.MethodPut, url, bytes.NewReader([]byte(`{"message":"thanks"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Payment
	database.DB.Where("bill_id = ? AND user_id = ?", created.ID, member.ID).First(&stored)
	assert.Equal(t, models.PaymentPaid, stored.Status)
	assert.Equal(t, "thanks", stored.AdminMessage)

	// Unknown bill
	req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/admin/bills/999/approve/%d", member.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemindHandler(t *testing.T) {
	setupTestDB()
	seedMember("m1")
	seedMember("m2")

	svc := services.NewBillService(noopNotifier{}, "admin@upi")
	created, err := svc.CreateBill(40, "Gas", "")
	assert.NoError(t, err)

	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/admin/bills/%d/remind", created.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data services.ReminderResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Sent)
	assert.Equal(t, 0, resp.Data.Failed)
}

func TestDeleteBillHandler(t *testing.T) {
	setupTestDB()
	seedMember("m1")

	svc := services.NewBillService(noopNotifier{}, "admin@upi")
	created, err := svc.CreateBill(40, "Gas", "")
	assert.NoError(t, err)

	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/admin/bills/%d", created.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Second delete hits NotFound
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/admin/bills/%d", created.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
