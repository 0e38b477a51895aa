package services

import (
	"errors"
	"math"

	"billsplit-backend/internal/database"
	"billsplit-backend/internal/models"
	"billsplit-backend/internal/notifier"
	"billsplit-backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrBillNotFound = errors.New("bill not found")
var ErrPaymentEntryNotFound = errors.New("payment entry not found in this bill")
var ErrMissingProof = errors.New("payment proof file is required")
var ErrInvalidAmount = errors.New("total amount must be a positive number")

// BillService owns the bill lifecycle: splitting a total across the current
// member snapshot, moving each payment through its states and deriving the
// filtered views. The notifier is injected so mail delivery stays off the
// mutation path and can be faked in tests.
type BillService struct {
	notifier     notifier.Notifier
	defaultUpiID string
}

func NewBillService(n notifier.Notifier, defaultUpiID string) *BillService {
	return &BillService{notifier: n, defaultUpiID: defaultUpiID}
}

// IndividualShare splits the total evenly, rounded to two decimal places.
// With no participants the bill still gets a nominal single share.
func IndividualShare(totalAmount float64, participants int) float64 {
	count := participants
	if count < 1 {
		count = 1
	}
	return math.Round(totalAmount/float64(count)*100) / 100
}

// CreateBill snapshots the eligible members, splits the total among them and
// persists the bill with one Unpaid payment per member. The new-bill mail
// goes out on a detached goroutine; its outcome never affects the result.
func (s *BillService) CreateBill(totalAmount float64, description, upiID string) (*models.Bill, error) {
	if totalAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	users, err := FindEligibleParticipants()
	if err != nil {
		return nil, err
	}

	if upiID == "" {
		upiID = s.defaultUpiID
	}

	payments := make([]models.Payment, 0, len(users))
	for _, user := range users {
		payments = append(payments, models.Payment{
			UserID: user.ID,
			Status: models.PaymentUnpaid,
		})
	}

	bill := &models.Bill{
		TotalAmount:     totalAmount,
		IndividualShare: IndividualShare(totalAmount, len(users)),
		Description:     description,
		UpiID:           upiID,
		Payments:        payments,
	}

	if err := database.DB.Create(bill).Error; err != nil {
		return nil, err
	}

	go s.notifier.NewBill(users, *bill)

	return bill, nil
}

func (s *BillService) findBill(billID uint) (*models.Bill, error) {
	var bill models.Bill
	if err := database.DB.Preload("Payments").First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// UploadProof attaches a proof reference to the user's payment entry and
// moves it to Pending_Approval, whatever its prior state. A re-upload after a
// decline overwrites the old proof.
func (s *BillService) UploadProof(billID, userID uint, proofURL string) (*models.Payment, error) {
	if proofURL == "" {
		return nil, ErrMissingProof
	}

	bill, err := s.findBill(billID)
	if err != nil {
		return nil, err
	}

	payment := bill.PaymentFor(userID)
	if payment == nil {
		return nil, ErrPaymentEntryNotFound
	}

	payment.ProofURL = proofURL
	payment.Status = models.PaymentPendingApproval

	if err := database.DB.Model(payment).Updates(map[string]interface{}{
		"proof_url": payment.ProofURL,
		"status":    payment.Status,
	}).Error; err != nil {
		return nil, err
	}

	return payment, nil
}

// ApprovePayment marks the user's payment Paid regardless of its prior
// status, so an admin can settle a payment that never went through the
// upload flow. A receipt mail is dispatched best-effort.
func (s *BillService) ApprovePayment(billID, userID uint, message string) (*models.Payment, error) {
	payment, err := s.setPaymentStatus(billID, userID, models.PaymentPaid, message)
	if err != nil {
		return nil, err
	}

	go func() {
		user, err := FindUserByID(userID)
		if err != nil {
			logger.Log.Warn("receipt skipped, user lookup failed",
				zap.Uint("user_id", userID), zap.Error(err))
			return
		}
		bill, err := s.findBill(billID)
		if err != nil {
			return
		}
		if err := s.notifier.Receipt(user, *bill); err != nil {
			logger.Log.Error("failed to send payment receipt",
				zap.Uint("bill_id", billID), zap.Uint("user_id", userID), zap.Error(err))
		}
	}()

	return payment, nil
}

// DeclinePayment marks the user's payment Declined. The proof reference is
// kept so the record of the rejected submission survives until a re-upload
// overwrites it.
func (s *BillService) DeclinePayment(billID, userID uint, message string) (*models.Payment, error) {
	return s.setPaymentStatus(billID, userID, models.PaymentDeclined, message)
}

func (s *BillService) setPaymentStatus(billID, userID uint, status models.PaymentStatus, message string) (*models.Payment, error) {
	bill, err := s.findBill(billID)
	if err != nil {
		return nil, err
	}

	payment := bill.PaymentFor(userID)
	if payment == nil {
		return nil, ErrPaymentEntryNotFound
	}

	updates := map[string]interface{}{"status": status}
	if message != "" {
		updates["admin_message"] = message
	}

	if err := database.DB.Model(payment).Updates(updates).Error; err != nil {
		return nil, err
	}

	payment.Status = status
	if message != "" {
		payment.AdminMessage = message
	}

	return payment, nil
}

// DeleteBill removes the bill and all its payments in one transaction, so no
// orphan payment entry survives.
func (s *BillService) DeleteBill(billID uint) error {
	bill, err := s.findBill(billID)
	if err != nil {
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Bill{}, bill.ID).Error
	})
}

// ReminderResult aggregates a reminder run. Failed sends are counted, not
// raised: one broken mailbox must not block the rest.
type ReminderResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// SendBillReminder mails every member whose payment is exactly Unpaid.
// Pending and declined payments are left alone.
func (s *BillService) SendBillReminder(billID uint) (*ReminderResult, error) {
	var bill models.Bill
	err := database.DB.Preload("Payments.User").First(&bill, billID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}

	result := &ReminderResult{}
	for i := range bill.Payments {
		payment := &bill.Payments[i]
		if payment.Status != models.PaymentUnpaid || payment.User == nil {
			continue
		}

		if err := s.notifier.Reminder(*payment.User, bill); err != nil {
			logger.Log.Error("failed to send reminder",
				zap.Uint("bill_id", bill.ID), zap.Uint("user_id", payment.UserID), zap.Error(err))
			result.Failed++
			continue
		}
		result.Sent++
	}

	return result, nil
}
