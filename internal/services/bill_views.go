package services

import (
	"billsplit-backend/internal/database"
	"billsplit-backend/internal/models"
)

// UserBill annotates a bill with the requesting user's own payment entry.
// A payment with status Not_Involved means the user has no entry in that
// bill (created before they joined, or they were excluded at creation).
type UserBill struct {
	Bill      models.Bill    `json:"bill"`
	MyPayment models.Payment `json:"my_payment"`
}

// Overview aggregates a user's standing across every bill they are part of.
type Overview struct {
	TotalPaid    float64    `json:"total_paid"`
	TotalPending float64    `json:"total_pending"`
	RecentBills  []UserBill `json:"recent_bills"`
}

const recentBillLimit = 5

func (s *BillService) allBills() ([]models.Bill, error) {
	var bills []models.Bill
	err := database.DB.
		Preload("Payments.User").
		Order("created_at DESC, id DESC").
		Find(&bills).Error
	return bills, err
}

// ListBills returns every bill newest-first, payment users resolved for
// display.
func (s *BillService) ListBills() ([]models.Bill, error) {
	return s.allBills()
}

// ListActive returns bills with at least one payment not yet Paid.
func (s *BillService) ListActive() ([]models.Bill, error) {
	bills, err := s.allBills()
	if err != nil {
		return nil, err
	}

	active := make([]models.Bill, 0, len(bills))
	for _, bill := range bills {
		if !bill.IsCompleted() {
			active = append(active, bill)
		}
	}
	return active, nil
}

// ListCompleted returns bills whose every payment is Paid.
func (s *BillService) ListCompleted() ([]models.Bill, error) {
	bills, err := s.allBills()
	if err != nil {
		return nil, err
	}

	completed := make([]models.Bill, 0, len(bills))
	for _, bill := range bills {
		if bill.IsCompleted() {
			completed = append(completed, bill)
		}
	}
	return completed, nil
}

// PendingForUser returns the bills the user still owes on: their payment is
// Unpaid, Declined or awaiting approval.
func (s *BillService) PendingForUser(userID uint) ([]UserBill, error) {
	bills, err := s.allBills()
	if err != nil {
		return nil, err
	}

	pending := make([]UserBill, 0, len(bills))
	for _, bill := range bills {
		payment := bill.PaymentFor(userID)
		if payment == nil || payment.Status == models.PaymentPaid {
			continue
		}
		pending = append(pending, UserBill{Bill: bill, MyPayment: *payment})
	}
	return pending, nil
}

// HistoryForUser returns every bill annotated with the user's payment, or the
// Not_Involved sentinel when they have no entry.
func (s *BillService) HistoryForUser(userID uint) ([]UserBill, error) {
	bills, err := s.allBills()
	if err != nil {
		return nil, err
	}

	history := make([]UserBill, 0, len(bills))
	for _, bill := range bills {
		entry := UserBill{Bill: bill, MyPayment: models.Payment{Status: models.PaymentNotInvolved}}
		if payment := bill.PaymentFor(userID); payment != nil {
			entry.MyPayment = *payment
		}
		history = append(history, entry)
	}
	return history, nil
}

// OverviewForUser sums the user's shares into paid and pending totals and
// carries their five most recent bills.
func (s *BillService) OverviewForUser(userID uint) (*Overview, error) {
	bills, err := s.allBills()
	if err != nil {
		return nil, err
	}

	overview := &Overview{RecentBills: []UserBill{}}
	for _, bill := range bills {
		payment := bill.PaymentFor(userID)
		if payment == nil {
			continue
		}

		if payment.Status == models.PaymentPaid {
			overview.TotalPaid += bill.IndividualShare
		} else {
			overview.TotalPending += bill.IndividualShare
		}

		if len(overview.RecentBills) < recentBillLimit {
			overview.RecentBills = append(overview.RecentBills, UserBill{Bill: bill, MyPayment: *payment})
		}
	}
	return overview, nil
}
