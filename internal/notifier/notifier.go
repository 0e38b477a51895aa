package notifier

import "billsplit-backend/internal/models"

// Notifier delivers bill-related mail. Delivery is best-effort: callers log
// returned errors but never fail the triggering operation on them.
type Notifier interface {
	// NewBill notifies every recipient about a freshly created bill.
	// Recipients without an email address are skipped; a failed send to one
	// recipient does not stop the rest.
	NewBill(users []models.User, bill models.Bill)

	// Reminder nudges one user whose payment is still Unpaid.
	Reminder(user models.User, bill models.Bill) error

	// Receipt confirms an approved payment to its user.
	Receipt(user models.User, bill models.Bill) error
}
