package models

import "time"

type PaymentStatus string

const (
	PaymentUnpaid          PaymentStatus = "Unpaid"
	PaymentPendingApproval PaymentStatus = "Pending_Approval"
	PaymentPaid            PaymentStatus = "Paid"
	PaymentDeclined        PaymentStatus = "Declined"

	// PaymentNotInvolved marks a user with no payment entry in a bill.
	// Never persisted, only produced by the history view.
	PaymentNotInvolved PaymentStatus = "Not_Involved"
)

// Bill is a shared expense with one payment obligation per participant.
// The participant set is frozen at creation; later roster changes never
// touch existing bills.
type Bill struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	TotalAmount     float64   `gorm:"not null" json:"total_amount"`
	IndividualShare float64   `gorm:"not null" json:"individual_share"`
	Description     string    `json:"description"`
	UpiID           string    `gorm:"not null" json:"upi_id"`
	Payments        []Payment `gorm:"constraint:OnDelete:CASCADE" json:"payments"`
}

// Payment is owned by its Bill and never persisted independently.
type Payment struct {
	ID           uint          `gorm:"primarykey" json:"id"`
	BillID       uint          `gorm:"index;not null" json:"bill_id"`
	UserID       uint          `gorm:"index;not null" json:"user_id"`
	Status       PaymentStatus `gorm:"type:varchar(20);not null;default:'Unpaid'" json:"status"`
	ProofURL     string        `json:"proof_url,omitempty"`
	AdminMessage string        `json:"admin_message,omitempty"`
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// PaymentFor returns the payment entry for the given user, or nil.
func (b *Bill) PaymentFor(userID uint) *Payment {
	for i := range b.Payments {
		if b.Payments[i].UserID == userID {
			return &b.Payments[i]
		}
	}
	return nil
}

// IsCompleted reports whether every payment is Paid.
func (b *Bill) IsCompleted() bool {
	for i := range b.Payments {
		if b.Payments[i].Status != PaymentPaid {
			return false
		}
	}
	return true
}
