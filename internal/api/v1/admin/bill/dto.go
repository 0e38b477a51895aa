package bill

type CreateBillRequest struct {
	TotalAmount float64 `json:"total_amount" binding:"required,gt=0"`
	Description string  `json:"description"`
	UpiID       string  `json:"upi_id"` // optional, falls back to the configured admin UPI
}

type ModerateRequest struct {
	Message string `json:"message"` // optional note shown to the user
}
