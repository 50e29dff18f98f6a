package dto

// AmountRequest carries the transaction amount for charge and use calls.
type AmountRequest struct {
	Amount int64 `json:"amount"`
}

// PointResponse represents a user's balance record.
type PointResponse struct {
	ID           int64 `json:"id"`
	Point        int64 `json:"point"`
	UpdateMillis int64 `json:"updateMillis"`
}

// HistoryResponse represents a single transaction log entry.
type HistoryResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	Amount     int64  `json:"amount"`
	Type       string `json:"type"`
	TimeMillis int64  `json:"timeMillis"`
}
