package domain

type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "PENDING"
	ReservationConfirmed  ReservationStatus = "CONFIRMED"
	ReservationInProgress ReservationStatus = "IN_PROGRESS"
	ReservationCompleted  ReservationStatus = "COMPLETED"
	ReservationCancelled  ReservationStatus = "CANCELLED"
	ReservationNoShow     ReservationStatus = "NO_SHOW"
)

type Reservation struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"userId"`
	UserName        string            `json:"userName"`
	TechnicianID    int64             `json:"technicianId"`
	TechnicianName  string            `json:"technicianName"`
	ServiceID       int64             `json:"serviceId"`
	ServiceName     string            `json:"serviceName"`
	ReservationDate string            `json:"reservationDate"`
	ServiceDate     string            `json:"serviceDate"`
	StartTime       string            `json:"startTime"`
	EndTime         string            `json:"endTime,omitempty"`
	Address         string            `json:"address"`
	Status          ReservationStatus `json:"status"`
	CreatedAt       string            `json:"createdAt"`
	UpdatedAt       string            `json:"updatedAt"`
	TotalAmount     float64           `json:"totalAmount"`
	HasReview       bool              `json:"hasReview"`
}

type CreateReservationRequest struct {
	TechnicianID int64  `json:"technicianId"`
	ServiceID    int64  `json:"serviceId"`
	ServiceDate  string `json:"serviceDate"`
	StartTime    string `json:"startTime"`
	Address      string `json:"address"`
	Notes        string `json:"notes,omitempty"`
}

type ReviewStatus string

const (
	ReviewActive  ReviewStatus = "ACTIVE"
	ReviewEdited  ReviewStatus = "EDITED"
	ReviewDeleted ReviewStatus = "DELETED"
)

type Review struct {
	ID             int64        `json:"id"`
	ReservationID  int64        `json:"reservationId"`
	UserName       string       `json:"userName"`
	TechnicianName string       `json:"technicianName"`
	ServiceName    string       `json:"serviceName"`
	Comment        string       `json:"comment"`
	Rating         int          `json:"rating"`
	CreatedAt      string       `json:"createdAt"`
	UpdatedAt      string       `json:"updatedAt"`
	Status         ReviewStatus `json:"status"`
}

type CreateReviewRequest struct {
	ReservationID int64  `json:"reservationId"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMobileWallet PaymentMethod = "MOBILE_WALLET"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

type Payment struct {
	ID            int64         `json:"id"`
	ReservationID int64         `json:"reservationId"`
	Amount        float64       `json:"amount"`
	PaymentDate   string        `json:"paymentDate"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}

type CreatePaymentRequest struct {
	ReservationID int64         `json:"reservationId"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}
