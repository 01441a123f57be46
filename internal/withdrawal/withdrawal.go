package withdrawal

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

type Method string

const (
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodMobileMoney  Method = "MOBILE_MONEY"
	MethodCash         Method = "CASH"
)

func (m Method) Valid() bool {
	switch m {
	case MethodBankTransfer, MethodMobileMoney, MethodCash:
		return true
	}

	return false
}

// TransferOutcome is what the payout gateway reported after a request completed.
type TransferOutcome struct {
	TransactionID string
	Confirmation  string
	Error         string
	AttemptedAt   *time.Time
}

type Request struct {
	ID                 uuid.UUID
	Reference          string
	WalletID           uuid.UUID
	Amount             int64
	Purpose            string
	Description        string
	RequestedBy        string
	Method             Method
	DestinationAccount string
	DestinationPhone   string
	RequiredApprovals  int
	CurrentApprovals   int
	Status             Status
	CancelReason       string
	ProcessedAt        *time.Time
	Transfer           TransferOutcome
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Destination returns where the money goes for the request's method.
func (r *Request) Destination() string {
	switch r.Method {
	case MethodBankTransfer:
		return r.DestinationAccount
	case MethodMobileMoney:
		return r.DestinationPhone
	}

	return ""
}

const ApprovalMethodCredential = "CREDENTIAL"

// Approval is one administrator's sign-off. Approvals are never changed or removed.
type Approval struct {
	ID         uuid.UUID
	RequestID  uuid.UUID
	ApprovedBy string
	Approved   bool
	Method     string
	Comment    string
	CreatedAt  time.Time
}

type ApprovalResult struct {
	Request   *Request
	Completed bool
	// Transfer is set when a payout was attempted after completion.
	Transfer *TransferOutcome
}

type CreateParams struct {
	WalletID           uuid.UUID
	Amount             int64
	Purpose            string
	Description        string
	RequestedBy        string
	Method             Method
	DestinationAccount string
	DestinationPhone   string
}

type ApproveParams struct {
	Reference  string
	ApproverID string
	Credential string
	Comment    string
}

type ListFilter struct {
	Status      *Status
	RequestedBy string
	Page        int
	PageSize    int
}

type Page struct {
	Items    []*Request
	Total    int
	Page     int
	PageSize int
}
