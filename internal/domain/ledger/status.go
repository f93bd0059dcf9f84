package ledger

// PaymentStatus is the settlement state shared by invoices and tax obligations
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING" // Outstanding, due date not yet reached
	PaymentStatusPaid    PaymentStatus = "PAID"    // Settled
	PaymentStatusOverdue PaymentStatus = "OVERDUE" // Past due and unpaid
)

// PaymentStatuses lists payment statuses in draw order
var PaymentStatuses = []PaymentStatus{PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue}

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Label returns the display name used in documents
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentStatusPending:
		return "Pending"
	case PaymentStatusPaid:
		return "Paid"
	case PaymentStatusOverdue:
		return "Overdue"
	}
	return string(s)
}

// LoanStatus represents the state of a bank loan
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "ACTIVE"
	LoanStatusPaid      LoanStatus = "PAID"
	LoanStatusOverdue   LoanStatus = "OVERDUE"
	LoanStatusCancelled LoanStatus = "CANCELLED"
)

// LoanStatuses lists loan statuses in draw order
var LoanStatuses = []LoanStatus{LoanStatusActive, LoanStatusPaid, LoanStatusOverdue, LoanStatusCancelled}

// IsValid checks if the status is a valid LoanStatus
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusActive, LoanStatusPaid, LoanStatusOverdue, LoanStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of LoanStatus
func (s LoanStatus) String() string {
	return string(s)
}

// Label returns the display name used in documents
func (s LoanStatus) Label() string {
	switch s {
	case LoanStatusActive:
		return "Active"
	case LoanStatusPaid:
		return "Paid"
	case LoanStatusOverdue:
		return "Overdue"
	case LoanStatusCancelled:
		return "Cancelled"
	}
	return string(s)
}
