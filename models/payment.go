package models

import (
	"fmt"
	"strings"
	"time"
)

type PaymentType string

const (
	PaymentRent        PaymentType = "rent"
	PaymentDeposit     PaymentType = "deposit"
	PaymentLateFee     PaymentType = "late_fee"
	PaymentMaintenance PaymentType = "maintenance"
	PaymentUtility     PaymentType = "utility"
	PaymentOther       PaymentType = "other"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentOverdue  PaymentStatus = "overdue"
	PaymentPartial  PaymentStatus = "partial"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodJazzCash     PaymentMethod = "jazzcash"
	MethodEasyPaisa    PaymentMethod = "easypaisa"
	MethodCheque       PaymentMethod = "cheque"
	MethodOnline       PaymentMethod = "online"
)

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
)

type Payment struct {
	ID                   string        `bson:"_id" json:"id"`
	PaymentID            string        `bson:"paymentId" json:"paymentId"`
	TenantID             string        `bson:"tenant" json:"tenant"`
	HostelID             string        `bson:"hostel" json:"hostel"`
	Amount               float64       `bson:"amount" json:"amount"`
	PaymentType          PaymentType   `bson:"paymentType" json:"paymentType"`
	ForMonth             *time.Time    `bson:"forMonth,omitempty" json:"forMonth,omitempty"`
	Status               PaymentStatus `bson:"status" json:"status"`
	DueDate              time.Time     `bson:"dueDate" json:"dueDate"`
	PaymentDate          *time.Time    `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	PaymentMethod        PaymentMethod `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	TransactionReference string        `bson:"transactionReference,omitempty" json:"transactionReference,omitempty"`
	ReceiptNumber        string        `bson:"receiptNumber,omitempty" json:"receiptNumber,omitempty"`
	LateFee              float64       `bson:"lateFee" json:"lateFee"`
	Discount             float64       `bson:"discount" json:"discount"`
	Notes                string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CollectedBy          string        `bson:"collectedBy,omitempty" json:"collectedBy,omitempty"`
	CreatedAt            time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// BeforeChange assigns a payment number on create and moves a pending
// payment past its due date to overdue. intn is a source like rand.Intn.
func (p *Payment) BeforeChange(op Operation, now time.Time, intn func(n int) int) {
	if op == OpCreate && p.PaymentID == "" {
		p.PaymentID = fmt.Sprintf("PAY-%d-%d", now.UnixMilli(), intn(1000))
	}
	if p.Status == "" {
		p.Status = PaymentPending
	}
	if p.Status == PaymentPending && !p.DueDate.IsZero() && now.After(p.DueDate) {
		p.Status = PaymentOverdue
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func (p *Payment) Validate() error {
	var problems []string
	if strings.TrimSpace(p.TenantID) == "" {
		problems = append(problems, "tenant is required")
	}
	if strings.TrimSpace(p.HostelID) == "" {
		problems = append(problems, "hostel is required")
	}
	if p.Amount < 0 {
		problems = append(problems, "amount must not be negative")
	}
	if p.LateFee < 0 || p.Discount < 0 {
		problems = append(problems, "lateFee and discount must not be negative")
	}
	if p.DueDate.IsZero() {
		problems = append(problems, "dueDate is required")
	}
	switch p.PaymentType {
	case PaymentRent, PaymentDeposit, PaymentLateFee, PaymentMaintenance, PaymentUtility, PaymentOther:
	default:
		problems = append(problems, fmt.Sprintf("paymentType %q is not supported", p.PaymentType))
	}
	switch p.Status {
	case PaymentPending, PaymentPaid, PaymentOverdue, PaymentPartial, PaymentRefunded:
	default:
		problems = append(problems, fmt.Sprintf("status %q is not supported", p.Status))
	}
	switch p.PaymentMethod {
	case "", MethodCash, MethodBankTransfer, MethodJazzCash, MethodEasyPaisa, MethodCheque, MethodOnline:
	default:
		problems = append(problems, fmt.Sprintf("paymentMethod %q is not supported", p.PaymentMethod))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}
