package dto

import (
	"time"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
)

// CreateViolationRequest is the issuing form as submitted by an employee.
// The reference number is never accepted from the client; it is allocated on save.
// Empty company, amount and check flags take the form defaults.
type CreateViolationRequest struct {
	Company            string           `json:"company"`
	IssuerName         string           `json:"issuerName"`
	VehiclePlate       string           `json:"vehiclePlate" binding:"required"`
	VehicleMake        string           `json:"vehicleMake"`
	PeriodStart        string           `json:"periodStart"`
	PeriodEnd          string           `json:"periodEnd"`
	Location           string           `json:"location"`
	Amount             string           `json:"amount" binding:"omitempty,numeric"`
	ViolationType      string           `json:"violationType" binding:"required"`
	RoadMarkingChecked domain.CheckFlag `json:"roadMarkingChecked" binding:"omitempty,oneof=JA NEJ"`
	RoadSignChecked    domain.CheckFlag `json:"roadSignChecked" binding:"omitempty,oneof=JA NEJ"`
	PhotoTaken         domain.CheckFlag `json:"photoTaken" binding:"omitempty,oneof=JA NEJ"`
}

// UpdatePaymentStatusRequest sets the payment status override. Both the enum
// values and the Swedish labels are accepted.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// PrintDispatchResponse carries the URL the browser navigates to for printing.
type PrintDispatchResponse struct {
	PrintURL string `json:"printUrl"`
}

// CreateViolationResponse is returned after a record was saved.
type CreateViolationResponse struct {
	Violation ViolationResponse `json:"violation"`
	PrintURL  string            `json:"printUrl"`
}

// FormDefaultsResponse pre-fills the issuing form.
type FormDefaultsResponse struct {
	Company            string           `json:"company"`
	ReferenceNumber    string           `json:"referenceNumber"`
	Amount             string           `json:"amount"`
	PeriodStart        string           `json:"periodStart"`
	PeriodEnd          string           `json:"periodEnd"`
	RoadMarkingChecked domain.CheckFlag `json:"roadMarkingChecked"`
	RoadSignChecked    domain.CheckFlag `json:"roadSignChecked"`
	PhotoTaken         domain.CheckFlag `json:"photoTaken"`
	ViolationTypes     []string         `json:"violationTypes"`
}

// ViolationResponse is a stored record plus its derived payment presentation.
type ViolationResponse struct {
	ID                 string               `json:"id"`
	Company            string               `json:"company"`
	ReferenceNumber    string               `json:"referenceNumber"`
	IssuerName         string               `json:"issuerName"`
	VehiclePlate       string               `json:"vehiclePlate"`
	VehicleMake        string               `json:"vehicleMake"`
	PeriodStart        string               `json:"periodStart"`
	PeriodEnd          string               `json:"periodEnd"`
	Location           string               `json:"location"`
	Amount             string               `json:"amount"`
	ViolationType      string               `json:"violationType"`
	RoadMarkingChecked domain.CheckFlag     `json:"roadMarkingChecked"`
	RoadSignChecked    domain.CheckFlag     `json:"roadSignChecked"`
	PhotoTaken         domain.CheckFlag     `json:"photoTaken"`
	CreatedAt          time.Time            `json:"createdAt"`
	PrintStatus        string               `json:"printStatus"`
	PaymentStatus      domain.PaymentStatus `json:"paymentStatus"`
	PaymentStatusSet   bool                 `json:"paymentStatusSet"` // false when derived from the due date
	StatusLabel        string               `json:"statusLabel"`
	StatusColor        string               `json:"statusColor"`
	DueDate            time.Time            `json:"dueDate"`
	DaysUntilDue       int                  `json:"daysUntilDue"`
	DueText            string               `json:"dueText,omitempty"`
	CreatedByUserID    string               `json:"createdByUserId"`
	CreatedByEmail     string               `json:"createdByEmail"`
}

// ToFormDefaultsResponse converts domain.FormDefaults to FormDefaultsResponse DTO
func ToFormDefaultsResponse(d domain.FormDefaults) FormDefaultsResponse {
	return FormDefaultsResponse{
		Company:            d.Company,
		ReferenceNumber:    d.ReferenceNumber,
		Amount:             d.Amount,
		PeriodStart:        d.PeriodStart,
		PeriodEnd:          d.PeriodEnd,
		RoadMarkingChecked: d.RoadMarkingChecked,
		RoadSignChecked:    d.RoadSignChecked,
		PhotoTaken:         d.PhotoTaken,
		ViolationTypes:     d.ViolationTypes,
	}
}
