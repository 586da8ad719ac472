package domain

import "time"

// CheckFlag is the textual yes/no marker printed on the receipt.
type CheckFlag string

const (
	CheckYes CheckFlag = "JA"
	CheckNo  CheckFlag = "NEJ"
)

// DefaultPrintStatus is assigned to every record when it is created.
const DefaultPrintStatus = "printed"

// ViolationTypes is the fixed set of reasons an employee may select on the form.
var ViolationTypes = []string{
	"Ej parkerat inom markerad plats",
	"Parkering längre än tillåten/betald",
	"Parkeringsavgift ej erlagd",
	"Parkeringsbiljett saknas/ej synlig",
	"Parkeringsbiljett felvänd/ej läsbar",
	"Parkeringstillstånd saknas/synligt",
	"Ej giltigt parkeringstillstånd",
	"Parkering förhyrd/reserverad plats",
	"Stannande/parkering i parkeringsplats för rörelsehindrade, saknar parkeringstillstånd",
	"Parkering i parkeringsplats reserverad för visst fordonsslag",
	"Parkeringsskiva saknas/ej synlig",
	"Parkeringsskiva felvänd/ej avläsbar",
	"Förbud att parkera. Område.",
	"Förbud att parkera.",
	"Övrig orsak enligt anteckning på Kontrollavgiftsfakturan",
}

// IsViolationType reports whether s is one of ViolationTypes.
func IsViolationType(s string) bool {
	for _, t := range ViolationTypes {
		if t == s {
			return true
		}
	}
	return false
}

// ViolationRecord is a single issued kontrollavgift.
// All fields except PaymentStatus are fixed once the record is created.
type ViolationRecord struct {
	ID                 string         `json:"id"`
	Company            string         `json:"company"`
	ReferenceNumber    string         `json:"referenceNumber"` // OCR number, numeric string
	IssuerName         string         `json:"issuerName"`
	VehiclePlate       string         `json:"vehiclePlate"`
	VehicleMake        string         `json:"vehicleMake"`
	PeriodStart        string         `json:"periodStart"` // "YYYY-MM-DD HH:MM"
	PeriodEnd          string         `json:"periodEnd"`
	Location           string         `json:"location"`
	Amount             string         `json:"amount"` // whole kronor
	ViolationType      string         `json:"violationType"`
	RoadMarkingChecked CheckFlag      `json:"roadMarkingChecked"`
	RoadSignChecked    CheckFlag      `json:"roadSignChecked"`
	PhotoTaken         CheckFlag      `json:"photoTaken"`
	CreatedAt          time.Time      `json:"createdAt"`
	PrintStatus        string         `json:"printStatus"`
	PaymentStatus      *PaymentStatus `json:"paymentStatus,omitempty"` // explicit override, nil when derived
	CreatedByUserID    string         `json:"createdByUserId"`
	CreatedByEmail     string         `json:"createdByEmail"`
}

// ListFilter restricts ListViolations to records created at or after Since.
// A nil Since means all time.
type ListFilter struct {
	Since *time.Time
}

// FormDefaults is what the issuing form is pre-filled with.
type FormDefaults struct {
	Company            string
	ReferenceNumber    string
	Amount             string
	PeriodStart        string
	PeriodEnd          string
	RoadMarkingChecked CheckFlag
	RoadSignChecked    CheckFlag
	PhotoTaken         CheckFlag
	ViolationTypes     []string
}

// PrintDispatch is the hand-off to the external printer application.
type PrintDispatch struct {
	URL string
}

// ViolationList is a listing result. Degraded is set when the store could not
// be read and the empty list is a fallback.
type ViolationList struct {
	Records  []ViolationRecord
	Degraded bool
}
