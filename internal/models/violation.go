package models

import "time"

// Violation is the persisted kontrollavgift row. The validate tags are checked
// when rows are read back, so a malformed row never reaches the services.
type Violation struct {
	ID                 string    `db:"id" validate:"required"`
	Company            string    `db:"company" validate:"required"`
	ReferenceNumber    string    `db:"reference_number" validate:"required,numeric"`
	IssuerName         string    `db:"issuer_name"`
	VehiclePlate       string    `db:"vehicle_plate" validate:"required"`
	VehicleMake        string    `db:"vehicle_make"`
	PeriodStart        string    `db:"period_start"`
	PeriodEnd          string    `db:"period_end"`
	Location           string    `db:"location"`
	Amount             string    `db:"amount" validate:"required,numeric"`
	ViolationType      string    `db:"violation_type"`
	RoadMarkingChecked string    `db:"road_marking_checked" validate:"oneof=JA NEJ"`
	RoadSignChecked    string    `db:"road_sign_checked" validate:"oneof=JA NEJ"`
	PhotoTaken         string    `db:"photo_taken" validate:"oneof=JA NEJ"`
	CreatedAt          time.Time `db:"created_at" validate:"required"`
	PrintStatus        string    `db:"print_status"`
	PaymentStatus      *string   `db:"payment_status"` // nullable, may hold a legacy label
	CreatedByUserID    string    `db:"created_by_user_id"`
	CreatedByEmail     string    `db:"created_by_email"`
}
