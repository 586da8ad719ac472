package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Listing filters.
const (
	FilterAll   = "all"
	FilterToday = "today"
	FilterWeek  = "week"
	FilterMonth = "month"
)

// ListViolationsParams defines query parameters for listing violations.
// Days, when positive, overrides Filter.
type ListViolationsParams struct {
	Filter string `form:"filter,default=all" binding:"omitempty,oneof=all today week month"`
	Days   int    `form:"days" binding:"omitempty,min=1,max=3650"`
}

// ToListFilter resolves the parameters against now in loc.
func (p ListViolationsParams) ToListFilter(now time.Time, loc *time.Location) (domain.ListFilter, error) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)

	var since time.Time
	switch {
	case p.Days > 0:
		since = local.AddDate(0, 0, -p.Days)
	case p.Filter == "" || p.Filter == FilterAll:
		return domain.ListFilter{}, nil
	case p.Filter == FilterToday:
		since = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	case p.Filter == FilterWeek:
		since = local.AddDate(0, 0, -7)
	case p.Filter == FilterMonth:
		since = local.AddDate(0, -1, 0)
	default:
		return domain.ListFilter{}, fmt.Errorf("unknown filter %q", p.Filter)
	}
	return domain.ListFilter{Since: &since}, nil
}

// ListSummary aggregates a listing.
type ListSummary struct {
	Count       int    `json:"count"`
	TotalAmount string `json:"totalAmount"`
}

// ListViolationsResponse wraps the list of violations.
type ListViolationsResponse struct {
	Violations []ViolationResponse `json:"violations"`
	Summary    ListSummary         `json:"summary"`
	Degraded   bool                `json:"degraded"` // true when the store could not be read
}

// Summarize counts the records and sums their amounts. Amounts that are not
// numbers count as zero.
func Summarize(records []domain.ViolationRecord) ListSummary {
	total := decimal.Zero
	for _, rec := range records {
		amount, err := decimal.NewFromString(rec.Amount)
		if err != nil {
			continue
		}
		total = total.Add(amount)
	}
	return ListSummary{Count: len(records), TotalAmount: total.String()}
}

// ToListViolationsResponse converts a domain.ViolationList to ListViolationsResponse DTO
func ToListViolationsResponse(list domain.ViolationList, now time.Time) ListViolationsResponse {
	resp := ListViolationsResponse{
		Violations: make([]ViolationResponse, 0, len(list.Records)),
		Summary:    Summarize(list.Records),
		Degraded:   list.Degraded,
	}
	for _, rec := range list.Records {
		resp.Violations = append(resp.Violations, ToViolationResponse(rec, now))
	}
	return resp
}
