package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/kontrollavgift/internal/apperrors"
	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	portssvc "github.com/SscSPs/kontrollavgift/internal/core/ports/services"
	"github.com/SscSPs/kontrollavgift/internal/core/services"
	"github.com/SscSPs/kontrollavgift/internal/core/ticket"
	"github.com/SscSPs/kontrollavgift/internal/dto"
	"github.com/SscSPs/kontrollavgift/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const returnURL = "https://app.example.com/"

type ViolationServiceTestSuite struct {
	suite.Suite
	repo    *MockViolationRepository
	printer *MockPrinterBridge
	builder *ticket.Builder
	now     time.Time
	service portssvc.ViolationSvcFacade
}

func (suite *ViolationServiceTestSuite) SetupTest() {
	suite.repo = new(MockViolationRepository)
	suite.printer = new(MockPrinterBridge)
	suite.now = time.Date(2024, 5, 2, 8, 15, 0, 0, time.UTC)

	builder, err := ticket.NewBuilder(ticket.Config{PayloadFormat: ticket.PayloadStructured})
	suite.Require().NoError(err)
	suite.builder = builder

	stockholm := time.FixedZone("CEST", 2*3600)
	suite.service = services.NewViolationService(suite.repo, builder, suite.printer,
		services.WithViolationDefaults(services.ViolationDefaults{
			Company:       "ACME Parkering",
			Amount:        "700",
			SequenceFloor: 10000,
			Location:      stockholm,
		}),
		services.WithViolationMetrics(metrics.New(prometheus.NewRegistry())),
		services.WithViolationClock(func() time.Time { return suite.now }),
	)
}

func (suite *ViolationServiceTestSuite) validRequest() dto.CreateViolationRequest {
	return dto.CreateViolationRequest{
		IssuerName:    "Anna",
		VehiclePlate:  "abc123",
		VehicleMake:   "Volvo",
		PeriodStart:   "2024-05-02 10:00",
		PeriodEnd:     "2024-05-02 10:15",
		Location:      "Garage B",
		ViolationType: domain.ViolationTypes[2],
	}
}

var issuer = domain.Identity{UserID: "user-1", Email: "anna@example.com"}

// --- GetFormDefaults ---
func (suite *ViolationServiceTestSuite) TestGetFormDefaults_NextAfterLatest() {
	ctx := context.Background()
	suite.repo.On("FindLatestViolation", ctx).Return(&domain.ViolationRecord{ReferenceNumber: "10041"}, nil).Once()

	d := suite.service.GetFormDefaults(ctx)

	suite.Equal("10042", d.ReferenceNumber)
	suite.Equal("ACME Parkering", d.Company)
	suite.Equal("700", d.Amount)
	suite.Equal("2024-05-02 10:15", d.PeriodStart, "period is shown in local time")
	suite.Equal(d.PeriodStart, d.PeriodEnd)
	suite.Equal(domain.CheckYes, d.RoadMarkingChecked)
	suite.Len(d.ViolationTypes, 15)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ViolationServiceTestSuite) TestGetFormDefaults_EmptyStoreStartsAtFloor() {
	ctx := context.Background()
	suite.repo.On("FindLatestViolation", ctx).Return(nil, nil).Once()

	suite.Equal("10000", suite.service.GetFormDefaults(ctx).ReferenceNumber)
}

func (suite *ViolationServiceTestSuite) TestGetFormDefaults_ReadFailureFallsBackToFloor() {
	ctx := context.Background()
	suite.repo.On("FindLatestViolation", ctx).Return(nil, errors.New("connection refused")).Once()

	suite.Equal("10000", suite.service.GetFormDefaults(ctx).ReferenceNumber)
}

// --- IssueViolation ---
func (suite *ViolationServiceTestSuite) TestIssueViolation_Success() {
	ctx := context.Background()
	suite.repo.On("FindLatestViolation", ctx).Return(&domain.ViolationRecord{ReferenceNumber: "10000"}, nil).Once()

	var saved domain.ViolationRecord
	suite.repo.On("SaveViolation", ctx, mock.AnythingOfType("domain.ViolationRecord")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.ViolationRecord) }).
		Return(nil).Once()
	suite.printer.On("Dispatch", mock.AnythingOfType("string"), returnURL).
		Return(domain.PrintDispatch{URL: "tmprintassistant://x"}).Once()

	rec, dispatch, err := suite.service.IssueViolation(ctx, suite.validRequest(), issuer, returnURL)

	suite.Require().NoError(err)
	suite.Equal("10001", rec.ReferenceNumber)
	suite.Equal("ACME Parkering", rec.Company, "empty company takes the default")
	suite.Equal("700", rec.Amount)
	suite.Equal(domain.CheckYes, rec.PhotoTaken)
	suite.Equal(domain.DefaultPrintStatus, rec.PrintStatus)
	suite.Nil(rec.PaymentStatus)
	suite.Equal(suite.now, rec.CreatedAt)
	suite.Equal("user-1", rec.CreatedByUserID)
	suite.Equal("anna@example.com", rec.CreatedByEmail)
	suite.NotEmpty(rec.ID)
	suite.Equal(*rec, saved)
	suite.Equal("tmprintassistant://x", dispatch.URL)

	doc := suite.printer.Calls[0].Arguments.String(0)
	suite.Equal(suite.builder.BuildDocument(saved), doc)
	suite.repo.AssertExpectations(suite.T())
	suite.printer.AssertExpectations(suite.T())
}

func (suite *ViolationServiceTestSuite) TestIssueViolation_ReprintProducesSameDocument() {
	ctx := context.Background()
	suite.repo.On("FindLatestViolation", ctx).Return(nil, nil).Once()
	var saved domain.ViolationRecord
	suite.repo.On("SaveViolation", ctx, mock.AnythingOfType("domain.ViolationRecord")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.ViolationRecord) }).
		Return(nil).Once()
	suite.printer.On("Dispatch", mock.AnythingOfType("string"), returnURL).
		Return(domain.PrintDispatch{URL: "u"}).Twice()

	rec, _, err := suite.service.IssueViolation(ctx, suite.validRequest(), issuer, returnURL)
	suite.Require().NoError(err)

	suite.repo.On("FindViolationByID", ctx, rec.ID).Return(&saved, nil).Once()
	_, err = suite.service.ReprintViolation(ctx, rec.ID, returnURL)
	suite.Require().NoError(err)

	issued := suite.printer.Calls[0].Arguments.String(0)
	reprinted := suite.printer.Calls[1].Arguments.String(0)
	suite.Equal(issued, reprinted)
}

func (suite *ViolationServiceTestSuite) TestIssueViolation_ValidationErrors() {
	ctx := context.Background()
	tests := map[string]func(*dto.CreateViolationRequest){
		"missing plate":     func(r *dto.CreateViolationRequest) { r.VehiclePlate = "  " },
		"unknown type":      func(r *dto.CreateViolationRequest) { r.ViolationType = "Felparkerad" },
		"fractional amount": func(r *dto.CreateViolationRequest) { r.Amount = "700.50" },
		"negative amount":   func(r *dto.CreateViolationRequest) { r.Amount = "-5" },
		"zero amount":       func(r *dto.CreateViolationRequest) { r.Amount = "0" },
	}
	for name, mutate := range tests {
		req := suite.validRequest()
		mutate(&req)
		_, _, err := suite.service.IssueViolation(ctx, req, issuer, returnURL)
		suite.ErrorIs(err, apperrors.ErrValidation, name)
	}
	suite.repo.AssertNotCalled(suite.T(), "SaveViolation", mock.Anything, mock.Anything)
	suite.printer.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (suite *ViolationServiceTestSuite) TestIssueViolation_DuplicateReference() {
	ctx := context.Background()
	suite.repo.On("FindLatestViolation", ctx).Return(&domain.ViolationRecord{ReferenceNumber: "10005"}, nil).Once()
	suite.repo.On("SaveViolation", ctx, mock.AnythingOfType("domain.ViolationRecord")).
		Return(apperrors.ErrDuplicate).Once()

	rec, dispatch, err := suite.service.IssueViolation(ctx, suite.validRequest(), issuer, returnURL)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(rec)
	suite.Nil(dispatch)
	suite.printer.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (suite *ViolationServiceTestSuite) TestIssueViolation_SaveFailureDoesNotPrint() {
	ctx := context.Background()
	suite.repo.On("FindLatestViolation", ctx).Return(nil, nil).Once()
	suite.repo.On("SaveViolation", ctx, mock.AnythingOfType("domain.ViolationRecord")).
		Return(errors.New("disk full")).Once()

	_, _, err := suite.service.IssueViolation(ctx, suite.validRequest(), issuer, returnURL)

	suite.Require().Error(err)
	suite.NotErrorIs(err, apperrors.ErrDuplicate)
	suite.printer.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (suite *ViolationServiceTestSuite) TestIssueViolation_StoreRejectsValue() {
	ctx := context.Background()
	suite.repo.On("FindLatestViolation", ctx).Return(nil, nil).Once()
	suite.repo.On("SaveViolation", ctx, mock.AnythingOfType("domain.ViolationRecord")).
		Return(fmt.Errorf("violation field exceeds column length: %w", apperrors.ErrValidation)).Once()

	_, _, err := suite.service.IssueViolation(ctx, suite.validRequest(), issuer, returnURL)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.printer.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (suite *ViolationServiceTestSuite) TestIssueViolation_LongFreeTextPassesThrough() {
	ctx := context.Background()
	req := suite.validRequest()
	req.PeriodStart = "2024-05-02 10:00:00"
	req.Amount = "12345678901234567"
	suite.repo.On("FindLatestViolation", ctx).Return(nil, nil).Once()
	suite.repo.On("SaveViolation", ctx, mock.MatchedBy(func(rec domain.ViolationRecord) bool {
		return rec.PeriodStart == req.PeriodStart && rec.Amount == req.Amount
	})).Return(nil).Once()
	suite.printer.On("Dispatch", mock.Anything, returnURL).Return(domain.PrintDispatch{URL: "tm://x"}).Once()

	rec, _, err := suite.service.IssueViolation(ctx, req, issuer, returnURL)

	suite.Require().NoError(err)
	suite.Equal("12345678901234567", rec.Amount)
}

// --- ListViolations ---
func (suite *ViolationServiceTestSuite) TestListViolations() {
	ctx := context.Background()
	recs := []domain.ViolationRecord{{ID: "b"}, {ID: "a"}}
	suite.repo.On("ListViolations", ctx, domain.ListFilter{}).Return(recs, nil).Once()

	list := suite.service.ListViolations(ctx, domain.ListFilter{})

	suite.False(list.Degraded)
	suite.Equal(recs, list.Records)
}

func (suite *ViolationServiceTestSuite) TestListViolations_ReadFailureIsDegraded() {
	ctx := context.Background()
	suite.repo.On("ListViolations", ctx, domain.ListFilter{}).Return(nil, errors.New("timeout")).Once()

	list := suite.service.ListViolations(ctx, domain.ListFilter{})

	suite.True(list.Degraded)
	suite.NotNil(list.Records)
	suite.Empty(list.Records)
}

// --- UpdatePaymentStatus ---
func (suite *ViolationServiceTestSuite) TestUpdatePaymentStatus() {
	ctx := context.Background()
	paid := domain.PaymentPaid
	suite.repo.On("UpdatePaymentStatus", ctx, "v1", domain.PaymentPaid).Return(nil).Once()
	suite.repo.On("FindViolationByID", ctx, "v1").Return(&domain.ViolationRecord{ID: "v1", PaymentStatus: &paid}, nil).Once()

	rec, err := suite.service.UpdatePaymentStatus(ctx, "v1", domain.PaymentPaid, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, *rec.PaymentStatus)
}

func (suite *ViolationServiceTestSuite) TestUpdatePaymentStatus_Invalid() {
	_, err := suite.service.UpdatePaymentStatus(context.Background(), "v1", domain.PaymentStatus("refunded"), "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ViolationServiceTestSuite) TestUpdatePaymentStatus_NotFound() {
	ctx := context.Background()
	suite.repo.On("UpdatePaymentStatus", ctx, "missing", domain.PaymentOverdue).Return(apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdatePaymentStatus(ctx, "missing", domain.PaymentOverdue, "user-1")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- DeleteViolation / RenderDocument ---
func (suite *ViolationServiceTestSuite) TestDeleteViolation() {
	ctx := context.Background()
	suite.repo.On("DeleteViolation", ctx, "v1").Return(nil).Once()
	suite.repo.On("DeleteViolation", ctx, "v2").Return(apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.DeleteViolation(ctx, "v1", "user-1"))
	suite.ErrorIs(suite.service.DeleteViolation(ctx, "v2", "user-1"), apperrors.ErrNotFound)
}

func (suite *ViolationServiceTestSuite) TestRenderDocument() {
	ctx := context.Background()
	rec := &domain.ViolationRecord{ID: "v1", ReferenceNumber: "10001", Amount: "700", VehiclePlate: "abc123"}
	suite.repo.On("FindViolationByID", ctx, "v1").Return(rec, nil).Once()

	doc, err := suite.service.RenderDocument(ctx, "v1")

	suite.Require().NoError(err)
	suite.Equal(suite.builder.BuildDocument(*rec), doc)
	suite.Contains(doc, "ABC123")
}

// --- Run Test Suite ---
func TestViolationService(t *testing.T) {
	suite.Run(t, new(ViolationServiceTestSuite))
}
