package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/core/services"
	"github.com/rqos/agency-ops-backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DesignServiceTestSuite struct {
	suite.Suite
	mockDesignRepo *MockDesignRepository
	mockColumnRepo *MockColumnRepository
	mockMemberRepo *MockMemberRepository
	mockStore      *MockAttachmentStore
	service        portssvc.DesignService
}

func (suite *DesignServiceTestSuite) SetupTest() {
	suite.mockDesignRepo = new(MockDesignRepository)
	suite.mockColumnRepo = new(MockColumnRepository)
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.mockStore = new(MockAttachmentStore)
	suite.service = services.NewDesignService(
		suite.mockDesignRepo,
		suite.mockColumnRepo,
		suite.mockMemberRepo,
		suite.mockStore,
		services.DesignRates{
			DefaultArtRate:      decimal.RequireFromString("10.00"),
			DefaultVideoRate:    decimal.RequireFromString("20.00"),
			MaxUploadBytes:      1024,
			AllowedContentTypes: []string{"image/png", "video/mp4"},
		},
		services.WithDesignClock(services.FixedClock{T: testNow}),
	)
}

func (suite *DesignServiceTestSuite) TestApproveDemand_FreezesOverrideRate() {
	ctx := context.Background()
	assigneeID := "member-1"
	demand := &domain.DesignDemand{
		DemandID:   "dd-1",
		Title:      "Feed post",
		DemandType: domain.DesignArt,
		AssigneeID: &assigneeID,
	}

	suite.mockDesignRepo.On("FindDemandByID", ctx, "dd-1").Return(demand, nil).Once()
	suite.mockDesignRepo.On("FindRateByMember", ctx, assigneeID).Return(&domain.MemberRate{
		MemberID:   assigneeID,
		ArtValue:   decimal.RequireFromString("15.50"),
		VideoValue: decimal.RequireFromString("30.00"),
	}, nil).Once()
	suite.mockDesignRepo.On("ApproveDemand", ctx, mock.MatchedBy(func(approval portsrepo.DesignApproval) bool {
		return approval.Demand.PaymentRegistered &&
			approval.Demand.ApprovedAt != nil && approval.Demand.ApprovedAt.Equal(testNow) &&
			approval.Demand.CompletedAt != nil &&
			approval.Payment.Value.Equal(decimal.RequireFromString("15.50")) &&
			approval.Payment.Month == int(testNow.Month()) &&
			approval.Payment.Year == testNow.Year() &&
			approval.Payment.MemberID == assigneeID
	})).Return(nil).Once()

	approved, err := suite.service.ApproveDemand(ctx, "dd-1", "user-1")

	suite.NoError(err)
	suite.True(approved.PaymentRegistered)
	suite.Require().NotNil(approved.PaymentValue)
	suite.True(approved.PaymentValue.Equal(decimal.RequireFromString("15.50")))
	suite.mockDesignRepo.AssertExpectations(suite.T())
}

func (suite *DesignServiceTestSuite) TestApproveDemand_FallsBackToDefaultRate() {
	ctx := context.Background()
	assigneeID := "member-1"
	demand := &domain.DesignDemand{
		DemandID:   "dd-1",
		DemandType: domain.DesignVideo,
		AssigneeID: &assigneeID,
	}

	suite.mockDesignRepo.On("FindDemandByID", ctx, "dd-1").Return(demand, nil).Once()
	// No rate row for the member: the configured default applies.
	suite.mockDesignRepo.On("FindRateByMember", ctx, assigneeID).Return(nil, nil).Once()
	suite.mockDesignRepo.On("ApproveDemand", ctx, mock.MatchedBy(func(approval portsrepo.DesignApproval) bool {
		return approval.Payment.Value.Equal(decimal.RequireFromString("20.00")) &&
			approval.Payment.DemandType == domain.DesignVideo
	})).Return(nil).Once()

	_, err := suite.service.ApproveDemand(ctx, "dd-1", "user-1")
	suite.NoError(err)
	suite.mockDesignRepo.AssertExpectations(suite.T())
}

func (suite *DesignServiceTestSuite) TestApproveDemand_SecondApprovalConflicts() {
	ctx := context.Background()
	assigneeID := "member-1"
	suite.mockDesignRepo.On("FindDemandByID", ctx, "dd-1").Return(&domain.DesignDemand{
		DemandID:          "dd-1",
		AssigneeID:        &assigneeID,
		PaymentRegistered: true,
	}, nil).Once()

	_, err := suite.service.ApproveDemand(ctx, "dd-1", "user-1")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockDesignRepo.AssertNotCalled(suite.T(), "ApproveDemand", mock.Anything, mock.Anything)
}

func (suite *DesignServiceTestSuite) TestApproveDemand_RequiresAssignee() {
	ctx := context.Background()
	suite.mockDesignRepo.On("FindDemandByID", ctx, "dd-1").
		Return(&domain.DesignDemand{DemandID: "dd-1"}, nil).Once()

	_, err := suite.service.ApproveDemand(ctx, "dd-1", "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDesignRepo.AssertNotCalled(suite.T(), "ApproveDemand", mock.Anything, mock.Anything)
}

func (suite *DesignServiceTestSuite) TestUploadAttachment_RejectsOversizedFile() {
	ctx := context.Background()
	suite.mockDesignRepo.On("FindDemandByID", ctx, "dd-1").
		Return(&domain.DesignDemand{DemandID: "dd-1"}, nil).Once()

	_, err := suite.service.UploadAttachment(ctx, "dd-1", dto.AttachmentUpload{
		Filename:    "huge.png",
		ContentType: "image/png",
		Size:        2048,
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStore.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DesignServiceTestSuite) TestUploadAttachment_RejectsDisallowedContentType() {
	ctx := context.Background()
	suite.mockDesignRepo.On("FindDemandByID", ctx, "dd-1").
		Return(&domain.DesignDemand{DemandID: "dd-1"}, nil).Once()

	_, err := suite.service.UploadAttachment(ctx, "dd-1", dto.AttachmentUpload{
		Filename:    "script.sh",
		ContentType: "application/x-sh",
		Size:        10,
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStore.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DesignServiceTestSuite) TestUploadAttachment_CleansUpFileWhenRowInsertFails() {
	ctx := context.Background()
	data := []byte("png-bytes")

	suite.mockDesignRepo.On("FindDemandByID", ctx, "dd-1").
		Return(&domain.DesignDemand{DemandID: "dd-1"}, nil).Once()
	suite.mockStore.On("Save", ctx, "dd-1", "post.png", data).Return("dd-1/abc_post.png", nil).Once()
	suite.mockDesignRepo.On("SaveAttachment", ctx, mock.Anything).
		Return(apperrors.NewAppError(500, "insert failed", nil)).Once()
	suite.mockStore.On("Remove", ctx, "dd-1/abc_post.png").Return(nil).Once()

	_, err := suite.service.UploadAttachment(ctx, "dd-1", dto.AttachmentUpload{
		Filename:    "post.png",
		ContentType: "image/png",
		Size:        int64(len(data)),
		Data:        data,
	}, "user-1")

	suite.Error(err)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *DesignServiceTestSuite) TestPaymentSummary_GroupsAndRanksByTotal() {
	ctx := context.Background()
	anaName := "Ana"
	brunoName := "Bruno"

	suite.mockDesignRepo.On("ListPayments", ctx, 3, 2024, (*string)(nil)).Return([]domain.DesignPayment{
		{PaymentID: "p-1", MemberID: "m-ana", MemberName: &anaName, DemandType: domain.DesignArt, Value: decimal.RequireFromString("10.00")},
		{PaymentID: "p-2", MemberID: "m-ana", MemberName: &anaName, DemandType: domain.DesignVideo, Value: decimal.RequireFromString("20.00")},
		{PaymentID: "p-3", MemberID: "m-bruno", MemberName: &brunoName, DemandType: domain.DesignArt, Value: decimal.RequireFromString("10.00")},
	}, nil).Once()
	suite.mockDesignRepo.On("FindRateByMember", ctx, "m-ana").Return(nil, nil).Twice()
	suite.mockDesignRepo.On("FindRateByMember", ctx, "m-bruno").Return(nil, nil).Twice()

	summaries, err := suite.service.PaymentSummary(ctx, 3, 2024)

	suite.NoError(err)
	suite.Require().Len(summaries, 2)
	suite.Equal("Ana", summaries[0].MemberName)
	suite.Equal(1, summaries[0].TotalArts)
	suite.Equal(1, summaries[0].TotalVideos)
	suite.True(summaries[0].TotalValue.Equal(decimal.RequireFromString("30.00")))
	suite.Equal("Bruno", summaries[1].MemberName)
	suite.True(summaries[1].TotalValue.Equal(decimal.RequireFromString("10.00")))
	suite.True(summaries[0].ArtRate.Equal(decimal.RequireFromString("10.00")))
	suite.True(summaries[0].VideoRate.Equal(decimal.RequireFromString("20.00")))
}

func (suite *DesignServiceTestSuite) TestClientGallery_SkipsDemandsWithoutAttachments() {
	ctx := context.Background()
	approvedAt := testNow.Add(-24 * time.Hour)

	suite.mockDesignRepo.On("ListApprovedDemands", ctx, "client-1").Return([]domain.DesignDemand{
		{DemandID: "dd-1", Title: "Feed post", DemandType: domain.DesignArt, ApprovedAt: &approvedAt},
		{DemandID: "dd-2", Title: "Story", DemandType: domain.DesignVideo, ApprovedAt: &approvedAt},
	}, nil).Once()
	suite.mockDesignRepo.On("ListAttachments", ctx, "dd-1").Return([]domain.Attachment{
		{AttachmentID: "at-1", DemandID: "dd-1", Filename: "post.png"},
	}, nil).Once()
	suite.mockDesignRepo.On("ListAttachments", ctx, "dd-2").Return([]domain.Attachment{}, nil).Once()

	items, err := suite.service.ClientGallery(ctx, "client-1")

	suite.NoError(err)
	suite.Require().Len(items, 1)
	suite.Equal("dd-1", items[0].DemandID)
	suite.Len(items[0].Attachments, 1)
}

func (suite *DesignServiceTestSuite) TestDeleteDemand_RemovesFilesAfterRows() {
	ctx := context.Background()

	suite.mockDesignRepo.On("FindDemandByID", ctx, "dd-1").
		Return(&domain.DesignDemand{DemandID: "dd-1"}, nil).Once()
	suite.mockDesignRepo.On("ListAttachments", ctx, "dd-1").Return([]domain.Attachment{
		{AttachmentID: "at-1", DemandID: "dd-1", StoragePath: "dd-1/a.png"},
		{AttachmentID: "at-2", DemandID: "dd-1", StoragePath: "dd-1/b.png"},
	}, nil).Once()
	suite.mockDesignRepo.On("DeleteDemand", ctx, "dd-1").Return(nil).Once()
	suite.mockStore.On("Remove", ctx, "dd-1/a.png").Return(nil).Once()
	suite.mockStore.On("Remove", ctx, "dd-1/b.png").Return(nil).Once()

	err := suite.service.DeleteDemand(ctx, "dd-1")

	suite.NoError(err)
	suite.mockStore.AssertExpectations(suite.T())
}

func TestDesignServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DesignServiceTestSuite))
}
