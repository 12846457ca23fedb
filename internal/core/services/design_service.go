package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DesignRates carries the payment policy knobs the design engine needs: the
// fallback per-piece rates and the attachment upload limits.
type DesignRates struct {
	DefaultArtRate      decimal.Decimal
	DefaultVideoRate    decimal.Decimal
	MaxUploadBytes      int64
	AllowedContentTypes []string
}

// designService is the board engine for the design-production pipeline. Approval
// freezes a payment record at the rate in force at that moment.
type designService struct {
	BaseService
	designRepo portsrepo.DesignRepository
	columnRepo portsrepo.ColumnRepository
	memberRepo portsrepo.MemberRepository
	store      portssvc.AttachmentStore
	rates      DesignRates
}

// DesignServiceOption is a functional option for configuring the design service.
type DesignServiceOption func(*designService)

// WithDesignClock overrides the clock used for approval and completion stamps.
func WithDesignClock(clock Clock) DesignServiceOption {
	return func(s *designService) {
		s.clock = clock
	}
}

// NewDesignService creates the design-pipeline board engine.
func NewDesignService(designRepo portsrepo.DesignRepository, columnRepo portsrepo.ColumnRepository, memberRepo portsrepo.MemberRepository, store portssvc.AttachmentStore, rates DesignRates, options ...DesignServiceOption) portssvc.DesignService {
	svc := &designService{
		designRepo: designRepo,
		columnRepo: columnRepo,
		memberRepo: memberRepo,
		store:      store,
		rates:      rates,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DesignService = (*designService)(nil)

func (s *designService) CreateColumn(ctx context.Context, req dto.CreateColumnRequest) (*domain.BoardColumn, error) {
	return createColumn(ctx, s.columnRepo, req, s.Now())
}

func (s *designService) ListColumns(ctx context.Context) ([]domain.BoardColumn, error) {
	return s.columnRepo.ListColumns(ctx)
}

func (s *designService) UpdateColumn(ctx context.Context, columnID string, req dto.UpdateColumnRequest) (*domain.BoardColumn, error) {
	return updateColumn(ctx, s.columnRepo, columnID, req)
}

func (s *designService) DeleteColumn(ctx context.Context, columnID string) error {
	return deleteColumn(ctx, s.columnRepo, columnID)
}

func (s *designService) CreateDemand(ctx context.Context, req dto.CreateDesignDemandRequest, creatorUserID string) (*domain.DesignDemand, error) {
	now := s.Now()

	var column *domain.BoardColumn
	var err error
	if req.ColumnID != nil {
		column, err = s.columnRepo.FindColumnByID(ctx, *req.ColumnID)
	} else {
		column, err = s.columnRepo.FindColumnByStage(ctx, domain.StageIntake)
	}
	if err != nil {
		return nil, err
	}

	demandType := domain.DesignArt
	if req.DemandType != nil {
		demandType = *req.DemandType
	}
	position := 0
	if req.Position != nil {
		position = *req.Position
	}

	demand := domain.DesignDemand{
		DemandID:    uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		DemandType:  demandType,
		ColumnID:    &column.ColumnID,
		Position:    position,
		ClientID:    req.ClientID,
		AssigneeID:  req.AssigneeID,
		CreatedBy:   &creatorUserID,
		DueDate:     req.DueDate,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.designRepo.SaveDemand(ctx, demand); err != nil {
		s.LogError(ctx, err, "Failed to save design demand", slog.String("title", req.Title))
		return nil, err
	}
	return &demand, nil
}

func (s *designService) GetDemandByID(ctx context.Context, demandID string) (*domain.DesignDemand, error) {
	return s.designRepo.FindDemandByID(ctx, demandID)
}

func (s *designService) ListDemands(ctx context.Context, clientID, assigneeID *string) ([]domain.DesignDemand, error) {
	return s.designRepo.ListDemands(ctx, clientID, assigneeID)
}

func (s *designService) UpdateDemand(ctx context.Context, demandID string, req dto.UpdateDesignDemandRequest) (*domain.DesignDemand, error) {
	demand, err := s.designRepo.FindDemandByID(ctx, demandID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		demand.Title = *req.Title
	}
	if req.Description != nil {
		demand.Description = req.Description
	}
	if req.DemandType != nil {
		demand.DemandType = *req.DemandType
	}
	if req.ClientID != nil {
		demand.ClientID = req.ClientID
	}
	if req.AssigneeID != nil {
		demand.AssigneeID = req.AssigneeID
	}
	if req.DueDate != nil {
		demand.DueDate = req.DueDate
	}
	demand.UpdatedAt = s.Now()
	if err := s.designRepo.UpdateDemand(ctx, *demand); err != nil {
		return nil, err
	}
	return demand, nil
}

func (s *designService) MoveDemand(ctx context.Context, demandID string, req dto.MoveDemandRequest, actorUserID string) (*domain.DesignDemand, error) {
	demand, err := s.designRepo.FindDemandByID(ctx, demandID)
	if err != nil {
		return nil, err
	}
	target, err := s.columnRepo.FindColumnByID(ctx, req.ColumnID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	entry := domain.HistoryEntry{
		HistoryID: uuid.NewString(),
		DemandID:  demandID,
		ToColumn:  &target.Name,
		ToStage:   &target.Stage,
		ChangedBy: &actorUserID,
		CreatedAt: now,
	}
	if demand.ColumnID != nil {
		if from, err := s.columnRepo.FindColumnByID(ctx, *demand.ColumnID); err == nil {
			entry.FromColumn = &from.Name
			entry.FromStage = &from.Stage
		}
	}

	move := portsrepo.DesignMove{
		DemandID: demandID,
		ColumnID: target.ColumnID,
		Position: req.Position,
		History:  entry,
	}
	if target.Stage == domain.StageDone {
		move.CompletedAt = &now
	}

	if err := s.designRepo.MoveDemand(ctx, move); err != nil {
		s.LogError(ctx, err, "Failed to move design demand",
			slog.String("demand_id", demandID), slog.String("column_id", target.ColumnID))
		return nil, err
	}

	demand.ColumnID = &target.ColumnID
	demand.Position = req.Position
	if move.CompletedAt != nil {
		demand.CompletedAt = move.CompletedAt
	}
	demand.UpdatedAt = now
	return demand, nil
}

// ApproveDemand stamps the approval and emits the frozen payment record in one
// transaction. The value is the member's rate for the demand type at this
// moment; later rate edits never touch issued payments.
func (s *designService) ApproveDemand(ctx context.Context, demandID string, actorUserID string) (*domain.DesignDemand, error) {
	demand, err := s.designRepo.FindDemandByID(ctx, demandID)
	if err != nil {
		return nil, err
	}
	if demand.PaymentRegistered {
		return nil, apperrors.NewConflictError("payment already registered for this demand")
	}
	if demand.AssigneeID == nil {
		return nil, apperrors.NewValidationFailedError("demand has no assignee to pay")
	}

	value, err := s.rateFor(ctx, *demand.AssigneeID, demand.DemandType)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	demand.ApprovedAt = &now
	if demand.CompletedAt == nil {
		demand.CompletedAt = &now
	}
	demand.PaymentValue = &value
	demand.PaymentRegistered = true
	demand.UpdatedAt = now

	payment := domain.DesignPayment{
		PaymentID:  uuid.NewString(),
		DemandID:   demandID,
		MemberID:   *demand.AssigneeID,
		ClientID:   demand.ClientID,
		DemandType: demand.DemandType,
		Value:      value,
		Month:      int(now.Month()),
		Year:       now.Year(),
		CreatedAt:  now,
	}

	if err := s.designRepo.ApproveDemand(ctx, portsrepo.DesignApproval{Demand: *demand, Payment: payment}); err != nil {
		s.LogError(ctx, err, "Failed to approve design demand", slog.String("demand_id", demandID))
		return nil, err
	}
	s.LogInfo(ctx, "Design demand approved",
		slog.String("demand_id", demandID),
		slog.String("member_id", payment.MemberID),
		slog.String("value", value.StringFixed(2)))
	return demand, nil
}

func (s *designService) DeleteDemand(ctx context.Context, demandID string) error {
	if _, err := s.designRepo.FindDemandByID(ctx, demandID); err != nil {
		return err
	}
	attachments, err := s.designRepo.ListAttachments(ctx, demandID)
	if err != nil {
		return err
	}
	if err := s.designRepo.DeleteDemand(ctx, demandID); err != nil {
		return err
	}
	// Disk cleanup happens after the rows are gone; a leftover file is
	// harmless, a dangling row is not.
	for _, attachment := range attachments {
		if err := s.store.Remove(ctx, attachment.StoragePath); err != nil {
			s.LogError(ctx, err, "Failed to remove attachment file",
				slog.String("attachment_id", attachment.AttachmentID))
		}
	}
	return nil
}

func (s *designService) GetBoard(ctx context.Context, clientID, assigneeID *string) (*domain.DesignBoard, error) {
	columns, err := s.columnRepo.ListColumns(ctx)
	if err != nil {
		return nil, err
	}
	demands, err := s.designRepo.ListDemands(ctx, clientID, assigneeID)
	if err != nil {
		return nil, err
	}

	board := &domain.DesignBoard{
		Columns: columns,
		Demands: make(map[string][]domain.DesignDemand, len(columns)),
	}
	for _, column := range columns {
		board.Demands[column.ColumnID] = []domain.DesignDemand{}
	}
	for _, demand := range demands {
		if demand.ColumnID == nil {
			continue
		}
		board.Demands[*demand.ColumnID] = append(board.Demands[*demand.ColumnID], demand)
	}
	for i := range board.Columns {
		board.Columns[i].DemandsCount = len(board.Demands[board.Columns[i].ColumnID])
	}
	return board, nil
}

func (s *designService) ListHistory(ctx context.Context, demandID string) ([]domain.HistoryEntry, error) {
	if _, err := s.designRepo.FindDemandByID(ctx, demandID); err != nil {
		return nil, err
	}
	return s.designRepo.ListHistory(ctx, demandID)
}

func (s *designService) AddComment(ctx context.Context, demandID string, req dto.CreateCommentRequest, actorUserID string) (*domain.Comment, error) {
	if _, err := s.designRepo.FindDemandByID(ctx, demandID); err != nil {
		return nil, err
	}
	comment := domain.Comment{
		CommentID: uuid.NewString(),
		DemandID:  demandID,
		UserID:    &actorUserID,
		Text:      req.Text,
		CreatedAt: s.Now(),
	}
	if err := s.designRepo.SaveComment(ctx, comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *designService) ListComments(ctx context.Context, demandID string) ([]domain.Comment, error) {
	if _, err := s.designRepo.FindDemandByID(ctx, demandID); err != nil {
		return nil, err
	}
	return s.designRepo.ListComments(ctx, demandID)
}

// UploadAttachment validates the upload before anything persists, then writes
// the file and records the row.
func (s *designService) UploadAttachment(ctx context.Context, demandID string, upload dto.AttachmentUpload, actorUserID string) (*domain.Attachment, error) {
	if _, err := s.designRepo.FindDemandByID(ctx, demandID); err != nil {
		return nil, err
	}
	if upload.Size > s.rates.MaxUploadBytes {
		return nil, apperrors.NewValidationFailedError("file exceeds the maximum upload size")
	}
	if !s.contentTypeAllowed(upload.ContentType) {
		return nil, apperrors.NewValidationFailedError("file type not allowed: " + upload.ContentType)
	}

	storagePath, err := s.store.Save(ctx, demandID, upload.Filename, upload.Data)
	if err != nil {
		s.LogError(ctx, err, "Failed to store attachment file", slog.String("demand_id", demandID))
		return nil, err
	}

	contentType := upload.ContentType
	attachment := domain.Attachment{
		AttachmentID: uuid.NewString(),
		DemandID:     demandID,
		Filename:     upload.Filename,
		StoragePath:  storagePath,
		ContentType:  &contentType,
		SizeBytes:    upload.Size,
		UploadedBy:   &actorUserID,
		CreatedAt:    s.Now(),
	}
	if err := s.designRepo.SaveAttachment(ctx, attachment); err != nil {
		if removeErr := s.store.Remove(ctx, storagePath); removeErr != nil {
			s.LogError(ctx, removeErr, "Failed to clean up orphaned attachment file")
		}
		return nil, err
	}
	return &attachment, nil
}

func (s *designService) GetAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error) {
	return s.designRepo.FindAttachmentByID(ctx, attachmentID)
}

func (s *designService) ListAttachments(ctx context.Context, demandID string) ([]domain.Attachment, error) {
	if _, err := s.designRepo.FindDemandByID(ctx, demandID); err != nil {
		return nil, err
	}
	return s.designRepo.ListAttachments(ctx, demandID)
}

func (s *designService) DeleteAttachment(ctx context.Context, attachmentID string) error {
	attachment, err := s.designRepo.FindAttachmentByID(ctx, attachmentID)
	if err != nil {
		return err
	}
	if err := s.designRepo.DeleteAttachment(ctx, attachmentID); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, attachment.StoragePath); err != nil {
		s.LogError(ctx, err, "Failed to remove attachment file",
			slog.String("attachment_id", attachmentID))
	}
	return nil
}

func (s *designService) ListPayments(ctx context.Context, month, year int, memberID *string) ([]domain.DesignPayment, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	return s.designRepo.ListPayments(ctx, month, year, memberID)
}

// PaymentSummary groups a month's issued payments per member, alongside the
// rates currently in force for reference.
func (s *designService) PaymentSummary(ctx context.Context, month, year int) ([]domain.PaymentSummary, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	payments, err := s.designRepo.ListPayments(ctx, month, year, nil)
	if err != nil {
		return nil, err
	}

	byMember := make(map[string]*domain.PaymentSummary)
	for _, payment := range payments {
		summary, ok := byMember[payment.MemberID]
		if !ok {
			summary = &domain.PaymentSummary{
				MemberID:   payment.MemberID,
				TotalValue: decimal.Zero,
				Payments:   []domain.DesignPayment{},
			}
			if payment.MemberName != nil {
				summary.MemberName = *payment.MemberName
			}
			byMember[payment.MemberID] = summary
		}
		switch payment.DemandType {
		case domain.DesignVideo:
			summary.TotalVideos++
		default:
			summary.TotalArts++
		}
		summary.TotalValue = summary.TotalValue.Add(payment.Value)
		summary.Payments = append(summary.Payments, payment)
	}

	summaries := make([]domain.PaymentSummary, 0, len(byMember))
	for memberID, summary := range byMember {
		artRate, err := s.rateFor(ctx, memberID, domain.DesignArt)
		if err != nil {
			return nil, err
		}
		videoRate, err := s.rateFor(ctx, memberID, domain.DesignVideo)
		if err != nil {
			return nil, err
		}
		summary.ArtRate = artRate
		summary.VideoRate = videoRate
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalValue.Equal(summaries[j].TotalValue) {
			return summaries[i].MemberName < summaries[j].MemberName
		}
		return summaries[i].TotalValue.GreaterThan(summaries[j].TotalValue)
	})
	return summaries, nil
}

func (s *designService) ListRates(ctx context.Context) ([]domain.MemberRate, error) {
	return s.designRepo.ListRates(ctx)
}

func (s *designService) UpsertRate(ctx context.Context, memberID string, req dto.UpsertRateRequest) (*domain.MemberRate, error) {
	if _, err := s.memberRepo.FindMemberByID(ctx, memberID); err != nil {
		return nil, err
	}
	rate := domain.MemberRate{
		MemberID:   memberID,
		ArtValue:   req.ArtValue,
		VideoValue: req.VideoValue,
		UpdatedAt:  s.Now(),
	}
	if err := s.designRepo.UpsertRate(ctx, rate); err != nil {
		return nil, err
	}
	return &rate, nil
}

// ClientGallery lists the client's approved demands that carry at least one
// attachment.
func (s *designService) ClientGallery(ctx context.Context, clientID string) ([]domain.GalleryItem, error) {
	demands, err := s.designRepo.ListApprovedDemands(ctx, clientID)
	if err != nil {
		return nil, err
	}
	items := make([]domain.GalleryItem, 0, len(demands))
	for _, demand := range demands {
		attachments, err := s.designRepo.ListAttachments(ctx, demand.DemandID)
		if err != nil {
			return nil, err
		}
		if len(attachments) == 0 {
			continue
		}
		items = append(items, domain.GalleryItem{
			DemandID:    demand.DemandID,
			Title:       demand.Title,
			DemandType:  demand.DemandType,
			ApprovedAt:  demand.ApprovedAt,
			Attachments: attachments,
		})
	}
	return items, nil
}

// rateFor resolves the per-piece rate for a member: their override row when one
// exists, the configured defaults otherwise.
func (s *designService) rateFor(ctx context.Context, memberID string, demandType domain.DesignType) (decimal.Decimal, error) {
	rate, err := s.designRepo.FindRateByMember(ctx, memberID)
	if err != nil {
		return decimal.Zero, err
	}
	if rate == nil {
		if demandType == domain.DesignVideo {
			return s.rates.DefaultVideoRate, nil
		}
		return s.rates.DefaultArtRate, nil
	}
	if demandType == domain.DesignVideo {
		return rate.VideoValue, nil
	}
	return rate.ArtValue, nil
}

func (s *designService) contentTypeAllowed(contentType string) bool {
	for _, allowed := range s.rates.AllowedContentTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
