package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/application/port"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/entity"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/event"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/workflow"
)

// NotificationService delivers best-effort push notifications after status
// transitions. It consumes status-changed events emitted by the approval
// service; delivery failures are recorded and swallowed, never surfaced to
// the approving user.
type NotificationService interface {
	// HandleStatusChanged is the dispatcher handler for status-changed events
	HandleStatusChanged(ctx context.Context, evt *event.Event) error
}

type notificationServiceImpl struct {
	reportRepo       port.ReportRepository
	userRepo         port.UserRepository
	notificationRepo port.NotificationRepository
	sender           port.PushSender
	logger           Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	reportRepo port.ReportRepository,
	userRepo port.UserRepository,
	notificationRepo port.NotificationRepository,
	sender port.PushSender,
	logger Logger,
) NotificationService {
	return &notificationServiceImpl{
		reportRepo:       reportRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		sender:           sender,
		logger:           logger,
	}
}

// HandleStatusChanged resolves who must hear about the transition and sends
// one push notification
func (s *notificationServiceImpl) HandleStatusChanged(ctx context.Context, evt *event.Event) error {
	report, err := s.reportRepo.GetByID(ctx, evt.ReportID)
	if err != nil {
		return fmt.Errorf("get report: %w", err)
	}
	if report == nil {
		return fmt.Errorf("report %d not found for notification", evt.ReportID)
	}

	toStatus := workflow.Status(evt.GetPayloadString("to_status"))

	targets, err := s.resolveTargets(ctx, report, toStatus)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		s.logger.Info("No notification targets", "report_id", report.ID, "to_status", toStatus.String())
		return nil
	}

	title, body := buildMessage(report, toStatus, evt.GetPayloadString("comment"))

	notification := &entity.PushNotification{
		ReportID:      report.ID,
		TargetUserIDs: targets,
		Title:         title,
		Body:          body,
		Link:          fmt.Sprintf("/reports/%d", report.ID),
		Status:        entity.NotificationStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	if err := s.sender.Send(ctx, targets, title, body, notification.Link); err != nil {
		s.logger.Error("Push delivery failed",
			"report_id", report.ID,
			"notification_id", notification.ID,
			"error", err,
		)
		if markErr := s.notificationRepo.MarkFailed(ctx, notification.ID, err.Error()); markErr != nil {
			s.logger.Error("Failed to mark notification failed", "notification_id", notification.ID, "error", markErr)
		}
		// Best-effort: the transition already committed
		return nil
	}

	if err := s.notificationRepo.MarkSent(ctx, notification.ID); err != nil {
		s.logger.Error("Failed to mark notification sent", "notification_id", notification.ID, "error", err)
	}

	s.logger.Info("Notification sent",
		"report_id", report.ID,
		"notification_id", notification.ID,
		"target_count", len(targets),
	)
	return nil
}

// resolveTargets picks the next-stage approvers for forward transitions and
// the author for everything that lands back with them
func (s *notificationServiceImpl) resolveTargets(ctx context.Context, report *entity.Report, toStatus workflow.Status) ([]int64, error) {
	// While the new status is a pending stage, the role owning that stage is
	// up next; otherwise the outcome belongs to the author
	owner, pending := workflow.StageOwner(toStatus)
	if !pending {
		return []int64{report.AuthorID}, nil
	}

	users, err := s.userRepo.ListByRole(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list approvers: %w", err)
	}

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func buildMessage(report *entity.Report, toStatus workflow.Status, comment string) (title, body string) {
	date := report.ReportDate.Format("2006-01-02")

	switch toStatus {
	case workflow.StatusSubmitted:
		return "Report submitted", fmt.Sprintf("Weekly report for %s is awaiting coordinator review.", date)
	case workflow.StatusCoordinatorReviewed:
		return "Report reviewed", fmt.Sprintf("Weekly report for %s is awaiting manager approval.", date)
	case workflow.StatusManagerApproved:
		return "Report approved by manager", fmt.Sprintf("Weekly report for %s is awaiting final confirmation.", date)
	case workflow.StatusFinalApproved:
		return "Report approved", fmt.Sprintf("Your weekly report for %s received final approval.", date)
	case workflow.StatusRejected:
		return "Report rejected", fmt.Sprintf("Your weekly report for %s was rejected: %s", date, comment)
	case workflow.StatusRevisionRequested:
		return "Revision requested", fmt.Sprintf("Your weekly report for %s needs revision: %s", date, comment)
	default:
		return "Report updated", fmt.Sprintf("Weekly report for %s changed status to %s.", date, toStatus.String())
	}
}
