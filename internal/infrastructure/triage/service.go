package triage

import (
	"context"
	"time"

	"loftwork/internal/application/ticket/usecases"
	"loftwork/internal/domain/ticket"
	vo "loftwork/internal/domain/ticket/valueobjects"
	"loftwork/internal/shared/logger"
)

// Service drives a ticket through the AI triage path:
// open, then in_progress_by_ai, then resolved or needs_manual_review.
// A ticket that reaches a terminal state through another actor while
// triage is running is left alone.
type Service struct {
	ticketRepo ticket.TicketRepository
	classifier Classifier
	publisher  usecases.TicketEventPublisher
	logger     logger.Interface
}

func NewService(
	ticketRepo ticket.TicketRepository,
	classifier Classifier,
	publisher usecases.TicketEventPublisher,
	logger logger.Interface,
) *Service {
	return &Service{
		ticketRepo: ticketRepo,
		classifier: classifier,
		publisher:  publisher,
		logger:     logger,
	}
}

// Process triages one ticket. Only open tickets flagged for AI handling
// are picked up; everything else is skipped silently.
func (s *Service) Process(ctx context.Context, ticketID uint) error {
	t, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		s.logger.Errorw("failed to load ticket for triage", "ticket_id", ticketID, "error", err)
		return err
	}

	if t.Status() != vo.StatusOpen || !t.Metadata().UseAI {
		s.logger.Debugw("ticket not eligible for triage",
			"ticket_id", ticketID,
			"status", t.Status(),
		)
		return nil
	}

	if err := s.transition(ctx, t, vo.StatusInProgressByAI, nil); err != nil {
		return err
	}

	start := time.Now()
	outcome, err := s.classifier.Classify(ctx, t.Snapshot())
	elapsed := time.Since(start)

	// Reload before the final transition: a manager may have resolved or
	// closed the ticket while classification was running.
	t, loadErr := s.ticketRepo.GetByID(ctx, ticketID)
	if loadErr != nil {
		s.logger.Errorw("failed to reload ticket after classification", "ticket_id", ticketID, "error", loadErr)
		return loadErr
	}
	if t.Status().IsTerminal() {
		s.logger.Infow("ticket reached terminal state during triage, leaving as is",
			"ticket_id", ticketID,
			"status", t.Status(),
		)
		return nil
	}

	metadata := t.Metadata()
	metadata.AIProcessed = true
	metadata.AIProcessingMS = elapsed.Milliseconds()

	if err != nil {
		s.logger.Errorw("classification failed, routing to manual review",
			"ticket_id", ticketID,
			"error", err,
		)
		metadata.ManualReviewReason = "automatic triage failed"
		return s.transition(ctx, t, vo.StatusNeedsManualReview, &metadata)
	}

	if outcome.Resolve {
		metadata.AIResolution = outcome.Resolution
		metadata.AIActionTaken = outcome.ActionTaken
		return s.transition(ctx, t, vo.StatusResolved, &metadata)
	}

	metadata.ManualReviewReason = outcome.ReviewReason
	return s.transition(ctx, t, vo.StatusNeedsManualReview, &metadata)
}

func (s *Service) transition(ctx context.Context, t *ticket.Ticket, target vo.TicketStatus, metadata *ticket.Metadata) error {
	oldStatus := t.Status()

	if metadata != nil {
		t.SetMetadata(*metadata)
	}
	if err := t.ChangeStatus(target); err != nil {
		s.logger.Errorw("triage transition rejected",
			"ticket_id", t.ID(),
			"from", oldStatus,
			"to", target,
			"error", err,
		)
		return err
	}

	if err := s.ticketRepo.Update(ctx, t); err != nil {
		s.logger.Errorw("failed to persist triage transition",
			"ticket_id", t.ID(),
			"to", target,
			"error", err,
		)
		return err
	}

	event := ticket.NewTicketUpdatedEvent(t.Snapshot(), oldStatus, time.Now())
	if err := s.publisher.PublishUpdated(ctx, event); err != nil {
		s.logger.Warnw("failed to publish triage transition",
			"ticket_id", t.ID(),
			"to", target,
			"error", err,
		)
	}

	s.logger.Infow("triage transition applied",
		"ticket_id", t.ID(),
		"from", oldStatus,
		"to", target,
	)
	return nil
}
