// Package notification turns resolved-ticket transitions into outbound
// notices, with cross-instance deduplication so multiple dashboard
// sessions observing the same transition produce one email.
package notification

import (
	"context"

	"loftwork/internal/domain/ticket"
	"loftwork/internal/shared/logger"
)

// ResolutionDeduper records that a resolution notice for a ticket was
// claimed. Claim returns true only for the first caller across all
// instances.
type ResolutionDeduper interface {
	Claim(ctx context.Context, ticketID uint) (bool, error)
}

// ResolutionMailer delivers the actual notice.
type ResolutionMailer interface {
	SendResolutionNotice(ctx context.Context, snapshot ticket.Snapshot) error
}

// ResolutionService satisfies the view store's ResolutionNotifier. It
// never propagates failures: a lost notification is logged, not
// retried, since a retry could double-send.
type ResolutionService struct {
	dedup  ResolutionDeduper
	mailer ResolutionMailer
	logger logger.Interface
}

func NewResolutionService(dedup ResolutionDeduper, mailer ResolutionMailer, logger logger.Interface) *ResolutionService {
	return &ResolutionService{
		dedup:  dedup,
		mailer: mailer,
		logger: logger,
	}
}

func (s *ResolutionService) NotifyResolved(ctx context.Context, snapshot ticket.Snapshot) {
	first, err := s.dedup.Claim(ctx, snapshot.ID)
	if err != nil {
		s.logger.Errorw("failed to claim resolution notice", "ticket_id", snapshot.ID, "error", err)
		return
	}
	if !first {
		s.logger.Debugw("resolution notice already claimed elsewhere", "ticket_id", snapshot.ID)
		return
	}

	if err := s.mailer.SendResolutionNotice(ctx, snapshot); err != nil {
		s.logger.Errorw("failed to send resolution notice", "ticket_id", snapshot.ID, "error", err)
		return
	}

	s.logger.Infow("resolution notice sent", "ticket_id", snapshot.ID, "title", snapshot.Title)
}
