package audit

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"staffdesk/internal/domain/staff"
)

const EntityEmployee = "employee"

type Event struct {
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Service writes audit events as structured log records under the "audit" group.
type Service struct {
	logger *slog.Logger
	now    func() time.Time
}

func New(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, now: time.Now}
}

func (s *Service) Record(ctx context.Context, action, entityType, entityID, summary string) Event {
	event := Event{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Summary:    summary,
		CreatedAt:  s.now().UTC(),
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "audit event",
		slog.Group("audit",
			slog.String("action", event.Action),
			slog.String("entityType", event.EntityType),
			slog.String("entityId", event.EntityID),
			slog.String("summary", event.Summary),
			slog.Time("createdAt", event.CreatedAt),
		),
	)
	return event
}

// EmployeeObserver records every employee store mutation.
func (s *Service) EmployeeObserver() staff.Observer {
	return func(op string, e staff.Employee) {
		s.Record(context.Background(), op, EntityEmployee, strconv.FormatInt(e.ID, 10), e.FirstName+" "+e.LastName)
	}
}
