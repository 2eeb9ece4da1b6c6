package orchestratorcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/commands"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/logging"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/roadmap"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/sites"
	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/interfaces"
)

const retrySiteMessageType = "orchestrator.sites.retry"

// RetrySiteCommand asks for an aggressive reconciliation pass on one site:
// failed, orphaned pending, and stale running records are cleared so their
// tasks can be queued again.
type RetrySiteCommand struct {
	SiteID uuid.UUID `json:"site_id"`
}

// Type implements command.Message.
func (RetrySiteCommand) Type() string { return retrySiteMessageType }

// Validate ensures the command targets a concrete site.
func (m RetrySiteCommand) Validate() error {
	errs := validation.Errors{}
	if m.SiteID == uuid.Nil {
		errs["site_id"] = validation.NewError("orchestrator.sites.retry.site_id_required", "site_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RetrySiteHandler runs the executor in manual mode for the targeted site.
type RetrySiteHandler struct {
	inner *commands.Handler[RetrySiteCommand]
}

// NewRetrySiteHandler wires the handler to the site service and executor.
func NewRetrySiteHandler(service sites.Service, executor *roadmap.Executor, logger interfaces.Logger, opts ...commands.HandlerOption[RetrySiteCommand]) *RetrySiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RetrySiteCommand) error {
		site, err := service.GetSite(ctx, msg.SiteID)
		if err != nil {
			return err
		}
		result, err := executor.Run(ctx, site, roadmap.ModeManual)
		if err != nil {
			return err
		}
		baseLogger.Info("manual retry finished",
			"site_id", msg.SiteID.String(),
			"summary", result.Summary(),
		)
		return nil
	}

	handlerOpts := []commands.HandlerOption[RetrySiteCommand]{
		commands.WithLogger[RetrySiteCommand](baseLogger),
		commands.WithOperation[RetrySiteCommand]("sites.retry"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RetrySiteHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander[RetrySiteCommand].
func (h *RetrySiteHandler) Execute(ctx context.Context, msg RetrySiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
