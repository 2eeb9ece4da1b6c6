package orchestratorcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/commands"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/logging"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/sites"
	"github.com/ceverett10/experience-marketplace-platform-sub000/pkg/interfaces"
)

const setAutomationMessageType = "orchestrator.sites.set_automation"

// SetAutomationCommand toggles the suppression flag that keeps the scheduler
// away from a site without changing its lifecycle status.
type SetAutomationCommand struct {
	SiteID uuid.UUID `json:"site_id"`
	Paused bool      `json:"paused"`
}

// Type implements command.Message.
func (SetAutomationCommand) Type() string { return setAutomationMessageType }

// Validate ensures the command targets a concrete site.
func (m SetAutomationCommand) Validate() error {
	errs := validation.Errors{}
	if m.SiteID == uuid.Nil {
		errs["site_id"] = validation.NewError("orchestrator.sites.set_automation.site_id_required", "site_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetAutomationHandler flips the automation flag through the site service.
type SetAutomationHandler struct {
	inner *commands.Handler[SetAutomationCommand]
}

// NewSetAutomationHandler wires the handler to the site service.
func NewSetAutomationHandler(service sites.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SetAutomationCommand]) *SetAutomationHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SetAutomationCommand) error {
		_, err := service.SetAutomationPaused(ctx, msg.SiteID, msg.Paused)
		return err
	}

	handlerOpts := []commands.HandlerOption[SetAutomationCommand]{
		commands.WithLogger[SetAutomationCommand](baseLogger),
		commands.WithOperation[SetAutomationCommand]("sites.set_automation"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SetAutomationHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander[SetAutomationCommand].
func (h *SetAutomationHandler) Execute(ctx context.Context, msg SetAutomationCommand) error {
	return h.inner.Execute(ctx, msg)
}
