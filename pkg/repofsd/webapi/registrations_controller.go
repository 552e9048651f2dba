package webapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plugworks/repofs/pkg/repo/registry"
	"github.com/plugworks/repofs/pkg/repodb/stor"
)

// RegistrationsController exposes the current provider registrations and the
// registration journal for diagnostics.
type RegistrationsController struct {
	registry *registry.ProviderRegistry
	events   stor.RegistrationEventStor
}

func NewRegistrationsController(reg *registry.ProviderRegistry, events stor.RegistrationEventStor) *RegistrationsController {
	return &RegistrationsController{registry: reg, events: events}
}

func (c *RegistrationsController) IndexRegistrationsHandler(ctx echo.Context) error {
	type registrationResp struct {
		PluginID string `json:"plugin_id"`
		Provider string `json:"provider"`
	}

	regs := c.registry.Registrations()
	resp := make([]registrationResp, 0, len(regs))
	for _, reg := range regs {
		resp = append(resp, registrationResp{
			PluginID: reg.PluginID,
			Provider: fmt.Sprintf("%T", reg.Provider),
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

func (c *RegistrationsController) IndexRegistrationEventsHandler(ctx echo.Context) error {
	if c.events == nil {
		return echo.NewHTTPError(http.StatusNotFound, "registration journal not enabled")
	}

	pluginID := ctx.QueryParam("plugin_id")

	events, err := c.listEvents(pluginID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusOK, events)
}

func (c *RegistrationsController) listEvents(pluginID string) (interface{}, error) {
	if pluginID != "" {
		return c.events.ListEventsForPlugin(pluginID)
	}

	return c.events.ListEvents()
}
