package stor

import (
	"github.com/plugworks/repofs/pkg/repodb/model"
)

type RegistrationEventStor interface {
	AddEvent(pluginID, action, provider string) (*model.RegistrationEvent, error)
	ListEvents() ([]model.RegistrationEvent, error)
	ListEventsForPlugin(pluginID string) ([]model.RegistrationEvent, error)
}
