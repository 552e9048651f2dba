package stor

import (
	"sync"
	"time"

	"github.com/hashicorp/go-uuid"

	"github.com/plugworks/repofs/pkg/repodb/model"
)

// InMemoryRegistrationEventStor keeps events in a slice. Used in tests and
// when the daemon runs without a journal database.
type InMemoryRegistrationEventStor struct {
	mu     sync.Mutex
	nextID uint
	events []model.RegistrationEvent
}

func NewInMemoryRegistrationEventStor() *InMemoryRegistrationEventStor {
	return &InMemoryRegistrationEventStor{nextID: 1}
}

func (s *InMemoryRegistrationEventStor) AddEvent(pluginID, action, provider string) (*model.RegistrationEvent, error) {
	eventUUID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event := model.RegistrationEvent{
		ID:        s.nextID,
		UUID:      eventUUID,
		PluginID:  pluginID,
		Action:    action,
		Provider:  provider,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.events = append(s.events, event)

	return &event, nil
}

func (s *InMemoryRegistrationEventStor) ListEvents() ([]model.RegistrationEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]model.RegistrationEvent, len(s.events))
	copy(events, s.events)
	return events, nil
}

func (s *InMemoryRegistrationEventStor) ListEventsForPlugin(pluginID string) ([]model.RegistrationEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []model.RegistrationEvent
	for _, event := range s.events {
		if event.PluginID == pluginID {
			events = append(events, event)
		}
	}
	return events, nil
}
