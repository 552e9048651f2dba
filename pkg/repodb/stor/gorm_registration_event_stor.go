package stor

import (
	"time"

	"github.com/hashicorp/go-uuid"
	"gorm.io/gorm"

	"github.com/plugworks/repofs/pkg/repodb/model"
)

type GormRegistrationEventStor struct {
	db *gorm.DB
}

func NewGormRegistrationEventStor(db *gorm.DB) *GormRegistrationEventStor {
	return &GormRegistrationEventStor{db: db}
}

func (s *GormRegistrationEventStor) AddEvent(pluginID, action, provider string) (*model.RegistrationEvent, error) {
	eventUUID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, err
	}

	event := &model.RegistrationEvent{
		UUID:      eventUUID,
		PluginID:  pluginID,
		Action:    action,
		Provider:  provider,
		CreatedAt: time.Now(),
	}

	if err := s.db.Create(event).Error; err != nil {
		return nil, err
	}

	return event, nil
}

func (s *GormRegistrationEventStor) ListEvents() ([]model.RegistrationEvent, error) {
	var events []model.RegistrationEvent
	err := s.db.Order("id").Find(&events).Error
	return events, err
}

func (s *GormRegistrationEventStor) ListEventsForPlugin(pluginID string) ([]model.RegistrationEvent, error) {
	var events []model.RegistrationEvent
	err := s.db.Where("plugin_id = ?", pluginID).Order("id").Find(&events).Error
	return events, err
}
