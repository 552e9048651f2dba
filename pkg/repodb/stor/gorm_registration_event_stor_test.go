package stor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plugworks/repofs/pkg/repodb/model"
)

func newTestEventStor(t *testing.T) *GormRegistrationEventStor {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoErrorf(t, err, "gorm.Open failed: %s", err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	// Cap sqlite at one connection to avoid table locks from parallel use.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.RegistrationEvent{}))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return NewGormRegistrationEventStor(db)
}

func TestGormRegistrationEventStor_AddEvent(t *testing.T) {
	eventStor := newTestEventStor(t)

	event, err := eventStor.AddEvent("cde", model.ActionRegistered, "*bundleaccess.BundleAccess")
	require.NoError(t, err)
	require.NotZero(t, event.ID)
	require.NotEmpty(t, event.UUID)
	require.Equal(t, "cde", event.PluginID)
	require.Equal(t, model.ActionRegistered, event.Action)
}

func TestGormRegistrationEventStor_ListEvents(t *testing.T) {
	eventStor := newTestEventStor(t)

	_, err := eventStor.AddEvent("cde", model.ActionRegistered, "*bundleaccess.BundleAccess")
	require.NoError(t, err)
	_, err = eventStor.AddEvent("cgg", model.ActionRegistered, "*bundleaccess.BundleAccess")
	require.NoError(t, err)
	_, err = eventStor.AddEvent("cde", model.ActionUnregistered, "*bundleaccess.BundleAccess")
	require.NoError(t, err)

	all, err := eventStor.ListEvents()
	require.NoError(t, err)
	require.Len(t, all, 3)

	cdeEvents, err := eventStor.ListEventsForPlugin("cde")
	require.NoError(t, err)
	require.Len(t, cdeEvents, 2)
	require.Equal(t, model.ActionRegistered, cdeEvents[0].Action)
	require.Equal(t, model.ActionUnregistered, cdeEvents[1].Action)
}

func TestInMemoryRegistrationEventStor(t *testing.T) {
	eventStor := NewInMemoryRegistrationEventStor()

	_, err := eventStor.AddEvent("cde", model.ActionRegistered, "*fsaccess.FSAccess")
	require.NoError(t, err)
	_, err = eventStor.AddEvent("cgg", model.ActionRegistered, "*fsaccess.FSAccess")
	require.NoError(t, err)

	all, err := eventStor.ListEvents()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, uint(1), all[0].ID)
	require.Equal(t, uint(2), all[1].ID)

	cdeEvents, err := eventStor.ListEventsForPlugin("cde")
	require.NoError(t, err)
	require.Len(t, cdeEvents, 1)
}
