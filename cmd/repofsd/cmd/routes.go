package cmd

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/plugworks/repofs/pkg/config"
	"github.com/plugworks/repofs/pkg/repo/factory"
	"github.com/plugworks/repofs/pkg/repo/registry"
	"github.com/plugworks/repofs/pkg/repodb/stor"
	"github.com/plugworks/repofs/pkg/repofsd/webapi"
)

type RouteDependencies struct {
	e         *echo.Echo
	config    config.Configer
	factory   *factory.ContentAccessFactory
	registry  *registry.ProviderRegistry
	eventStor stor.RegistrationEventStor
}

func setupRoutes(deps RouteDependencies) {
	deps.e.Use(middleware.Recover())
	g := deps.e.Group("/api")

	logController := webapi.NewLogController()
	g.POST("/set-logging-level", logController.SetLogLevelHandler)
	g.POST("/set-logging-output", logController.SetLogOutputHandler)
	g.POST("/set-logging", logController.SetLoggingHandler)
	g.GET("/show-logging", logController.ShowCurrentLoggingHandler)

	systemController := webapi.NewSystemContentController(deps.factory)
	g.GET("/system/:plugin/file", systemController.GetFileHandler)
	g.GET("/system/:plugin/file/exists", systemController.FileExistsHandler)
	g.GET("/system/:plugin/files", systemController.ListFilesHandler)
	g.PUT("/system/:plugin/file", systemController.SaveFileHandler)
	g.DELETE("/system/:plugin/file", systemController.DeleteFileHandler)

	repositoryController := webapi.NewRepositoryContentController(deps.factory)
	g.GET("/repository/file", repositoryController.GetFileHandler)
	g.GET("/repository/file/exists", repositoryController.FileExistsHandler)
	g.GET("/repository/files", repositoryController.ListFilesHandler)
	g.PUT("/repository/file", repositoryController.SaveFileHandler)
	g.DELETE("/repository/file", repositoryController.DeleteFileHandler)

	userController := webapi.NewUserContentController(deps.factory)
	g.GET("/user/file", userController.GetFileHandler)
	g.GET("/user/file/exists", userController.FileExistsHandler)
	g.GET("/user/files", userController.ListFilesHandler)
	g.PUT("/user/file", userController.SaveFileHandler)
	g.DELETE("/user/file", userController.DeleteFileHandler)

	registrationsController := webapi.NewRegistrationsController(deps.registry, deps.eventStor)
	g.GET("/registrations", registrationsController.IndexRegistrationsHandler)
	g.GET("/registrations/events", registrationsController.IndexRegistrationEventsHandler)
}
