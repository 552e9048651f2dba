package webapi

import (
	"net/http"
	"os"
	"sync"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/plugworks/repofs/pkg/clog"
)

// LogController lets operators change the daemon's log level and output
// destination at runtime.
type LogController struct {
	mu              sync.Mutex
	CurrentLogLevel log.Level `json:"current_log_level"`
	CurrentLogFile  string    `json:"current_log_file"`
	currentHandler  *clog.Handler
}

func NewLogController() *LogController {
	return &LogController{
		CurrentLogLevel: log.InfoLevel,
		CurrentLogFile:  "stdout",
		currentHandler:  clog.Setup(),
	}
}

func (c *LogController) SetLoggingHandler(ctx echo.Context) error {
	var req struct {
		LogLevel  string `json:"log_level"`
		LogOutput string `json:"log_output"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	oldLevel := c.CurrentLogLevel
	if err := c.setLoggingLevel(req.LogLevel); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.setLoggingOutput(req.LogOutput); err != nil {
		// Reset logging level to the original level since we couldn't
		// perform both changes.
		c.CurrentLogLevel = oldLevel
		log.SetLevel(c.CurrentLogLevel)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return ctx.JSON(http.StatusOK, c)
}

func (c *LogController) SetLogLevelHandler(ctx echo.Context) error {
	var req struct {
		LogLevel string `json:"log_level"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.setLoggingLevel(req.LogLevel); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return ctx.JSON(http.StatusOK, c)
}

func (c *LogController) SetLogOutputHandler(ctx echo.Context) error {
	var req struct {
		LogOutput string `json:"log_output"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.setLoggingOutput(req.LogOutput); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return ctx.JSON(http.StatusOK, c)
}

func (c *LogController) ShowCurrentLoggingHandler(ctx echo.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ctx.JSON(http.StatusOK, c)
}

func (c *LogController) setLoggingLevel(logLevel string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %s", logLevel)
	}

	c.CurrentLogLevel = level
	log.SetLevel(c.CurrentLogLevel)

	return nil
}

func (c *LogController) setLoggingOutput(logOutput string) error {
	switch logOutput {
	case "":
		return nil
	case "stdout":
		c.currentHandler.SetOutput(os.Stdout)
	case "stderr":
		c.currentHandler.SetOutput(os.Stderr)
	default:
		f, err := os.OpenFile(logOutput, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return errors.Wrapf(err, "cannot open log output %s", logOutput)
		}
		c.currentHandler.SetOutput(f)
	}

	c.CurrentLogFile = logOutput

	return nil
}
