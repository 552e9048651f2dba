package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/plugworks/repofs/pkg/clog"
	"github.com/plugworks/repofs/pkg/config"
	"github.com/plugworks/repofs/pkg/repo/factory"
	"github.com/plugworks/repofs/pkg/repo/registry"
	"github.com/plugworks/repofs/pkg/repodb"
	"github.com/plugworks/repofs/pkg/repodb/stor"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "repofsd",
	Short: "Daemon exposing plugin content repository access over HTTP",
	Long:  `Daemon exposing plugin content repository access over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		c := config.MustLoadFromRepofsDotenv()
		if err := Run(ctx, c); err != nil {
			log.Fatalf("repofsd: %s", err)
		}
	},
}

func Run(_ context.Context, c config.Configer) error {
	clog.Setup()

	volumeDir := config.ExpandUserPath(c.GetKeyWithDefault("REPOFS_VOLUME_DIR", os.TempDir()))
	parentPluginID := c.GetKeyWithDefault("REPOFS_PARENT_PLUGIN_ID", "repofs")
	log.Infof("Volume root: %s", volumeDir)

	db := repodb.MustConnectToDB(repodb.MakeDSNFromEnv())
	if err := repodb.RunMigrations(db); err != nil {
		return err
	}

	eventStor := stor.NewGormRegistrationEventStor(db)
	reg := registry.NewProviderRegistry(eventStor)
	contentFactory := factory.NewContentAccessFactory(volumeDir, parentPluginID, reg)

	// Without an externally supplied user content provider the daemon backs
	// the user namespace with volume storage.
	userStorage, err := contentFactory.UserContentStorage("")
	if err != nil {
		return err
	}
	reg.SetUserContentAccess(userStorage)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupRoutes(RouteDependencies{
		e:         e,
		config:    c,
		factory:   contentFactory,
		registry:  reg,
		eventStor: eventStor,
	})

	addr := c.GetKeyWithDefault("REPOFS_ADDR", "localhost:1360")
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Unable to start web server: %s", err)
		}
	}()

	log.Infof("repofsd listening on %s", addr)
	shutdownOnSignal(e)

	return nil
}

func shutdownOnSignal(e *echo.Echo) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	log.Infof("Got %s signal, shutting down...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Errorf("Shutdown failed: %s", err)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
