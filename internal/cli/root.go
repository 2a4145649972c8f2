package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nexus-packages/internal/app"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "NXS"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		log.Error().Msg(errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:     "nxs",
		Short:   "Nexus package manager",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().String("registry", app.DefaultRegistryURL, "npm-compatible registry URL")
	cmd.PersistentFlags().String("home", "", "nxs home directory (default ~/.nexus)")
	cmd.PersistentFlags().String("project-dir", "", "Project root directory (default cwd)")
	cmd.PersistentFlags().Int("http-timeout", 10, "Registry HTTP timeout in seconds")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("registry_url", cmd.PersistentFlags().Lookup("registry"))
	_ = viper.BindPFlag("home", cmd.PersistentFlags().Lookup("home"))
	_ = viper.BindPFlag("project_dir", cmd.PersistentFlags().Lookup("project-dir"))
	_ = viper.BindPFlag("http_timeout_sec", cmd.PersistentFlags().Lookup("http-timeout"))

	cmd.AddCommand(newInstallCommand())
	cmd.AddCommand(newRemoveCommand())
	cmd.AddCommand(newSearchCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newUpdateCommand())
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newPublishCommand())
	return cmd
}

func newAppService() app.Service {
	return app.NewService(app.Config{
		Home:           viper.GetString("home"),
		ProjectDir:     viper.GetString("project_dir"),
		RegistryURL:    viper.GetString("registry_url"),
		HTTPTimeoutSec: viper.GetInt("http_timeout_sec"),
		SearchLimit:    viper.GetInt("search_limit"),
	})
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("nxs")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/nxs")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// exitCodeForError collapses every failure to 1: the CLI surface
// promises exit 0 on success and 1 on any reported error. The
// errbuilder codes still carry the error taxonomy for logs and tests.
func exitCodeForError(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
