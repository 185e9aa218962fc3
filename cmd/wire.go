package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	yamllayouts "github.com/bnema/editable-entry/internal/adapters/layout/yaml"
	zlognotify "github.com/bnema/editable-entry/internal/adapters/notify/zlog"
	pagerender "github.com/bnema/editable-entry/internal/adapters/render/page"
	tomlrepo "github.com/bnema/editable-entry/internal/adapters/repo/toml"
	"github.com/bnema/editable-entry/internal/application"
	"github.com/bnema/editable-entry/internal/domain"
	"github.com/bnema/editable-entry/internal/ports"
)

const (
	configDir  = ".editable-entry"
	configName = "config"
	configType = "toml"
	envPrefix  = "EE"

	logLevelKey = "log.level"
	listenKey   = "serve.listen"
	sessionKey  = "defaults.session"
	pageKey     = "defaults.page"
	recordKey   = "defaults.record"
)

type app struct {
	config   *viper.Viper
	logger   zerolog.Logger
	layouts  ports.LayoutRepository
	records  ports.RecordRepository
	sessions ports.SessionRepository
	clock    ports.Clock
	renderer func(application.PageView, pagerender.RenderOptions) (string, error)
	ref      refFlags
}

type refFlags struct {
	session string
	page    string
	record  string
}

func (r refFlags) pageRef() application.PageRef {
	return application.PageRef{
		SessionID: domain.SessionID(r.session),
		Page:      r.page,
		RecordID:  domain.RecordID(r.record),
	}
}

func wireApp() (*app, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(os.Stderr, config.GetString(logLevelKey))
	if err != nil {
		return nil, err
	}

	records, err := tomlrepo.NewRecordRepository(config)
	if err != nil {
		return nil, fmt.Errorf("wire record repository: %w", err)
	}

	sessions, err := tomlrepo.NewSessionRepository(config)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	layouts, err := yamllayouts.NewRepository(config)
	if err != nil {
		return nil, fmt.Errorf("wire layout repository: %w", err)
	}

	return &app{
		config:   config,
		logger:   logger,
		layouts:  layouts,
		records:  records,
		sessions: sessions,
		clock:    ports.SystemClock{},
		renderer: pagerender.Render,
	}, nil
}

// pageService builds a service that reports notifications through notifier.
// A nil notifier logs them.
func (a *app) pageService(notifier ports.Notifier) *application.PageService {
	if notifier == nil {
		notifier = zlognotify.NewNotifier(a.logger)
	}

	return application.NewPageService(a.layouts, a.records, a.sessions, notifier, a.clock, a.logger)
}

func loadConfig() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	config := viper.New()
	config.SetConfigName(configName)
	config.SetConfigType(configType)
	config.AddConfigPath(filepath.Join(homeDir, configDir))
	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	config.SetDefault(logLevelKey, "warn")
	config.SetDefault(listenKey, "127.0.0.1:8080")
	config.SetDefault(sessionKey, "default")

	if err := config.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return config, nil
}

func newLogger(out io.Writer, level string) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse %s: %w", logLevelKey, err)
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}).
		Level(parsed).
		With().
		Timestamp().
		Logger(), nil
}
