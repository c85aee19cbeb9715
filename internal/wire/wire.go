// Package wire provides dependency injection for the marina console.
// It builds the service graph once, lazily, from the loaded configuration.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	cliadapter "github.com/example/marina/internal/adapters/cli"
	"github.com/example/marina/internal/adapters/filesystem"
	"github.com/example/marina/internal/adapters/gemini"
	"github.com/example/marina/internal/adapters/memory"
	"github.com/example/marina/internal/adapters/mock"
	"github.com/example/marina/internal/adapters/remote"
	"github.com/example/marina/internal/adapters/sqlite"
	"github.com/example/marina/internal/app"
	"github.com/example/marina/internal/config"
	"github.com/example/marina/internal/core/access"
	"github.com/example/marina/internal/db"
	"github.com/example/marina/internal/logging"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/secondary"
	"github.com/example/marina/internal/telemetry"
)

// RemoteRequestTimeout bounds a command forwarded to the remote core.
const RemoteRequestTimeout = 30 * time.Second

// Stack is the assembled console.
type Stack struct {
	Config   *config.Config
	Logger   *zap.Logger
	Policy   access.Policy
	Store    *memory.Store
	Audit    *sqlite.AuditRepository
	Console  *app.ConsoleImpl
	Operator models.UserProfile

	db *sql.DB
}

// Close releases the database.
func (s *Stack) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

var (
	configPath string
	stack      *Stack
	stackErr   error
	once       sync.Once
)

// SetConfigPath selects the config file used by the singleton. It must be
// called before the first accessor.
func SetConfigPath(path string) {
	configPath = path
}

// Get returns the singleton stack, building it on first use.
func Get() (*Stack, error) {
	once.Do(func() {
		cfg, err := config.Load(configPath)
		if err != nil {
			stackErr = err
			return
		}
		stack, stackErr = Build(context.Background(), cfg)
	})
	return stack, stackErr
}

// Build assembles the console from cfg: the SQLite database for slots and
// the audit log, the in-memory state restored from the slots, the mock
// providers, and the optional documents directory, chat model and remote core.
func Build(ctx context.Context, cfg *config.Config) (*Stack, error) {
	logger, err := logging.New(cfg.LogLevel, false)
	if err != nil {
		return nil, err
	}

	operator, err := Operator(cfg.Operator)
	if err != nil {
		return nil, err
	}

	policy, err := access.Load(cfg.PolicyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load access policy: %w", err)
	}

	database, err := db.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slots := sqlite.NewSlotStore(database)
	audit := sqlite.NewAuditRepository(database)

	store := memory.NewSeeded()
	restored, err := app.LoadState(ctx, slots, store)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to restore state: %w", err)
	}
	logger.Debug("state restored", zap.Int("slots", restored))

	docs := documents(cfg.DocsDir, logger)
	metrics := telemetry.Default()
	payments := mock.NewPaymentGateway("")

	finance := app.NewFinanceService(store, mock.NewInvoiceProvider(), payments, mock.NewBankFeed(nil), policy, metrics, logger)
	fleet := app.NewFleetService(store, mock.NewAisFeed(store.Fleet(), rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))), payments, policy, logger)

	deps := app.RouterDeps{
		Store:         store,
		Policy:        policy,
		Finance:       finance,
		Fleet:         fleet,
		Legal:         app.NewLegalService(docs, policy, logger),
		Technic:       app.NewTechnicService(store, policy, logger),
		Customer:      app.NewCustomerService(),
		Security:      app.NewSecurityService(store, mock.NewSurveillance(cfg.Security.CCTVDelay.Std()), policy, logger),
		Passkit:       app.NewPasskitService(store),
		Facility:      app.NewFacilityService(mock.NewFacilitySensors(), policy, logger),
		HealthTimeout: cfg.Backend.HealthTimeout.Std(),
		Metrics:       metrics,
		Logger:        logger,
	}
	if cfg.Backend.URL != "" {
		deps.Remote = remote.NewClient(cfg.Backend.URL, &http.Client{Timeout: RemoteRequestTimeout})
	}

	consoleDeps := app.ConsoleDeps{
		Router:  app.NewRouter(deps),
		Applier: app.NewActionApplier(store, logger),
		State:   store,
		Slots:   slots,
		ChatCfg: app.ChatSettings{
			Model:       cfg.Chat.Model,
			UseSearch:   cfg.Chat.UseSearch,
			UseThinking: cfg.Chat.UseThinking,
		},
		Audit:  audit,
		Logger: logger,
	}
	if cfg.Chat.APIKey != "" {
		chat, err := gemini.NewChatClient(ctx, cfg.Chat.APIKey, cfg.Chat.Model, logger)
		if err != nil {
			// The console still works without the fallback model.
			logger.Warn("chat fallback disabled", zap.Error(err))
		} else {
			consoleDeps.Chat = chat
		}
	}

	return &Stack{
		Config:   cfg,
		Logger:   logger,
		Policy:   policy,
		Store:    store,
		Audit:    audit,
		Console:  app.NewConsole(consoleDeps),
		Operator: operator,
		db:       database,
	}, nil
}

func documents(dir string, logger *zap.Logger) secondary.DocumentStore {
	if dir == "" {
		return mock.NewDocuments()
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Warn("documents directory unavailable, using built-in documents", zap.String("dir", dir))
		return mock.NewDocuments()
	}
	docs, err := filesystem.NewDocumentStore(dir)
	if err != nil {
		logger.Warn("documents directory unavailable, using built-in documents", zap.Error(err))
		return mock.NewDocuments()
	}
	return docs
}

// Operator builds the profile commands are issued under.
func Operator(cfg config.OperatorConfig) (models.UserProfile, error) {
	role := models.Role(strings.ToUpper(cfg.Role))
	if !role.Valid() {
		return models.UserProfile{}, fmt.Errorf("invalid operator role %q (want GUEST, CAPTAIN or GENERAL_MANAGER)", cfg.Role)
	}
	id := cfg.ID
	if id == "" {
		id = strings.ToLower(string(role))
	}
	user := models.NewUser(id, cfg.Name, role)
	user.VesselName = cfg.VesselName
	return user, nil
}

// ConsoleAdapter returns a new ConsoleAdapter on the singleton console.
func ConsoleAdapter(out io.Writer, showTraces bool) (*cliadapter.ConsoleAdapter, error) {
	s, err := Get()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewConsoleAdapter(s.Console, out, showTraces), nil
}

// StateAdapter returns a new StateAdapter on the singleton store.
func StateAdapter(out io.Writer) (*cliadapter.StateAdapter, error) {
	s, err := Get()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewStateAdapter(s.Store, s.Audit, out), nil
}
