package container

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	ghalerts "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Alerts"
	config "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Config"
	ghingestor "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Ingestor"
	logger "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Logger"
	implementation "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Repository/Implementation"
	interfaces "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Repository/Interfaces"
)

// Container manages dependencies and their lifecycle. Components are created
// lazily on first use and torn down in reverse order on Shutdown.
type Container struct {
	config *config.Config
	logger *logger.Logger

	mu sync.Mutex
	db *sql.DB

	deviceRepo    interfaces.DeviceRepository
	telemetryRepo interfaces.TelemetryRepository
	statusRepo    interfaces.StatusRepository
	ruleRepo      interfaces.AlertRuleRepository

	ingestor *ghingestor.Ingestor
}

// NewContainer loads configuration and builds the dependency container
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger.NewLogger(&cfg.Logging),
	}, nil
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.logger
}

// GetDatabase returns the shared connection pool, opening it on first call
func (c *Container) GetDatabase() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		db, err := connectPostgres(c.config, 20*time.Second)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.db = db
	}

	return c.db, nil
}

// InitializeDatabase creates the schema if it does not exist yet
func (c *Container) InitializeDatabase(ctx context.Context) error {
	db, err := c.GetDatabase()
	if err != nil {
		return err
	}

	if err := implementation.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	c.logger.Info("Database schema ready")
	return nil
}

// GetRepositories returns the four storage repositories, constructing them on
// first call
func (c *Container) GetRepositories() (interfaces.DeviceRepository, interfaces.TelemetryRepository, interfaces.StatusRepository, interfaces.AlertRuleRepository, error) {
	db, err := c.GetDatabase()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.deviceRepo == nil {
		c.deviceRepo = implementation.NewPostgresDeviceRepository(db)
		c.telemetryRepo = implementation.NewPostgresTelemetryRepository(db)
		c.statusRepo = implementation.NewPostgresStatusRepository(db)
		c.ruleRepo = implementation.NewPostgresAlertRuleRepository(db)
	}

	return c.deviceRepo, c.telemetryRepo, c.statusRepo, c.ruleRepo, nil
}

// GetIngestor returns the MQTT ingestor wired to storage and the alert
// notifier. The caller owns Start; the container owns Stop.
func (c *Container) GetIngestor() (*ghingestor.Ingestor, error) {
	deviceRepo, telemetryRepo, statusRepo, ruleRepo, err := c.GetRepositories()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ingestor == nil {
		notifier := ghalerts.NewLogNotifier(c.logger)
		c.ingestor = ghingestor.New(c.config, deviceRepo, telemetryRepo, statusRepo, ruleRepo, notifier, c.logger)
	}

	return c.ingestor, nil
}

// Shutdown tears the container down: transport first, storage last, so no
// write ever races a closed pool
func (c *Container) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down container...")

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ingestor != nil {
		c.ingestor.Stop()
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			c.logger.ErrorWithError(err, "Error closing database connection")
		}
		c.db = nil
	}

	c.logger.Info("Container shutdown complete")
	return nil
}

// connectPostgres opens the shared connection pool and verifies it
func connectPostgres(cfg *config.Config, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to open PostgreSQL connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetMaxIdleConns(cfg.Database.MinConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
