package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	authHandler "library-backend/internal/domains/auth/handler"
	personHandler "library-backend/internal/domains/person/handler"
	personRepo "library-backend/internal/domains/person/repository"
	"library-backend/internal/domains/person/seed"
	personService "library-backend/internal/domains/person/service"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application.
// Pattern: Service Locator + Dependency Injection
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB // nil with the memory driver
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	PersonRepo personRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	PersonService personService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	PersonHandler *personHandler.PersonHandler
	AuthHandler   *authHandler.AuthHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Str("storage", cfg.Storage.Driver).Msg("Initializing DI container")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: INFRASTRUCTURE
	// ========================================
	if cfg.Storage.Driver == config.StoragePostgres {
		if err := c.initDatabase(); err != nil {
			return nil, err
		}
		c.initCache()
	}
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// ========================================
	// STEP 2: REPOSITORIES
	// ========================================
	c.initRepositories()

	// ========================================
	// STEP 3: SERVICES
	// ========================================
	c.PersonService = personService.NewPersonService(c.PersonRepo)
	if cfg.Storage.SeedFile != "" {
		if err := c.seedPatrons(cfg.Storage.SeedFile); err != nil {
			c.Cleanup()
			return nil, err
		}
	}

	// ========================================
	// STEP 4: HANDLERS
	// ========================================
	c.PersonHandler = personHandler.NewPersonHandler(c.PersonService)
	c.AuthHandler = authHandler.NewAuthHandler(c.JWTManager, cfg.Librarian.KeyHash)

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}
	if c.Config.Storage.AutoMigrate {
		if err := db.Migrate(database.MigrateUp); err != nil {
			db.Close()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	c.DB = db
	return nil
}

// initCache never fails: without Redis the repository reads straight
// from PostgreSQL.
func (c *Container) initCache() {
	if !c.Config.Redis.Enabled {
		c.Cache = cache.NoopCache{}
		log.Info().Msg("Redis disabled, patron cache off")
		return
	}

	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
	}
	c.Cache = redisCache
}

func (c *Container) initRepositories() {
	if c.DB != nil {
		c.PersonRepo = personRepo.NewCachedRepository(personRepo.NewPostgresRepository(c.DB.Pool), c.Cache)
		return
	}
	c.PersonRepo = personRepo.NewMemoryRepository()
}

func (c *Container) seedPatrons(path string) error {
	f, err := seed.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load seed file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := seed.Apply(ctx, c.PersonService, f); err != nil {
		return fmt.Errorf("failed to seed patrons: %w", err)
	}
	return nil
}

// HealthCheck pings storage and, when configured, the cache.
// The map holds one entry per dependency, nil when healthy.
func (c *Container) HealthCheck(ctx context.Context) map[string]error {
	checks := map[string]error{
		"storage": c.PersonRepo.Ping(ctx),
	}
	if c.Cache != nil {
		checks["cache"] = c.Cache.Ping(ctx)
	}
	return checks
}

// Cleanup releases resources on shutdown
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("Database connections closed")
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		} else {
			log.Info().Msg("Redis connections closed")
		}
	}
}
