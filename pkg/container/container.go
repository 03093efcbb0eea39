package container

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"yatube/internal/config"
	infraCache "yatube/internal/infrastructure/cache"
	"yatube/internal/infrastructure/database"
	"yatube/internal/infrastructure/session"
	"yatube/pkg/cache"
	"yatube/pkg/jwt"

	groupRepo "yatube/internal/domains/group/repository"
	groupService "yatube/internal/domains/group/service"
	postHandler "yatube/internal/domains/post/handler"
	postRepo "yatube/internal/domains/post/repository"
	postService "yatube/internal/domains/post/service"
	userHandler "yatube/internal/domains/user/handler"
	userRepo "yatube/internal/domains/user/repository"
	userService "yatube/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB // nil khi build từ repositories in-memory
	Cache      cache.Cache          // Redis, hoặc miniredis in-process ở development khi Redis down
	JWTManager *jwt.Manager
	Sessions   *session.Store

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	UserRepo  userRepo.RepositoryInterface
	GroupRepo groupRepo.RepositoryInterface
	PostRepo  postRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	UserService  userService.ServiceInterface
	GroupService groupService.ServiceInterface
	PostService  postService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	UserHandler *userHandler.UserHandler
	PostHandler *postHandler.PostHandler
}

// Repositories gom data access của 3 domain
type Repositories struct {
	Users  userRepo.RepositoryInterface
	Groups groupRepo.RepositoryInterface
	Posts  postRepo.RepositoryInterface
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer load config, kết nối PostgreSQL và Redis rồi build dependency graph.
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB, Cache)
// 3. Repositories
// 4. Services, Handlers (Build)
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info().Str("env", cfg.App.Environment).Msg("✅ Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	log.Info().Msg("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE (SESSION STORE)
	// ========================================
	store, err := connectCache(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	// ========================================
	// STEP 4: REPOSITORIES + SERVICES + HANDLERS
	// ========================================
	c := Build(cfg, Repositories{
		Users:  userRepo.NewPostgresRepository(db.Pool),
		Groups: groupRepo.NewPostgresRepository(db.Pool),
		Posts:  postRepo.NewPostgresRepository(db.Pool),
	}, store)
	c.DB = db

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// connectCache kết nối Redis. Ở development, Redis down thì fallback sang
// miniredis in-process (session mất khi restart); các môi trường khác trả lỗi.
func connectCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	rc := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	err := rc.Connect(ctx)
	if err == nil {
		log.Info().Msg("✅ Redis connected")
		return rc, nil
	}

	_ = rc.Close()
	if cfg.App.Environment == "development" {
		log.Warn().Err(err).Msg("⚠️  Redis unavailable, starting embedded Redis")
		embedded, embErr := infraCache.NewEmbeddedRedis()
		if embErr != nil {
			return nil, embErr
		}
		return embedded, nil
	}
	return nil, fmt.Errorf("failed to connect to redis: %w", err)
}

// Build tạo services và handlers từ repositories và cache có sẵn
func Build(cfg *config.Config, repos Repositories, store cache.Cache) *Container {
	c := &Container{
		Config:     cfg,
		Cache:      store,
		JWTManager: jwt.NewManager(cfg.JWT.Secret, cfg.SessionTTL()),
		Sessions:   session.NewStore(store),
		UserRepo:   repos.Users,
		GroupRepo:  repos.Groups,
		PostRepo:   repos.Posts,
	}

	c.initServices()
	c.initHandlers()
	return c
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		c.Sessions,
		c.Config.JWT.BcryptCost,
	)
	c.GroupService = groupService.NewGroupService(c.GroupRepo)
	c.PostService = postService.NewPostService(c.PostRepo, c.Config.Web.PostsPerPage)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService, userHandler.Config{
		CookieName:   c.Config.Web.CookieName,
		CookieSecure: c.Config.Web.CookieSecure,
		LoginURL:     c.Config.Web.LoginURL,
	})
	c.PostHandler = postHandler.NewPostHandler(c.PostService, c.GroupService, c.UserService)
}

// ========================================
// HELPER METHODS
// ========================================

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("✅ Database connections closed")
	}

	if rc, ok := c.Cache.(io.Closer); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		} else {
			log.Info().Msg("✅ Redis connections closed")
		}
	}
}
