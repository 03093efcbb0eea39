// Command manage là CLI quản trị: migrate schema, tạo user, tạo group.
//
//	manage migrate
//	manage createuser -username leo [-email leo@example.com] [-password ...]
//	manage creategroup -title "Котики" [-slug cats] [-description ...]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"yatube/internal/config"
	groupModel "yatube/internal/domains/group/model"
	groupRepo "yatube/internal/domains/group/repository"
	groupService "yatube/internal/domains/group/service"
	userModel "yatube/internal/domains/user/model"
	userRepo "yatube/internal/domains/user/repository"
	userService "yatube/internal/domains/user/service"
	infraCache "yatube/internal/infrastructure/cache"
	"yatube/internal/infrastructure/database"
	"yatube/internal/infrastructure/session"
	"yatube/internal/shared/forms"
	"yatube/pkg/jwt"
	"yatube/pkg/logger"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  migrate       apply pending SQL migrations\n")
	fmt.Fprintf(os.Stderr, "  createuser    create a user (-username, -email, -password)\n")
	fmt.Fprintf(os.Stderr, "  creategroup   create a group (-title, -slug, -description)\n")
}

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "migrate":
		err = runMigrate(ctx)
	case "createuser":
		err = runCreateUser(ctx, os.Args[2:])
	case "creategroup":
		err = runCreateGroup(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		var ve *forms.ValidationError
		if errors.As(err, &ve) {
			for _, field := range ve.Fields.Fields() {
				for _, msg := range ve.Fields.Get(field) {
					fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
				}
			}
		}
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("❌ Command failed")
	}
}

// ========================================
// COMMANDS
// ========================================

func runMigrate(ctx context.Context) error {
	dbCfg, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}

	m, err := database.OpenMigrator(dbCfg)
	if err != nil {
		return err
	}
	defer m.Close()

	applied, err := m.Up(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Println("No migrations to apply.")
		return nil
	}
	for _, name := range applied {
		fmt.Printf("  Applying %s... OK\n", name)
	}
	return nil
}

func runCreateUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("createuser", flag.ExitOnError)
	username := fs.String("username", "", "Username (required)")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password; prompted when empty")
	_ = fs.Parse(args)

	if *username == "" {
		fs.Usage()
		return errors.New("username is required")
	}

	form := userModel.SignupForm{Username: *username, Email: *email, Password: *password, PasswordConfirm: *password}
	if form.Password == "" {
		pw, err := promptPassword()
		if err != nil {
			return err
		}
		form.Password, form.PasswordConfirm = pw, pw
	}

	db, cfg, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// Register không mở session; store chỉ để service đủ dependency
	sessions, err := infraCache.NewEmbeddedRedis()
	if err != nil {
		return err
	}
	defer sessions.Close()

	svc := userService.NewUserService(
		userRepo.NewPostgresRepository(db.Pool),
		jwt.NewManager(cfg.JWT.Secret, cfg.SessionTTL()),
		session.NewStore(sessions),
		cfg.JWT.BcryptCost,
	)

	u, err := svc.Register(ctx, form)
	if err != nil {
		return err
	}
	fmt.Printf("User %q created (id %s)\n", u.Username, u.ID)
	return nil
}

func runCreateGroup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("creategroup", flag.ExitOnError)
	title := fs.String("title", "", "Group title (required)")
	slug := fs.String("slug", "", "URL slug; generated from the title when empty")
	description := fs.String("description", "", "Group description")
	_ = fs.Parse(args)

	if *title == "" {
		fs.Usage()
		return errors.New("title is required")
	}

	db, _, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := groupService.NewGroupService(groupRepo.NewPostgresRepository(db.Pool))
	g, err := svc.Create(ctx, groupModel.CreateGroupRequest{Title: *title, Slug: *slug, Description: *description})
	if err != nil {
		return err
	}
	fmt.Printf("Group %q created at /group/%s/\n", g.Title, g.Slug)
	return nil
}

// ========================================
// HELPERS
// ========================================

func connect(ctx context.Context) (*database.PostgresDB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db := database.NewPostgresDB(cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}
