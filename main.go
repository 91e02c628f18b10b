package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardanlabs/conf"
	"github.com/redis/go-redis/v9"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/auth"
	"guardpost/backend/internal/commands"
	"guardpost/backend/internal/pkg/config"
	"guardpost/backend/internal/pkg/repository/postgresql"
	"guardpost/backend/internal/router"
)

var build = "develop"

func main() {
	if err := run(); err != nil {
		log.Println("startup error:", err)
		os.Exit(1)
	}
}

func run() error {
	var flags struct {
		conf.Version
		ConfigPath string `conf:"default:config.yaml"`
	}
	flags.SVN = build
	flags.Desc = "workforce operations backend"

	if err := conf.Parse(os.Args[1:], "GUARDPOST", &flags); err != nil {
		switch err {
		case conf.ErrHelpWanted:
			usage, err := conf.Usage("GUARDPOST", &flags)
			if err != nil {
				return err
			}
			fmt.Println(usage)
			return nil
		case conf.ErrVersionWanted:
			version, err := conf.VersionString("GUARDPOST", &flags)
			if err != nil {
				return err
			}
			fmt.Println(version)
			return nil
		}
		return err
	}

	cfg, err := config.NewConfig(flags.ConfigPath)
	if err != nil {
		return err
	}

	postgresDB := postgresql.NewDatabase(cfg)
	defer postgresDB.Close()

	commands.MigrateUP(postgresDB)

	redisDB := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisDB.Close()

	authenticator := auth.NewAuth(cfg.JWTKey)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	app := web.NewApp(shutdown)

	serverErrors := make(chan error, 1)
	go func() {
		r := router.NewRouter(app, postgresDB, redisDB, authenticator, cfg)
		serverErrors <- r.Init()
	}()

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		log.Println("shutdown started:", sig)
	}

	return nil
}
