package main

import (
	"flag"
	"fmt"
	"os"

	"go-payroll/internal/app"
	"go-payroll/internal/config"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/shared/migration"

	"go.uber.org/zap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate <up|down>")
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := app.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	defer sqlDB.Close()

	m, err := migration.New(sqlDB, logger)
	if err != nil {
		logger.Fatal("create migrator failed", zap.Error(err))
	}

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
}
