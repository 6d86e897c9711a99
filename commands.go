package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"sportzone-booking/auth"
	"sportzone-booking/booking"
	"sportzone-booking/clock"
	"sportzone-booking/config"
	"sportzone-booking/database"
	"sportzone-booking/deadline"
	"sportzone-booking/errors"
	"sportzone-booking/handlers"
	"sportzone-booking/pricing"
	"sportzone-booking/router"
	"sportzone-booking/terminal"
)

const mongoTimeout = 10 * time.Second

type deps struct {
	cfg     config.Config
	logger  *logrus.Logger
	service *booking.Service
	close   func()
}

func loadConfig(c *cli.Context) (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, nil, err
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(cfg.LogLevel)
	return cfg, logger, nil
}

func setup(c *cli.Context) (*deps, error) {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	ledger, closeLedger, err := openLedger(c.Context, cfg, logger)
	if err != nil {
		return nil, err
	}

	service := booking.NewService(
		cfg.Matches,
		pricing.NewEngine(cfg.Prices, cfg.VATRate),
		ledger,
		clock.NewSystem(),
		logger,
	)
	return &deps{cfg: cfg, logger: logger, service: service, close: closeLedger}, nil
}

func openLedger(ctx context.Context, cfg config.Config, logger *logrus.Logger) (database.Ledger, func(), error) {
	if cfg.Ledger.Backend != config.LedgerBackendMongo {
		return database.NewCSVLedger(cfg.Ledger.Path, cfg.CurrencySymbol, logger), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	client, err := database.DBInit(connectCtx, cfg.Ledger.MongoConnString)
	if err != nil {
		return nil, nil, err
	}

	ledger := database.NewMongoLedger(client, cfg.Ledger.MongoDatabase, cfg.Ledger.MongoCollection, logger)
	return ledger, func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
		defer cancel()
		if err := ledger.Close(closeCtx); err != nil {
			logger.WithError(err).Warn("closing mongo connection")
		}
	}, nil
}

func runLoginMenu(c *cli.Context) error {
	d, err := setup(c)
	if err != nil {
		return err
	}
	defer d.close()

	console := terminal.New(os.Stdin, os.Stdout, d.service, d.cfg.CurrencySymbol, d.logger)
	return console.RunLogin(c.Context, auth.NewStaticAccounts(d.cfg.Users, d.cfg.Admins), auth.RolePolicy{})
}

func runKioskMenu(c *cli.Context) error {
	d, err := setup(c)
	if err != nil {
		return err
	}
	defer d.close()

	console := terminal.New(os.Stdin, os.Stdout, d.service, d.cfg.CurrencySymbol, d.logger)
	return console.RunFlat(c.Context, auth.OpenPolicy{})
}

func runDeadline(c *cli.Context) error {
	fmt.Printf("Enter deadline (%s): ", deadline.Usage)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return scanner.Err()
	}

	calculate, label := deadline.TimeRemaining, "Using datetime library:"
	if c.Bool("manual") {
		calculate, label = deadline.TimeRemainingManual, "Using manual calculation:"
	}

	fmt.Printf("\n%s\n", label)
	remaining, err := calculate(scanner.Text(), clock.NewSystem().Now())
	if stderrors.Is(err, errors.ErrInvalidDateFormat) {
		fmt.Printf("Invalid format. Use %s\n", deadline.Usage)
		return nil
	} else if err != nil {
		return err
	}

	fmt.Println(remaining)
	return nil
}

func runServer(c *cli.Context) error {
	d, err := setup(c)
	if err != nil {
		return err
	}
	defer d.close()

	if d.cfg.HTTP.SigningKey == "" {
		return fmt.Errorf("SIGN must be set to serve the booking API")
	}

	h := handlers.New(
		d.service,
		auth.NewStaticAccounts(d.cfg.Users, d.cfg.Admins),
		auth.RolePolicy{},
		clock.NewSystem(),
		d.cfg.HTTP.SigningKey,
		d.cfg.HTTP.TokenTTL,
		d.cfg.CurrencySymbol,
	)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	accessLog := d.logger.WriterLevel(logrus.InfoLevel)
	defer accessLog.Close()
	router.SetupRoutes(app, h, d.cfg.HTTP.SigningKey, accessLog)

	stopCtx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-stopCtx.Done()
		d.logger.Info("shutdown signal received, stopping server")
		if err := app.Shutdown(); err != nil {
			d.logger.WithError(err).Warn("server shutdown")
		}
	}()

	d.logger.WithField("port", d.cfg.HTTP.Port).Info("booking api listening")
	return app.Listen(":" + d.cfg.HTTP.Port)
}

func runHashPassword(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one password argument")
	}
	hash, err := auth.HashPassword(c.Args().First())
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
