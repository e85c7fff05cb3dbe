package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/khayal-shop/app/configs"
	"github.com/Rakhulsr/khayal-shop/app/db/seeders"
	"github.com/Rakhulsr/khayal-shop/app/models/migrations"
	"github.com/Rakhulsr/khayal-shop/app/routes"
	"github.com/Rakhulsr/khayal-shop/app/utils/sessions"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 15 * time.Second

// NewCommand builds the CLI. Running it without a subcommand serves HTTP.
func NewCommand(env configs.ENV) *cli.Command {
	return &cli.Command{
		Name:  "khayal-shop",
		Usage: "Khayal storefront API",
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, env)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, env)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Create the sample products when the catalog is empty",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					created, err := seeders.DBSeed(ctx, db)
					if err != nil {
						return err
					}
					log.Printf("✅ Seeding complete, %d products created", created)
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate session, CSRF and JWT keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Value: ".env.keys",
						Usage: "file to write the generated keys to",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(c.String("out")); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
		},
	}
}

func RunCli(env configs.ENV) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCommand(env).Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(ctx context.Context, env configs.ENV) error {
	db, err := configs.OpenConnection(env)
	if err != nil {
		return fmt.Errorf("DB connection failed: %w", err)
	}
	log.Println("✅ Database connected.")

	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		return err
	}
	sessionStore := sessions.NewCookieSessionStore(env.IsProduction(), keys.AuthKey, keys.EncKey)
	log.Println("✅ Session store initialized.")

	csrfKey, err := configs.CSRFKey(env)
	if err != nil {
		return err
	}
	if csrfKey == nil {
		log.Println("Warning: CSRF_KEY not set, CSRF protection is disabled")
	}
	if env.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set, bearer tokens are disabled")
	}

	router := routes.NewRouter(db, routes.Options{
		Env:          env,
		SessionStore: sessionStore,
		CSRFKey:      csrfKey,
	})

	server := &http.Server{
		Addr:              env.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on %s", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start the server: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
