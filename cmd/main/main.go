package main

// @title Go WWebJS API Connector
// @version 1.0.0
// @description Action executor and webhook trigger pipeline for a remote WWebJS REST API

// @contact.name gdbrns
// @contact.url https://github.com/gdbrns/go-wwebjs-api-connector

// @license.name MIT
// @license.url https://github.com/gdbrns/go-wwebjs-api-connector/blob/main/LICENSE

// @host localhost:7001
// @BasePath /

// @securityDefinitions.apikey AdminAuth
// @in header
// @name X-Admin-Secret
// @description Admin secret key for health, stats and host tokens

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token for automation hosts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	cron "github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/auth"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/router"

	"github.com/gdbrns/go-wwebjs-api-connector/internal"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/execution"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/types"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "wwebjs-connector",
		Short:        "WWebJS API action executor and webhook trigger pipeline",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context())
			},
		},
		execCmd(),
		sessionsCmd(),
		pingCmd(),
		tokenCmd(),
	)
	return root
}

func newApp() *fiber.App {
	// Initialize Fiber
	app := fiber.New(fiber.Config{
		ErrorHandler:          router.HttpErrorHandler,
		BodyLimit:             router.BodyLimitBytes(),
		ReadBufferSize:        8192, // Larger headers carry JWT tokens and signatures
		DisableStartupMessage: true,
	})

	// Request ID + panic recovery (structured JSON)
	app.Use(router.HttpRequestID())
	app.Use(router.RecoveryMiddleware())

	// Router Compression
	app.Use(compress.New(compress.Config{
		Level: compress.Level(router.GZipLevel),
		Next: func(c *fiber.Ctx) bool {
			return strings.Contains(c.Path(), "docs")
		},
	}))

	// Router CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins: router.CORSOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Admin-Secret",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
	}))

	// Router Security
	app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
	}))

	// Router RealIP + request context enrichment
	app.Use(router.HttpRealIP())

	// Load Internal Routes
	internal.Routes(app)

	return app
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	// Running Startup Tasks
	conn, err := internal.Startup(parent)
	if err != nil {
		return err
	}

	// Intialize Cron
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DiscardLogger),
	), cron.WithSeconds())

	app := newApp()

	// Running Routines Tasks
	internal.Routines(c)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// Start Server
	g.Go(func() error {
		address := router.ListenAddress()
		log.Print(nil).WithField("address", address).Info("Server listening")
		return app.Listen(address)
	})

	// Watch for Shutdown Signal
	g.Go(func() error {
		<-gctx.Done()

		// Wait 5 Seconds Before Graceful Shutdown
		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()

		err := app.ShutdownWithContext(ctxShutdown)

		// Try To Shutdown Cron
		<-c.Stop().Done()

		if sinkErr := conn.Sink.Close(); sinkErr != nil {
			log.SysErr("sink.close", sinkErr)
		}
		return err
	})

	return g.Wait()
}

func execCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec [file|-]",
		Short: "Run an execute document and print the output items",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			var req types.RequestExecute
			if err := json.NewDecoder(in).Decode(&req); err != nil {
				return fmt.Errorf("decode execute document: %w", err)
			}

			conn := internal.Bootstrap()
			outputs, err := execution.Run(cmd.Context(), conn.Dispatcher(req.Credentials),
				execution.ItemsFromRequest(req), execution.Policy{ContinueOnFail: req.ContinueOnFail})

			var failure *execution.Failure
			if errors.As(err, &failure) {
				outputs = failure.Outputs
			}
			if printErr := printJSON(cmd.OutOrStdout(), types.ResponseExecute{Items: outputs}); printErr != nil {
				return printErr
			}
			if failure != nil {
				return fmt.Errorf("item %d: %w", failure.ItemIndex, failure.Err)
			}
			return err
		},
	}
}

func sessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List the sessions of the default WWebJS API",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn := internal.Bootstrap()
			options, err := conn.Client(nil).ListSessionOptions(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), options)
		},
	}
}

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the default credentials reach the WWebJS API",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn := internal.Bootstrap()
			if err := conn.Client(nil).Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK", conn.Defaults.BaseURL)
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	var hostID string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a host JWT",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, expiresAt, err := auth.GenerateHostToken(hostID, ttl)
			if err != nil {
				return err
			}
			resp := types.ResponseHostToken{HostID: hostID, Token: token}
			if !expiresAt.IsZero() {
				resp.ExpiresAt = expiresAt.Format(time.RFC3339)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&hostID, "host", "", "host identifier stored in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, 0 never expires")
	_ = cmd.MarkFlagRequired("host")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
