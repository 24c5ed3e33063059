package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"dropcord/internal/app"
	"dropcord/internal/transport"
	"dropcord/internal/ui"
	"dropcord/internal/web"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser upload widget",
	Long: `Start an HTTP server hosting the upload widget at / and the upload
endpoint at POST /api/upload. Files larger than --max-size are rejected
before anything is sent to the webhook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":9002", "address to listen on")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

// runServer serves until interrupted
func runServer() error {
	ctx := createContext()

	consoleUI := ui.NewConsoleUI()
	if cfg.Webhook.URL == "" {
		consoleUI.ShowMessage("Warning: no webhook URL configured, uploads will fail")
	}

	uploaderApp := app.NewUploaderApp(transport.NewWebhookClient(cfg.Webhook.URL), nil, nil)
	server, err := web.NewServer(uploaderApp, cfg.Upload.MaxFileSize)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Upload server listening on %s", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
