package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comfygraph/comfygraph"
	"github.com/comfygraph/comfygraph/client/comfyui"
	"github.com/comfygraph/comfygraph/server"
	docpg "github.com/comfygraph/comfygraph/service/dao/document/pg"
	"github.com/comfygraph/comfygraph/tracing"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	configURL := flag.String("config", "", "config document URL (YAML); defaults apply when empty")
	addr := flag.String("addr", "", "listen address override, e.g. :8080")
	flag.Parse()

	ctx := context.Background()
	config := comfygraph.DefaultConfig()
	if *configURL != "" {
		loaded, err := comfygraph.LoadConfig(ctx, *configURL)
		if err != nil {
			slog.Error("Failed to load config", "url", *configURL, "error", err)
			os.Exit(1)
		}
		config = loaded
	}
	if *addr != "" {
		config.Server.Addr = *addr
	}

	if config.Tracing.Enabled {
		if err := tracing.Init("comfygraph", "1.0.0", config.Tracing.OutputFile); err != nil {
			slog.Error("Failed to initialise tracing", "error", err)
			os.Exit(1)
		}
	}

	var clientOptions []comfyui.Option
	if config.Backend.Secret.SourceURL != "" {
		authentication, err := comfyui.ResolveAuthentication(ctx, config.Backend.Secret.SourceURL, config.Backend.Secret.Key)
		if err != nil {
			slog.Error("Failed to resolve backend secret", "error", err)
			os.Exit(1)
		}
		clientOptions = append(clientOptions, comfyui.WithAuthentication(authentication))
	}
	client := comfyui.New(config.Backend.URL, clientOptions...)

	options := []comfygraph.Option{
		comfygraph.WithConfig(config),
		comfygraph.WithBackendClient(client),
	}
	if config.Storage.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, config.Storage.PostgresDSN)
		if err != nil {
			slog.Error("Failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		options = append(options, comfygraph.WithDocumentDAO(docpg.New(pool)))
	}
	service := comfygraph.New(options...)

	srv := server.New(config.Server.Addr, service.Dispatcher())

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
