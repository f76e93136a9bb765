package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"

	"github.com/algoforge/authkit/pkg/authflow"
	"github.com/algoforge/authkit/pkg/authflow/api"
	"github.com/algoforge/authkit/pkg/config"
	"github.com/algoforge/authkit/pkg/oauthclient"
	"github.com/algoforge/authkit/pkg/providers"
	"github.com/algoforge/authkit/pkg/session"
)

type Config struct {
	AppConfig       app.AppConfig
	AuthConfig      config.App
	ProvidersConfig config.Providers
}

func main() {
	cfg := Config{}
	cleanenv.ReadEnv(&cfg)

	if !cfg.ProvidersConfig.HasAnyProviderConfigured() {
		slog.Warn("No login provider configured, all logins will be rejected")
	}

	store, err := session.NewFileStore(cfg.AuthConfig.DataDir)
	if err != nil {
		slog.Error("Failed creating session store", "data_dir", cfg.AuthConfig.DataDir, "error", err)
		os.Exit(-1)
	}

	registry := providers.NewRegistry(cfg.ProvidersConfig.BuildConfigs(cfg.AuthConfig.BaseURL))
	oauth := oauthclient.NewClient(store, oauthclient.WithHTTPClient(&http.Client{
		Timeout: time.Duration(cfg.AuthConfig.HTTPTimeoutSeconds) * time.Second,
	}))
	sessions := session.NewRepository(store)

	var opts []authflow.Option
	if cfg.ProvidersConfig.IsEmailConfigured() {
		opts = append(opts, authflow.WithEmailAuthenticator(authflow.NewEmailAuthenticator(
			cfg.ProvidersConfig.EmailDemoUser,
			cfg.ProvidersConfig.EmailDemoPasswordHash,
		)))
	}
	service := authflow.NewService(registry, oauth, sessions, opts...)
	service.Initialize()

	server := app.DefaultWithoutRoutes()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	handle := api.NewHandle(service).WithFrontendURL(cfg.AuthConfig.FrontendURL)
	handle.Routes(server.R)

	server.Run()
}
