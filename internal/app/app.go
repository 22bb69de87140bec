// Package app wires configuration, clients, the gateway, and services into
// the shared application core used by cmd/riskpilot-server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"riskpilot/internal/clients/fmp"
	"riskpilot/internal/clients/riskapi"
	"riskpilot/internal/common"
	"riskpilot/internal/gateway"
	"riskpilot/internal/interfaces"
	"riskpilot/internal/scenarios"
	"riskpilot/internal/services/copilot"
	"riskpilot/internal/services/insight"
	"riskpilot/internal/services/performance"
	"riskpilot/internal/services/valuation"
	"riskpilot/internal/session"
)

// App holds all initialized clients and services.
type App struct {
	Config             *common.Config
	Logger             *common.Logger
	RiskClient         interfaces.RiskAPIClient
	PriceClient        interfaces.PriceClient
	Gateway            interfaces.AnalyticsGateway
	Sessions           *session.Manager
	ValuationService   interfaces.ValuationService
	InsightService     interfaces.InsightService
	CopilotService     interfaces.CopilotService
	PerformanceService interfaces.PerformanceService
	Scenarios          interfaces.ScenarioLibrary
	StartupTime        time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration and initializes every client and service.
// configPath may be empty, in which case the default resolution logic is
// used: RISKPILOT_CONFIG, then riskpilot.toml next to the binary, then the
// development config directory.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("RISKPILOT_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "riskpilot.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/riskpilot.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	riskClient := riskapi.NewClient(
		riskapi.WithBaseURL(config.RiskAPIBaseURL()),
		riskapi.WithTimeout(config.Clients.RiskAPI.GetTimeout()),
		riskapi.WithRateLimit(config.Clients.RiskAPI.RateLimit),
		riskapi.WithLogger(logger),
	)

	priceClient := fmp.NewClient(config.Clients.FMP.APIKey,
		fmp.WithBaseURL(config.FMPBaseURL()),
		fmp.WithTimeout(config.Clients.FMP.GetTimeout()),
		fmp.WithRateLimit(config.Clients.FMP.RateLimit),
		fmp.WithLogger(logger),
	)

	gw := gateway.New(riskClient, priceClient, gateway.WithLogger(logger))

	sessions := session.NewManager(config.Session.Secret,
		session.WithExpiry(config.Session.GetTokenExpiry()),
		session.WithDefaultPortfolio(config.Portfolio.DefaultSymbols, nil, config.Portfolio.DefaultInvestment),
		session.WithManagerLogger(logger),
	)

	return &App{
		Config:             config,
		Logger:             logger,
		RiskClient:         riskClient,
		PriceClient:        priceClient,
		Gateway:            gw,
		Sessions:           sessions,
		ValuationService:   valuation.NewService(gw, logger),
		InsightService:     insight.NewService(logger),
		CopilotService:     copilot.NewService(gw, logger),
		PerformanceService: performance.NewService(logger, performance.WithHistory(priceClient)),
		Scenarios:          scenarios.NewLibrary(),
		StartupTime:        time.Now(),
	}, nil
}
