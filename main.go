package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/retail-sales-agent/server/agent/adapters"
	"github.com/retail-sales-agent/server/agent/classify"
	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/exec"
	"github.com/retail-sales-agent/server/agent/orchestrator"
	"github.com/retail-sales-agent/server/agent/render"
	"github.com/retail-sales-agent/server/agent/respond"
	"github.com/retail-sales-agent/server/agent/retailapi"
	"github.com/retail-sales-agent/server/agent/state"
	configx "github.com/retail-sales-agent/server/pkg/config"
	"github.com/retail-sales-agent/server/pkg/llm"
	logx "github.com/retail-sales-agent/server/pkg/logger"
	_ "github.com/retail-sales-agent/server/pkg/logger/autoload"
	redisx "github.com/retail-sales-agent/server/pkg/redis"
)

type appConfig struct {
	SessionTTL       time.Duration `envconfig:"SESSION_TTL" split_words:"true" default:"24h"`
	SessionKeyPrefix string        `envconfig:"SESSION_KEY_PREFIX" split_words:"true" default:"session:"`
	AdapterTimeout   time.Duration `envconfig:"ADAPTER_TIMEOUT" split_words:"true" default:"5s"`
	CustomerID       string        `envconfig:"CUSTOMER_ID" split_words:"true"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[appConfig]("AGENT")
	llmCfg := configx.MustNew[llm.Config]("LLM")
	redisCfg := configx.MustNew[redisx.Config]("REDIS")

	store := buildStore(ctx, *redisCfg, *appCfg)
	classifier := buildClassifier(ctx, *llmCfg)
	composer := respond.NewComposer(buildRenderer(*llmCfg))

	backends := orchestrator.Backends{
		Catalog:     retailapi.NewCatalog(),
		Inventory:   retailapi.NewInventory(),
		Payments:    retailapi.NewPayments(),
		Loyalty:     retailapi.NewLoyalty(),
		Fulfillment: retailapi.NewFulfillment(),
	}
	registry := adapters.Default(backends.Catalog, backends.Inventory, backends.Payments, backends.Loyalty, backends.Fulfillment)
	logx.Info().Strs("adapters", registry.Names()).Msg("adapter registry ready")
	harness := exec.New(registry, exec.WithTimeout(appCfg.AdapterTimeout))

	svc, err := orchestrator.New(ctx, store, classifier, harness, composer, backends)
	if err != nil {
		logx.Error().Err(err).Msg("service wiring failed")
		os.Exit(1)
	}

	repl(ctx, svc, appCfg.CustomerID)
}

func buildStore(ctx context.Context, cfg redisx.Config, app appConfig) state.Store {
	opts := []state.StoreOption{
		state.WithTTL(app.SessionTTL),
		state.WithKeyPrefix(app.SessionKeyPrefix),
	}

	if !cfg.Enabled() {
		logx.Info().Msg("redis not configured, using in-memory sessions")
		return state.NewMemoryStore(opts...)
	}

	client, err := redisx.New(cfg)
	if err != nil {
		logx.Warn().Err(err).Msg("redis config invalid, using in-memory sessions")
		return state.NewMemoryStore(opts...)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logx.Warn().Err(err).Msg("redis unreachable, using in-memory sessions")
		return state.NewMemoryStore(opts...)
	}

	logx.Info().Msg("sessions backed by redis")
	return state.NewRedisStore(client, opts...)
}

func buildClassifier(ctx context.Context, cfg llm.Config) contract.Classifier {
	if !cfg.Enabled() {
		logx.Info().Msg("no llm configured, using keyword classifier")
		return classify.Keyword{}
	}

	chatModel, err := cfg.NewChatModel(ctx, llm.RoleClassifier)
	if err != nil {
		logx.Warn().Err(err).Msg("classifier model unavailable, using keyword classifier")
		return classify.Keyword{}
	}

	classifier, err := classify.NewLLM(ctx, chatModel)
	if err != nil {
		logx.Warn().Err(err).Msg("classifier graph failed to compile, using keyword classifier")
		return classify.Keyword{}
	}
	return classifier
}

func buildRenderer(cfg llm.Config) contract.Renderer {
	if !cfg.Enabled() {
		return nil
	}

	renderer, err := render.NewLLM(cfg)
	if err != nil {
		logx.Warn().Err(err).Msg("renderer unavailable, using templates")
		return nil
	}
	return renderer
}

func repl(ctx context.Context, svc *orchestrator.Service, customerID string) {
	sessionID := uuid.NewString()

	fmt.Println("Velocity Sports assistant ready. Type your message, or 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "exit" || text == "quit" {
			break
		}

		resp := svc.ProcessTurn(ctx, contract.TurnRequest{
			Text:       text,
			SessionID:  sessionID,
			CustomerID: customerID,
		})
		fmt.Println(resp.Message)
	}

	if err := scanner.Err(); err != nil {
		logx.Error().Err(err).Msg("stdin read failed")
	}
}
