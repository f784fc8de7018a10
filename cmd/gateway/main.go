package main

import (
	"context"
	"log"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/scambait/scambait/pkg/config"
	"github.com/scambait/scambait/pkg/detect"
	"github.com/scambait/scambait/pkg/llm"
	"github.com/scambait/scambait/pkg/orchestrator"
	"github.com/scambait/scambait/pkg/persona"
	"github.com/scambait/scambait/pkg/session"
)

const Version = "1.0.0"

// maxMessageLen caps one inbound message, in runes.
const maxMessageLen = 10000

type inboundMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// honeypotRequest is the inbound turn payload. ConversationHistory is
// accepted for interface parity but never read: the stored transcript is
// authoritative.
type honeypotRequest struct {
	SessionID string         `json:"sessionId"`
	Message   inboundMessage `json:"message"`
	Metadata  struct {
		Channel  string `json:"channel"`
		Language string `json:"language"`
		Locale   string `json:"locale"`
	} `json:"metadata"`
	ConversationHistory []inboundMessage `json:"conversationHistory"`
}

// responseMeta travels alongside every reply. Agent notes carry only the
// detection verdict; extracted intelligence never leaves through this path.
type responseMeta struct {
	AgentState    string `json:"agentState"`
	SessionStatus string `json:"sessionStatus"`
	Persona       string `json:"persona"`
	Turn          int    `json:"turn"`
	Confidence    string `json:"confidence,omitempty"`
	ScamType      string `json:"scamType,omitempty"`
	AgentNotes    string `json:"agentNotes"`
}

type honeypotResponse struct {
	Status string       `json:"status"`
	Reply  string       `json:"reply"`
	Meta   responseMeta `json:"meta"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[FATAL] configuration: %v", err)
	}
	cfg.MustValidate()

	store := buildStore(cfg)
	defer store.Close()

	primary, secondary := buildChatters(cfg)

	engine := orchestrator.NewEngine(
		store,
		detect.NewDetector(primary),
		persona.NewGenerator(primary, secondary),
		orchestrator.NewReporter(cfg.ReportURL, string(cfg.Mode)),
		orchestrator.NewLimiter(cfg.MaxConcurrentTurns),
	)

	app := fiber.New(fiber.Config{
		AppName: "scambait gateway",
	})

	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "scambait gateway",
			"version": Version,
			"status":  "running",
		})
	})

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "version": Version, "mode": cfg.Mode})
	})

	app.Get("/api/v1/stats", requireAPIKey(cfg.APIKey), func(c fiber.Ctx) error {
		st, err := store.Stats(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "stats unavailable"})
		}
		return c.JSON(fiber.Map{
			"sessions":    st,
			"concurrency": engine.Limiter().Stats(),
		})
	})

	app.Post("/api/v1/honeypot", requireAPIKey(cfg.APIKey), handleTurn(engine))

	addr := ":" + strconv.Itoa(cfg.Port)
	log.Printf("[STARTUP] scambait gateway v%s listening on %s (mode=%s, provider=%s)",
		Version, addr, cfg.Mode, cfg.LLMProvider)
	if err := app.Listen(addr); err != nil {
		log.Fatal(err)
	}
}

// requireAPIKey guards an endpoint with the X-API-Key header. An empty
// configured key (dev mode) disables the check.
func requireAPIKey(key string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if key != "" && c.Get("X-API-Key") != key {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid API key"})
		}
		return c.Next()
	}
}

// handleTurn adapts HTTP to the turn engine. It always answers 200 with an
// in-character reply: a scammer-facing endpoint that returns error JSON
// would unmask the persona instantly.
func handleTurn(engine *orchestrator.Engine) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestID := uuid.NewString()

		var req honeypotRequest
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Message.Text == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message.text is required"})
		}
		if utf8.RuneCountInString(req.Message.Text) > maxMessageLen {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message.text exceeds 10000 characters"})
		}

		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}
		if req.Message.Sender == "" {
			req.Message.Sender = session.SenderCounterpart
		}
		if req.Message.Timestamp == "" {
			req.Message.Timestamp = time.Now().UTC().Format(time.RFC3339)
		}

		log.Printf("[TURN] request=%s session=%s channel=%s text=%.80q",
			requestID, req.SessionID, req.Metadata.Channel, req.Message.Text)

		result := safeHandleTurn(c.Context(), engine, orchestrator.TurnRequest{
			SessionID: req.SessionID,
			Message: session.Message{
				Sender:    req.Message.Sender,
				Text:      req.Message.Text,
				Timestamp: req.Message.Timestamp,
			},
			Metadata: session.Metadata{
				Channel:  req.Metadata.Channel,
				Language: req.Metadata.Language,
				Locale:   req.Metadata.Locale,
			},
		})

		return c.JSON(honeypotResponse{
			Status: "success",
			Reply:  result.Reply,
			Meta: responseMeta{
				AgentState:    result.AgentState,
				SessionStatus: string(result.SessionStatus),
				Persona:       result.Persona,
				Turn:          result.Turn,
				Confidence:    result.Confidence,
				ScamType:      result.ScamType,
				AgentNotes:    result.AgentNotes,
			},
		})
	}
}

// safeHandleTurn is the last-resort guard: whatever goes wrong below, the
// caller still receives a plausible confused-elderly reply.
func safeHandleTurn(ctx context.Context, engine *orchestrator.Engine, req orchestrator.TurnRequest) (result *orchestrator.TurnResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] turn handler panicked: session=%s panic=%v", req.SessionID, r)
			result = &orchestrator.TurnResult{
				Reply:         persona.PanicReply,
				AgentState:    "engaging",
				SessionStatus: session.StatusActive,
				Persona:       "confused_customer",
			}
		}
	}()
	return engine.HandleTurn(ctx, req)
}

// buildStore picks the session backend: Postgres when DATABASE_URL is set,
// Redis when REDIS_URL is set, in-memory otherwise.
func buildStore(cfg *config.Config) session.Store {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if cfg.DatabaseURL != "" {
		store, err := session.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[FATAL] postgres store: %v", err)
		}
		log.Println("[STARTUP] session store: postgres")
		return store
	}

	if cfg.RedisURL != "" {
		store, err := session.NewRedisStore(ctx, cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			log.Fatalf("[FATAL] redis store: %v", err)
		}
		log.Println("[STARTUP] session store: redis")
		return store
	}

	log.Println("[STARTUP] session store: in-memory (state is lost on restart)")
	return session.NewMemoryStore()
}

// buildChatters wires the primary and fallback model clients. A missing key
// yields a nil client; the persona chain degrades to canned replies.
func buildChatters(cfg *config.Config) (primary, secondary llm.Chatter) {
	if cfg.LLMProvider != config.ProviderNone {
		primary = llm.NewClient(llm.Config{
			Provider: llm.Provider(cfg.LLMProvider),
			APIKey:   cfg.LLMAPIKey,
			Model:    cfg.LLMModel,
		})
		log.Printf("[STARTUP] primary model: %s/%s", cfg.LLMProvider, cfg.LLMModel)
	}

	if cfg.FallbackProvider != config.ProviderNone && cfg.FallbackProvider != cfg.LLMProvider {
		secondary = llm.NewClient(llm.Config{
			Provider: llm.Provider(cfg.FallbackProvider),
			APIKey:   cfg.FallbackAPIKey,
			Model:    cfg.FallbackModel,
		})
		log.Printf("[STARTUP] fallback model: %s/%s", cfg.FallbackProvider, cfg.FallbackModel)
	}
	return primary, secondary
}
