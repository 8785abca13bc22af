package bootstrap

import (
	"log"

	"ai-concierge-be/internal/config"
	"ai-concierge-be/internal/controller"
	"ai-concierge-be/internal/pkg/logger"
	"ai-concierge-be/internal/service"
	"ai-concierge-be/pkg/grading"
	"ai-concierge-be/pkg/llm/factory"
	"ai-concierge-be/pkg/reflection"
	"ai-concierge-be/pkg/retrieval"
	"ai-concierge-be/pkg/session"
	"ai-concierge-be/pkg/speech"
	"ai-concierge-be/pkg/tasks"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const auditTopicName = "CONCIERGE_AUDIT"

// relevanceThreshold is the grading score below which one query refinement
// round is attempted.
const relevanceThreshold = 0.3

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	ConciergeController controller.IConciergeController
	TaskController      controller.ITaskController
	VoiceController     controller.IVoiceController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	SysLogger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	retrievalLogger := log.Default()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Knowledge base and retriever
	corpus, err := retrieval.LoadCorpus(cfg.Retrieval.CorpusPath)
	if err != nil {
		log.Printf("[WARN] Failed to load knowledge base from %s: %v (starting empty)", cfg.Retrieval.CorpusPath, err)
	}

	var retriever retrieval.Retriever
	if cfg.Retrieval.Mode == "vector" {
		vec, err := retrieval.NewVectorRetriever(retrieval.VectorConfig{
			Collection:     cfg.Retrieval.Collection,
			EmbeddingModel: cfg.Retrieval.EmbeddingModel,
			OllamaBaseURL:  cfg.Ai.OllamaBaseURL,
		}, corpus, retrievalLogger)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize vector retriever: %v", err)
		}
		retriever = vec
		log.Printf("[INFO] Using Retriever: VECTOR (%s)", cfg.Retrieval.EmbeddingModel)
	} else {
		retriever = retrieval.NewLexicalRetriever(corpus, retrievalLogger)
		log.Printf("[INFO] Using Retriever: LEXICAL")
	}

	// 4. LLM provider and grading
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	var grader grading.Grader
	if cfg.Ai.Grader == "model" {
		grader = grading.NewModelGrader(llmProvider)
		log.Printf("[INFO] Using Grader: MODEL")
	} else {
		grader = grading.NewHeuristicGrader()
		log.Printf("[INFO] Using Grader: HEURISTIC")
	}
	refiner := grading.NewRefiner(llmProvider)

	// 5. State
	sessionStore := session.NewStore(cfg.Session.IdleTTL)
	taskStore := tasks.NewStore()
	ledger := reflection.NewLedger(reflection.DefaultDecayFactor)

	// 6. Speech chain
	transcribers := []speech.Transcriber{
		speech.NewWhisperTranscriber(cfg.Speech.SttBaseURL, cfg.Speech.APIKey, cfg.Speech.SttModel),
	}
	if cfg.Speech.SttFallbackURL != "" {
		transcribers = append(transcribers, speech.NewWhisperTranscriber(cfg.Speech.SttFallbackURL, cfg.Speech.APIKey, cfg.Speech.SttModel))
	}
	transcriber := speech.NewFallbackTranscriber(log.Default(), transcribers...)
	synthesizer := speech.NewHTTPSynthesizer(cfg.Speech.TtsBaseURL, cfg.Speech.APIKey, cfg.Speech.TtsModel, cfg.Speech.TtsVoice)

	// 7. Services
	publisherService := service.NewPublisherService(pubSub, auditTopicName)
	consumerService := service.NewConsumerService(pubSub, auditTopicName, sysLogger)

	conciergeService := service.NewConciergeService(
		retriever,
		grader,
		refiner,
		llmProvider,
		sessionStore,
		taskStore,
		ledger,
		publisherService,
		cfg.Retrieval.TopK,
		relevanceThreshold,
	)
	authService := service.NewAuthService(cfg.Auth)
	taskService := service.NewTaskService(taskStore)
	voiceService := service.NewVoiceService(transcriber, synthesizer, conciergeService)

	// 8. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		ConciergeController: controller.NewConciergeController(conciergeService, consumerService),
		TaskController:      controller.NewTaskController(taskService),
		VoiceController:     controller.NewVoiceController(voiceService),
		ConsumerService:     consumerService,
		SysLogger:           sysLogger,
	}
}
