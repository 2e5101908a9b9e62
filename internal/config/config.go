package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabaseURL   string
	ReplicaURL    string
	FAQDBPath     string
	LLMProvider   string
	GeminiAPIKeys []string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	LogLevel      string
	Debug         bool
	ServiceName   string
	Environment   string
	Hostname      string
	ServerPort    string
	WorkerCount   int
}

func LoadConfig() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	llmProvider := os.Getenv("LLM_PROVIDER")
	if llmProvider == "" {
		llmProvider = "gemini"
	}

	var geminiAPIKeys []string
	for _, key := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			geminiAPIKeys = append(geminiAPIKeys, key)
		}
	}
	// Older deployments configured a single key
	if len(geminiAPIKeys) == 0 {
		if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
			geminiAPIKeys = append(geminiAPIKeys, key)
		}
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-2.0-flash-lite"
	}

	openAIModel := os.Getenv("OPENAI_MODEL")
	if openAIModel == "" {
		openAIModel = "gpt-4o-mini"
	}

	faqDBPath := os.Getenv("FAQ_DB_PATH")
	if faqDBPath == "" {
		faqDBPath = "extracted_data.db"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "wa-responder"
	}

	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "wa-responder"
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = os.Getenv("PORT")
	}
	if serverPort == "" {
		serverPort = "8080"
	}

	workerCount := 10 // default value
	if wc := os.Getenv("WORKER_COUNT"); wc != "" {
		if parsed, err := strconv.Atoi(wc); err == nil {
			workerCount = parsed
		}
	}

	return &Config{
		DatabaseURL:   databaseURL,
		ReplicaURL:    os.Getenv("REPLICA_URL"),
		FAQDBPath:     faqDBPath,
		LLMProvider:   llmProvider,
		GeminiAPIKeys: geminiAPIKeys,
		GeminiModel:   geminiModel,
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   openAIModel,
		LogLevel:      logLevel,
		Debug:         os.Getenv("DEBUG") == "true",
		ServiceName:   serviceName,
		Environment:   environment,
		Hostname:      hostname,
		ServerPort:    serverPort,
		WorkerCount:   workerCount,
	}, nil
}
