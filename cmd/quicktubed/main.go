package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"quicktube/internal/chunker"
	"quicktube/internal/config"
	"quicktube/internal/embedding"
	openaiembed "quicktube/internal/embedding/openai"
	"quicktube/internal/embedding/tfidf"
	openaichat "quicktube/internal/llm/openai"
	"quicktube/internal/server"
	"quicktube/internal/service"
	"quicktube/internal/session"
	"quicktube/internal/transcript"
	"quicktube/internal/transcript/youtube"
	"quicktube/internal/vectorstore"
	"quicktube/internal/vectorstore/memory"
	"quicktube/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, addr string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/quicktube/config.yaml if not provided)")
	flag.StringVar(&addr, "addr", "", "Listen address (overrides config)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config check failed: %v", err)
	}

	svc, err := assemble(cfg)
	if err != nil {
		log.Fatalf("assembly failed: %v", err)
	}

	if addr == "" {
		addr = cfg.Server.Addr
	}
	e := server.New(svc, cfg.Server.AllowOrigins)
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// assemble wires the pipeline collaborators selected by config into the
// service.
func assemble(cfg *config.AppConfig) (*service.Service, error) {
	fetcher := transcript.WithFallback{
		Client: youtube.NewClient(youtube.Config{
			BaseURL: cfg.Transcript.BaseURL,
			Timeout: time.Duration(cfg.Transcript.TimeoutSecs) * time.Second,
		}),
		Primary:  cfg.Transcript.Language,
		Fallback: cfg.Transcript.FallbackLanguage,
	}

	var newEmbedder func() embedding.Embedder
	switch cfg.Embedder.Type {
	case "tfidf":
		newEmbedder = func() embedding.Embedder { return tfidf.NewEmbedder() }
	case "openai", "":
		client, err := openaiembed.NewClient(openaiembed.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKey:    os.Getenv(cfg.Embedder.OpenAI.APIKeyEnv),
			Model:     cfg.Embedder.OpenAI.Model,
			BatchSize: cfg.Embedder.OpenAI.BatchSize,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		newEmbedder = func() embedding.Embedder { return client }
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var newStorage func(videoID string) vectorstore.Storage
	switch cfg.VectorStore.Type {
	case "memory", "":
		newStorage = func(string) vectorstore.Storage { return memory.NewStorage() }
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		qcfg := *cfg.VectorStore.Qdrant
		newStorage = func(videoID string) vectorstore.Storage {
			return qdrant.NewStorage(qdrant.Config{
				URL:        qcfg.URL,
				APIKey:     qcfg.APIKey,
				Collection: qcfg.CollectionPrefix + "_" + videoID,
				Timeout:    time.Duration(qcfg.TimeoutSecs) * time.Second,
			})
		}
	default:
		log.Fatalf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	model, err := openaichat.NewClient(openaichat.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      os.Getenv(cfg.LLM.APIKeyEnv),
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	builder := service.NewBuilder(service.PipelineConfig{
		Fetcher:     fetcher,
		Splitter:    chunker.New(cfg.Chunker.MaxChars, cfg.Chunker.OverlapChars),
		NewEmbedder: newEmbedder,
		NewStorage:  newStorage,
		Model:       model,
		TopK:        cfg.Retrieval.TopK,
	})
	return service.New(session.NewStore(cfg.Sessions.MaxEntries, builder)), nil
}
