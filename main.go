package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/duynguyendang/doc2kg/pkg/config"
	"github.com/duynguyendang/doc2kg/pkg/embed"
	"github.com/duynguyendang/doc2kg/pkg/extract"
	"github.com/duynguyendang/doc2kg/pkg/graph"
	"github.com/duynguyendang/doc2kg/pkg/pipeline"
	"github.com/duynguyendang/doc2kg/pkg/server"
	"github.com/duynguyendang/doc2kg/pkg/storage"
)

func main() {
	envFile := flag.String("env", "", "path to an optional .env file")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("Failed to load %s: %v", *envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	objects, err := storage.NewMinioStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create object store: %v", err)
	}

	graphStore, err := graph.NewNeo4jStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to graph store: %v", err)
	}
	defer graphStore.Close(ctx)

	embedder, err := newEmbedder(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create embedding service: %v", err)
	}

	extractor := extract.NewSubprocess(cfg)

	p := pipeline.New(objects, graphStore, embedder, extractor, cfg.TmpDir)
	srv := server.NewServer(p, objects, graphStore)

	addr := ":" + cfg.Port
	fmt.Printf("doc2kg backend listening on %s\n", addr)
	if err := srv.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func newEmbedder(ctx context.Context, cfg config.Config) (embed.Service, error) {
	var svc embed.Service
	switch cfg.EmbedProvider {
	case "gemini":
		gemini, err := embed.NewGeminiService(ctx, cfg)
		if err != nil {
			return nil, err
		}
		svc = gemini
	default:
		svc = embed.NewOllamaService(cfg)
	}
	return embed.NewCached(svc, cfg.EmbedCacheSize)
}
