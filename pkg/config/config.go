package config

import "os"

// Config holds the immutable runtime configuration for the backend.
// It is loaded once in main and passed into every adapter constructor.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// Object store (MinIO / S3-compatible).
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	Bucket         string

	// Graph store (Neo4j).
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// Embeddings. Provider is "ollama" or "gemini".
	EmbedProvider    string
	EmbedCacheSize   int
	OllamaEmbedURL   string
	OllamaEmbedModel string
	GeminiAPIKey     string
	GeminiEmbedModel string

	// External extraction scripts.
	PythonBin string
	ScriptDir string

	// TmpDir is the parent directory for per-document scratch space.
	TmpDir string
}

// FromEnv builds a Config from environment variables, falling back to
// defaults suitable for a local docker-compose setup.
func FromEnv() Config {
	return Config{
		Port:             getenv("PORT", "8080"),
		MinioEndpoint:    getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:   getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:   getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:      os.Getenv("MINIO_USE_SSL") == "true",
		Bucket:           getenv("MINIO_BUCKET", "documents"),
		Neo4jURI:         getenv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:        getenv("NEO4J_USER", "neo4j"),
		Neo4jPassword:    getenv("NEO4J_PASSWORD", "password"),
		EmbedProvider:    getenv("EMBED_PROVIDER", "ollama"),
		EmbedCacheSize:   512,
		OllamaEmbedURL:   getenv("OLLAMA_EMBED_URL", "http://localhost:11434/api/embed"),
		OllamaEmbedModel: getenv("OLLAMA_EMBED_MODEL", "nomic-embed-text"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiEmbedModel: getenv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		PythonBin:        getenv("PYTHON_BIN", "python3"),
		ScriptDir:        getenv("EXTRACT_SCRIPT_DIR", "./python"),
		TmpDir:           getenv("TMP_DIR", os.TempDir()),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
