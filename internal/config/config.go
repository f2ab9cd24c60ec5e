package config

import (
	"log"
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	QuestionsURL string
	FetchTimeout time.Duration

	// optional client credentials for the questions backend
	TokenURL     string
	ClientID     string
	ClientSecret string

	RevealDelay           time.Duration
	AdvanceDelay          time.Duration // 0 = stay on the answered question
	ExamTimeLimit         time.Duration // 0 = untimed
	ShuffleAnswersLocally bool

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:              envOr("HTTP_ADDR", "127.0.0.1:8090"),
		QuestionsURL:          envOr("QUESTIONS_URL", "http://localhost:8080"),
		FetchTimeout:          envDuration("FETCH_TIMEOUT", 10*time.Second),
		TokenURL:              os.Getenv("QUESTIONS_TOKEN_URL"),
		ClientID:              os.Getenv("QUESTIONS_CLIENT_ID"),
		ClientSecret:          os.Getenv("QUESTIONS_CLIENT_SECRET"),
		RevealDelay:           envDuration("REVEAL_DELAY", 1500*time.Millisecond),
		AdvanceDelay:          envDuration("ADVANCE_DELAY", 300*time.Millisecond),
		ExamTimeLimit:         envDuration("EXAM_TIME_LIMIT", 0),
		ShuffleAnswersLocally: envBool("SHUFFLE_ANSWERS_LOCALLY", false),
		CORSOrigins:           csvOr("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:8090"),
	}
}
func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("config: ignoring %s=%q: want a duration like 1500ms", k, v)
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
