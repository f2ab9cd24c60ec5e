package config

import (
	"reflect"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "QUESTIONS_URL", "FETCH_TIMEOUT", "REVEAL_DELAY", "ADVANCE_DELAY", "EXAM_TIME_LIMIT", "CORS_ORIGINS", "SHUFFLE_ANSWERS_LOCALLY", "QUESTIONS_TOKEN_URL"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.HTTPAddr != "127.0.0.1:8090" || c.QuestionsURL != "http://localhost:8080" {
		t.Fatalf("addr/url defaults: %+v", c)
	}
	if c.FetchTimeout != 10*time.Second || c.RevealDelay != 1500*time.Millisecond || c.AdvanceDelay != 300*time.Millisecond || c.ExamTimeLimit != 0 {
		t.Fatalf("duration defaults: %+v", c)
	}
	if c.ShuffleAnswersLocally || c.TokenURL != "" || len(c.CORSOrigins) == 0 {
		t.Fatalf("misc defaults: %+v", c)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("REVEAL_DELAY", "0s")
	t.Setenv("ADVANCE_DELAY", "0")
	t.Setenv("EXAM_TIME_LIMIT", "45m")
	t.Setenv("SHUFFLE_ANSWERS_LOCALLY", "yes")
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("QUESTIONS_TOKEN_URL", "http://auth.test/token")

	c := FromEnv()
	if c.HTTPAddr != ":9000" || c.RevealDelay != 0 || c.AdvanceDelay != 0 || c.ExamTimeLimit != 45*time.Minute {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if !c.ShuffleAnswersLocally || c.TokenURL != "http://auth.test/token" {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if want := []string{"http://a.test", "http://b.test"}; !reflect.DeepEqual(c.CORSOrigins, want) {
		t.Fatalf("cors = %v", c.CORSOrigins)
	}
}

func TestEnvDuration_BadValueFallsBack(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "soon")
	if d := envDuration("FETCH_TIMEOUT", time.Second); d != time.Second {
		t.Fatalf("got %v", d)
	}
	t.Setenv("FETCH_TIMEOUT", "-5s")
	if d := envDuration("FETCH_TIMEOUT", time.Second); d != time.Second {
		t.Fatalf("negative accepted: %v", d)
	}
}
