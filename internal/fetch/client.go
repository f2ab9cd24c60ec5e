// Package fetch talks to the question-delivery backend.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/mind-engage/radioquiz/internal/quiz"
)

type Config struct {
	BaseURL string
	Timeout time.Duration

	// Optional client-credentials auth in front of the backend.
	TokenURL     string
	ClientID     string
	ClientSecret string
}

// Request selects a question set. Theme is optional.
type Request struct {
	Category string `json:"category"`
	Theme    string `json:"theme,omitempty"`
	Exam     bool   `json:"exam"`
	Shuffle  bool   `json:"shuffle"` // options shuffled by the backend
}

type Response struct {
	Questions    []quiz.Question `json:"questions"`
	Total        int             `json:"total"`
	PassScore    int             `json:"pass_score"` // null outside exams
	CategoryName string          `json:"category_name"`
	ThemeName    string          `json:"theme_name"`
	ExamMode     bool            `json:"exam_mode"`
}

// Fetcher is what the dispatcher needs from a backend.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}

type Client struct {
	base *url.URL
	http *http.Client
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("questions base url required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	h := &http.Client{}
	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		h = cc.Client(context.Background())
	}
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}
	return &Client{base: u, http: h}, nil
}

// URL builds GET /api/questions/{category}?shuffle=&theme=&exam=.
func (c *Client) URL(req Request) string {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/questions/" + url.PathEscape(req.Category)
	q := url.Values{}
	q.Set("shuffle", strconv.FormatBool(req.Shuffle))
	if req.Theme != "" {
		q.Set("theme", req.Theme)
	}
	q.Set("exam", strconv.FormatBool(req.Exam))
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) Fetch(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Category) == "" {
		return Response{}, errors.New("category required")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(req), nil)
	if err != nil {
		return Response{}, err
	}
	httpReq.Header.Set("Accept", "application/json")
	res, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return Response{}, fmt.Errorf("fetch questions: %s", res.Status)
	}

	var out struct {
		Response
		PassScore *int `json:"pass_score"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("decode questions: %w", err)
	}
	resp := out.Response
	if out.PassScore != nil {
		resp.PassScore = *out.PassScore
	}
	if resp.Total != len(resp.Questions) {
		log.Printf("fetch %s: total=%d but %d questions", req.Category, resp.Total, len(resp.Questions))
	}
	return resp, nil
}
