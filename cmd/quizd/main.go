package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	api "github.com/mind-engage/radioquiz/internal/api/http"
	"github.com/mind-engage/radioquiz/internal/app"
	"github.com/mind-engage/radioquiz/internal/config"
	"github.com/mind-engage/radioquiz/internal/fetch"
)

func main() {
	cfg := config.FromEnv()

	client, err := fetch.New(fetch.Config{
		BaseURL:      cfg.QuestionsURL,
		Timeout:      cfg.FetchTimeout,
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	})
	if err != nil {
		log.Fatalf("questions client: %v", err)
	}
	quizApp := app.New(client, app.Config{
		RevealDelay:           cfg.RevealDelay,
		AdvanceDelay:          cfg.AdvanceDelay,
		TimeLimit:             cfg.ExamTimeLimit,
		ShuffleAnswersLocally: cfg.ShuffleAnswersLocally,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(quizApp, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return quizApp.Run(ctx) })
	g.Go(func() error {
		log.Printf("listening on %s (questions=%s)", cfg.HTTPAddr, cfg.QuestionsURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("quizd: %v", err)
	}
	log.Printf("bye")
}
