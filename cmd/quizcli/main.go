// quizcli is a terminal front end over the same dispatcher quizd serves.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/mind-engage/radioquiz/internal/app"
	"github.com/mind-engage/radioquiz/internal/config"
	"github.com/mind-engage/radioquiz/internal/fetch"
)

func main() {
	cfg := config.FromEnv()
	category := flag.String("category", "", "question category id (required)")
	theme := flag.String("theme", "", "theme within the category")
	exam := flag.Bool("exam", false, "exam mode: no feedback until finished")
	shuffleAnswers := flag.Bool("shuffle-answers", false, "shuffle answer options")
	shuffleQuestions := flag.Bool("shuffle-questions", false, "shuffle question order")
	baseURL := flag.String("url", cfg.QuestionsURL, "questions backend base url")
	flag.Parse()
	if *category == "" {
		flag.Usage()
		os.Exit(2)
	}

	client, err := fetch.New(fetch.Config{
		BaseURL:      *baseURL,
		Timeout:      cfg.FetchTimeout,
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	})
	if err != nil {
		log.Fatalf("questions client: %v", err)
	}
	a := app.New(client, app.Config{
		RevealDelay:           cfg.RevealDelay,
		AdvanceDelay:          cfg.AdvanceDelay,
		TimeLimit:             cfg.ExamTimeLimit,
		ShuffleAnswersLocally: cfg.ShuffleAnswersLocally,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() { _ = a.Run(ctx) }()

	r := renderer{
		out:   os.Stdout,
		color: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		now:   time.Now,
	}
	req := app.LoadRequest{
		Category:         *category,
		Theme:            *theme,
		Exam:             *exam,
		ShuffleAnswers:   *shuffleAnswers,
		ShuffleQuestions: *shuffleQuestions,
	}
	if _, err := a.Dispatch(ctx, app.LoadEvent{Request: req}); err != nil {
		log.Fatalf("load: %v", err)
	}
	snap, err := waitLoaded(ctx, a)
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	r.snapshot(snap)
	if !snap.Loaded() {
		os.Exit(1)
	}
	r.help()

	if err := loop(ctx, a, r, bufio.NewScanner(os.Stdin)); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("quizcli: %v", err)
	}
}

func waitLoaded(ctx context.Context, a *app.App) (app.Snapshot, error) {
	t := time.NewTicker(50 * time.Millisecond)
	defer t.Stop()
	for {
		snap, err := a.Snapshot(ctx)
		if err != nil || !snap.Loading {
			return snap, err
		}
		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case <-t.C:
		}
	}
}

func loop(ctx context.Context, a *app.App, r renderer, in *bufio.Scanner) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for in.Scan() {
			lines <- in.Text()
		}
	}()

	// auto-advance and the exam clock change the session between commands
	poll := time.NewTicker(200 * time.Millisecond)
	defer poll.Stop()
	finished := false
	index := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-poll.C:
			snap, err := a.Snapshot(ctx)
			if err != nil {
				return err
			}
			if (snap.Result != nil && !finished) || (snap.Loaded() && snap.Index != index) {
				finished = snap.Result != nil
				index = snap.Index
				r.snapshot(snap)
			}
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			ev, quit, err := parseCommand(line)
			if quit {
				return nil
			}
			if err != nil {
				fmt.Fprintln(r.out, r.colorize(err.Error(), colorRed))
				r.help()
				continue
			}
			if ev == nil {
				continue
			}
			snap, err := a.Dispatch(ctx, ev)
			if err != nil {
				fmt.Fprintln(r.out, r.colorize(err.Error(), colorRed))
				continue
			}
			finished = snap.Result != nil
			index = snap.Index
			r.snapshot(snap)
		}
	}
}

// parseCommand turns one input line into an event. An empty line is a no-op.
func parseCommand(line string) (ev app.Event, quit bool, err error) {
	raw := strings.TrimRight(line, "\r\n")
	if raw == " " {
		return app.KeyEvent{Key: " "}, false, nil
	}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, false, nil
	}
	switch fields[0] {
	case "q", "quit":
		return nil, true, nil
	case "1", "2", "3", "4":
		return app.KeyEvent{Key: fields[0]}, false, nil
	case "n", "next", "l":
		return app.KeyEvent{Key: "ArrowRight"}, false, nil
	case "p", "prev", "h":
		return app.KeyEvent{Key: "ArrowLeft"}, false, nil
	case "r", "reveal":
		return app.KeyEvent{Key: " "}, false, nil
	case "s", "shuffle":
		return app.ShuffleEvent{}, false, nil
	case "f", "finish":
		return app.FinishEvent{}, false, nil
	case "R", "restart":
		return app.RestartEvent{}, false, nil
	case "v", "review":
		return app.ReviewEvent{}, false, nil
	case "g", "goto":
		if len(fields) != 2 {
			return nil, false, errors.New("usage: g N")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return nil, false, fmt.Errorf("bad question position %q", fields[1])
		}
		return app.GoToEvent{Index: n - 1}, false, nil
	}
	return nil, false, fmt.Errorf("unknown command %q", fields[0])
}
