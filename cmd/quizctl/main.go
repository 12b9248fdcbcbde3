package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/saulo-duarte/chronos-quiz/internal/container"
	"github.com/saulo-duarte/chronos-quiz/internal/router"
	"github.com/saulo-duarte/chronos-quiz/internal/session"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := config.Load()

	app := &cli.App{
		Name:  "quizctl",
		Usage: "generate quizzes from documents and run them",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "quiz", Value: settings.QuizPath, Usage: "path of the quiz document"},
			&cli.StringFlag{Name: "log-level", Value: settings.LogLevel},
			&cli.StringFlag{Name: "log-format", Value: settings.LogFormat, Usage: "text or json"},
		},
		Before: func(c *cli.Context) error {
			settings.QuizPath = c.String("quiz")
			config.InitLogger(c.String("log-level"), c.String("log-format"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "generate a quiz from the documents in a directory",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "source-dir", Value: settings.SourceDir, Usage: "directory with .txt, .md and .pdf sources"},
					&cli.IntFlag{Name: "count", Value: 10, Usage: "number of questions"},
				},
				Action: func(c *cli.Context) error {
					return generate(c.Context, settings, c.String("source-dir"), c.Int("count"))
				},
			},
			{
				Name:  "serve",
				Usage: "serve the quiz over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: settings.HTTPAddr},
				},
				Action: func(c *cli.Context) error {
					settings.HTTPAddr = c.String("addr")
					return serve(c.Context, settings)
				},
			},
			{
				Name:  "play",
				Usage: "take the quiz in the terminal",
				Action: func(c *cli.Context) error {
					return play(c.Context, settings)
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		config.Logger().WithError(err).Fatal("quizctl failed")
	}
}

func generate(ctx context.Context, s config.Settings, dir string, count int) error {
	pipeline, err := container.NewGenerator(ctx, s)
	if err != nil {
		return err
	}

	resp, err := pipeline.GenerateAndSave(ctx, dir, count)
	if err != nil {
		return err
	}
	fmt.Printf("Quiz with %d questions saved to %s\n", resp.Count, resp.Path)
	return nil
}

func serve(ctx context.Context, s config.Settings) error {
	log := config.Logger()

	c, err := container.Build(ctx, s)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: s.HTTPAddr,
		Handler: router.New(router.RouterConfig{
			SessionHandler: c.SessionContainer.Handler,
			AIQuizHandler:  c.AIQuizContainer.Handler,
			QuizHandler:    c.QuizContainer.Handler,
			CORSOrigins:    s.CORSOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.HTTPAddr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func play(ctx context.Context, s config.Settings) error {
	c, err := container.Build(ctx, s)
	if err != nil {
		return err
	}

	sess := session.New(uuid.New(), c.Deck, c.Evaluator, session.WithFinishHook(session.RecordAttempts(c.QuizContainer.Service)))
	return session.NewPlayer(sess, os.Stdin, os.Stdout).Run(ctx)
}
