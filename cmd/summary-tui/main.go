package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stemsi/exstem-summary/internal/config"
	"github.com/stemsi/exstem-summary/internal/database"
	"github.com/stemsi/exstem-summary/internal/logger"
	"github.com/stemsi/exstem-summary/internal/model"
	"github.com/stemsi/exstem-summary/internal/repository"
	"github.com/stemsi/exstem-summary/internal/service"
	"github.com/stemsi/exstem-summary/internal/tui"
	"github.com/stemsi/exstem-summary/internal/upstream"
)

var (
	baseURL string
	token   string
	year    string
	sem     string
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "summary-tui",
	Short: "Browse the coaching summary in the terminal",
	Long: `Loads courses and student-course records from the administration API
and shows pass/fail/in-progress counts per course, filtered by year and semester.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "administration API base URL (default $UPSTREAM_BASE_URL)")
	rootCmd.Flags().StringVar(&token, "token", "", "bearer token (default: stored access_token, then $UPSTREAM_ACCESS_TOKEN)")
	rootCmd.Flags().StringVar(&year, "year", model.FilterAll, "initial year filter: All, FIRST, SECOND, THIRD, FOURTH")
	rootCmd.Flags().StringVar(&sem, "sem", model.FilterAll, "initial semester filter: All, 1, 2")
	rootCmd.Flags().StringVar(&logFile, "log-file", "summary-tui.log", "where to write logs while the screen is active")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if baseURL != "" {
		cfg.UpstreamBaseURL = strings.TrimRight(baseURL, "/")
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	log := logger.SetupWithWriter(cfg.LogLevel, "json", f)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		return err
	}
	var tokenStore service.TokenStore
	if rdb != nil {
		defer rdb.Close()
		tokenStore = repository.NewScopedTokenRepository(rdb, cfg.TokenScope)
	}

	// An explicit --token acts like a caller-supplied token on the server.
	ctx = service.WithRequestToken(ctx, token)

	tokens := service.NewTokenService(tokenStore, cfg.UpstreamAccessToken, log)
	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, tokens, log)
	loader := service.NewLoader(client, log)

	m, err := tui.New(ctx, loader, model.YearFilter(year), model.SemFilter(sem))
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
