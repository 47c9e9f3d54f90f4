package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/stemsi/exstem-summary/internal/config"
	"github.com/stemsi/exstem-summary/internal/database"
	"github.com/stemsi/exstem-summary/internal/logger"
	"github.com/stemsi/exstem-summary/internal/repository"
	"golang.org/x/term"
)

var (
	scope string
	clearToken bool
)

var rootCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Store or clear the upstream access token in Redis",
	Long: `Prompts for an access token (hidden when stdin is a terminal, read from
stdin when piped) and stores it under access_token, optionally scoped.
With --clear the stored token is removed instead.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&scope, "scope", "", "key scope (default $TOKEN_SCOPE)")
	rootCmd.Flags().BoolVar(&clearToken, "clear", false, "remove the stored token")
}

// tokenWriter is the part of the token repository this command needs.
type tokenWriter interface {
	Set(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// normalizeToken trims whitespace and an optional "Bearer " prefix.
func normalizeToken(raw string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
}

// apply stores token, or removes the stored one when remove is set.
func apply(ctx context.Context, w tokenWriter, token string, remove bool) error {
	if remove {
		return w.Delete(ctx)
	}
	if token == "" {
		return errors.New("token is required")
	}
	return w.Set(ctx, token)
}

func readToken(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Print("Access token: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // Newline after hidden input
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return string(raw), nil
	}
	// Piped input, e.g. `echo $TOKEN | set-token`.
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read token: %w", err)
	}
	return line, nil
}

func run(cmd *cobra.Command, _ []string) error {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()
	if !cmd.Flags().Changed("scope") {
		scope = cfg.TokenScope
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		return err
	}
	if rdb == nil {
		return errors.New("REDIS_URL must be set to store an access token")
	}
	defer rdb.Close()

	key := config.CacheKey.ScopedAccessTokenKey(scope)
	repo := repository.NewScopedTokenRepository(rdb, scope)

	// ─── Logic ─────────────────────────────────────────────────────────
	var token string
	if !clearToken {
		fmt.Println("=== Store Upstream Access Token ===")
		raw, err := readToken(os.Stdin)
		if err != nil {
			return err
		}
		token = normalizeToken(raw)
	}

	if err := apply(ctx, repo, token, clearToken); err != nil {
		return err
	}

	if clearToken {
		fmt.Printf("Token under %q removed\n", key)
		return nil
	}
	fmt.Printf("\nSuccess! Token stored under %q\n", key)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
