package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/textshare/textshare/internal/auth"
	"github.com/textshare/textshare/internal/config"
	"github.com/textshare/textshare/internal/metrics"
	"github.com/textshare/textshare/internal/repository"
	"github.com/textshare/textshare/internal/repository/sqlite"
	"github.com/textshare/textshare/internal/service"
)

type output struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "postgres://... or sqlite://path")
		jwtSecret   = flag.String("jwt-secret", os.Getenv("JWT_SECRET"), "HMAC secret the API server uses")
		tokenTTL    = flag.Duration("token-ttl", 7*24*time.Hour, "lifetime of the printed token")
		email       = flag.String("email", "", "account email")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" || *jwtSecret == "" || *email == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL, JWT_SECRET and -email are required")
		os.Exit(1)
	}

	// Read from stdin so the password stays out of argv and shell history.
	password, err := readPassword(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, closeStore, err := openStore(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}
	defer closeStore()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	svc := service.NewAuthService(
		store,
		auth.NewHasher(auth.DefaultParams),
		auth.NewIssuer(*jwtSecret, *tokenTTL),
		metrics.NewNoop(),
		logger,
	)

	session, err := svc.Signup(ctx, service.SignupInput{Email: *email, Password: password})
	if errors.Is(err, service.ErrEmailTaken) {
		session, err = svc.Login(ctx, *email, password)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "bootstrap user:", err)
		os.Exit(1)
	}

	out := output{
		UserID: session.User.ID,
		Email:  session.User.Email,
		Token:  session.Token,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.Token)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password must be given on stdin")
	}
	return password, nil
}

func openStore(ctx context.Context, databaseURL string) (service.UserStore, func(), error) {
	cfg := &config.Config{DatabaseURL: databaseURL}
	driver, dsn, err := cfg.Database()
	if err != nil {
		return nil, nil, err
	}

	if driver == config.DriverSQLite {
		st, err := sqlite.New(ctx, dsn, 5*time.Second)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	}

	repo, err := repository.New(ctx, dsn, 5*time.Second)
	if err != nil {
		return nil, nil, err
	}
	if _, err := repo.Migrate(ctx); err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return repo, repo.Close, nil
}
