// Package main is the textshare command-line client.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/textshare/textshare/internal/client"
	"github.com/textshare/textshare/internal/client/config"
	"github.com/textshare/textshare/internal/client/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{prompter: newStdioPrompter()}
	if err := execute(ctx, a, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		os.Exit(1)
	}
}

// execute runs one command line and releases the session store afterwards,
// whether or not the command succeeded.
func execute(ctx context.Context, a *app, args []string, stdin io.Reader, stdout io.Writer) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)

	err := root.ExecuteContext(ctx)
	if closeErr := a.close(); err == nil {
		err = closeErr
	}
	return err
}

// app is the state every command works with. The session is loaded once
// before the command runs and only changes through setSession/clearSession.
type app struct {
	prompter Prompter

	configPath string
	serverFlag string

	cfg     *config.Config
	store   *session.Store
	session *session.Session
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "textshare",
		Short:        "Share text snippets from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: $TEXTSHARE_CONFIG or the user config dir)")
	root.PersistentFlags().StringVar(&a.serverFlag, "server", "", "API base URL, overrides the config file")

	root.AddCommand(
		newConfigCmd(a),
		newSignupCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newShareCmd(a),
		newGetCmd(a),
		newListCmd(a),
		newDeleteCmd(a),
	)

	return root
}

// open reads the config, opens the session store and loads the session.
func (a *app) open() error {
	configPath, home, err := config.Paths()
	if err != nil {
		return err
	}
	if a.configPath != "" {
		configPath = a.configPath
	}
	a.configPath = configPath

	cfg, err := config.Load(configPath, config.Default(home))
	if err != nil {
		return err
	}
	if a.serverFlag != "" {
		cfg.Server = a.serverFlag
	}
	a.cfg = cfg

	if err := os.MkdirAll(filepath.Dir(cfg.SessionPath), 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := session.Open(cfg.SessionPath)
	if err != nil {
		return err
	}
	a.store = store

	sess, err := store.Load()
	switch {
	case errors.Is(err, session.ErrNoSession):
	case err != nil:
		return err
	default:
		a.session = &sess
	}
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// client returns an API client. The token is only sent to the server that
// issued it, and only while it is unexpired.
func (a *app) client() *client.Client {
	opts := []client.Option{client.WithHTTPClient(&http.Client{Timeout: a.cfg.Timeout.Duration})}
	if a.sessionForServer() && !a.session.Expired(timeNow()) {
		opts = append(opts, client.WithToken(a.session.Token))
	}
	return client.New(a.cfg.Server, opts...)
}

// sessionForServer reports whether the stored session was issued by the
// configured server.
func (a *app) sessionForServer() bool {
	return a.session != nil && sameServer(a.session.Server, a.cfg.Server)
}

func sameServer(a, b string) bool {
	return strings.TrimRight(a, "/") == strings.TrimRight(b, "/")
}

// requireSession returns the current session or explains how to get one.
func (a *app) requireSession() (*session.Session, error) {
	if a.session == nil {
		return nil, errors.New("not logged in; run `textshare login` first")
	}
	if !a.sessionForServer() {
		return nil, fmt.Errorf("not logged in to %s; run `textshare login` first", a.cfg.Server)
	}
	if a.session.Expired(timeNow()) {
		return nil, errors.New("session expired; run `textshare login` again")
	}
	return a.session, nil
}

func (a *app) setSession(sess session.Session) error {
	if err := a.store.Save(sess); err != nil {
		return err
	}
	a.session = &sess
	return nil
}

func (a *app) clearSession() error {
	if err := a.store.Clear(); err != nil {
		return err
	}
	a.session = nil
	return nil
}
