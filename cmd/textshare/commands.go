package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/textshare/textshare/internal/client"
	"github.com/textshare/textshare/internal/client/config"
	"github.com/textshare/textshare/internal/client/session"
	"github.com/textshare/textshare/internal/handler/dto"
)

// previewLength is how many characters of each paste `list` shows.
const previewLength = 100

var timeNow = time.Now

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(a.configPath, a.cfg); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", a.configPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Write(cmd.OutOrStdout(), a.cfg)
		},
	})

	return cmd
}

func newSignupCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := a.askEmail(email)
			if err != nil {
				return err
			}
			password, err := a.prompter.ReadPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := a.prompter.ReadPassword("Confirm password: ")
			if err != nil {
				return err
			}
			// The server checks this too; failing here saves a round trip.
			if password != confirm {
				return errors.New("passwords do not match")
			}

			resp, err := a.client().Signup(cmd.Context(), addr, password, confirm)
			if err != nil {
				return err
			}
			if err := a.startSession(resp); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s\n", resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := a.askEmail(email)
			if err != nil {
				return err
			}
			password, err := a.prompter.ReadPassword("Password: ")
			if err != nil {
				return err
			}

			resp, err := a.client().Login(cmd.Context(), addr, password)
			if err != nil {
				return err
			}
			if err := a.startSession(resp); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the local session",
		Long:  "Forget the local session. Tokens are not revoked on the server; they stay valid until they expire.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.clearSession(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.session == nil {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}

			fmt.Fprintf(out, "%s (id %d) on %s\n", a.session.User.Email, a.session.User.ID, a.session.Server)
			switch {
			case a.session.ExpiresAt.IsZero():
			case a.session.Expired(timeNow()):
				fmt.Fprintln(out, "Session expired; log in again")
			default:
				fmt.Fprintf(out, "Session valid until %s\n", a.session.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

func newShareCmd(a *app) *cobra.Command {
	var anonymous bool

	cmd := &cobra.Command{
		Use:   "share [file|-]",
		Short: "Upload text and print its share link",
		Long:  "Upload a file, or standard input when the argument is omitted or \"-\". Logged-in uploads are listed under your account unless --anonymous is set.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readContent(cmd, args)
			if err != nil {
				return err
			}

			if !anonymous && a.sessionForServer() && a.session.Expired(timeNow()) {
				return errors.New("session expired; run `textshare login` again or share with --anonymous")
			}

			c := a.client()
			if anonymous {
				c = client.New(a.cfg.Server, client.WithHTTPClient(&http.Client{Timeout: a.cfg.Timeout.Duration}))
			}

			id, err := c.CreatePaste(cmd.Context(), content)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), client.ShareURL(a.cfg.ShareOrigin, id))
			return nil
		},
	}

	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "upload without attaching the paste to your account")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <uuid>",
		Short: "Print a paste",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paste, err := a.client().GetPaste(cmd.Context(), pasteID(args[0]))
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), paste.Content)
			return err
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your pastes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}

			pastes, err := a.client().ListPastes(cmd.Context())
			if err != nil {
				return a.explainAuthError(err)
			}

			out := cmd.OutOrStdout()
			if len(pastes) == 0 {
				fmt.Fprintln(out, "No pastes yet")
				return nil
			}
			for _, p := range pastes {
				printPaste(out, p)
			}
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <uuid>",
		Short: "Delete one of your pastes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}

			if err := a.client().DeletePaste(cmd.Context(), pasteID(args[0])); err != nil {
				return a.explainAuthError(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Paste deleted")
			return nil
		},
	}
}

func (a *app) askEmail(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	email, err := a.prompter.ReadInput("Email: ")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(email), nil
}

func (a *app) startSession(resp *dto.AuthResponse) error {
	user := session.User{ID: resp.User.ID, Email: resp.User.Email}
	return a.setSession(session.New(resp.Token, user, a.cfg.Server))
}

// explainAuthError turns a 401 into a hint and drops the stale session.
func (a *app) explainAuthError(err error) error {
	if !client.IsStatus(err, http.StatusUnauthorized) || !a.sessionForServer() {
		return err
	}
	if clearErr := a.clearSession(); clearErr != nil {
		return errors.Join(err, clearErr)
	}
	return errors.New("the server rejected your session; run `textshare login` again")
}

func readContent(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	if !utf8.Valid(data) {
		return "", errors.New("content is not valid UTF-8 text")
	}
	return string(data), nil
}

// pasteID accepts a bare UUID or a share link ending in /paste/<uuid>.
func pasteID(arg string) string {
	arg = strings.TrimRight(arg, "/")
	if i := strings.LastIndex(arg, "/paste/"); i >= 0 {
		return arg[i+len("/paste/"):]
	}
	return arg
}

func printPaste(w io.Writer, p dto.PasteResponse) {
	fmt.Fprintf(w, "%s  %s\n    %s\n", p.UUID, p.CreatedAt.Local().Format("2006-01-02 15:04"), preview(p.Content))
}

// preview flattens content onto one line and cuts it at previewLength
// characters.
func preview(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(flat) <= previewLength {
		return flat
	}
	runes := []rune(flat)
	return string(runes[:previewLength]) + "..."
}
