package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Brasil-Rental-Karts/brk-cli/internal/api"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/config"
)

// RunInteractiveLogin prompts for credentials, calls the login API, and
// persists the token. An empty apiURL targets api.DefaultBaseURL.
func RunInteractiveLogin(in io.Reader, out io.Writer, apiURL string) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}

	fmt.Fprint(out, "password: ")
	password, _ := reader.ReadString('\n')
	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		return fmt.Errorf("password is required")
	}

	apiURL = strings.TrimSpace(apiURL)
	endpoint := apiURL
	if endpoint == "" {
		endpoint = api.DefaultBaseURL
	}
	client := api.NewClient(endpoint, "")
	resp, err := client.Login(email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("login failed: empty access token")
	}

	cfg := &config.Config{APIURL: apiURL, APIKey: resp.AccessToken, Email: email}
	if prev, err := config.Load(); err == nil {
		cfg.LogFile = prev.LogFile
		cfg.Debug = prev.Debug
		if cfg.APIURL == "" {
			cfg.APIURL = prev.APIURL
		}
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	name := resp.Name
	if name == "" {
		name = email
	}
	fmt.Fprintf(out, "logged in as %s\n", name)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// LoginCmd returns the `brk login` command.
func LoginCmd() *cobra.Command {
	var apiURL string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the BRK API",
		RunE: func(c *cobra.Command, _ []string) error {
			return RunInteractiveLogin(c.InOrStdin(), c.OutOrStdout(), apiURL)
		},
	}
	cmd.Flags().StringVar(&apiURL, "api-url", "", "API base URL (default "+api.DefaultBaseURL+")")
	return cmd
}

func loadClient() (*api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("not logged in: %w", err)
	}
	return api.NewClient(cfg.Endpoint(api.DefaultBaseURL), cfg.APIKey), nil
}
