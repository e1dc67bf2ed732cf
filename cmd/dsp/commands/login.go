package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/dsp-client/internal/constants"
	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		username    string
		password    string
		byEmail     bool
		byIRI       bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a DSP API",
		Long: `Authenticate with a DSP API endpoint.

The endpoint and the session token are stored in the configuration file, so
later commands run as the logged in user until 'dsp logout'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if apiEndpoint == "" {
				return constants.ErrNoAPIConfigured
			}

			reader := bufio.NewReader(cmd.InOrStdin())

			if username == "" {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Username: ")
				line, _ := reader.ReadString('\n')
				username = strings.TrimSpace(line)
			}

			if username == "" {
				return ErrUsernameRequired
			}

			if password == "" {
				var err error

				password, err = readPassword(cmd, reader)
				if err != nil {
					return err
				}
			}

			identifier := dsp.LoginIdentifier{Kind: dsp.LoginByUsername}

			switch {
			case byEmail:
				identifier.Kind = dsp.LoginByEmail
			case byIRI:
				identifier.Kind = dsp.LoginByIRI
			}

			// Save the endpoint first so the persister writes the token next to it.
			config := loadConfig()
			config.API = apiEndpoint
			config.Username = username

			if err := saveConfigStruct(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			_, err = client.Auth().LoginWith(cmd.Context(), identifier, username, password)
			if err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s\n", apiEndpoint, username)

			return err
		},
	}

	cmd.Flags().StringVar(&apiEndpoint, "api", "", "API endpoint URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username, email or user IRI")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.Flags().BoolVar(&byEmail, "email", false, "the username is an email address")
	cmd.Flags().BoolVar(&byIRI, "iri", false, "the username is a user IRI")
	cmd.MarkFlagsMutuallyExclusive("email", "iri")

	return cmd
}

// readPassword reads without echo from a terminal, else a line from stdin.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		return string(bytePassword), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the DSP API",
		Long:  "Invalidate the session token on the server and remove it from the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if viper.GetString("token") == "" {
				return constants.ErrNotAuthenticated
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			_, err = client.Auth().Logout(cmd.Context())
			if err != nil {
				// The local token is dropped even when the server rejects it.
				client.SetToken("")
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: server logout failed: %v\n", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return err
		},
	}
}
