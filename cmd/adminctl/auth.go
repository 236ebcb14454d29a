package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the admin API and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := loginEmail
		password := loginPassword
		var err error
		if email == "" {
			if email, err = promptLine("Email: "); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = promptLine("Password: "); err != nil {
				return err
			}
		}
		if err = auth.Login(cmd.Context(), email, password); err != nil {
			return errors.Errorf("login failed: %s", auth.Err())
		}
		if user := auth.User(); user != nil && user.Name != "" {
			fmt.Printf("Logged in as %s\n", user.Name)
		} else {
			fmt.Println("Logged in")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := auth.Token()
		if token == "" {
			fmt.Println("Not logged in; run `adminctl login`")
			return nil
		}
		if user := auth.User(); user != nil {
			fmt.Printf("User:  %s <%s>\n", user.Name, user.Email)
			if user.Role != "" {
				fmt.Printf("Role:  %s\n", user.Role)
			}
		}
		printTokenInfo(token)
		return nil
	},
}

// printTokenInfo shows claims of the bearer token when it happens to be a
// JWT. The token is opaque to this client, so decoding is best-effort and
// unverified; it is informational only.
func printTokenInfo(token string) {
	tok, err := jwt.ParseInsecure([]byte(token))
	if err != nil {
		return
	}
	var sub string
	if err = tok.Get(jwt.SubjectKey, &sub); err == nil && sub != "" {
		fmt.Printf("Token subject: %s\n", sub)
	}
	var exp time.Time
	if err = tok.Get(jwt.ExpirationKey, &exp); err == nil && !exp.IsZero() {
		fmt.Printf("Token expires: %s\n", exp.Format(time.RFC3339))
	}
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "reading input")
	}
	return strings.TrimSpace(line), nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "admin email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "admin password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
