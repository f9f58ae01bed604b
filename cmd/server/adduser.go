package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/h4ks-com/expense-tracker/internal/config"
	"github.com/h4ks-com/expense-tracker/internal/database"
	"github.com/h4ks-com/expense-tracker/internal/repository"
	"github.com/h4ks-com/expense-tracker/internal/services"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type addUserOptions struct {
	DatabaseURL string
	BcryptCost  int
	Email       string
	Username    string
	Password    string
}

var addUserOpts addUserOptions

var addUserCmd = &cobra.Command{
	Use:   "adduser",
	Short: "Create a user account",
	Long: `Create a user account directly in the database.

The password is read from the terminal without echo when --password is omitted.`,
	Example: `  expense-tracker adduser --email a@x.com --username a
  expense-tracker adduser -e a@x.com -u a --password pw`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		opts := addUserOpts
		if opts.DatabaseURL == "" {
			opts.DatabaseURL = cfg.Database.URL
		}
		opts.BcryptCost = cfg.Security.BcryptCost
		return runAddUser(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	addUserCmd.Flags().StringVarP(&addUserOpts.Email, "email", "e", "", "Email address (required)")
	addUserCmd.Flags().StringVarP(&addUserOpts.Username, "username", "u", "", "Username (required)")
	addUserCmd.Flags().StringVar(&addUserOpts.Password, "password", "", "Password (prompted when omitted)")
	addUserCmd.Flags().StringVar(&addUserOpts.DatabaseURL, "database-url", "", "Database URL (defaults to DATABASE_URL)")
	addUserCmd.MarkFlagRequired("email")
	addUserCmd.MarkFlagRequired("username")
}

func runAddUser(ctx context.Context, opts addUserOptions, stdin io.Reader, stdout io.Writer) error {
	if opts.Email == "" || opts.Username == "" {
		return fmt.Errorf("email and username are required")
	}

	password := opts.Password
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	db, err := database.Connect(opts.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	// Registration never signs tokens, so no token service is needed.
	authService := services.NewAuthService(
		repository.NewUserRepository(db),
		services.NewPasswordHasher(opts.BcryptCost),
		nil,
	)

	user, err := authService.Register(ctx, opts.Email, opts.Username, password)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			return fmt.Errorf("user with email %s already exists", opts.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d\n", user.Username, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
