// Package cli implements the administrative command line commands.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
	"gorm.io/gorm"

	"library-admin/internal/auth"
	"library-admin/internal/config"
	"library-admin/internal/database"
	"library-admin/internal/database/users"
	"library-admin/internal/entities"
	"library-admin/internal/forms"
)

// CreateAdminCommand creates a staff account from the terminal, for
// bootstrapping a fresh installation.
type CreateAdminCommand struct {
	Username     string
	Email        string
	DatabasePath string
	Generate     bool

	bcryptCost int
}

// NewCreateAdminCommand creates a new CreateAdminCommand
func NewCreateAdminCommand() *CreateAdminCommand {
	return &CreateAdminCommand{}
}

// ParseFlags parses command line flags
func (cmd *CreateAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Username for the new account (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email for the new account")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.Generate, "generate-password", false, "Generate a random password instead of prompting")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-admin [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a staff account that can sign in to the admin UI.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-admin -username admin -email admin@example.com\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-admin -username admin -generate-password\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" {
		fs.Usage()
		return errors.New("username is required")
	}

	cmd.bcryptCost = config.NewConfig().Auth.BcryptCost

	return nil
}

// Run executes the create-admin command
func (cmd *CreateAdminCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := users.NewRepository(db.DB)

	taken, err := repo.UsernameTaken(cmd.Username, 0)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return fmt.Errorf("%s", forms.MsgUsernameTaken)
	}

	password, generated, err := cmd.resolvePassword()
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password, cmd.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Username:     cmd.Username,
		Email:        cmd.Email,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := repo.Create(user, &entities.UserProfile{}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%s", forms.MsgUsernameTaken)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created user %s (id %d)\n", user.Username, user.ID)
	if generated {
		fmt.Printf("Generated password: %s\n", password)
	}

	return nil
}

func (cmd *CreateAdminCommand) resolvePassword() (string, bool, error) {
	if cmd.Generate {
		password, err := auth.GeneratePassword(auth.GeneratedPasswordLength)
		if err != nil {
			return "", false, fmt.Errorf("failed to generate password: %w", err)
		}
		return password, true, nil
	}

	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", false, fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", false, fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", false, errors.New(forms.MsgPasswordMismatch)
	}
	if strings.TrimSpace(string(first)) == "" {
		return "", false, errors.New("password must not be empty")
	}

	return string(first), false, nil
}
