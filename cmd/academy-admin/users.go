package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/edunexa/academy-api/internal/data"
	domainauth "github.com/edunexa/academy-api/internal/domain/auth"
	"github.com/edunexa/academy-api/internal/domain/model"
	"github.com/edunexa/academy-api/internal/security"
	"github.com/edunexa/academy-api/internal/service"
)

const defaultUserCommandTimeout = time.Minute

type addUserOptions struct {
	Email    string
	Name     string
	Role     string
	Password string
	Inactive bool
}

type resetPasswordOptions struct {
	Email    string
	Password string
}

func runAddUser(cmdCtx *commandContext, args []string) error {
	opts, err := parseAddUserFlags(args)
	if err != nil {
		return err
	}

	role := domainauth.Role(opts.Role)
	if !domainauth.ValidRole(role) {
		return fmt.Errorf("invalid --role %q (valid options: admin, faculty, student)", opts.Role)
	}

	return withDatabase(cmdCtx, defaultUserCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		svc := newUserService(cmdCtx, db)

		active := !opts.Inactive
		user, createErr := svc.Create(ctx, model.CreateUserRequest{
			Name:     opts.Name,
			Email:    opts.Email,
			Password: opts.Password,
			Role:     role,
			Active:   &active,
		})
		if errors.Is(createErr, data.ErrUserEmailExists) {
			return fmt.Errorf("account %q already exists; use reset-password to change its credentials", opts.Email)
		}
		if createErr != nil {
			return fmt.Errorf("create account: %w", createErr)
		}

		cmdCtx.Logger.Info("account created",
			"id", user.ID,
			"email", user.Email,
			"role", user.Role,
			"active", user.Active,
		)
		return nil
	})
}

func runResetPassword(cmdCtx *commandContext, args []string) error {
	opts, err := parseResetPasswordFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultUserCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		repo := data.NewUserRepo(db)
		user, lookupErr := repo.GetByEmail(ctx, opts.Email)
		if lookupErr != nil {
			return fmt.Errorf("look up account %q: %w", opts.Email, lookupErr)
		}

		svc := newUserService(cmdCtx, db)
		if _, updateErr := svc.Update(ctx, user.ID, model.UpdateUserRequest{
			Password: &opts.Password,
		}); updateErr != nil {
			return fmt.Errorf("reset password: %w", updateErr)
		}

		cmdCtx.Logger.Info("password reset", "id", user.ID, "email", user.Email)
		cmdCtx.Logger.Info("existing sessions stay valid until expiry; run clear-sessions to revoke them")
		return nil
	})
}

func newUserService(cmdCtx *commandContext, db *sql.DB) *service.UserService {
	return service.NewUserService(service.UserServiceOptions{
		Repo:   data.NewUserRepo(db),
		Hasher: security.NewHasher(cmdCtx.Config.Auth.BcryptCost),
	})
}

func parseAddUserFlags(args []string) (addUserOptions, error) {
	fs := flag.NewFlagSet("add-user", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts addUserOptions
	fs.StringVar(&opts.Email, "email", "", "Email address for the new account (required)")
	fs.StringVar(&opts.Name, "name", "", "Display name for the new account (required)")
	fs.StringVar(&opts.Role, "role", "admin", "Account role: admin, faculty, or student")
	fs.StringVar(&opts.Password, "password", "", "Initial password (required, minimum 8 characters)")
	fs.BoolVar(&opts.Inactive, "inactive", false, "Create the account disabled")

	if err := fs.Parse(args); err != nil {
		return addUserOptions{}, err
	}

	if opts.Email == "" {
		return addUserOptions{}, errors.New("--email is required")
	}
	if opts.Name == "" {
		return addUserOptions{}, errors.New("--name is required")
	}
	if opts.Password == "" {
		return addUserOptions{}, errors.New("--password is required")
	}

	return opts, nil
}

func parseResetPasswordFlags(args []string) (resetPasswordOptions, error) {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts resetPasswordOptions
	fs.StringVar(&opts.Email, "email", "", "Email address of the account (required)")
	fs.StringVar(&opts.Password, "password", "", "New password (required, minimum 8 characters)")

	if err := fs.Parse(args); err != nil {
		return resetPasswordOptions{}, err
	}

	if opts.Email == "" {
		return resetPasswordOptions{}, errors.New("--email is required")
	}
	if opts.Password == "" {
		return resetPasswordOptions{}, errors.New("--password is required")
	}

	return opts, nil
}
