package command

import (
	"context"
	"fmt"
	"strings"

	"yamdb/database"
	"yamdb/internal/mailer"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"
	"yamdb/internal/middleware/auth"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.Migrate(db, logger); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Schema is up to date")
		return nil
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin <username> <email>",
	Short: "Create a superuser with the admin role",
	Long: `Create a superuser with the admin role and print their confirmation code.
The administrator exchanges the code for a token at /api/v1/auth/token/
like any other user.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		codes, err := auth.NewCodeGenerator(cfg.JWTSecret, cfg.ConfirmationCodeTTL)
		if err != nil {
			return err
		}
		authSvc := service.NewAuthService(
			repository.NewUserRepository(db),
			codes,
			auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL),
			mailer.NewLogMailer(logger),
			cfg,
			logger,
		)

		user, code, err := createAdmin(cmd.Context(), repository.NewUserRepository(db), authSvc, args[0], args[1])
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Created administrator %s (%s)\n", user.Username, user.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Confirmation code: %s\n", code)
		return nil
	},
}

var setRoleCmd = &cobra.Command{
	Use:   "set-role <username> <role>",
	Short: "Change the role of a user",
	Long:  "Change the role of a user. Valid roles: " + strings.Join(models.Roles, ", ") + ".",
	Args:  cobra.MatchAll(cobra.ExactArgs(2), roleArg(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := setRole(cmd.Context(), repository.NewUserRepository(db), args[0], args[1])
		if err != nil {
			return fmt.Errorf("set role: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s is now %s\n", user.Username, user.Role)
		return nil
	},
}

// roleArg rejects an unknown role before any connection is made.
func roleArg(pos int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if pos < len(args) && !models.ValidRole(args[pos]) {
			return fmt.Errorf("invalid role %q, expected one of: %s", args[pos], strings.Join(models.Roles, ", "))
		}
		return nil
	}
}

func createAdmin(ctx context.Context, users repository.UserRepository, authSvc service.AuthService, username, email string) (*models.User, string, error) {
	user, err := service.NewUserService(users).Create(ctx, dto.CreateUserRequest{
		Username: username,
		Email:    email,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return nil, "", err
	}

	user.IsSuperuser = true
	if err := users.Update(ctx, user); err != nil {
		return nil, "", err
	}
	return user, authSvc.ConfirmationCode(user), nil
}

func setRole(ctx context.Context, users repository.UserRepository, username, role string) (*models.User, error) {
	return service.NewUserService(users).Update(ctx, username, dto.UpdateUserRequest{Role: &role})
}
