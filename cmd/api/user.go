package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rentledger/internal/modules/users"
	"rentledger/internal/pkg/validator"
	"rentledger/internal/repository"
)

func newUserCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage back office accounts",
	}

	var email, password string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user that can sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := users.CreateUserRequest{Email: email, Password: password}
			if issues := validator.Validate(req); issues != nil {
				return fmt.Errorf("invalid user: %s %s", issues[0].Field, issues[0].Message)
			}

			db, err := e.connect()
			if err != nil {
				return err
			}
			u, err := users.NewService(repository.NewUserRepository(db)).Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			e.log.Info("user created", zap.Int64("id", u.ID), zap.String("email", u.Email))
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "login email")
	create.Flags().StringVar(&password, "password", "", "initial password (min 6 characters)")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}
