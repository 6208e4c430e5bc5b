package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/wtorkanorka/BlogSynergy/jwt"
	"github.com/wtorkanorka/BlogSynergy/users"
)

func init() {
	UserCreateCommand.Flags().String("first", "", "first name")
	UserCreateCommand.Flags().String("last", "", "last name")
	UserCreateCommand.Flags().String("role", users.RoleAuthor, "author or admin")

	UserCommand.AddCommand(&UserCreateCommand)
	UserCommand.AddCommand(&UserListCommand)
	UserCommand.AddCommand(&UserTokenCommand)
	RootCmd.AddCommand(&UserCommand)
}

// withUserService opens the stores and the key, runs f and releases
// everything.
func withUserService(cmd *cobra.Command, f func(*users.Service) error) error {
	key, err := readKey(cfg.Auth.Key)
	if err != nil {
		return err
	}

	st, closeStores, err := createStores(cmd.Context(), cfg)
	defer closeStores()
	if err != nil {
		return err
	}

	return f(users.NewService(st.users, jwt.NewEncodeDecoder(key)))
}

var UserCommand = cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long:  "Create users, list them and issue tokens",
}

var UserCreateCommand = cobra.Command{
	Use:   "create",
	Short: "Create a user and print its first token",
	Long:  "Create a user and print its first token",
	RunE: func(cmd *cobra.Command, args []string) error {
		first, _ := cmd.Flags().GetString("first")
		last, _ := cmd.Flags().GetString("last")
		role, _ := cmd.Flags().GetString("role")

		return withUserService(cmd, func(service *users.Service) error {
			user, token, err := service.Register(cmd.Context(), first, last, role)
			if err != nil {
				return err
			}

			data, err := formatUser(user)
			if err != nil {
				return err
			}
			cmd.Println(data)
			cmd.Println(token)
			return nil
		})
	},
}

var UserListCommand = cobra.Command{
	Use:   "list",
	Short: "List all users",
	Long:  "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserService(cmd, func(service *users.Service) error {
			all, err := service.List(cmd.Context())
			if err != nil {
				return err
			}

			for _, user := range all {
				data, err := formatUser(user)
				if err != nil {
					return err
				}
				cmd.Println(data)
			}
			return nil
		})
	},
}

var UserTokenCommand = cobra.Command{
	Use:   "token <id>",
	Short: "Issue a token for a user",
	Long:  "Issue a token for an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserService(cmd, func(service *users.Service) error {
			token, err := service.Token(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cmd.Println(token)
			return nil
		})
	},
}

func formatUser(user users.User) (string, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
