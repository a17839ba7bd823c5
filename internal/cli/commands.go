// Package cli contains the cobra commands of the pushnotifications binary.
// Commands only depend on push.Publisher so they can be driven by a mock.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tinywideclouds/go-platform/pkg/notification/v1"
	"github.com/tinywideclouds/go-push-notifications/pkg/push"
)

// RootCommand creates and returns the root command.
func RootCommand(publisher push.Publisher, logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pushnotifications",
		Short:         "Publish push notifications and manage users of an instance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		publishCommand("publish-interests", "Publish a notification to one or more interests", "INTEREST",
			func(cmd *cobra.Command, targets []string, payload push.Payload) (*push.PublishResult, error) {
				return publisher.PublishToInterests(cmd.Context(), targets, payload)
			}, logger),
		publishCommand("publish-users", "Publish a notification to one or more users", "USER_ID",
			func(cmd *cobra.Command, targets []string, payload push.Payload) (*push.PublishResult, error) {
				return publisher.PublishToUsers(cmd.Context(), targets, payload)
			}, logger),
		deleteUserCommand(publisher, logger),
		tokenCommand(publisher),
	)

	return rootCmd
}

type publishFunc func(cmd *cobra.Command, targets []string, payload push.Payload) (*push.PublishResult, error)

func publishCommand(use, short, argName string, publish publishFunc, logger *slog.Logger) *cobra.Command {
	var (
		rawPayload string
		content    notification.NotificationContent
		icon       string
		data       map[string]string
	)

	cmd := &cobra.Command{
		Use:   use + " " + argName + "... (--payload JSON | --title T --body B)",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload push.Payload
			switch {
			case rawPayload != "":
				if err := json.Unmarshal([]byte(rawPayload), &payload); err != nil {
					return fmt.Errorf("invalid --payload: %w", err)
				}
			case content.Title != "" || content.Body != "":
				payload = push.NewPayload(content, data, push.WithIcon(icon))
			default:
				return errors.New("either --payload or --title/--body is required")
			}

			result, err := publish(cmd, args, payload)
			if err != nil {
				return err
			}
			logger.Info("Notification published", "command", use, "targets", len(args), "publish_id", result.PublishID)
			return writeJSON(cmd.OutOrStdout(), result.Raw)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&rawPayload, "payload", "", "notification body as a JSON object, e.g. {\"apns\":{...},\"fcm\":{...}}")
	flags.StringVar(&content.Title, "title", "", "notification title for every platform")
	flags.StringVar(&content.Body, "body", "", "notification body text for every platform")
	flags.StringVar(&content.Sound, "sound", "", "APNs sound name")
	flags.StringVar(&icon, "icon", "", "web push icon URL")
	flags.StringToStringVar(&data, "data", nil, "custom data sent with the notification, as key=value pairs")
	for _, contentFlag := range []string{"title", "body", "sound", "icon", "data"} {
		cmd.MarkFlagsMutuallyExclusive("payload", contentFlag)
	}

	return cmd
}

func deleteUserCommand(publisher push.Publisher, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user USER_ID",
		Short: "Delete a user and all of their devices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := publisher.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			logger.Info("User deleted", "user_id", args[0])
			return nil
		},
	}
}

func tokenCommand(publisher push.Publisher) *cobra.Command {
	return &cobra.Command{
		Use:   "token USER_ID",
		Short: "Issue a device authentication token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := publisher.GenerateToken(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), token)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
