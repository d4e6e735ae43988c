package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/udpchat/internal/config"
	"github.com/danmuck/udpchat/internal/observability"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	port       uint16
	configPath string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "chat: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "chat",
		Short:         "UDP publish/subscribe chat",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Uint16VarP(&opts.port, "port", "p", config.DefaultPort, "UDP port to operate on")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML config file")

	root.AddCommand(
		serverCmd(opts),
		clientCmd(opts),
		configCmd(),
	)
	return root
}

func serverCmd(root *rootOptions) *cobra.Command {
	var adminAddr string
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the chat server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			observability.InitLogger("chat-server")
			cfg, err := loadServerSettings(root, cmd, adminAddr)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&adminAddr, "admin-addr", "", "serve health and metrics on host:port")
	return cmd
}

func clientCmd(root *rootOptions) *cobra.Command {
	flags := &clientFlags{}
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Run a chat client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			observability.InitLogger("chat-client")
			settings, err := resolveClientSettings(root, cmd, flags)
			if err != nil {
				return err
			}
			return runClient(cmd.Context(), settings, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&flags.address, "address", "a", "", "IPv4 address of the server")
	cmd.Flags().Uint16Var(&flags.serverPort, "server-port", 0, "server port (defaults to --port)")
	cmd.Flags().StringArrayVarP(&flags.channels, "channel", "c", nil, "channel to subscribe to (repeatable)")
	cmd.Flags().StringVarP(&flags.message, "message", "m", "", `message to send each interval, as "channel|name|text"`)
	cmd.Flags().UintVarP(&flags.intervalSecs, "interval", "i", 0, "seconds between messages; 0 listens forever")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or validate config files",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init <server|client> <path>",
		Short: "Write a config template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(args[1], args[0], force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s config to %s\n", args[0], args[1])
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	validateCmd := &cobra.Command{
		Use:   "validate <server|client> <path>",
		Short: "Validate a config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "server":
				_, err = config.LoadServerConfig(args[1])
			case "client":
				_, err = loadClientConfig(args[1], defaultClientSettings())
			default:
				err = fmt.Errorf("unknown config kind: %s", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "validated %s config at %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
