package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdcore "github.com/projecteru2/svcimage/cmd/core"
	cmdimage "github.com/projecteru2/svcimage/cmd/image"
	cmdothers "github.com/projecteru2/svcimage/cmd/others"
	"github.com/projecteru2/svcimage/config"
)

var (
	cfgFile string
	conf    *config.Config
)

var rootCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "svcimage",
		Short:        "Svcimage - platform service image lifecycle tool",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(commandContext(cmd))
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	cmd.PersistentFlags().String("ec2-url", "", "compute endpoint URL")
	cmd.PersistentFlags().String("account-id", "", "system account ID for image registration")
	cmd.PersistentFlags().String("cert-path", "", "cloud certificate path")
	cmd.PersistentFlags().String("bootstrap-url", "", "bootstrap service endpoint")
	cmd.PersistentFlags().String("properties-url", "", "properties service endpoint")
	cmd.PersistentFlags().Bool("debug", false, "echo external commands and stream their stderr")

	_ = viper.BindPFlag("ec2_url", cmd.PersistentFlags().Lookup("ec2-url"))
	_ = viper.BindPFlag("account_id", cmd.PersistentFlags().Lookup("account-id"))
	_ = viper.BindPFlag("cert_path", cmd.PersistentFlags().Lookup("cert-path"))
	_ = viper.BindPFlag("bootstrap_url", cmd.PersistentFlags().Lookup("bootstrap-url"))
	_ = viper.BindPFlag("properties_url", cmd.PersistentFlags().Lookup("properties-url"))
	_ = viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))

	viper.SetEnvPrefix("SVCIMAGE")
	viper.AutomaticEnv()

	confProvider := func() *config.Config { return conf }
	base := cmdcore.BaseHandler{ConfProvider: confProvider}

	for _, c := range cmdimage.Commands(cmdimage.Handler{BaseHandler: base}) {
		cmd.AddCommand(c)
	}
	for _, c := range cmdothers.Commands(cmdothers.Handler{BaseHandler: base}) {
		cmd.AddCommand(c)
	}

	return cmd
}()

func initConfig(ctx context.Context) error {
	conf = config.DefaultConfig()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	_ = viper.ReadInConfig() // optional; missing file is OK

	if err := viper.Unmarshal(conf); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	return log.SetupLog(ctx, &conf.Log, "")
}

func newCommandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// Execute is the main entry point called from main.go.
func Execute() error {
	ctx, cancel := newCommandContext()
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}
