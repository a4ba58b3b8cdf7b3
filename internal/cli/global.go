package cli

import (
	"github.com/kubev2v/sddcinfo/internal/client"
	"github.com/kubev2v/sddcinfo/internal/config"
	"github.com/kubev2v/sddcinfo/pkg/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type GlobalOptions struct {
	ConfigFilePath string
	LogLevel       string

	config       *config.Config
	clientConfig *client.Config
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ConfigFilePath: "",
		LogLevel:       "",
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ConfigFilePath, "config", "c", o.ConfigFilePath, "Path to the client config file (default "+client.DefaultClientConfigPath()+")")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (debug, info, warn, error). Overrides SDDCINFO_LOG_LEVEL.")
}

// Complete reads the environment and the client config file and installs the
// global logger.
func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	o.config = cfg

	level := cfg.Service.LogLevel
	if o.LogLevel != "" {
		level = o.LogLevel
	}
	zap.ReplaceGlobals(log.InitLog(log.ParseLevel(level)))

	clientConfig, err := client.LoadConfigFile(o.ConfigFilePath)
	if err != nil {
		return err
	}
	o.clientConfig = clientConfig

	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	return nil
}

// Service returns the service endpoints, the client config file taking
// precedence over the environment.
func (o *GlobalOptions) Service() client.Service {
	service := client.Service{
		CSP: o.config.Service.CSPURL,
		VMC: o.config.Service.VMCURL,
	}
	if o.clientConfig.Service.CSP != "" {
		service.CSP = o.clientConfig.Service.CSP
	}
	if o.clientConfig.Service.VMC != "" {
		service.VMC = o.clientConfig.Service.VMC
	}
	return service
}
