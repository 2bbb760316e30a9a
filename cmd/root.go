package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hoffmann-muki/omnireduce-experiments/config"
	"github.com/hoffmann-muki/omnireduce-experiments/pkg/tools/logger"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "omnistat",
	Short: "omnistat allreduce benchmark log analysis tool",
}

func Execute() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "./omnistat.yaml", "config file")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.SetEnvPrefix("OMNISTAT")
	viper.AutomaticEnv()
	_ = rootCmd.Execute()
}

// configPath returns the config file in effect, from the --config flag
// or the OMNISTAT_CONFIG environment variable.
func configPath() string {
	if path := viper.GetString("config"); path != "" {
		return path
	}
	return cfgFile
}

// loadConfigOrDefault returns the config from the active config file,
// falling back to built-in defaults when the file does not exist.
// Commands that only read logs must keep working without a config file.
func loadConfigOrDefault() (*config.Config, error) {
	path := configPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.NewDefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	logger.Init(logger.Config{
		Level:  logger.LogLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})
	return cfg, nil
}
