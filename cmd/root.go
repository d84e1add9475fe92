package cmd

import (
	"fmt"
	"os"

	"github.com/Rana718/mcpseed/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════╗",
		"║   ███╗   ███╗ ██████╗██████╗ ███████╗███████╗██████╗ ║",
		"║   ████╗ ████║██╔════╝██╔══██╗██╔════╝██╔════╝██╔══██╗║",
		"║   ██╔████╔██║██║     ██████╔╝███████╗█████╗  ██║  ██║║",
		"║   ██║╚██╔╝██║██║     ██╔═══╝ ╚════██║██╔══╝  ██║  ██║║",
		"║   ██║ ╚═╝ ██║╚██████╗██║     ███████║███████╗██████╔╝║",
		"║   ╚═╝     ╚═╝ ╚═════╝╚═╝     ╚══════╝╚══════╝╚═════╝ ║",
		"║                                                      ║",
		"║      🌱 Synthetic data for five analytics domains 🌱  ║",
		"╚══════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                   ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "mcpseed",
	Short: "Seed relational databases with realistic synthetic data",
	Long: `
mcpseed provisions five independent databases and fills them with
synthetic records for analytics and tooling development.

Domains:
- mcp1  e-commerce & marketing
- mcp2  payments
- mcp3  service logs & feedback
- mcp4  public administration
- mcp5  academic records

Database Support:
- PostgreSQL
- MySQL
- SQLite (one file per domain)
- memory (in-process, for dry runs)`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("mcpseed version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./mcpseed.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("mcpseed.config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		color.New(color.FgHiBlack).Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
