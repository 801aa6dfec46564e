package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/hours/internal/config"
	"github.com/xolan/hours/internal/logging"
	"github.com/xolan/hours/internal/service"
	"github.com/xolan/hours/internal/storage"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for hours.

Completion covers commands and flags, and the month argument of 'hours show'
is completed from the cached reports.

Bash:
  source <(hours completion bash)
  hours completion bash > ~/.local/share/bash-completion/completions/hours

Zsh:
  hours completion zsh > ~/.zsh/completion/_hours

Fish:
  hours completion fish > ~/.config/fish/completions/hours.fish

PowerShell:
  hours completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactValidArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
	showCmd.ValidArgsFunction = completeMonths
}

// generateCompletion generates the appropriate completion script based on shell type
func generateCompletion(shell string) {
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(deps.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(deps.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(deps.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(deps.Stdout)
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(deps.Stderr, "Supported shells: bash, zsh, fish, powershell")
		deps.Exit(1)
		return
	}

	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		deps.Exit(1)
		return
	}
}

// completeMonths offers the cached month keys. It never fetches and stays
// silent on errors, since its output is read by the shell.
func completeMonths(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	months, err := cachedMonths()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, month := range months {
		if strings.HasPrefix(month, toComplete) {
			matches = append(matches, month)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// cachedMonths reads the month keys of the cached snapshot
func cachedMonths() ([]string, error) {
	configPath, err := deps.ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(deps.Getenv); err != nil {
		return nil, err
	}

	services, err := service.NewServices(cfg, configPath, logging.Discard())
	if err != nil {
		return nil, err
	}
	defer func() { _ = services.Close() }()

	collection, _, err := storage.LoadSnapshot(services.Store(), cfg.CacheKey)
	if err != nil {
		return nil, err
	}
	return collection.Months(), nil
}
