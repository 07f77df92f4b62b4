package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"pipesheet-cli/internal/app"
	"pipesheet-cli/internal/logging"
	"pipesheet-cli/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pipesheet [keyword...]",
	Short: "Ready-to-copy shell commands for piping-server relays",
	Long: `Pipesheet prints a cheat sheet of shell commands that move data between two
machines through a piping-server relay: files, the clipboard, whole directories
(tar, tar.gz, zip, optionally end-to-end encrypted) and TCP port forwarding.

Every command embeds the same relay URL and random fragment, so the sender and
the receiver only need to agree on one sheet. Keywords filter the sheet; a
recipe is shown when any keyword appears in its title or tags.

Defaults come from ~/.config/pipesheet/config.toml and PIPESHEET_* environment
variables; flags override both.`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check if version flag is set
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			versionCmd.Run(cmd, args)
			return nil
		}

		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.Run(request, logger)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pipesheet version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  go version: %s\n", goVersion)
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

var listCmd = &cobra.Command{
	Use:   "list [keyword...]",
	Short: "List recipes matching the keywords",
	Long:  "List recipe ids, titles and search tags, ranked by relevance when keywords are given. Use -o json or -o yaml for machine-readable output.",
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		if request.ExportFormat, err = cmd.Flags().GetString("output"); err != nil {
			return fmt.Errorf("invalid output flag: %w", err)
		}

		return app.ListRecipes(request, logger)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <recipe-id>",
	Short: "Show the commands of one recipe",
	Long:  "Render a single recipe. With --command, output only the command with that label (e.g. Sender, Receiver, \"Server host\").",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd, nil)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		request.RecipeID = args[0]

		if request.CommandLabel, err = cmd.Flags().GetString("command"); err != nil {
			return fmt.Errorf("invalid command flag: %w", err)
		}

		return app.ShowRecipe(request, logger)
	},
}

var pickCmd = &cobra.Command{
	Use:   "pick [keyword...]",
	Short: "Interactively choose a recipe and one of its commands",
	Long:  "Prompt for a recipe among those matching the keywords, optionally edit its parameters, then output the chosen command.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("pick needs an interactive terminal; use 'pipesheet show <recipe-id> --command <label>' in scripts")
		}

		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		if request.NumberSelect, err = cmd.Flags().GetBool("numbers"); err != nil {
			return fmt.Errorf("invalid numbers flag: %w", err)
		}

		return app.Pick(request, logger)
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse [keyword...]",
	Short: "Browse the sheet in a full-screen terminal UI",
	Long:  "Search as you type, cycle through commands with tab and copy the highlighted one with ctrl+y.",
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.Browse(request, logger)
	},
}

var linkCmd = &cobra.Command{
	Use:   "link [keyword...]",
	Short: "Print a share link for a filtered sheet",
	Long:  "Print share_url with a #?q=<keyword> fragment (or only the fragment when share_url is unset). --qr also draws it as a QR code.",
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		if request.QR, err = cmd.Flags().GetBool("qr"); err != nil {
			return fmt.Errorf("invalid qr flag: %w", err)
		}

		return app.Link(request, logger)
	},
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(linkCmd)

	// Add command specific flags
	listCmd.Flags().StringP("output", "o", "table", "output format (table, json, yaml)")
	showCmd.Flags().String("command", "", "output only the command with this label")
	pickCmd.Flags().BoolP("numbers", "n", false, "enable number key selection")
	linkCmd.Flags().Bool("qr", false, "also print the link as a QR code")

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ~/.config/pipesheet/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging to stderr")
	rootCmd.PersistentFlags().StringP("relay", "r", "", "relay server URL (default https://ppng.io)")
	rootCmd.PersistentFlags().String("fragment", "", "random path fragment shared by sender and receiver (default: 3 random digits; \"\" for none)")
	rootCmd.PersistentFlags().String("server-port", "", "port forwarded from the server host (default 22)")
	rootCmd.PersistentFlags().String("client-port", "", "port opened on the client host (default 1022)")
	rootCmd.PersistentFlags().String("listener", "", "client host listener: 'nc -lp', 'nc -l' or 'socat'")
	rootCmd.PersistentFlags().StringP("format", "f", "", "sheet format: text, markdown or a template file path")
	rootCmd.PersistentFlags().StringP("target", "t", "", "output target (stdout, clipboard, file:/path)")
	rootCmd.PersistentFlags().String("from-link", "", "take the keyword from a share link such as https://host/#?q=folder")

	// Main command flags
	rootCmd.Flags().BoolP("version", "v", false, "print version information")
}

// buildRequestFromFlags constructs a SheetRequest from command flags and arguments
func buildRequestFromFlags(cmd *cobra.Command, args []string) (*models.SheetRequest, error) {
	request := models.NewSheetRequest()

	// Keywords are joined so `pipesheet folder gzip` searches "folder gzip"
	request.Keyword = strings.TrimSpace(strings.Join(args, " "))

	stringFlags := []struct {
		name string
		dst  *string
	}{
		{"config", &request.ConfigPath},
		{"relay", &request.RelayURL},
		{"fragment", &request.Fragment},
		{"server-port", &request.ServerPort},
		{"client-port", &request.ClientPort},
		{"listener", &request.Listener},
		{"format", &request.Format},
		{"target", &request.Target},
		{"from-link", &request.FromLink},
	}

	var err error
	for _, f := range stringFlags {
		if *f.dst, err = cmd.Flags().GetString(f.name); err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", f.name, err)
		}
	}

	// --fragment "" drops the suffix instead of drawing random digits
	request.EmptyFragment = request.Fragment == "" && cmd.Flags().Changed("fragment")

	if request.Keyword != "" && request.FromLink != "" {
		return nil, fmt.Errorf("cannot use both keywords and --from-link")
	}

	return request, nil
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
