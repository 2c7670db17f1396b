package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tvrip/internal/config"
	"tvrip/internal/deps"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&targetPath, "path", "", "Destination path for the sample config")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing config file")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Check that the configuration loads and validates",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(strings.TrimSpace(ctx.configFlag))
			if err != nil {
				return err
			}
			if exists {
				fmt.Fprintf(cmd.OutOrStdout(), "Configuration at %s is valid\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No config file found (would use %s); defaults are valid\n", path)
			}

			statuses := deps.Check(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = status.Detail
				}
				rows = append(rows, []string{status.Name, status.Command, state})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Binary", "Command", "Status"}, rows))
			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("required binaries missing: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rows := [][]string{
				{"paths.source", cfg.Paths.Source},
				{"paths.target", cfg.Paths.Target},
				{"paths.temp", cfg.Paths.Temp},
				{"paths.database", cfg.Paths.Database},
				{"binaries.handbrake", cfg.Binaries.HandBrake},
				{"binaries.vlc", cfg.Binaries.VLC},
				{"binaries.eject", cfg.Binaries.Eject},
				{"ripping.duration", fmt.Sprintf("%d-%d minutes", cfg.Ripping.DurationMin, cfg.Ripping.DurationMax)},
				{"ripping.duplicates", cfg.Ripping.Duplicates},
				{"ripping.template", cfg.Ripping.Template},
				{"ripping.id_template", cfg.Ripping.IDTemplate},
				{"ripping.output_format", cfg.Ripping.OutputFormat},
				{"ripping.dvdnav", yesNo(cfg.Ripping.DVDNav)},
				{"ripping.video_style", cfg.Ripping.VideoStyle},
				{"ripping.audio_mix", cfg.Ripping.AudioMix},
				{"ripping.audio_langs", strings.Join(cfg.Ripping.AudioLangs, ", ")},
				{"ripping.subtitle_format", cfg.Ripping.SubtitleFormat},
				{"tvdb.api_key", maskSecret(cfg.TVDB.APIKey)},
				{"tvdb.base_url", cfg.TVDB.BaseURL},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows))
			return nil
		},
	}
}

func maskSecret(value string) string {
	if value == "" {
		return "(unset)"
	}
	if len(value) <= 4 {
		return "****"
	}
	return value[:2] + strings.Repeat("*", len(value)-4) + value[len(value)-2:]
}
