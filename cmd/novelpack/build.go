// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkuroi/novelpack/internal/assemble"
	"github.com/mkuroi/novelpack/internal/placeholder"
	"github.com/mkuroi/novelpack/internal/series"
	"github.com/mkuroi/novelpack/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build [export.json...]",
	Short: "Build an EPUB from export fragments and chapter data",
	Long: `Build merges the given JSON export fragments into one series record, then
packages every novel's chapter text and images into a single EPUB.

Fragments are given as file paths; multiple files are concatenated in
argument order and the first fragment supplies the author and series
fields. Chapter texts ({novel_id}.txt) and images are read from the data
directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		rec, err := series.Aggregate(series.FromPaths(args))
		if err != nil {
			return err
		}

		res, err := assemble.Build(rec, cfg, os.Stderr)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "packaged %d novels, %d images\n", res.Novels, res.Images)
		fmt.Println(res.OutputPath)
		return nil
	},
}

func init() {
	buildCmd.Flags().String("data-dir", ".", "directory holding chapter texts and images")
	buildCmd.Flags().String("output-dir", ".", "directory the EPUB is written to")
	buildCmd.Flags().String("title-template", "", "template for the book title (%AUTHOR_NAME%, %SERIES_TITLE%, ...)")
	buildCmd.Flags().String("filename-template", "", "template for the output file name")
	buildCmd.Flags().Bool("use-index", false, "prefix chapter titles with their reading-order index")
	buildCmd.Flags().String("cover", "", "package cover image, relative to the data directory")
	buildCmd.Flags().String("language", "en", "language code written into the book metadata")

	rootCmd.AddCommand(buildCmd)
}

// buildConfig merges flags over config-file values. Template values coming
// from the config file are untyped and validated here.
func buildConfig(cmd *cobra.Command) (types.BuildConfig, error) {
	titleTemplate, err := templateSetting(cmd, "title-template", "title_template")
	if err != nil {
		return types.BuildConfig{}, err
	}
	filenameTemplate, err := templateSetting(cmd, "filename-template", "filename_template")
	if err != nil {
		return types.BuildConfig{}, err
	}

	useIndex, _ := cmd.Flags().GetBool("use-index")
	if !cmd.Flags().Changed("use-index") && viper.IsSet("use_index") {
		useIndex = viper.GetBool("use_index")
	}

	return types.BuildConfig{
		DataDir:           stringSetting(cmd, "data-dir", "data_dir"),
		OutputDir:         stringSetting(cmd, "output-dir", "output_dir"),
		TitleTemplate:     titleTemplate,
		FilenameTemplate:  filenameTemplate,
		UsePositionPrefix: useIndex,
		Cover:             stringSetting(cmd, "cover", "cover"),
		Language:          stringSetting(cmd, "language", "language"),
	}, nil
}

// stringSetting returns the flag value when set on the command line,
// otherwise the config-file value, otherwise the flag default.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// templateSetting is stringSetting for template values, rejecting
// non-string config entries.
func templateSetting(cmd *cobra.Command, flag, key string) (string, error) {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return placeholder.Validate(viper.Get(key))
	}
	v, _ := cmd.Flags().GetString(flag)
	return v, nil
}
