package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/GoCodeAlone/femglue"
	"github.com/GoCodeAlone/femglue/feeders"
	"github.com/GoCodeAlone/femglue/model"
)

// DocumentConfigKey is the document section that may override configuration.
const DocumentConfigKey = "femglue"

// NewInspectCommand creates the inspect command
func NewInspectCommand(opts *globalOptions) *cobra.Command {
	var output, geojsonPath string

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Validate a geometry document and print a report",
		Long: `Load a geometry document (.json, .yaml, .yml or .toml), validate every entity
and print a summary. A "femglue" section in the document overrides the
configuration for that document; --precision still wins.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(cmd, opts, args[0])
			if err != nil {
				return err
			}

			if err := writeReport(cmd.OutOrStdout(), m.Report(), output); err != nil {
				return err
			}

			if geojsonPath != "" {
				var buf bytes.Buffer
				if err := model.ExportGeoJSON(&buf, m); err != nil {
					return err
				}
				if err := renameio.WriteFile(geojsonPath, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", geojsonPath, err)
				}
				femglue.GetLogger().Info("GeoJSON written", "path", geojsonPath, "features", len(m.FeatureCollection().Features))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "report format: text, json or yaml")
	cmd.Flags().StringVar(&geojsonPath, "geojson", "", "also write the model as GeoJSON to this file")

	return cmd
}

// applyDocumentConfig publishes the configuration for the document at path.
func applyDocumentConfig(cmd *cobra.Command, opts *globalOptions, path string) error {
	f, err := feeders.ForFile(path)
	if err != nil {
		return err
	}
	section, ok := f.(femglue.ComplexFeeder)
	if !ok {
		return nil
	}

	cfg, err := femglue.ApplyConfigSection(section, DocumentConfigKey, opts.base)
	if err != nil {
		return fmt.Errorf("invalid %q section in %s: %w", DocumentConfigKey, path, err)
	}
	if err := opts.overridePrecision(cmd, cfg); err != nil {
		return err
	}
	return femglue.SetCurrent(cfg)
}

func loadModel(cmd *cobra.Command, opts *globalOptions, path string) (*model.Model, error) {
	if err := applyDocumentConfig(cmd, opts, path); err != nil {
		return nil, err
	}
	doc, err := model.Load(path)
	if err != nil {
		return nil, err
	}
	return model.Build(doc)
}

func writeReport(w io.Writer, r model.Report, format string) error {
	switch format {
	case "text", "":
		return r.WriteText(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", errUnknownOutput, format)
	}
}
