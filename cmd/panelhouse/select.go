package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/panelhouse/pkg/device"
	"github.com/dmitrymomot/panelhouse/pkg/format"
)

type selectResult struct {
	Selection format.Selection `json:"selection"`
	Profile   device.Profile   `json:"profile"`
	Warnings  []string         `json:"warnings,omitempty"`
}

func newSelectCmd() *cobra.Command {
	var (
		probe     string
		class     string
		tabletPDF int
	)
	thresholds := device.DefaultThresholds()
	cmd := &cobra.Command{
		Use:   "select <manifest.json|->",
		Short: "Show which representation of a comic a device receives",
		Long: `select reads a format manifest and prints the selection for one device.

The device is given either as a probe ("390x844@3t": width x height @ pixel
ratio, "t" for touch) or as a class (mobile, tablet, desktop).`,
		Example: `  panelhouse select manifest.json --probe 1280x800@2
  cat manifest.json | panelhouse select - --class mobile`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readManifest(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			var p device.Probe
			switch {
			case probe != "" && class != "":
				return errors.New("use either --probe or --class")
			case probe != "":
				if p, err = device.ParseProbe(probe); err != nil {
					return err
				}
			default:
				c := device.Class(class)
				if !c.Valid() {
					return fmt.Errorf("unknown device class %q", class)
				}
				p = device.Representative(c)
			}
			profile := device.FromProbe(p, thresholds)

			res := selectResult{
				Selection: format.New(format.WithTabletPDFMinWidth(tabletPDF)).Select(m, profile),
				Profile:   profile,
			}
			if err := m.Validate(); err != nil {
				for _, e := range unwrapAll(err) {
					res.Warnings = append(res.Warnings, e.Error())
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVar(&probe, "probe", "", "device probe, e.g. 390x844@3t")
	cmd.Flags().StringVar(&class, "class", "", "device class when no probe is given (default desktop)")
	cmd.Flags().IntVar(&tabletPDF, "tablet-pdf-min-width", 0, "give the PDF to tablets at least this wide")
	cmd.Flags().IntVar(&thresholds.TabletMinWidth, "tablet-min-width", thresholds.TabletMinWidth, "minimum tablet viewport width")
	cmd.Flags().IntVar(&thresholds.DesktopMinWidth, "desktop-min-width", thresholds.DesktopMinWidth, "minimum desktop viewport width")
	cmd.PreRun = func(*cobra.Command, []string) {
		if class == "" && probe == "" {
			class = string(device.ClassDesktop)
		}
	}
	return cmd
}

func readManifest(stdin io.Reader, path string) (format.Manifest, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return format.Manifest{}, err
		}
		defer f.Close()
		r = f
	}
	var m format.Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return format.Manifest{}, fmt.Errorf("manifest: %w", err)
	}
	return m, nil
}

func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
