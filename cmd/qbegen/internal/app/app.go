// Package app wires qbegen's cobra command tree: an "emit" subcommand
// that lowers a YAML fixture translation unit to SSA text, plus
// cobra's built-in --version flag, mirroring the teacher CLI's
// thin-driver shape (cmd/ralph-cc/main.go's newRootCmd) without the
// rest of its pass-dumping flags, which have no counterpart in a
// backend-only tool.
package app

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pan0cc/qbegen/config"
	"github.com/pan0cc/qbegen/pkg/cast"
	"github.com/pan0cc/qbegen/pkg/fixturegen"
)

// NewRootCmd builds qbegen's command tree, writing normal output to out
// and diagnostics to errOut.
func NewRootCmd(out, errOut io.Writer, version string) *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "qbegen",
		Short:         "qbegen lowers a typed C fixture to QBE-dialect SSA text",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a BackendConfig YAML file")

	root.AddCommand(newEmitCmd(out, errOut, &cfgPath))
	return root
}

func newEmitCmd(out, errOut io.Writer, cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "emit <fixture.yaml>",
		Short: "Lower a YAML translation-unit fixture and print its SSA text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if *cfgPath != "" {
				loaded, err := config.LoadFile(*cfgPath)
				if err != nil {
					return fmt.Errorf("qbegen: loading config %s: %w", *cfgPath, err)
				}
				cfg = loaded
			}
			return runEmit(out, errOut, args[0], cfg)
		},
	}
}

func runEmit(out, errOut io.Writer, path string, cfg config.BackendConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("qbegen: opening %s: %w", path, err)
	}
	defer f.Close()

	var m cast.ModuleSpec
	if err := yaml.NewDecoder(f).Decode(&m); err != nil {
		return fmt.Errorf("qbegen: parsing fixture %s: %w", path, err)
	}
	return runEmitSpec(out, errOut, &m, cfg)
}

// runEmitSpec drives fixturegen.Build against an already-decoded
// fixture, split out from runEmit so tests can exercise the CLI's
// buffering/dump-flag behavior without a file on disk.
func runEmitSpec(out, errOut io.Writer, m *cast.ModuleSpec, cfg config.BackendConfig) error {
	if cfg.Mode == config.EmitBuffer {
		var buf bytes.Buffer
		if err := fixturegen.Build(&buf, m); err != nil {
			return fmt.Errorf("qbegen: %w", err)
		}
		_, err := io.Copy(out, &buf)
		return err
	}

	if err := fixturegen.Build(out, m); err != nil {
		return fmt.Errorf("qbegen: %w", err)
	}
	if cfg.DumpSSA {
		fmt.Fprintln(errOut, "qbegen: ssa emission complete")
	}
	return nil
}
