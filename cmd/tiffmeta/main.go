// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Command tiffmeta dumps the metadata of a TIFF structure.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bep/tiffmeta"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		quiet     bool
		panasonic bool
		sources   []string
	)

	cmd := &cobra.Command{
		Use:   "tiffmeta FILE",
		Short: "Dump Exif, IPTC and XMP metadata from a TIFF structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			opts := tiffmeta.Options{Data: data}
			if panasonic {
				opts.Root = tiffmeta.RootPanasonicRaw
			}
			if !quiet {
				opts.Warnf = func(format string, args ...any) {
					fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
				}
			}
			for _, s := range sources {
				switch s {
				case "exif":
					opts.Sources |= tiffmeta.EXIF
				case "iptc":
					opts.Sources |= tiffmeta.IPTC
				case "xmp":
					opts.Sources |= tiffmeta.XMP
				default:
					return fmt.Errorf("unknown source %q", s)
				}
			}

			meta, err := tiffmeta.Decode(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ByteOrder: %s\n", meta.ByteOrder())
			printMap(out, "Exif", meta.EXIF())
			printMap(out, "IPTC", meta.IPTC())
			printMap(out, "XMP", meta.XMP())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress warnings")
	cmd.Flags().BoolVar(&panasonic, "rw2", false, "treat input as a Panasonic RW2 structure")
	cmd.Flags().StringSliceVar(&sources, "source", nil, "metadata sources to decode (exif, iptc, xmp); default all")

	return cmd
}

func printMap(out io.Writer, name string, m map[string]string) {
	if len(m) == 0 {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s.%s: %s\n", name, k, m[k])
	}
}
