package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/somfy-oss/bpk"
	"github.com/somfy-oss/bpk/internal/compress"
)

func newCreateCmd() *cobra.Command {
	var file string
	var parts []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a BPK file from one or more partition sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := parsePartSpecs(parts)
			if err != nil {
				return err
			}
			return runCreate(file, specs)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "BPK file to create")
	cmd.Flags().StringArrayVarP(&parts, "part", "p", nil, "partition spec type[:hw_id][:codec]:path (repeatable)")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runCreate(file string, specs []partSpec) error {
	c, err := bpk.Create(file)
	if err != nil {
		log.WithError(err).Error("failed to create file")
		return err
	}
	defer c.Close()

	for _, spec := range specs {
		if err := writePart(c, spec); err != nil {
			log.WithError(err).WithField("path", spec.Path).Error("failed to write partition")
			return fmt.Errorf("writing partition %s: %w", spec.Path, err)
		}
		log.WithField("path", spec.Path).WithField("type", bpk.TypeName(spec.Type)).Info("partition written")
	}
	return nil
}

func writePart(c *bpk.Container, spec partSpec) error {
	f, err := os.Open(spec.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := compress.Wrap(f, spec.Codec)
	if err != nil {
		return err
	}
	return c.Write(spec.Type, spec.HwID, src)
}
