package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/somfy-oss/bpk"
	"github.com/somfy-oss/bpk/internal/compress"
)

func newExtractCmd() *cobra.Command {
	var file string
	var parts []string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract one or more partitions from a BPK file",
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := parsePartSpecs(parts)
			if err != nil {
				return err
			}
			return runExtract(file, specs)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "BPK file to read")
	cmd.Flags().StringArrayVarP(&parts, "part", "p", nil, "partition spec type[:hw_id][:codec]:path (repeatable)")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runExtract(file string, specs []partSpec) error {
	c, err := bpk.Open(file, false)
	if err != nil {
		log.WithError(err).Error("failed to open file")
		return err
	}
	defer c.Close()

	for _, spec := range specs {
		if _, err := c.Find(spec.Type, spec.HwID); err != nil {
			log.WithError(err).WithField("type", bpk.TypeName(spec.Type)).Error("partition not found")
			return fmt.Errorf("finding partition %s: %w", bpk.TypeName(spec.Type), err)
		}
		if err := readPart(c, spec); err != nil {
			log.WithError(err).WithField("path", spec.Path).Error("failed to extract partition")
			return fmt.Errorf("extracting partition to %s: %w", spec.Path, err)
		}
		log.WithField("path", spec.Path).WithField("type", bpk.TypeName(spec.Type)).Info("partition extracted")
	}
	return nil
}

func readPart(c *bpk.Container, spec partSpec) error {
	out, err := os.Create(spec.Path)
	if err != nil {
		return err
	}
	defer out.Close()

	src, err := compress.Unwrap(c, spec.Codec)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, src)
	return err
}
