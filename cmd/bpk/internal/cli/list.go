package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/somfy-oss/bpk"
)

func newListCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the partitions contained in a BPK file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "BPK file to inspect")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runList(cmd *cobra.Command, file string) error {
	c, err := bpk.Open(file, false)
	if err != nil {
		log.WithError(err).Error("failed to open file")
		return err
	}
	defer c.Close()

	fmt.Fprintln(cmd.OutOrStdout(), "Bpk partitions:")
	for {
		info, err := c.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.WithError(err).Error("failed to iterate partitions")
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s hw_id=%d (size: %d, crc: %08x)\n",
			bpk.TypeName(info.Type), info.HwID, info.Size, info.CRC)
	}
	return nil
}
