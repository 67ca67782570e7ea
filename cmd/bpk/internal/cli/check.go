package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/somfy-oss/bpk"
)

func newCheckCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify a BPK file's whole-file CRC",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "BPK file to check")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runCheck(cmd *cobra.Command, file string) error {
	c, err := bpk.Open(file, false)
	if err != nil {
		log.WithError(err).Error("failed to open file")
		return err
	}
	defer c.Close()

	ok, err := c.CheckCRC()
	if err != nil {
		log.WithError(err).Error("failed to compute crc")
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "KO")
		return fmt.Errorf("crc mismatch")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "OK")
	return nil
}
