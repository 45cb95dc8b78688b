package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nxmods/stockcheck/internal/yaz0"
	"github.com/nxmods/stockcheck/pkg/color"
)

var yaz0Cmd = &cobra.Command{
	Use:   "yaz0 <command>",
	Short: "Compress or decompress Yaz0 files",
}

var yaz0CompressCmd = &cobra.Command{
	Use:   "compress <in> <out>",
	Short: "Wrap a file in a Yaz0 stream",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := yaz0.CompressFile(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Compressed %s to %s\n", args[0], color.Path(args[1]))
		return nil
	},
}

var yaz0DecompressCmd = &cobra.Command{
	Use:   "decompress <in> <out>",
	Short: "Unwrap a Yaz0 stream",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := yaz0.DecompressFile(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Decompressed %s to %s\n", args[0], color.Path(args[1]))
		return nil
	},
}

func init() {
	yaz0Cmd.AddCommand(yaz0CompressCmd)
	yaz0Cmd.AddCommand(yaz0DecompressCmd)
	rootCmd.AddCommand(yaz0Cmd)
}
