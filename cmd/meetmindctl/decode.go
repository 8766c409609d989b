package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meetmind/internal/decoder"
)

var decodeQuiet bool

func init() {
	decodeCmd.Flags().BoolVarP(&decodeQuiet, "quiet", "q", false, "Only print the summary JSON")
}

var decodeCmd = &cobra.Command{
	Use:   "decode [file|-]",
	Short: "Decode saved model output into a summary",
	Long: `Run the summary decoder over raw model output, such as an object archived
under raw-outputs/ after a failed request, and print the resulting summary.

The repair stage and any dropped action items are reported on stderr. The
command exits non-zero when the output cannot be decoded.

Examples:
  # Decode an archived output
  meetmindctl decode raw-outputs/2025-03-10/6f1c2d8e.txt

  # Decode from stdin
  pbpaste | meetmindctl decode -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func runDecode(cmd *cobra.Command, args []string) error {
	var (
		raw []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	result, report, err := decoder.DecodeWithReport(string(raw))
	if err != nil {
		return err
	}

	if !decodeQuiet {
		stderr := cmd.ErrOrStderr()
		fmt.Fprintf(stderr, "stage: %s\n", report.Stage)
		for _, dropped := range report.Dropped {
			fmt.Fprintf(stderr, "dropped: %s\n", dropped)
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
