package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/Urethramancer/r16/disassembler"
)

var output string

var rootCmd = &cobra.Command{
	Use:   "dis16 binaryFile",
	Short: "Disassembler for r16 binary images",
	Long: `Dis16 turns a binary image back into assembler source.

Every four-byte word that decodes to an instruction the assembler would
produce is printed as that instruction. Anything else is printed as a
"di" or "db" data statement, so assembling the output with asm16 gives
back the same image. Each line ends with a comment holding its offset.
`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer glog.Flush()

		// Read the binary file directly.
		code, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading input file: %w", err)
		}

		text, err := disassembler.Disassemble(code)
		if err != nil {
			return fmt.Errorf("disassembly: %w", err)
		}

		if output == "" {
			fmt.Print(text)
			return nil
		}
		if err := os.WriteFile(output, []byte(text), 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Disassembly written to %s\n", output)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "write the source to FILE instead of stdout")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	flag.Set("logtostderr", "true")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
