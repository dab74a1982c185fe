package cli

import (
	"fmt"

	"github.com/fatih/color"
	prettyjson "github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"
)

func logJSONCmd(cmd cobra.Command, iface any) {
	out, err := prettyjson.Marshal(iface)
	if err != nil {
		logErrorCmd(cmd, err)

		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
}

func logErrorCmd(cmd cobra.Command, err error) {
	boldRed := color.New(color.FgRed, color.Bold)
	fmt.Fprintf(cmd.ErrOrStderr(), "\nerror: %s\n\n", boldRed.Sprint(err.Error()))
}

func logSuccessCmd(cmd cobra.Command, msg string) {
	fmt.Fprintln(cmd.OutOrStdout(), color.New(color.FgGreen).Sprint(msg))
}

func logUsageCmd(cmd cobra.Command, usage string) {
	fmt.Fprintf(cmd.OutOrStdout(), "\nusage: %s\n\n", color.New(color.FgBlue).Sprint(usage))
}
