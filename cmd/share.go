package cmd

import (
	"errors"
	"fmt"

	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"
)

var shareCmd = &cobra.Command{
	Use:   "share [url]",
	Short: "Print a QR code linking to your portfolio",
	Long: `share prints a scannable QR code for url, or for the GitHub profile
in your portfolio when no url is given. Handy next to "termfolio serve":

  termfolio share ssh://portfolio.example.com:2222`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := ""
		if len(args) == 1 {
			url = args[0]
		} else if activeProfile != nil {
			url = activeProfile.GitHub
		}
		if url == "" {
			return errors.New("nothing to share: pass a url or set a GitHub profile with 'termfolio setup'")
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, url)
		qrterminal.GenerateHalfBlock(url, qrterminal.L, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
}
