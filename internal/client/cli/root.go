package cli

import (
	"bufio"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the newsctl command tree reading prompts from in and
// writing output to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	app := &App{reader: bufio.NewReader(in), out: out}

	root := &cobra.Command{
		Use:           "newsctl",
		Short:         "newsroom CLI",
		Long:          "Command-line client for the newsroom news API.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&app.configPath, "config", "c", "", "path to JSON config file (default $NEWSCTL_CONFIG)")
	pf.StringVar(&app.serverURL, "server", "", "base URL of the newsroom API")
	pf.StringVar(&app.tokenPath, "token-file", "", "where the access token is stored")
	pf.DurationVar(&app.timeout, "timeout", 0, "request timeout")

	root.AddCommand(
		newVersionCmd(),
		app.newRegisterCmd(),
		app.newLoginCmd(),
		app.newLogoutCmd(),
		app.newMeCmd(),
		app.newNewsCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of newsctl",
		Args:  cobra.NoArgs,
		// version needs no configuration.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("%s\n", BuildVersion)
		},
	}
}
