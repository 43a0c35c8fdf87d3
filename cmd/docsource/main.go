// Command docsource turns a manifest of virtual files into a document tree.
package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsource/cmd/docsource/commands"
	derrors "git.home.luguber.info/inful/docsource/internal/errors"
	"git.home.luguber.info/inful/docsource/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("docsource"),
		kong.Description("Build document trees from virtual file manifests."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := commands.NewGlobal()
	if err := parser.Run(global, cli); err != nil {
		derrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
