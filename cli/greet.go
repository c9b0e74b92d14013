package cli

import (
	"fmt"
	"strings"

	"github.com/samrai/greetsite/core"
	"github.com/urfave/cli/v2"
)

var GreetCommand = &cli.Command{
	Name:      "greet",
	Usage:     "Print the greeting for a name",
	ArgsUsage: "NAME",
	Action: func(c *cli.Context) error {
		name := strings.Join(c.Args().Slice(), " ")

		greeting, err := core.Greet(name)
		if err != nil {
			return cli.Exit(fmt.Sprintf("❌ %v", err), 1)
		}

		fmt.Println(greeting)
		return nil
	},
}
