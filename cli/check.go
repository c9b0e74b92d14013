package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/samrai/greetsite/core"
	"github.com/urfave/cli/v2"
)

var CheckCommand = &cli.Command{
	Name:  "check",
	Usage: "Validate that every route's page, layout and fragments render",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		config := core.LoadConfig(c.String("config"))
		router := core.NewPageRouter(*config, core.RuntimeContext{
			Env:    "dev",
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		})

		var failed bool
		for _, route := range router.Routes() {
			if _, err := router.Composer().Parse(route.Page); err != nil {
				failed = true
				fmt.Printf("❌ %s → parse error: %v\n", route.Path, err)
				continue
			}

			req, err := http.NewRequest(http.MethodGet, route.Path, nil)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := router.Render(&buf, route, req); err != nil {
				failed = true
				fmt.Printf("❌ %s → exec error: %v\n", route.Path, err)
				continue
			}

			fmt.Printf("✅ %s (%s)\n", route.Path, route.Name)
		}

		if failed {
			return cli.Exit("some templates failed to compile", 1)
		}

		fmt.Println("✅ All templates validated successfully.")
		return nil
	},
}
