package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	greetcli "github.com/samrai/greetsite/cli"
	clilib "github.com/urfave/cli/v2"
)

func runApp(args []string) error {
	app := &clilib.App{
		Name:  "greetsite",
		Usage: "A server-rendered greeting site",
		Commands: []*clilib.Command{
			greetcli.DevCommand,
			greetcli.ProdCommand,
			greetcli.GreetCommand,
			greetcli.CheckCommand,
			greetcli.InfoCommand,
			greetcli.InitCommand,
			greetcli.BuildCommand,
		},
	}
	return app.Run(args)
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("ignoring .env: %v", err)
	}

	if err := runApp(os.Args); err != nil {
		log.Fatal(err)
	}
}
