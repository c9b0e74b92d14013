package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/samrai/greetsite/core"
	"github.com/segmentio/encoding/json"
	"github.com/urfave/cli/v2"
)

type routeInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Page string `json:"page"`
}

type projectInfo struct {
	OutputDir    string      `json:"outputDir"`
	PublicDir    string      `json:"publicDir"`
	ViewsDir     string      `json:"viewsDir"`
	GreetingName string      `json:"greetingName"`
	DebugHeaders bool        `json:"debugHeaders"`
	DebugLogs    bool        `json:"debugLogs"`
	Routes       []routeInfo `json:"routes"`
	Fragments    []string    `json:"fragments"`
}

var InfoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print configuration, routes and shared fragments",
	Flags: []cli.Flag{
		configFlag(),
		&cli.BoolFlag{Name: "json", Usage: "print as JSON"},
	},
	Action: func(c *cli.Context) error {
		config := core.LoadConfig(c.String("config"))
		router := core.NewPageRouter(*config, core.RuntimeContext{
			Env:    "dev",
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		})

		fragments, err := router.Composer().Fragments()
		if err != nil {
			return fmt.Errorf("failed to list fragments: %w", err)
		}

		info := projectInfo{
			OutputDir:    config.OutputDir,
			PublicDir:    config.PublicDir,
			ViewsDir:     config.ViewsDir,
			GreetingName: config.GreetingName,
			DebugHeaders: config.DebugHeaders,
			DebugLogs:    config.DebugLogs,
			Fragments:    fragments,
		}
		for _, route := range router.Routes() {
			info.Routes = append(info.Routes, routeInfo{Name: route.Name, Path: route.Path, Page: route.Page})
		}

		if c.Bool("json") {
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		views := info.ViewsDir
		if views == "" {
			views = "(embedded)"
		}

		fmt.Println("📁 Output Directory:", info.OutputDir)
		fmt.Println("🌐 Public Directory:", info.PublicDir)
		fmt.Println("🖼️  Views:", views)
		fmt.Println("👋 Greeting Name:", info.GreetingName)
		fmt.Println("🔁 Debug Headers Enabled:", info.DebugHeaders)
		fmt.Println("🔁 Debug Logs Enabled:", info.DebugLogs)
		fmt.Println()

		fmt.Println("🗂️  Routes Found:", len(info.Routes))
		for _, route := range info.Routes {
			fmt.Printf("   %-16s %-12s pages/%s.html\n", route.Name, route.Path, route.Page)
		}
		fmt.Println("📦 Fragments Found:", len(info.Fragments))

		return nil
	},
}
