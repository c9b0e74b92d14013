// Package resources embeds the starter project: the default views rendered by
// the server and the files written by `greetsite init`.
package resources

import (
	"embed"
	"io/fs"
)

//go:embed all:starter
var Starter embed.FS

const StarterRoot = "starter"

// Views returns the embedded view tree (layouts, pages and fragments).
func Views() fs.FS {
	sub, err := fs.Sub(Starter, StarterRoot+"/views")
	if err != nil {
		panic(err)
	}
	return sub
}
