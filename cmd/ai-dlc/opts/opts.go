package opts

import (
	"io"
	"os"

	"github.com/walteh/aidlc/pkg/catalog"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Debug bool

	// Stdout receives user facing output, Stderr receives logs and errors
	Stdout io.Writer
	Stderr io.Writer

	// Catalog loads the provider templates
	Catalog func() (*catalog.Catalog, error)
	// Getwd returns the directory templates are scaffolded into
	Getwd func() (string, error)
}

// NewRootOpts returns options backed by the process and the bundled templates
func NewRootOpts() *RootOpts {
	return &RootOpts{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Catalog: catalog.Default,
		Getwd:   os.Getwd,
	}
}
