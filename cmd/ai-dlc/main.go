package main

import (
	"context"
	"os"

	"github.com/walteh/aidlc/cmd/ai-dlc/opts"
)

func main() {
	os.Exit(run(context.Background(), opts.NewRootOpts(), os.Args[1:]))
}
