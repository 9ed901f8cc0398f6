package main

import (
	"fmt"
	"os"

	"github.com/warp/salary-engine/cli"
)

func main() {
	if err := cli.NewRootCommand(nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
