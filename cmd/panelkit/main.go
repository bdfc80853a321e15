// Command panelkit builds harmonized indicator panels from CSV sources.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "panelkit:", err)
		os.Exit(1)
	}
}
