// Command stockcheck detects changes to stock Breath of the Wild files.
package main

import "github.com/nxmods/stockcheck/internal/cli"

func main() {
	cli.Execute()
}
