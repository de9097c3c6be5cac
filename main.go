//go:generate mockery
package main

import "github.com/omniallc/edgar13f/cmd"

var version = "dev"

func main() {
	cmd.Execute(version)
}
