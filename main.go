// main is the entry point for the voltview CLI.
package main

import (
	"github.com/huangsam/voltview/cmd"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/internal/iocache"
)

func main() {
	defer iocache.CloseStore()
	if err := cmd.Execute(); err != nil {
		iocache.CloseStore()
		contract.LogFatal("Command failed", err)
	}
}
