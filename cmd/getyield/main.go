package main

import (
	"os"

	"github.com/hist-tools/getyield/internal/cli"
)

// main はgetyieldのエントリーポイント
// 終了コードの決定はすべてcli.App側で行う
func main() {
	app := cli.NewApp()
	exitCode := app.Run(os.Args)
	os.Exit(exitCode)
}
