package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"

	"github.com/nftmarket/nftmarket-daemon/internal/config"
	"github.com/nftmarket/nftmarket-daemon/internal/core/ports"
	dbbadger "github.com/nftmarket/nftmarket-daemon/internal/infrastructure/storage/db/badger"
)

var datadirFlag = cli.StringFlag{
	Name:  "datadir",
	Usage: "data directory of the daemon to inspect",
	Value: btcutil.AppDataDir("nftmarket-daemon", false),
}

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "nftmarket operator CLI"
	app.Usage = "Command line interface for marketd daemon operators"
	app.Flags = []cli.Flag{&datadirFlag}
	app.Commands = append(
		app.Commands,
		&listsales,
		&listauctions,
		&listoffers,
		&settings,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func openRepoManager(ctx *cli.Context) (ports.RepoManager, error) {
	dbDir := filepath.Join(ctx.String("datadir"), config.DbLocation)
	return dbbadger.NewRepoManager(dbDir, nil, "operator")
}

func printJSON(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(b))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[market] %v\n", err)
	os.Exit(1)
}
