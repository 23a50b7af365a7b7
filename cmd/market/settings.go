package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var settings = cli.Command{
	Name:   "settings",
	Usage:  "show the stored marketplace settings",
	Action: settingsAction,
}

func settingsAction(ctx *cli.Context) error {
	repoManager, err := openRepoManager(ctx)
	if err != nil {
		return err
	}
	defer repoManager.Close()

	stored, err := repoManager.SettingsRepository().GetSettings(
		context.Background(),
	)
	if err != nil {
		return err
	}
	printJSON(stored)

	return nil
}
