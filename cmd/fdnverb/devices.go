package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-fdnverb/internal/audio"
)

func (a *app) devicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List audio devices for the live command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if err := audio.Initialize(); err != nil {
				return err
			}
			defer func() {
				if terr := audio.Terminate(); err == nil {
					err = terr
				}
			}()
			return audio.ListDevices(a.stdout)
		},
	}
}
