package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/crm-manager/internal/apiclient"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

// watcher is a view-model that reloads itself on change events.
type watcher interface {
	Watch(ctx context.Context, events <-chan realtime.Event, onReload func())
}

// followTable subscribes to table and calls render after every reload until the
// command is interrupted.
func followTable(cmd *cobra.Command, c *apiclient.Client, table string, vm watcher, render func() error) error {
	ctx := cmd.Context()
	events, err := c.Subscribe(ctx, table)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "following %s (Ctrl+C to stop)\n", table)

	vm.Watch(ctx, events, func() {
		fmt.Fprintln(cmd.OutOrStdout())
		if err := render(); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		}
	})

	if ctx.Err() != nil {
		return nil
	}
	return errors.New("change feed closed")
}
