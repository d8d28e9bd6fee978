package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List violations, optionally filtered by plate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer app.controller.Close()

			if err := app.load(cmd.Context()); err != nil {
				return err
			}
			app.controller.UpdateSearchTerm(search)
			return app.renderList(app.controller.FilteredViolations(), search)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive plate substring")
	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single violation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer app.controller.Close()

			if err := app.load(cmd.Context()); err != nil {
				return err
			}
			v, ok := app.controller.Violation(args[0])
			if !ok {
				return errors.New("Violation not found")
			}
			return app.renderDetail(v)
		},
	}
}

func newToggleCmd(opts *options) *cobra.Command {
	var resolved bool
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip the resolved status of a violation",
		Long:  "Flip the resolved status of a violation, or set it explicitly with --resolved.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer app.controller.Close()

			if err := app.load(cmd.Context()); err != nil {
				return err
			}
			id := args[0]
			v, ok := app.controller.Violation(id)
			if !ok {
				return errors.New("Violation not found")
			}

			desired := !v.Resolved
			if cmd.Flags().Changed("resolved") {
				desired = resolved
			}
			_ = app.controller.ToggleViolationStatus(cmd.Context(), id, desired)
			if msg := app.controller.ErrorMessage(); msg != "" {
				return errors.New(msg)
			}

			v, _ = app.controller.Violation(id)
			fmt.Fprintf(app.out, "%s %s is now %s\n", v.ID, v.Car.Plate, statusLabel(v.Resolved))
			return nil
		},
	}
	cmd.Flags().BoolVar(&resolved, "resolved", false, "Status to set instead of flipping the current one")
	return cmd
}

func newWatchCmd(opts *options) *cobra.Command {
	var (
		search   string
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the service and print the list whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer app.controller.Close()
			app.interval = interval
			app.controller.UpdateSearchTerm(search)

			done := make(chan bool, 1)
			go func() {
				<-cmd.Context().Done()
				done <- true
			}()
			app.monitor(cmd.Context(), done, func() {
				_ = app.renderList(app.controller.FilteredViolations(), search)
			})
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive plate substring")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Time between polls")
	return cmd
}
