// Copyright (c) 2019 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open2b/nodegen/fns"
	"github.com/open2b/nodegen/helpers"
)

// settleDelay is the time to wait, after a change, for other changes
// before rendering again.
const settleDelay = 100 * time.Millisecond

func newWatchCmd() *cobra.Command {
	o := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Render a template every time it or a schema file changes",
		Long: `Renders a template like the render command and renders it again every
time the template or a schema file changes, until interrupted.

Errors occurred after the first rendering are logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return o.watch(ctx, cmd.OutOrStdout(), helpers.Default(), nil)
		},
	}
	o.addFlags(cmd)
	return cmd
}

// watch renders the template and renders it again on every change of the
// template or of a schema file, until ctx is done. If rendered is not nil,
// a value is sent on it after every successful rendering.
func (o *renderOptions) watch(ctx context.Context, stdout io.Writer, f *fns.Fns, rendered chan<- struct{}) error {
	w, err := newFileWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	err = w.Watch(append([]string{o.template}, o.schemas...)...)
	if err != nil {
		return err
	}
	err = o.run(stdout, f)
	if err != nil {
		return err
	}
	notify(ctx, rendered)
	logger.Info("watching", zap.String("template", o.template), zap.Strings("schemas", o.schemas))

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Changed():
			if !ok {
				return nil
			}
			logger.Debug("file changed", zap.String("path", name))
			timer = time.After(settleDelay)
		case err := <-w.Errors:
			logger.Error("watcher error", zap.Error(err))
		case <-timer:
			timer = nil
			if err := o.run(stdout, f); err != nil {
				logger.Error("render failed", zap.Error(err))
				continue
			}
			notify(ctx, rendered)
		}
	}
}

func notify(ctx context.Context, c chan<- struct{}) {
	if c == nil {
		return
	}
	select {
	case c <- struct{}{}:
	case <-ctx.Done():
	}
}
