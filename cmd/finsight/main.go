// Copyright 2026 Peter Edge
//
// All rights reserved.

package main

import (
	"context"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/finsightdev/finsight/cmd/finsight/internal/command/compare"
	"github.com/finsightdev/finsight/cmd/finsight/internal/command/config"
	"github.com/finsightdev/finsight/cmd/finsight/internal/command/snapshot"
)

func main() {
	appcmd.Main(context.Background(), newRootCommand("finsight"))
}

// newRootCommand creates the root finsight command with all sub-commands.
func newRootCommand(name string) *appcmd.Command {
	builder := appext.NewBuilder(name)
	return &appcmd.Command{
		Use:                 name,
		Short:               "Build financial insight reports from free public data sources",
		BindPersistentFlags: builder.BindRoot,
		SubCommands: []*appcmd.Command{
			snapshot.NewCommand("snapshot", builder),
			compare.NewCommand("compare", builder),
			config.NewCommand("config", builder),
		},
	}
}
