package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/flickernaut"
	"github.com/aretw0/flickernaut/pkg/launch"
)

var (
	menuMimes []string
	menuRun   string
)

var menuCmd = &cobra.Command{
	Use:   "menu [paths...]",
	Short: "Preview the menu entries offered for a selection",
	Long: `Menu prints the commands the context menu would offer for the given
paths. Mime types are not sniffed; pass one --mime per file to exercise the
application filters. With --run the invocation with that id is started.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		session := openSession(flickernaut.WithReadOnly(true))
		defer session.Close()

		records, err := session.Store.Load(ctx)
		if err != nil {
			fatal("Failed to load records", err)
		}
		submenu, err := session.Store.Submenu(ctx)
		if err != nil {
			fatal("Failed to read submenu flag", err)
		}

		sel := launch.Selection{MimeTypes: menuMimes}
		for _, p := range args {
			info, err := os.Stat(p)
			if err != nil {
				fatal("Failed to inspect selection", err)
			}
			if info.IsDir() {
				sel.Folders++
			} else {
				sel.Files++
			}
		}

		planner := launch.NewPlanner(slog.Default())
		var offered []launch.Invocation
		for _, rec := range records {
			if !planner.Eligible(rec, sel) {
				continue
			}
			offered = append(offered, planner.Plan(rec, args)...)
		}

		if menuRun != "" {
			for _, inv := range offered {
				if inv.ID == menuRun {
					if err := launch.Start(inv, slog.Default()); err != nil {
						fatal("Failed to launch", err)
					}
					return
				}
			}
			fatal("Failed to launch", fmt.Errorf("no menu entry %s for this selection", menuRun))
		}

		indent := ""
		if submenu && len(offered) > 0 {
			fmt.Println("Open With...")
			indent = "  "
		}
		for _, inv := range offered {
			fmt.Printf("%s%s\t[%s]\t%s\n", indent, inv.Label, inv.ID, strings.Join(inv.Argv, " "))
		}
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.Flags().StringArrayVar(&menuMimes, "mime", nil, "Mime type of a selected file (repeatable)")
	menuCmd.Flags().StringVar(&menuRun, "run", "", "Start the entry with this id")
}
