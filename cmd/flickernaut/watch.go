package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/flickernaut"
	settingsevents "github.com/aretw0/flickernaut/pkg/adapters/lifecycle"
	"github.com/aretw0/flickernaut/pkg/core"
	"github.com/aretw0/flickernaut/pkg/notify"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow settings changes and offer to restart the file manager",
	Long: `Watch prints every change made to the entries or the submenu flag, by any
process. After a change, press Enter to restart the file manager.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session := openSession(
			flickernaut.WithWatch(true),
			flickernaut.WithWatcherErrorHandler(func(err error) {
				fmt.Fprintf(os.Stderr, "watcher stopped: %v\n", err)
				stop()
			}),
		)
		defer session.Close()

		banner := &terminalBanner{}
		session.Notifier.Register(banner)

		source := settingsevents.NewSource(session.Settings, core.KeyApplications, core.KeySubmenu)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to follow settings", err)
		}
		go func() {
			for ev := range source.Events() {
				records, err := session.Store.Load(ctx)
				if err != nil {
					fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
					continue
				}
				fmt.Printf("%s (%d entries)\n", ev, len(records))
				session.Notifier.NotifyAll()
			}
		}()

		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				banner.click()
			}
		}()

		fmt.Println("Watching settings, press Ctrl+C to stop.")
		<-ctx.Done()
	},
}

// terminalBanner is a notify.Observer printing to the terminal.
type terminalBanner struct {
	mu  sync.Mutex
	ack func()
}

func (b *terminalBanner) Show(p notify.Prompt) {
	fmt.Printf("%s Press Enter to %s.\n", p.Title, p.Action)
}

func (b *terminalBanner) Hide() {
	fmt.Println("Restarted.")
}

func (b *terminalBanner) Arm(ack func()) func() {
	b.mu.Lock()
	b.ack = ack
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		b.ack = nil
		b.mu.Unlock()
	}
}

func (b *terminalBanner) click() {
	b.mu.Lock()
	ack := b.ack
	b.mu.Unlock()
	if ack != nil {
		ack()
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
