package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"salespoint/cmd"
	"salespoint/database"

	log "github.com/sirupsen/logrus"
)

const usage = `usage: salespoint [command]

commands:
  (none)                 start the HTTP API and, when DISCORD_TOKEN is set, the Discord bot
  migrate up             apply pending record-store migrations
  migrate down [steps]   roll back the given number of migrations (default 1)
  migrate status         print the current migration version
  help                   show this message

migrations only apply to STORAGE_BACKEND=postgres and read DATABASE_URL / DATABASE_NAME`

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := handleMigrationCommand(os.Args[2:]); err != nil {
				log.WithError(err).Fatal("Migration failed")
			}
			return
		case "help", "-h", "--help":
			fmt.Println(usage)
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", os.Args[1], usage)
			os.Exit(2)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("Received shutdown signal, draining HTTP and Discord sessions")
	}()

	if err := cmd.Run(ctx); err != nil {
		log.WithError(err).Fatal("salespoint stopped with an error")
	}
}

func handleMigrationCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing migrate subcommand\n\n%s", usage)
	}

	switch args[0] {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migrate subcommand %q\n\n%s", args[0], usage)
	}
}
