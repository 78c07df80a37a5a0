package main

import (
	"chat-mirror/infrastructure/mirror"
	"chat-mirror/infrastructure/storage"
	"chat-mirror/projection"
	"chat-mirror/services"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	LogLevel           string `env:"LOG_LEVEL,default=WARN"`
	BadgerFilepath     string `env:"BADGER_FILEPATH"`
	MirrorDriver       string `env:"MIRROR_DRIVER,default=postgres"`
	MirrorDSN          string `env:"MIRROR_DSN,required=true"`
	ConditionalPointer bool   `env:"CONDITIONAL_POINTER,default=true"`
}

func main() {
	chatID := flag.Uint("chat", 0, "Chat to reconcile, 0 for every chat")
	dryRun := flag.Bool("dry-run", false, "Only report the drift")
	flag.Parse()

	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if config.BadgerFilepath == "" {
		config.BadgerFilepath = database.DefaultPath
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	// The store is only read: the server may keep running and holding the lock.
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	store := storage.NewDocumentStore(db, logger)

	m, err := mirror.Open(config.MirrorDriver, config.MirrorDSN, logger)
	if err != nil {
		log.Fatalf("Failed to open mirror: %v", err)
	}
	defer m.Close()

	projector := projection.NewProjector(store, m, logger, projection.WithConditionalPointer(config.ConditionalPointer))
	svc := services.NewReconcileService(store, m, projector, logger)

	ctx := context.Background()
	var reports []services.Report
	if *chatID == 0 {
		reports, err = svc.ReconcileAll(ctx, *dryRun)
	} else {
		var report services.Report
		report, err = svc.Reconcile(ctx, *chatID, *dryRun)
		reports = append(reports, report)
	}
	render(os.Stdout, reports)
	if err != nil {
		log.Fatal(err)
	}
}

func render(w io.Writer, reports []services.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Chat", "Documents", "Rows", "Missing", "Orphans", "Stale", "Pointer", "State"})
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	drifted := 0
	for _, r := range reports {
		table.Append([]string{
			strconv.FormatUint(uint64(r.ChatID), 10),
			strconv.Itoa(r.Documents),
			strconv.Itoa(r.Rows),
			strconv.Itoa(len(r.Missing)),
			strconv.Itoa(len(r.Orphans)),
			strconv.Itoa(len(r.StaleStatus)),
			pointerState(r),
			state(r),
		})
		if !r.InSync() {
			drifted++
		}
	}
	table.Render()
	fmt.Fprintf(w, "\n%d chats, %d drifted\n", len(reports), drifted)
}

func pointerState(r services.Report) string {
	if r.PointerOK {
		return "ok"
	}
	return "stale"
}

func state(r services.Report) string {
	switch {
	case r.InSync():
		return color.Green.Sprint("IN SYNC")
	case r.Repaired:
		return color.Yellow.Sprint("REPAIRED")
	default:
		return color.Red.Sprint("DRIFT")
	}
}
