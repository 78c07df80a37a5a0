package main

import (
	"chat-mirror/domain"
	"chat-mirror/infrastructure/storage"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	collection := flag.String("collection", domain.MessagesCollection, "Collection to scan")
	changes := flag.Bool("changes", false, "Print the change log instead of the documents")
	from := flag.Uint64("from", 0, "Print changes after this sequence")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()
	store := storage.NewDocumentStore(db, slog.Default())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	if *changes {
		cursor, err := store.LoadCursor(*collection)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("projected up to seq %d\n", cursor)
		table.SetHeader([]string{"Seq", "Type", "Document", "Fields"})
		events, err := store.Changes(*collection, *from)
		if err != nil {
			log.Fatal(err)
		}
		for _, evt := range events {
			table.Append([]string{strconv.FormatUint(evt.Seq, 10), string(evt.Type), shortID(evt.DocumentID()), describe(evt.Document.Fields)})
		}
	} else {
		table.SetHeader([]string{"Document", "Fields"})
		docs, err := store.Query(context.Background(), *collection, domain.Query{OrderBy: domain.FieldCreatedAt})
		if err != nil {
			log.Fatal(err)
		}
		for _, doc := range docs {
			table.Append([]string{shortID(doc.ID), describe(doc.Fields)})
		}
	}
	table.Render()
}

// shortID keeps the first 8 characters of a document id for readability.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func describe(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if k == domain.FieldCreatedAt {
			if t, err := domain.NormalizeTimestamp(v); err == nil {
				v = t.Format("2006-01-02 15:04:05")
			}
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, " ")
}
