package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/olekukonko/tablewriter"
)

// Dumps the stored chat messages of a badger directory as a table.
// Usage: go run ./tools -db ./data -prefix msg:
func main() {
	dbPath := flag.String("db", "./data", "Path to badger DB")
	// Default to "msg:" to avoid hitting the msgid: secondary index
	prefix := flag.String("prefix", "msg:", "Prefix to scan")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Group", "Sender", "Status", "Timestamp", "Content"})
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

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()

			// Skip the secondary id index explicitly
			if strings.HasPrefix(string(item.Key()), "msgid:") {
				continue
			}

			err := item.Value(func(v []byte) error {
				var record struct {
					ID      string    `cbor:"id"`
					GroupID string    `cbor:"group_id"`
					Sender  string    `cbor:"sender"`
					Content string    `cbor:"content"`
					Status  string    `cbor:"status"`
					At      time.Time `cbor:"at"`
				}
				if err := cbor.Unmarshal(v, &record); err != nil {
					// Log and keep scanning instead of stopping the dump
					fmt.Printf("Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}

				content := record.Content
				if len(content) > 48 {
					content = content[:48] + "..."
				}

				table.Append([]string{
					string(item.Key()),
					record.GroupID,
					record.Sender,
					record.Status,
					record.At.Format(time.RFC3339),
					content,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	return badger.Open(opts)
}
