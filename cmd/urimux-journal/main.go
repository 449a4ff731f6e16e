// ABOUTME: Inspector CLI for the urimux coordination journal.
// ABOUTME: Usage: urimux-journal [-db journal.db] [-limit 20]

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/2389/urimux/internal/journal"
)

func main() {
	dbPath := flag.String("db", defaultDBPath(), "journal database path")
	limit := flag.Int("limit", 20, "maximum number of records to show")
	flag.Parse()

	if err := run(*dbPath, *limit); err != nil {
		log.Fatal(err)
	}
}

func defaultDBPath() string {
	if p := os.Getenv("URIMUX_JOURNAL"); p != "" {
		return p
	}
	return "urimux-journal.db"
}

func run(dbPath string, limit int) error {
	j, err := journal.Open(dbPath)
	if err != nil {
		return err
	}
	defer j.Close()

	records, err := j.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		color.HiBlack("journal is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tKIND\tDETAIL")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			r.RecordedAt.Local().Format("15:04:05.000"),
			kindTag(r.Kind),
			detail(r),
		)
	}
	return w.Flush()
}

func kindTag(kind journal.RecordKind) string {
	switch kind {
	case journal.KindPeerRegistered:
		return color.CyanString("peer")
	case journal.KindProjection:
		return color.GreenString("proj")
	case journal.KindReleaseRequested:
		return color.YellowString("release")
	default:
		return string(kind)
	}
}

func detail(r journal.Record) string {
	switch r.Kind {
	case journal.KindPeerRegistered:
		return fmt.Sprintf("%s (%s)", r.PeerID, r.PeerName)
	case journal.KindProjection:
		focused := r.FocusedURI
		if focused == "" {
			focused = "(no focus)"
		}
		return fmt.Sprintf("%s=%v uri=%s self=%v owner=%s",
			r.ContextKey, r.OwnedByOther, focused, r.OwnedBySelf, r.OwningPeer)
	case journal.KindReleaseRequested:
		return r.ReleasedURI
	default:
		return ""
	}
}
