// Example: create a table, insert rows in a transaction and fetch them back
// with sqlx. Allows canceling the query by Ctrl+C.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/goturso/goturso"
	"github.com/jmoiron/sqlx"
)

type track struct {
	ID     int64  `db:"id"`
	Title  string `db:"title"`
	Rating int64  `db:"rating"`
}

// run is an actual main
func run(dsn string) {
	// handler interrupt signal
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	defer close(c)
	signal.Notify(c, os.Interrupt)
	defer func() {
		signal.Stop(c)
	}()
	go func() {
		select {
		case <-c:
			cancel()
		case <-ctx.Done():
		}
	}()

	db, err := sqlx.Open("turso", dsn)
	if err != nil {
		log.Fatalf("failed to connect. err: %v", err)
	}
	defer db.Close()

	if _, err = db.ExecContext(ctx,
		"CREATE TABLE IF NOT EXISTS tracks (id INTEGER PRIMARY KEY, title TEXT, rating INTEGER)"); err != nil {
		log.Fatalf("failed to create table. err: %v", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		log.Fatalf("failed to begin a transaction. err: %v", err)
	}
	for i := 1; i <= 10; i++ {
		if _, err = tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO tracks (id, title, rating) VALUES (?, ?, ?)",
			i, fmt.Sprintf("track %v", i), i%6); err != nil {
			tx.Rollback()
			log.Fatalf("failed to insert a row. err: %v", err)
		}
	}
	if err = tx.Commit(); err != nil {
		log.Fatalf("failed to commit. err: %v", err)
	}

	var tracks []track
	if err = db.SelectContext(ctx, &tracks,
		"SELECT id, title, rating FROM tracks WHERE rating >= ? ORDER BY id", 3); err != nil {
		log.Fatalf("failed to run a query. err: %v", err)
	}
	for _, tr := range tracks {
		fmt.Printf("data: %v, %v, %v\n", tr.ID, tr.Title, tr.Rating)
	}
	fmt.Printf("Congrats! You have successfully fetched %v rows with Turso!\n", len(tracks))
}

func main() {
	// get environment variables
	env := func(k string, required bool) string {
		if value := os.Getenv(k); value != "" {
			return value
		}
		if required {
			log.Fatalf("%v environment variable is not set.", k)
		}
		return ""
	}

	cfg := &goturso.Config{
		Host:      env("TURSO_TEST_HOST", true),
		AuthToken: env("TURSO_TEST_AUTH_TOKEN", false),
	}
	dsn, err := goturso.DSN(cfg)
	if err != nil {
		log.Fatalf("failed to create DSN from Config: %v, err: %v", cfg, err)
	}
	run(dsn)
}
