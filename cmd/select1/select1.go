package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"

	_ "github.com/goturso/goturso"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	defer func() {
		signal.Stop(c)
		cancel()
	}()
	go func() {
		<-c
		log.Println("Caught signal, canceling...")
		cancel()
	}()

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

	host := env("TURSO_TEST_HOST", true)
	token := env("TURSO_TEST_AUTH_TOKEN", false)

	dsn := fmt.Sprintf("turso://%v", host)
	if token != "" {
		dsn += "?authtoken=" + token
	}
	db, err := sql.Open("turso", dsn)
	if err != nil {
		log.Fatalf("failed to connect. %v, err: %v", dsn, err)
	}
	defer db.Close()
	query := "SELECT 1"
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		log.Fatalf("failed to run a query. %v, err: %v", query, err)
	}
	defer rows.Close()
	var v int
	for rows.Next() {
		err := rows.Scan(&v)
		if err != nil {
			log.Fatalf("failed to get result. err: %v", err)
		}
		if v != 1 {
			log.Fatalf("failed to get 1. got: %v", v)
		}
	}
	if rows.Err() != nil {
		fmt.Printf("ERROR: %v\n", rows.Err())
		return
	}
	fmt.Printf("Congrats! You have successfully run %v with Turso!\n", query)
}
