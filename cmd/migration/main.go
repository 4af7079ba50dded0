package main

import (
	"bufio"
	"flag"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Applies a SQL script to the SQLite database file, statement by statement.
//
// Usage example on the command line:
// > go run main.go -db=kc-backend.db -file=../../scripts/database.sql
func main() {
	dbPtr := flag.String("db", "kc-backend.db", "the SQLite database file")
	filePtr := flag.String("file", "database.sql", "the sql file to execute")
	flag.Parse()

	db := sqlx.MustOpen("sqlite", *dbPtr)
	defer db.Close()

	readFile, err := os.Open(*filePtr) // nosemgrep
	if err != nil {
		panic(err)
	}
	defer readFile.Close()

	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	for fileScanner.Scan() {
		line := fileScanner.Text()
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			sql := builder.String()
			db.MustExec(sql)
			builder = strings.Builder{}
		}
	}
}
