package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

var ledgerTables = []string{
	"events",
	"quests",
	"souls",
	"completion_records",
	"wallet_links",
	"journal_entries",
	"principal_credentials",
}

func main() {
	var dsn, out string
	flag.StringVar(&dsn, "dsn", os.Getenv("SOUL_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or SOUL_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
	})
	g.UseDB(db)
	// Counters are NUMERIC(20,0) so the full uint64 range fits.
	g.WithDataTypeMap(map[string]func(gorm.ColumnType) string{
		"numeric": func(gorm.ColumnType) string { return "uint64" },
		"jsonb":   func(gorm.ColumnType) string { return "datatypes.JSON" },
	})
	g.WithImportPkgPath("gorm.io/datatypes")
	for _, table := range ledgerTables {
		g.GenerateModel(table)
	}
	g.Execute()

	fmt.Printf("generated %d gorm models at %s\n", len(ledgerTables), out)
}
