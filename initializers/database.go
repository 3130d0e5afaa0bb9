package initializers

import (
	"database/sql"
	"log"
	"os"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/lib/pq"
)

var DB *goqu.Database

// SQLDB is the raw connection, kept for the realtime listener which needs
// the DSN-level features goqu does not wrap.
var SQLDB *sql.DB

func ConnectDB() {
	dsn := os.Getenv("DB_URL")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	if err := db.Ping(); err != nil {
		log.Fatal("failed to reach database:", err)
	}

	SQLDB = db
	DB = goqu.New("postgres", db)
}
