package config

const (
	// GormEngineMySQL selects the MySQL gorm driver.
	GormEngineMySQL = "mysql"
	// GormEnginePostgres selects the PostgreSQL gorm driver.
	GormEnginePostgres = "postgres"
	// GormEngineSQLite selects the pure Go SQLite gorm driver.
	GormEngineSQLite = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	Path       string // sqlite database file
	GormEngine string
	Debug      bool // log every SQL statement
}
