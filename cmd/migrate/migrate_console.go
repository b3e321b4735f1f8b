// cmd/migrate/migrate_console.go
package main

import (
	"fmt"
	"log"
	"time"

	"Admin-Console/internal/app/ds"
	"Admin-Console/internal/app/dsn"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var consoleTables = []string{"view_navigations", "export_records"}

func main() {
	// Параметры подключения из .env
	_ = godotenv.Load()

	fmt.Println("=== Console Migration ===")

	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	startTime := time.Now()

	// 1. Проверяем подключение
	fmt.Println("1. Checking database connection...")
	var result int
	db.Raw("SELECT 1").Scan(&result)
	if result == 1 {
		fmt.Println("   ✓ Database connection successful")
	} else {
		log.Fatal("   ✗ Database connection failed")
	}

	// 2. Создаем таблицы шлюза
	fmt.Println("2. Creating console tables...")
	if err := db.AutoMigrate(&ds.ViewNavigation{}, &ds.ExportRecord{}); err != nil {
		log.Fatal("Failed to migrate console tables:", err)
	}
	for _, table := range consoleTables {
		fmt.Printf("   ✓ Table '%s' created/verified\n", table)
	}

	// 3. Индексы и статистика
	fmt.Println("3. Creating indexes...")
	idxStart := time.Now()
	if err := ds.CreateConsoleIndexes(db); err != nil {
		log.Printf("   ⚠️  Indexes: %v", err)
	} else {
		fmt.Printf("   ✓ Indexes created in %v\n", time.Since(idxStart))
	}

	// 4. Проверяем данные
	fmt.Println("4. Checking data...")
	for _, table := range consoleTables {
		var count int64
		db.Table(table).Count(&count)
		fmt.Printf("   %s: %d rows\n", table, count)
	}

	// 5. Показываем созданные индексы
	fmt.Println("5. Created indexes:")
	var indexes []struct {
		TableName string
		IndexName string
	}

	db.Raw(`
		SELECT 
			tablename as table_name,
			indexname as index_name
		FROM pg_indexes 
		WHERE schemaname = 'public' 
		AND tablename IN ?
		ORDER BY tablename, indexname
	`, consoleTables).Scan(&indexes)

	if len(indexes) == 0 {
		fmt.Println("   No indexes found")
	} else {
		for _, idx := range indexes {
			fmt.Printf("   - %s.%s\n", idx.TableName, idx.IndexName)
		}
	}

	fmt.Println("\n=== Migration Completed ===")
	fmt.Printf("Total time: %v\n", time.Since(startTime))
}
