// Скрипт сброса и инициализации БД.
// Запуск: go run scripts/reset_db.go

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

func main() {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Fatal("DATABASE_URL is required")
	}

	fmt.Println("Connecting to database...")
	fmt.Printf("Host: %s\n", extractHost(connStr))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close(ctx)

	fmt.Println("Connected successfully!")

	commands := []string{
		// ЧАСТЬ 1: ПОЛНАЯ ОЧИСТКА БД
		"DROP TABLE IF EXISTS audio_jobs CASCADE",
		"DROP TABLE IF EXISTS favorites CASCADE",
		"DROP TABLE IF EXISTS property_contacts CASCADE",
		"DROP TABLE IF EXISTS property_images CASCADE",
		"DROP TABLE IF EXISTS property_details CASCADE",
		"DROP TABLE IF EXISTS properties CASCADE",
		"DROP TABLE IF EXISTS property_locations CASCADE",
		"DROP TABLE IF EXISTS cities CASCADE",
		"DROP TABLE IF EXISTS departments CASCADE",
		"DROP TABLE IF EXISTS countries CASCADE",
		"DROP TABLE IF EXISTS property_types CASCADE",
		"DROP TABLE IF EXISTS audio_categories CASCADE",
		"DROP TABLE IF EXISTS users CASCADE",

		// ЧАСТЬ 2: ГЕОГРАФИЧЕСКИЙ КАТАЛОГ
		`CREATE TABLE IF NOT EXISTS countries (
			id   BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_countries_name ON countries (LOWER(name))",

		`CREATE TABLE IF NOT EXISTS departments (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT   NOT NULL,
			country_id BIGINT NOT NULL REFERENCES countries (id)
		)`,
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_departments_name ON departments (LOWER(name), country_id)",

		`CREATE TABLE IF NOT EXISTS cities (
			id            BIGSERIAL PRIMARY KEY,
			name          TEXT   NOT NULL,
			department_id BIGINT NOT NULL REFERENCES departments (id)
		)`,
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_cities_name ON cities (LOWER(name), department_id)",

		// ЧАСТЬ 3: СПРАВОЧНИКИ
		`CREATE TABLE IF NOT EXISTS property_types (
			id   BIGSERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS audio_categories (
			id             BIGSERIAL PRIMARY KEY,
			code           TEXT UNIQUE NOT NULL,
			description    TEXT NOT NULL,
			ai_instruction TEXT NOT NULL
		)`,

		// ЧАСТЬ 4: ПОЛЬЗОВАТЕЛИ
		`CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name    TEXT NOT NULL,
			last_name     TEXT NOT NULL,
			birth_date    DATE,
			gender        TEXT,
			email         TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			phone         TEXT,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// ЧАСТЬ 5: ОБЪЯВЛЕНИЯ
		`CREATE TABLE IF NOT EXISTS property_locations (
			id           BIGSERIAL PRIMARY KEY,
			address      TEXT   NOT NULL,
			neighborhood TEXT,
			city_id      BIGINT NOT NULL REFERENCES cities (id),
			latitude     DOUBLE PRECISION NOT NULL,
			longitude    DOUBLE PRECISION NOT NULL,
			postal_code  TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS properties (
			id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			owner_user_id    UUID   NOT NULL REFERENCES users (id),
			property_type_id BIGINT NOT NULL REFERENCES property_types (id),
			location_id      BIGINT NOT NULL REFERENCES property_locations (id),
			title            TEXT   NOT NULL,
			description      TEXT   NOT NULL DEFAULT '',
			sale_price       BIGINT,
			rent_price       BIGINT,
			total_area       DOUBLE PRECISION,
			status           TEXT   NOT NULL DEFAULT 'borrador',
			visits           BIGINT NOT NULL DEFAULT 0,
			featured         BOOLEAN NOT NULL DEFAULT FALSE,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			published_at     TIMESTAMPTZ,
			expires_at       TIMESTAMPTZ,
			CONSTRAINT chk_properties_price CHECK (sale_price IS NOT NULL OR rent_price IS NOT NULL)
		)`,
		"CREATE INDEX IF NOT EXISTS idx_properties_status ON properties (status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_properties_owner ON properties (owner_user_id)",

		`CREATE TABLE IF NOT EXISTS property_details (
			id            BIGSERIAL PRIMARY KEY,
			property_id   UUID UNIQUE NOT NULL REFERENCES properties (id),
			bedrooms      INT,
			bathrooms     INT,
			other_details TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS property_images (
			id          BIGSERIAL PRIMARY KEY,
			property_id UUID NOT NULL REFERENCES properties (id),
			url         TEXT NOT NULL,
			position    INT  NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS idx_property_images_property ON property_images (property_id, position)",

		`CREATE TABLE IF NOT EXISTS property_contacts (
			id           BIGSERIAL PRIMARY KEY,
			property_id  UUID NOT NULL REFERENCES properties (id),
			name         TEXT NOT NULL,
			phone        TEXT,
			email        TEXT,
			contact_type TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS favorites (
			user_id     UUID NOT NULL REFERENCES users (id),
			property_id UUID NOT NULL REFERENCES properties (id),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, property_id)
		)`,

		// ЧАСТЬ 6: ОБРАБОТКА АУДИО
		`CREATE TABLE IF NOT EXISTS audio_jobs (
			id                    BIGSERIAL PRIMARY KEY,
			user_id               UUID NOT NULL REFERENCES users (id),
			audio_category_id     BIGINT REFERENCES audio_categories (id),
			property_id           UUID REFERENCES properties (id),
			audio_url             TEXT NOT NULL,
			status                TEXT NOT NULL DEFAULT 'pendiente',
			transcript            TEXT,
			generated_description TEXT,
			error_message         TEXT,
			created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS idx_audio_jobs_user ON audio_jobs (user_id, created_at DESC)",
	}

	fmt.Println("\nExecuting schema commands...")
	for i, cmd := range commands {
		_, err := conn.Exec(ctx, cmd)
		if err != nil {
			log.Printf("Warning on command %d: %v", i+1, err)
		} else {
			fmt.Printf("  [%d/%d] OK\n", i+1, len(commands))
		}
	}

	// ЧАСТЬ 7: СПРАВОЧНЫЕ ДАННЫЕ
	fmt.Println("\nInserting property types...")
	_, err = conn.Exec(ctx, `
		INSERT INTO property_types (name)
		VALUES ('Apartamento'), ('Casa'), ('Terreno'), ('Local Comercial'), ('Oficina'), ('Bodega')
		ON CONFLICT (name) DO NOTHING
	`)
	if err != nil {
		log.Printf("Warning inserting property types: %v", err)
	} else {
		fmt.Println("  Property types inserted OK")
	}

	fmt.Println("Inserting audio categories...")
	_, err = conn.Exec(ctx, `
		INSERT INTO audio_categories (code, description, ai_instruction)
		VALUES
			('venta', 'Descripción para venta', 'Redacta una descripción atractiva para la venta de esta propiedad, resaltando sus ventajas de inversión.'),
			('alquiler', 'Descripción para alquiler', 'Redacta una descripción atractiva para el alquiler de esta propiedad, resaltando comodidad y ubicación.'),
			('general', 'Descripción general', 'Redacta una descripción profesional de esta propiedad a partir del texto dictado.')
		ON CONFLICT (code) DO NOTHING
	`)
	if err != nil {
		log.Printf("Warning inserting audio categories: %v", err)
	} else {
		fmt.Println("  Audio categories inserted OK")
	}

	fmt.Println("Inserting geography seed...")
	_, err = conn.Exec(ctx, `
		WITH c AS (
			INSERT INTO countries (name) VALUES ('Honduras')
			ON CONFLICT DO NOTHING
			RETURNING id
		), cid AS (
			SELECT id FROM c
			UNION SELECT id FROM countries WHERE LOWER(name) = 'honduras'
		), d AS (
			INSERT INTO departments (name, country_id)
			SELECT x.name, cid.id
			FROM (VALUES ('Francisco Morazán'), ('Cortés'), ('Atlántida')) AS x(name), cid
			ON CONFLICT DO NOTHING
			RETURNING id, name
		)
		INSERT INTO cities (name, department_id)
		SELECT x.city, d.id
		FROM (VALUES
			('Tegucigalpa', 'Francisco Morazán'),
			('San Pedro Sula', 'Cortés'),
			('La Ceiba', 'Atlántida')
		) AS x(city, dept)
		JOIN d ON d.name = x.dept
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		log.Printf("Warning inserting geography: %v", err)
	} else {
		fmt.Println("  Geography inserted OK")
	}

	// ЧАСТЬ 8: ПРОВЕРКА
	fmt.Println("\n=== VERIFICATION ===")

	var countryCount, typeCount, categoryCount, userCount int
	conn.QueryRow(ctx, "SELECT count(*) FROM countries").Scan(&countryCount)
	conn.QueryRow(ctx, "SELECT count(*) FROM property_types").Scan(&typeCount)
	conn.QueryRow(ctx, "SELECT count(*) FROM audio_categories").Scan(&categoryCount)
	conn.QueryRow(ctx, "SELECT count(*) FROM users").Scan(&userCount)

	fmt.Printf("Countries:        %d\n", countryCount)
	fmt.Printf("Property types:   %d\n", typeCount)
	fmt.Printf("Audio categories: %d\n", categoryCount)
	fmt.Printf("Users:            %d\n", userCount)

	fmt.Println("\nDone!")
}

func extractHost(connStr string) string {
	parts := strings.Split(connStr, "@")
	if len(parts) < 2 {
		return "unknown"
	}
	hostPart := strings.Split(parts[1], "/")[0]
	return hostPart
}
