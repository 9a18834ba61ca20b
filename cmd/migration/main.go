// Command migration applies the schema under db/migrations to the league
// database named by DB_URL.
package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		log.Fatal("DB_URL is required")
	}
	dbURL = withPreparedBinaryResultFlag(dbURL)

	dir, err := findMigrationsDir()
	if err != nil {
		log.Fatalf("resolve migrations dir: %v", err)
	}
	source := "file://" + filepath.ToSlash(dir)

	m, err := migrate.New(source, dbURL)
	if err != nil {
		log.Fatalf("create migrator: %v", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Printf("close migration source: %v", srcErr)
		}
		if dbErr != nil {
			log.Printf("close migration db: %v", dbErr)
		}
	}()

	switch strings.ToLower(strings.TrimSpace(os.Args[1])) {
	case "up":
		reportResult(m.Up())
		log.Printf("migrations applied (source=%s)", source)
	case "down":
		steps, err := stepsArg(os.Args[2:])
		if err != nil {
			log.Fatal(err)
		}
		reportResult(m.Steps(-steps))
		log.Printf("rolled back %d migration(s)", steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return
		}
		if err != nil {
			log.Fatalf("read version: %v", err)
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
	case "force":
		if len(os.Args) < 3 {
			log.Fatal("force requires a version argument")
		}
		version, err := strconv.Atoi(strings.TrimSpace(os.Args[2]))
		if err != nil || version < 0 {
			log.Fatalf("invalid version %q", os.Args[2])
		}
		if err := m.Force(version); err != nil {
			log.Fatalf("force version %d: %v", version, err)
		}
		log.Printf("forced version to %d", version)
	case "goto", "migrate":
		if len(os.Args) < 3 {
			log.Fatal("goto requires a target version argument")
		}
		target, err := strconv.ParseUint(strings.TrimSpace(os.Args[2]), 10, 64)
		if err != nil {
			log.Fatalf("invalid target version %q", os.Args[2])
		}
		reportResult(m.Migrate(uint(target)))
		log.Printf("migrated to version %d", target)
	default:
		usage()
		os.Exit(2)
	}
}

func reportResult(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Printf("no migration changes")
		return
	}
	log.Fatal(err)
}

func stepsArg(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func findMigrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		strings.TrimSpace(os.Getenv("MIGRATIONS_PATH")),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}

	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations, /app/db/migrations)")
}

// withPreparedBinaryResultFlag mirrors the API server's DB_URL handling so
// both binaries speak to Postgres the same way.
func withPreparedBinaryResultFlag(raw string) string {
	switch strings.TrimSpace(strings.ToLower(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT"))) {
	case "1", "true", "t", "yes", "y", "on":
	default:
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}
	params := parsed.Query()
	if params.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	params.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = params.Encode()

	return parsed.String()
}

func usage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto> [args]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", name)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s version\n", name)
	fmt.Fprintf(os.Stderr, "  %s goto 2\n", name)
}
