//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	os.Exit(runMain(m))
}

// runMain wraps m.Run so container teardown runs before os.Exit.
func runMain(m *testing.M) int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// NEWSAPI_TEST_DB_URL points at an existing database; without it a
	// throwaway postgres container is started.
	dbURL := os.Getenv("NEWSAPI_TEST_DB_URL")
	if dbURL == "" {
		pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
			postgres.WithDatabase("news_api_test"),
			postgres.WithUsername("newsapi"),
			postgres.WithPassword("testpassword"),
			postgres.BasicWaitStrategies(),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
			return 1
		}
		defer func() {
			if termErr := pgContainer.Terminate(context.Background()); termErr != nil {
				fmt.Fprintf(os.Stderr, "failed to terminate postgres container: %v\n", termErr)
			}
		}()

		dbURL, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to get connection string: %v\n", err)
			return 1
		}
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to test database: %v\n", err)
		return 1
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "test database ping failed: %v\n", err)
		return 1
	}

	// Path is relative from tests/integration/ to migrations/.
	migrator, err := migrate.New("file://../../migrations", dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create migrator: %v\n", err)
		return 1
	}
	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		return 1
	}

	testPool = pool

	return m.Run()
}

// cleanTables truncates all data tables between tests. CASCADE handles
// the foreign key dependencies.
func cleanTables(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		"TRUNCATE TABLE comments, articles, users, topics RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// seedBaseData inserts the topics, users, and one article most tests build on.
func seedBaseData(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := testPool.Exec(ctx, `
		INSERT INTO topics (slug, description) VALUES
			('mitch', 'The man, the Mitch, the legend'),
			('cats', 'Not dogs')`)
	if err != nil {
		t.Fatalf("failed to seed topics: %v", err)
	}

	_, err = testPool.Exec(ctx, `
		INSERT INTO users (username, name, avatar_url) VALUES
			('butter_bridge', 'jonny', 'https://example.com/butter_bridge.jpg'),
			('icellusedkars', 'sam', 'https://example.com/icellusedkars.jpg')`)
	if err != nil {
		t.Fatalf("failed to seed users: %v", err)
	}

	_, err = testPool.Exec(ctx, `
		INSERT INTO articles (title, body, votes, topic, author, created_at) VALUES
			('Living in the shadow of a great man', 'I find this existence challenging', 100, 'mitch', 'butter_bridge', '2020-07-09T20:11:00Z'),
			('Eight pug gifs that remind me of mitch', 'some gifs', 0, 'mitch', 'icellusedkars', '2020-11-03T09:12:00Z'),
			('UNCOVERED: catspiracy to bring down democracy', 'Bastet walks amongst us', 0, 'cats', 'butter_bridge', '2020-08-03T13:14:00Z')`)
	if err != nil {
		t.Fatalf("failed to seed articles: %v", err)
	}

	_, err = testPool.Exec(ctx, `
		INSERT INTO comments (author, article_id, votes, body, created_at) VALUES
			('butter_bridge', 1, 16, 'This morning, I showered for nine minutes.', '2020-07-21T00:20:00Z'),
			('icellusedkars', 1, 14, 'The beautiful thing about treasure is that it exists.', '2020-10-31T03:03:00Z')`)
	if err != nil {
		t.Fatalf("failed to seed comments: %v", err)
	}
}
