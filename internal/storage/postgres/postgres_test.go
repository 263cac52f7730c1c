//go:build integration
// +build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	m "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/emotter/emotter/internal/storage"
)

var (
	db  *sql.DB
	ctx = context.Background()
	s   storage.Storage
)

func TestMain(m *testing.M) {
	shutdown := setup()

	s = New(db)

	code := m.Run()
	shutdown()
	os.Exit(code)
}

func setup() func() {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:12",
		Env:          map[string]string{"POSTGRES_PASSWORD": "root"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
	})
	if err != nil {
		logrus.WithError(err).Fatalf("failed to create container")
	}

	if err := c.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to start container")
	}

	host, err := c.Host(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to get host")
	}

	port, err := c.MappedPort(ctx, "5432")
	if err != nil {
		logrus.WithError(err).Fatal("failed to map port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=postgres password=root sslmode=disable", host, port.Int())

	db, err = sql.Open("postgres", dsn)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open connection")
	}

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	shutdownFn := func() {
		if c != nil {
			c.Terminate(ctx) // nolint
		}
	}

	migrate("postgres", "root", host, "postgres", port.Int())

	return shutdownFn
}

func migrate(username, password, hostname, dbname string, port int) {
	_, currFile, _, ok := runtime.Caller(0)
	if !ok {
		logrus.Fatal("failed to get current file location")
	}

	migrations := filepath.Join(currFile, "../../../../migrations/postgres/")

	migrator, err := m.New(
		fmt.Sprintf("file://%s", migrations),
		fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			username, password, hostname, port, dbname),
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}
}

func cleanup(t *testing.T) {
	_, err := db.ExecContext(ctx, `DELETE FROM post`)
	require.NoError(t, err)
}

func TestPg_CreatePost(t *testing.T) {
	defer cleanup(t)

	before := time.Now().UTC().Truncate(time.Microsecond)

	p, err := s.CreatePost(ctx, &storage.CreatePostParams{
		AuthorID: "alice",
		Content:  "🥑",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(p.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", p.AuthorID)
	require.Equal(t, "🥑", p.Content)
	require.False(t, p.CreatedAt.Before(before))

	got, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
	require.Equal(t, p.AuthorID, got.AuthorID)
	require.Equal(t, p.Content, got.Content)
	require.Equal(t, p.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestPg_GetPost_notFound(t *testing.T) {
	defer cleanup(t)

	_, err := s.GetPost(ctx, uuid.NewString())
	require.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestPg_ListPosts(t *testing.T) {
	defer cleanup(t)

	for i := 0; i < 5; i++ {
		_, err := s.CreatePost(ctx, &storage.CreatePostParams{
			AuthorID: fmt.Sprintf("author_%d", i%2),
			Content:  "🎉",
		})
		require.NoError(t, err)
	}

	pp, err := s.ListPosts(ctx, 100)
	require.NoError(t, err)
	require.Len(t, pp, 5)

	for i := 1; i < len(pp); i++ {
		assert.False(t, pp[i-1].CreatedAt.Before(pp[i].CreatedAt))
	}

	pp, err = s.ListPosts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pp, 2)
}

func TestPg_ListAuthorPosts(t *testing.T) {
	defer cleanup(t)

	for i := 0; i < 4; i++ {
		_, err := s.CreatePost(ctx, &storage.CreatePostParams{
			AuthorID: fmt.Sprintf("author_%d", i%2),
			Content:  "🍕",
		})
		require.NoError(t, err)
	}

	pp, err := s.ListAuthorPosts(ctx, "author_0", 100)
	require.NoError(t, err)
	require.Len(t, pp, 2)

	for i, v := range pp {
		assert.Equal(t, "author_0", v.AuthorID)
		if i > 0 {
			assert.False(t, pp[i-1].CreatedAt.Before(pp[i].CreatedAt))
		}
	}

	pp, err = s.ListAuthorPosts(ctx, "nobody", 100)
	require.NoError(t, err)
	require.Empty(t, pp)
}
