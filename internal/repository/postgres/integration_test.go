//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dmaslov/campuschat-server/internal/model"
	"github.com/dmaslov/campuschat-server/internal/realtime"
	repo "github.com/dmaslov/campuschat-server/internal/repository/postgres"
	"github.com/dmaslov/campuschat-server/internal/testutil"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "campuschat_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/campuschat_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func createUser(ctx context.Context, t *testing.T, conn *repo.Connection, email string) model.User {
	t.Helper()
	ur := repo.NewUserRepository(conn)
	u, err := ur.Create(ctx, model.User{ID: uuid.New(), Email: email, PasswordHash: "hash"})
	require.NoError(t, err)
	return u
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	t.Run("user_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)

		u := createUser(ctx, t, conn, "user@example.com")

		byEmail, err := ur.GetByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.Equal(t, u.ID, byEmail.ID)

		byID, err := ur.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, byID.Email)

		_, err = ur.GetByEmail(ctx, "missing@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("profile_repository", func(t *testing.T) {
		pr := repo.NewProfileRepository(conn)

		u := createUser(ctx, t, conn, "profile@example.com")
		require.NoError(t, pr.Create(ctx, model.Profile{ID: u.ID, Email: u.Email}))

		name := "Profile User"
		bio := "bio text"
		require.NoError(t, pr.Update(ctx, u.ID, model.ProfilePatch{DisplayName: &name, Bio: &bio}))

		got, err := pr.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "Profile User", got.DisplayName)
		require.Equal(t, "bio text", got.Bio)
		require.Equal(t, u.Email, got.Email)

		err = pr.Update(ctx, uuid.New(), model.ProfilePatch{DisplayName: &name})
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("private_chat_repository", func(t *testing.T) {
		cr := repo.NewPrivateChatRepository(conn)

		_, err := cr.GetByPair(ctx, "alice", "bob")
		require.ErrorIs(t, err, model.ErrNotFound)

		created, err := cr.Create(ctx, "alice", "bob")
		require.NoError(t, err)
		require.Equal(t, "alice", created.UserID1)
		require.Equal(t, "bob", created.UserID2)

		// Create against the same pair returns the existing record.
		again, err := cr.Create(ctx, "alice", "bob")
		require.NoError(t, err)
		require.Equal(t, created.ID, again.ID)

		got, err := cr.GetByPair(ctx, "alice", "bob")
		require.NoError(t, err)
		require.Equal(t, created.ID, got.ID)
	})

	t.Run("message_repositories", func(t *testing.T) {
		gr := repo.NewGlobalMessageRepository(conn)
		pr := repo.NewPrivateMessageRepository(conn)
		cr := repo.NewPrivateChatRepository(conn)

		require.NoError(t, gr.Create(ctx, model.NewGlobalMessage{SenderID: "alice", Email: "alice@example.com", Content: "hello all"}))
		globals, err := gr.GetAll(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, globals)
		require.Equal(t, "hello all", globals[len(globals)-1].Content)

		chat, err := cr.Create(ctx, "carol", "dave")
		require.NoError(t, err)

		require.NoError(t, pr.Create(ctx, model.NewPrivateMessage{ChatID: chat.ID, SenderID: "carol", Content: "hi dave"}))
		require.NoError(t, pr.Create(ctx, model.NewPrivateMessage{ChatID: chat.ID, SenderID: "dave", Content: "hi carol"}))

		messages, err := pr.GetByChatID(ctx, chat.ID)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		require.Equal(t, "hi dave", messages[0].Content)
	})
}

func TestListener_DeliversInsertedRows(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	hub := realtime.NewHub()
	listener := repo.NewListener(conn, hub, testutil.Discard())
	go func() { _ = listener.Run(ctx) }()

	received := make(chan model.GlobalMessage, 1)
	unsubscribe := hub.SubscribeGlobal(func(m model.GlobalMessage) { received <- m })
	defer unsubscribe()

	// Give the listener a moment to issue LISTEN before inserting.
	time.Sleep(500 * time.Millisecond)

	gr := repo.NewGlobalMessageRepository(conn)
	require.NoError(t, gr.Create(ctx, model.NewGlobalMessage{SenderID: "alice", Email: "alice@example.com", Content: "realtime"}))

	select {
	case msg := <-received:
		require.Equal(t, "realtime", msg.Content)
		require.Equal(t, "alice", msg.SenderID)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for change feed notification")
	}
}
