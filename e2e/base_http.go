package e2e

import (
	"bytes"
	"chat-mirror/auth"
	"chat-mirror/domain"
	"chat-mirror/infrastructure/mirror"
	"chat-mirror/infrastructure/mirror/mirrortest"
	"chat-mirror/infrastructure/push"
	"chat-mirror/infrastructure/rest"
	"chat-mirror/infrastructure/storage"
	"chat-mirror/observability"
	"chat-mirror/projection"
	"chat-mirror/runtime"
	"chat-mirror/runtime/workers"
	"chat-mirror/services"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/health"
)

// BaseHTTPSuite runs the whole system in process: Badger, a sqlite mirror,
// the projection runtime and the HTTP API behind an httptest server.
type BaseHTTPSuite struct {
	suite.Suite
	Config       Config
	Server       *httptest.Server
	Mirror       *mirror.Mirror
	Store        *storage.DocumentStore
	Orchestrator *runtime.Orchestrator
	Stats        *observability.ProjectionStats
	Health       *health.Server
	tokens       *auth.Tokens
	messages     *services.MessageService
	cancel       context.CancelFunc
	done         chan struct{}
	db           *badger.DB
}

func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	log := logs.GetLoggerFromLevel(slog.LevelInfo)

	s.db, err = badger.Open(badger.DefaultOptions(s.T().TempDir()).WithLogger(nil))
	s.Require().NoError(err)
	s.Store = storage.NewDocumentStore(s.db, log, storage.WithPollInterval(10*time.Millisecond))
	s.Mirror = mirrortest.New(s.T(), log)

	s.Stats = observability.NewProjectionStats(log)
	s.Health = health.NewServer()
	projector := projection.NewProjector(s.Store, s.Mirror, log, projection.WithConditionalPointer(s.Config.Conditional))
	s.Orchestrator = runtime.NewOrchestrator(log, workers.NewSupervisor(log, 50*time.Millisecond),
		s.Store, projector, s.Stats, s.Health, s.Config.Partitions, 64, 0,
		runtime.WithCheckpoint(s.Store, 50*time.Millisecond, false))

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		s.Orchestrator.Start(ctx)
	}()

	notifier := push.NewTokenNotifier(s.Store, push.NewLogPusher(log), log, time.Millisecond)
	s.messages = services.NewMessageService(s.Store, s.Mirror, notifier, log, 100)
	handler := rest.NewHandler(s.messages, services.NewChatService(s.Store, s.Mirror, log), notifier, log, 20)
	s.tokens = auth.NewTokens("e2e_secret_2026", time.Hour)
	s.Server = httptest.NewServer(rest.NewRouter(handler, s.tokens, s.Stats, []string{"*"}, log))
}

func (s *BaseHTTPSuite) TearDownSuite() {
	s.Server.Close()
	s.messages.Wait()
	s.cancel()
	<-s.done
	_ = s.Store.Close()
	_ = s.db.Close()
}

// Step prints a header then runs one step of a scenario.
func (s *BaseHTTPSuite) Step(name string, fn func()) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
	s.Run(name, fn)
}

// Call sends an authenticated request as userID and decodes the JSON answer into out when given.
func (s *BaseHTTPSuite) Call(userID uint, method, path string, body, out any) int {
	var payload bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}
	req, err := http.NewRequest(method, s.Server.URL+path, &payload)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	token, err := s.tokens.Generate(userID)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	s.T().Logf("HTTP %s %s [%d] in %v", method, path, resp.StatusCode, time.Since(start))
	if s.Config.DebugJSON {
		s.T().Logf("RESPONSE:\n%s", raw)
	}
	if out != nil && resp.StatusCode < 300 && len(raw) > 0 {
		s.Require().NoError(json.Unmarshal(raw, out))
	}
	return resp.StatusCode
}

// Converge waits until every change committed so far has been projected.
func (s *BaseHTTPSuite) Converge() {
	s.Require().Eventually(func() bool {
		return s.Stats.InFlight() == 0 && s.feedDrained()
	}, 10*time.Second, 20*time.Millisecond)
}

// feedDrained tells whether the feed holds nothing after the last routed change.
func (s *BaseHTTPSuite) feedDrained() bool {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := s.Store.Subscribe(ctx, domain.MessagesCollection, s.Stats.LastSeq())
	if err != nil {
		return false
	}
	select {
	case <-ch:
		return false
	case <-time.After(30 * time.Millisecond):
		return true
	}
}

func (s *BaseHTTPSuite) waitFor() time.Duration { return 10 * time.Second }

func (s *BaseHTTPSuite) tick() time.Duration { return 20 * time.Millisecond }
