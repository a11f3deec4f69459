package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-coat/coat/pkg/core"
)

// maxTreeDepth limits recursion depth to prevent stack overflow from malformed trees.
const maxTreeDepth = 500

// streamBacklog is the number of samples queued for websocket clients before
// new samples are dropped.
const streamBacklog = 64

// DebugServer serves read-only views of a running engine over HTTP:
//
//	GET /health         liveness
//	GET /debug          run identity and root summary
//	GET /tree           latest tree snapshot
//	GET /frames         frame timeline (?limit=N&min_ms=F&rendered=true)
//	GET /frames/stream  websocket stream of frame samples
//	GET /metrics        Prometheus metrics, when a gatherer is configured
//
// Handlers only read data the engine publishes after each frame.
type DebugServer struct {
	engine   *Engine
	router   chi.Router
	gatherer prometheus.Gatherer
	stream   *frameStream
	cancel   func()
	logger   *slog.Logger

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// TreeNode is the JSON form of one node in /tree. Uses SafeFloat for
// dimensions that may contain Inf/NaN from layout issues.
type TreeNode struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Kind     string     `json:"kind"`
	Offset   SafeOffset `json:"offset"`
	Size     SafeSize   `json:"size"`
	Focused  bool       `json:"focused,omitempty"`
	Depth    int        `json:"depth"`
	Children []TreeNode `json:"children,omitempty"`
}

// SafeFloat wraps a float64 to handle Inf/NaN in JSON encoding.
type SafeFloat float64

func (f SafeFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 1) {
		return []byte(`"Infinity"`), nil
	}
	if math.IsInf(v, -1) {
		return []byte(`"-Infinity"`), nil
	}
	if math.IsNaN(v) {
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

// SafeSize is a JSON-safe version of graphics.Size.
type SafeSize struct {
	Width  SafeFloat `json:"width"`
	Height SafeFloat `json:"height"`
}

// SafeOffset is a JSON-safe version of graphics.Offset.
type SafeOffset struct {
	X SafeFloat `json:"x"`
	Y SafeFloat `json:"y"`
}

// NewDebugServer builds the debug routes for e and enables tree snapshots
// on it. gatherer may be nil to omit /metrics. Call [DebugServer.Close] to
// release the frame stream.
func NewDebugServer(e *Engine, gatherer prometheus.Gatherer) *DebugServer {
	e.EnableSnapshots()
	s := &DebugServer{
		engine:   e,
		gatherer: gatherer,
		stream:   newFrameStream(),
		logger:   e.logger.With(slog.String("component", "debug")),
	}
	s.cancel = e.Subscribe(s.stream.publish)
	go s.stream.pump()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)
	r.Get("/debug", s.handleDebug)
	r.Get("/tree", s.handleTree)
	r.Get("/frames", s.handleFrames)
	r.Get("/frames/stream", s.stream.handleWebSocket)
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	s.router = r
	return s
}

// Handler returns the HTTP handler serving the debug routes.
func (s *DebugServer) Handler() http.Handler { return s.router }

// Start listens on addr and serves in the background. It returns the bound
// address, which differs from addr when addr uses port 0.
func (s *DebugServer) Start(addr string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().String(), nil
	}

	// Bind first to fail fast on port conflicts.
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("debug server listen: %w", err)
	}

	server := &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			s.mu.Unlock()
			s.logger.Error("debug server stopped", slog.Any("error", err))
		}
	}()

	s.logger.Info("debug server listening", slog.String("addr", listener.Addr().String()))
	return listener.Addr().String(), nil
}

// Close stops the HTTP server, if started, and the frame stream.
func (s *DebugServer) Close() error {
	s.cancel()
	s.stream.close()

	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// handleHealth returns a simple health check response.
func (s *DebugServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleDebug returns the engine identity and a summary of the root.
func (s *DebugServer) handleDebug(w http.ResponseWriter, r *http.Request) {
	e := s.engine
	var info struct {
		RunID       string  `json:"runId"`
		Root        string  `json:"root"`
		HasTree     bool    `json:"hasTree"`
		Nodes       int     `json:"nodes"`
		RootSize    string  `json:"rootSize,omitempty"`
		Frames      uint64  `json:"frames"`
		SlowFrames  int     `json:"slowFrames"`
		ThresholdMs float64 `json:"thresholdMs"`
	}
	info.RunID = e.RunID().String()
	info.Root = e.App().Name()
	if tree := e.Tree(); tree != nil {
		info.HasTree = true
		info.Nodes = tree.Count()
		info.RootSize = fmt.Sprintf("%.2fx%.2f", tree.Size.Width, tree.Size.Height)
	}
	timeline := e.Trace().Snapshot()
	info.Frames = timeline.Total
	info.SlowFrames = timeline.SlowFrames
	info.ThresholdMs = timeline.ThresholdMs

	writeJSON(w, info)
}

// handleTree returns the latest published tree as JSON.
func (s *DebugServer) handleTree(w http.ResponseWriter, r *http.Request) {
	tree := s.engine.Tree()
	if tree == nil {
		http.Error(w, "no tree", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, serializeTree(tree, 0))
}

// handleFrames returns recent frame timing samples as JSON.
func (s *DebugServer) handleFrames(w http.ResponseWriter, r *http.Request) {
	resp := s.engine.Trace().Snapshot()
	applyFrameFilters(r, &resp)
	writeJSON(w, resp)
}

// writeJSON encodes to a buffer first so encoding errors become a 500.
func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func applyFrameFilters(r *http.Request, resp *FrameTimeline) {
	limit := 0
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	var filters []func(FrameSample) bool

	if v := parseFloatQuery(r, "min_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.FrameMs >= v })
	}
	if v := parseFloatQuery(r, "update_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.Phases.UpdateMs >= v })
	}
	if v := parseFloatQuery(r, "view_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.Phases.ViewMs >= v })
	}
	if v := parseFloatQuery(r, "layout_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.Phases.LayoutMs >= v })
	}
	if v := parseFloatQuery(r, "render_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.Phases.RenderMs >= v })
	}
	if value := r.URL.Query().Get("rendered"); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil && parsed {
			filters = append(filters, func(s FrameSample) bool { return s.Flags.Rendered })
		}
	}

	if len(filters) > 0 {
		filtered := make([]FrameSample, 0, len(resp.Samples))
	outer:
		for _, sample := range resp.Samples {
			for _, f := range filters {
				if !f(sample) {
					continue outer
				}
			}
			filtered = append(filtered, sample)
		}
		resp.Samples = filtered
	}

	if limit > 0 && len(resp.Samples) > limit {
		resp.Samples = resp.Samples[len(resp.Samples)-limit:]
	}
}

func parseFloatQuery(r *http.Request, key string) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return 0
	}
	return parsed
}

// serializeTree converts a snapshot to its JSON-safe form.
// The depth parameter limits recursion to prevent stack overflow.
func serializeTree(info *core.NodeInfo, depth int) TreeNode {
	node := TreeNode{
		ID:      info.ID,
		Name:    info.Name,
		Path:    info.Path,
		Kind:    info.Kind,
		Offset:  SafeOffset{X: SafeFloat(info.Position.X), Y: SafeFloat(info.Position.Y)},
		Size:    SafeSize{Width: SafeFloat(info.Size.Width), Height: SafeFloat(info.Size.Height)},
		Focused: info.Focused,
		Depth:   depth,
	}
	if depth < maxTreeDepth && len(info.Children) > 0 {
		node.Children = make([]TreeNode, 0, len(info.Children))
		for i := range info.Children {
			node.Children = append(node.Children, serializeTree(&info.Children[i], depth+1))
		}
	}
	return node
}

// frameStream fans frame samples out to websocket clients. Samples are
// queued by the frame goroutine and written by pump, so a slow client never
// stalls a frame.
type frameStream struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	samples  chan FrameSample
	done     chan struct{}
	once     sync.Once
}

func newFrameStream() *frameStream {
	return &frameStream{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local debugging tool
			},
		},
		samples: make(chan FrameSample, streamBacklog),
		done:    make(chan struct{}),
	}
}

// handleWebSocket upgrades the connection and keeps it registered until the
// client disconnects.
func (f *frameStream) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := f.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	f.mu.Lock()
	f.clients[conn] = true
	f.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	f.mu.Lock()
	delete(f.clients, conn)
	f.mu.Unlock()
	conn.Close()
}

// publish queues a sample, dropping it when the backlog is full.
func (f *frameStream) publish(sample FrameSample) {
	select {
	case f.samples <- sample:
	default:
	}
}

func (f *frameStream) pump() {
	for {
		select {
		case <-f.done:
			return
		case sample := <-f.samples:
			f.broadcast(sample)
		}
	}
}

// broadcast sends a sample to all connected clients.
func (f *frameStream) broadcast(sample FrameSample) {
	data, err := json.Marshal(sample)
	if err != nil {
		return
	}

	f.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(f.clients))
	for client := range f.clients {
		clients = append(clients, client)
	}
	f.mu.RUnlock()

	for _, client := range clients {
		client.SetWriteDeadline(time.Now().Add(time.Second))
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			f.mu.Lock()
			delete(f.clients, client)
			f.mu.Unlock()
			client.Close()
		}
	}
}

// clientCount returns the number of connected clients.
func (f *frameStream) clientCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

// close stops the pump and closes all client connections.
func (f *frameStream) close() {
	f.once.Do(func() { close(f.done) })

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		client.Close()
		delete(f.clients, client)
	}
}
