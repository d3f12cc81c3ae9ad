// Package ws is the push channel to printer agents. Agents connect to
// /print-agent, receive PRINT_JOB messages and report back with JOB_STATUS.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/pkg/errs"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
	sendBuffer     = 32
)

// StatusUpdater applies an agent's job report.
type StatusUpdater interface {
	Handle(ctx context.Context, cmd commands.UpdatePrintJobStatusCommand) (*printjob.PrintJob, error)
}

// Hub tracks live agent connections. It implements ports.JobBroadcaster.
type Hub struct {
	upgrader websocket.Upgrader
	updater  StatusUpdater
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub(updater StatusUpdater, logger *slog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Agents run on shop machines and do not send a browser origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		updater: updater,
		logger:  logger.With("component", "agent-hub"),
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "agent upgrade failed", "error", err)
		return
	}

	c := &client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		agentID: r.URL.Query().Get("agentId"),
	}
	h.register(c)

	go c.writePump()
	c.readPump(context.WithoutCancel(r.Context()))
}

// Connections returns the number of live agents.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(ctx context.Context, job *printjob.PrintJob) error {
	return h.push(ctx, job, "job pushed")
}

func (h *Hub) RetryBroadcast(ctx context.Context, job *printjob.PrintJob) error {
	return h.push(ctx, job, "retried job pushed")
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}

func (h *Hub) push(ctx context.Context, job *printjob.PrintJob, msg string) error {
	view := NewJobView(job)
	data, err := json.Marshal(outbound{Type: TypePrintJob, Job: &view})
	if err != nil {
		return err
	}

	h.mu.RLock()
	var sent int
	var slow []*client
	for c := range h.clients {
		select {
		case c.send <- data:
			sent++
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.WarnContext(ctx, "dropping slow agent", "agent_id", c.agentID)
		h.unregister(c)
	}

	h.logger.InfoContext(ctx, msg, "job_id", job.ID(), "agents", sent)
	return nil
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("agent connected", "agent_id", c.agentID, "connections", n)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		c.close()
		h.logger.Info("agent disconnected", "agent_id", c.agentID, "connections", n)
	}
}

// handle processes one inbound frame and returns the reply, if any.
func (h *Hub) handle(ctx context.Context, c *client, raw []byte) *outbound {
	var msg inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		return &outbound{Type: TypeError, Message: "malformed message"}
	}

	switch msg.Type {
	case TypeHeartbeat:
		return &outbound{Type: TypeHeartbeatAck}
	case TypeJobStatus:
		agentID := msg.AgentID
		if agentID == "" {
			agentID = c.agentID
		}
		job, err := h.report(ctx, msg.JobID, msg.Status, agentID, msg.ErrorMessage)
		if err != nil {
			h.logger.WarnContext(ctx, "agent report rejected", "agent_id", agentID, "job_id", msg.JobID, "error", err)
			return &outbound{Type: TypeError, JobID: &msg.JobID, Message: err.Error()}
		}
		id := job.ID()
		return &outbound{Type: TypeAck, JobID: &id, Status: job.Status().String()}
	default:
		return &outbound{Type: TypeError, Message: "unknown message type " + msg.Type}
	}
}

// report applies a JOB_STATUS frame. Agents may report an outcome for a job
// they never claimed; such a job is claimed on their behalf first.
func (h *Hub) report(ctx context.Context, jobID uuid.UUID, status, agentID, errorMessage string) (*printjob.PrintJob, error) {
	cmd, err := commands.NewUpdatePrintJobStatusCommand(jobID, status, agentID, errorMessage)
	if err != nil {
		return nil, err
	}

	job, err := h.updater.Handle(ctx, cmd)
	if err == nil || !errors.Is(err, errs.ErrInvalidTransition) {
		return job, err
	}
	if cmd.Status() != printjob.Completed && cmd.Status() != printjob.Failed {
		return nil, err
	}

	claim, claimErr := commands.NewUpdatePrintJobStatusCommand(jobID, printjob.Printing.String(), agentID, "")
	if claimErr != nil {
		return nil, claimErr
	}
	if _, claimErr = h.updater.Handle(ctx, claim); claimErr != nil {
		return nil, err
	}
	return h.updater.Handle(ctx, cmd)
}

// reply queues a frame for c unless it has already been dropped.
func (h *Hub) reply(c *client, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	agentID   string
	closeOnce sync.Once
}

func (c *client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

func (c *client) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.WarnContext(ctx, "agent connection lost", "agent_id", c.agentID, "error", err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		reply := c.hub.handle(ctx, c, raw)
		if reply == nil {
			continue
		}
		data, err := json.Marshal(reply)
		if err != nil {
			continue
		}
		if !c.hub.reply(c, data) {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
