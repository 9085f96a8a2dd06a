package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/gachip90/employee-task-management-be/infrastructure/http/server"
	"github.com/gachip90/employee-task-management-be/internal"
	"github.com/gachip90/employee-task-management-be/notify"
	"github.com/gachip90/employee-task-management-be/observability"
	"github.com/gachip90/employee-task-management-be/repositories"
	"github.com/gachip90/employee-task-management-be/runtime"
	"github.com/gachip90/employee-task-management-be/runtime/workers"
	"github.com/gachip90/employee-task-management-be/services"
)

// startServer boots the whole stack against a throwaway badger directory
// and returns the test server URL.
func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	req := require.New(t)

	// Reduced to 16 Mo for testing (avoid 20 Go of storage)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)

	log := internal.NewLogger("error")
	monitor := observability.NewMonitor()
	supervisor := workers.NewSupervisor(log)
	registry := runtime.NewRegistry()
	messageRepository := repositories.NewMessageRepository(db, log)
	employeeRepository := repositories.NewEmployeeRepository(db, log)
	ownerRepository := repositories.NewOwnerRepository(db, log)
	taskRepository := repositories.NewTaskRepository(db, log)

	orchestrator := runtime.NewOrchestrator(log, supervisor, registry,
		messageRepository, monitor, 64, 2*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	orchestrator.Start(ctx)

	chatService := services.NewChatService(orchestrator)
	accessService := services.NewAccessService(ownerRepository, employeeRepository,
		notify.NewLogSMSSender(log), time.Hour)
	staffService := services.NewStaffService(employeeRepository, notify.NewLogEmailSender(log))
	taskService := services.NewTaskService(taskRepository, employeeRepository)

	router := server.NewRouter(log, server.Handlers{
		Owner:    server.NewOwnerHandler(log, accessService),
		Employee: server.NewEmployeeHandler(log, staffService, accessService),
		Task:     server.NewTaskHandler(log, taskService),
		Message:  server.NewMessageHandler(log, chatService),
		Health:   server.NewHealthHandler(log, monitor),
		WS:       server.NewWSHandler(log, chatService, monitor, 16, false),
	})
	ts := httptest.NewServer(router)

	// Clean everything at the end of the test
	t.Cleanup(func() {
		ts.Close()
		cancel()
		orchestrator.Stop()
		_ = db.Close()
	})
	return ts
}

// chatClient wraps one websocket connection with envelope helpers.
type chatClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dialChat(t *testing.T, ts *httptest.Server) *chatClient {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &chatClient{t: t, conn: conn}
}

func (c *chatClient) send(event string, payload any) {
	c.t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(c.t, err)
	require.NoError(c.t, c.conn.WriteJSON(map[string]any{"event": event, "payload": json.RawMessage(raw)}))
}

// expect blocks until the next frame and asserts its event name.
func (c *chatClient) expect(event string) map[string]any {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var frame struct {
		Event   string         `json:"event"`
		Payload map[string]any `json:"payload"`
	}
	require.NoError(c.t, c.conn.ReadJSON(&frame), "expected a %q frame", event)
	require.Equal(c.t, event, frame.Event)
	return frame.Payload
}

// expectSilence asserts no frame arrives within the window.
func (c *chatClient) expectSilence(window time.Duration) {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(window)))
	var frame json.RawMessage
	err := c.conn.ReadJSON(&frame)
	require.Error(c.t, err, "received an unexpected frame: %s", frame)
}

func Test_ChatScenario(t *testing.T) {
	req := require.New(t)
	ts := startServer(t)

	// GIVEN Ana and Bob in room42, and Carol alone in room99
	ana := dialChat(t, ts)
	bob := dialChat(t, ts)
	carol := dialChat(t, ts)
	ana.send("join_room", map[string]string{"groupId": "room42"})
	bob.send("join_room", map[string]string{"groupId": "room42"})
	carol.send("join_room", map[string]string{"groupId": "room99"})
	// Joins are processed per-connection; give the server a beat before
	// publishing from a different connection.
	time.Sleep(200 * time.Millisecond)

	// WHEN Ana posts a message
	ana.send("send_message", map[string]string{
		"groupId":  "room42",
		"sender":   "Ana",
		"senderId": "emp-ana",
		"message":  "morning shift is covered",
	})

	// THEN both members of room42 receive it, sender included
	received := bob.expect("receive_message")
	req.Equal("morning shift is covered", received["message"])
	req.Equal("Ana", received["sender"])
	req.Equal("sent", received["status"])
	req.NotEmpty(received["messageId"])
	_ = ana.expect("receive_message")

	// AND Carol hears nothing
	carol.expectSilence(500 * time.Millisecond)

	// WHEN Bob acknowledges the message
	bob.send("read_message", map[string]string{
		"groupId":   "room42",
		"messageId": received["messageId"].(string),
	})

	// THEN the read receipt fans out to the group
	read := ana.expect("message_read")
	req.Equal(received["messageId"], read["messageId"])
	req.Equal(true, read["isRead"])
	req.Equal("read", read["status"])

	// AND the persisted history reflects the read state
	history := getJSON(t, ts, "/api/message/get-messages?groupId=room42")
	data := history["data"].([]any)
	req.Len(data, 1)
	first := data[0].(map[string]any)
	req.Equal(received["messageId"], first["messageId"])
	req.Equal(true, first["isRead"])
	req.Equal("read", first["status"])
	req.NotNil(first["readAt"])
}

func Test_StaffAndTaskScenario(t *testing.T) {
	req := require.New(t)
	ts := startServer(t)

	// WHEN the owner registers an employee
	created := postJSON(t, ts, "/api/owner/create-employee", map[string]string{
		"name":  "Bob",
		"email": "bob@corp.io",
		"role":  "barista",
	}, http.StatusCreated)
	employeeID := created["employeeId"].(string)
	req.NotEmpty(employeeID)

	// AND assigns them a task
	task := postJSON(t, ts, "/api/owner/create-task", map[string]string{
		"title":        "Restock the fridge",
		"assignedName": "Bob",
		"employeeId":   employeeID,
		"status":       "pending",
	}, http.StatusCreated)
	taskID := task["data"].(map[string]any)["taskId"].(string)

	// THEN the task list filtered by employee returns it
	listed := getJSON(t, ts, fmt.Sprintf("/api/owner/get-all-tasks?employeeId=%s", employeeID))
	data := listed["data"].([]any)
	req.Len(data, 1)
	req.Equal(taskID, data[0].(map[string]any)["id"])

	// AND the employee listing never leaks the access code
	employees := getJSON(t, ts, "/api/owner/get-all-employees")
	first := employees["employees"].([]any)[0].(map[string]any)
	req.Equal("bob@corp.io", first["email"])
	req.NotContains(first, "accessCode")
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any, wantStatus int) map[string]any {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, wantStatus, resp.StatusCode)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func getJSON(t *testing.T, ts *httptest.Server, path string) map[string]any {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}
