package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests
// and skips the whole suite when no server address is configured.
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr == "" {
		s.T().Skip("SERVER_ADDR not set, skipping e2e suite")
	}
	s.client = &http.Client{Timeout: 10 * time.Second}
}

func (s *BaseHTTPSuite) url(path string) string {
	return fmt.Sprintf("http://%s%s", s.Config.ServerAddr, path)
}

// Step prints a colorized header so scenario output stays readable.
func (s *BaseHTTPSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// PostJSON posts a body and decodes the JSON response.
func (s *BaseHTTPSuite) PostJSON(path string, body any, wantStatus int) map[string]any {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	s.debug("request", raw)

	resp, err := s.client.Post(s.url(path), "application/json", bytes.NewReader(raw))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(wantStatus, resp.StatusCode)

	return s.decode(resp)
}

func (s *BaseHTTPSuite) GetJSON(path string, wantStatus int) map[string]any {
	resp, err := s.client.Get(s.url(path))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(wantStatus, resp.StatusCode)

	return s.decode(resp)
}

func (s *BaseHTTPSuite) decode(resp *http.Response) map[string]any {
	var decoded map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&decoded))
	if s.Config.DebugJSON {
		pretty, _ := json.MarshalIndent(decoded, "", "  ")
		s.debug("response", pretty)
	}
	return decoded
}

func (s *BaseHTTPSuite) debug(label string, raw []byte) {
	if s.Config.DebugJSON {
		s.T().Logf("%s: %s", label, raw)
	}
}

// DialWS opens a websocket session against the chat endpoint.
func (s *BaseHTTPSuite) DialWS() *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://%s/ws", s.Config.ServerAddr), nil)
	s.Require().NoError(err)
	return conn
}
