package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

// LoggerTestSuite tests the log package
type LoggerTestSuite struct {
	suite.Suite
	originalLogger zerolog.Logger
	testOutput     *bytes.Buffer
}

// SetupTest runs before each test
func (s *LoggerTestSuite) SetupTest() {
	s.originalLogger = Logger
	s.testOutput = &bytes.Buffer{}
	Setup(s.testOutput, "debug", false)
}

// TearDownTest runs after each test
func (s *LoggerTestSuite) TearDownTest() {
	Logger = s.originalLogger
}

func (s *LoggerTestSuite) TestInfoLog() {
	Info().Msg("test info message")

	output := s.testOutput.String()
	s.Contains(output, "test info message")
	s.Contains(output, `"level":"info"`)
}

func (s *LoggerTestSuite) TestErrorLog() {
	Error().Msg("test error message")
	s.Contains(s.testOutput.String(), `"level":"error"`)
}

func (s *LoggerTestSuite) TestLogWithFields() {
	Info().Str("cluster", "prod").Str("kind", "memory").Msg("fetch done")

	var entry map[string]any
	s.Require().NoError(json.Unmarshal([]byte(strings.TrimSpace(s.testOutput.String())), &entry))
	s.Equal("prod", entry["cluster"])
	s.Equal("memory", entry["kind"])
	s.Equal("fetch done", entry["message"])
}

func (s *LoggerTestSuite) TestLevelFiltering() {
	Setup(s.testOutput, "warn", false)

	Debug().Msg("debug test")
	Info().Msg("info test")
	Warn().Msg("warn test")

	output := s.testOutput.String()
	s.NotContains(output, "debug test")
	s.NotContains(output, "info test")
	s.Contains(output, "warn test")
}

func (s *LoggerTestSuite) TestSetDebugMode() {
	Setup(s.testOutput, "error", false)
	SetDebugMode()

	Debug().Msg("now visible")
	s.Contains(s.testOutput.String(), "now visible")
}

func (s *LoggerTestSuite) TestConsoleFormat() {
	Setup(s.testOutput, "info", true)
	Info().Msg("console line")

	output := s.testOutput.String()
	s.Contains(output, "console line")
	s.NotContains(output, `"message"`)
}

func (s *LoggerTestSuite) TestDiscard() {
	Discard()
	Error().Msg("dropped")
	s.Empty(s.testOutput.String())
}

func (s *LoggerTestSuite) TestParseLevel() {
	s.Equal(zerolog.DebugLevel, ParseLevel("DEBUG"))
	s.Equal(zerolog.WarnLevel, ParseLevel(" warn "))
	s.Equal(zerolog.InfoLevel, ParseLevel("nonsense"))
	s.Equal(zerolog.InfoLevel, ParseLevel(""))
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
