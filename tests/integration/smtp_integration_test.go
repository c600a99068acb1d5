//go:build integration

package integration

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gosmtp "github.com/emersion/go-smtp"

	"github.com/inclusions-zone/mailhub-backend/internal/config"
	"github.com/inclusions-zone/mailhub-backend/internal/database"
	"github.com/inclusions-zone/mailhub-backend/internal/models"
	"github.com/inclusions-zone/mailhub-backend/internal/repository"
	"github.com/inclusions-zone/mailhub-backend/internal/smtp"
	"github.com/inclusions-zone/mailhub-backend/tests/fixtures"
)

// SMTPIntegrationTestSuite runs a real SMTP server against an in-memory
// database and speaks the protocol over TCP.
type SMTPIntegrationTestSuite struct {
	suite.Suite
	db       *gorm.DB
	repo     repository.MessageRepository
	server   *gosmtp.Server
	listener net.Listener
	addr     string
}

func (s *SMTPIntegrationTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)
	db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(s.T(), database.Migrate(db))
	s.db = db
	s.repo = repository.NewMessageRepository(db)

	backend := smtp.NewBackend(&smtp.BackendConfig{
		Accounts: []config.MailAccount{
			{Address: "info@inclusions.zone"},
			{Address: "booking@inclusions.zone"},
		},
		MessageRepo: s.repo,
		Logger:      testLogger(),
	})

	s.server = smtp.NewSecureServer(backend, &smtp.ServerConfig{
		Addr:   "127.0.0.1:0",
		Domain: "inclusions.zone",
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(s.T(), err)
	s.listener = listener
	s.addr = listener.Addr().String()

	go func() {
		_ = s.server.Serve(listener)
	}()

	// Wait for the server to accept connections
	require.Eventually(s.T(), func() bool {
		conn, err := net.DialTimeout("tcp", s.addr, time.Second)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 5*time.Second, 50*time.Millisecond)
}

func (s *SMTPIntegrationTestSuite) TearDownSuite() {
	if s.server != nil {
		_ = s.server.Close()
	}
}

func (s *SMTPIntegrationTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM email_actions")
	s.db.Exec("DELETE FROM email_messages")
}

func TestSMTPIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SMTPIntegrationTestSuite))
}

// ==================== Protocol helpers ====================

func (s *SMTPIntegrationTestSuite) connect() (net.Conn, *bufio.Reader) {
	conn, err := net.DialTimeout("tcp", s.addr, 5*time.Second)
	require.NoError(s.T(), err)
	conn.SetDeadline(time.Now().Add(10 * time.Second))
	return conn, bufio.NewReader(conn)
}

func (s *SMTPIntegrationTestSuite) readResponse(reader *bufio.Reader) string {
	var last string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(s.T(), err)
		last = strings.TrimRight(line, "\r\n")
		// Multi-line responses use "250-..." continuation lines
		if len(last) < 4 || last[3] != '-' {
			return last
		}
	}
}

func (s *SMTPIntegrationTestSuite) send(conn net.Conn, cmd string) {
	_, err := fmt.Fprintf(conn, "%s\r\n", cmd)
	require.NoError(s.T(), err)
}

func (s *SMTPIntegrationTestSuite) deliver(messageID, recipient string) string {
	conn, reader := s.connect()
	defer conn.Close()

	s.readResponse(reader) // banner
	s.send(conn, "EHLO client.example")
	s.readResponse(reader)
	s.send(conn, "MAIL FROM:<lena@sponsor.example>")
	s.readResponse(reader)
	s.send(conn, fmt.Sprintf("RCPT TO:<%s>", recipient))
	resp := s.readResponse(reader)
	if !strings.HasPrefix(resp, "250") {
		return resp
	}
	s.send(conn, "DATA")
	s.readResponse(reader)
	raw := fixtures.RawEmail("Lena Hartmann <lena@sponsor.example>", recipient,
		"Sponsoring Anfrage", messageID, "Wir moechten das Festival unterstuetzen.")
	_, err := fmt.Fprintf(conn, "%s.\r\n", raw)
	require.NoError(s.T(), err)
	resp = s.readResponse(reader)
	s.send(conn, "QUIT")
	return resp
}

// ==================== Tests ====================

func (s *SMTPIntegrationTestSuite) TestSMTP_BannerAndEHLO() {
	conn, reader := s.connect()
	defer conn.Close()

	banner := s.readResponse(reader)
	s.True(strings.HasPrefix(banner, "220"), "banner should be 220, got %q", banner)
	s.Contains(banner, "inclusions.zone")

	s.send(conn, "EHLO client.example")
	resp := s.readResponse(reader)
	s.True(strings.HasPrefix(resp, "250"), "EHLO should succeed, got %q", resp)
}

func (s *SMTPIntegrationTestSuite) TestSMTP_RejectsUnknownRecipient() {
	conn, reader := s.connect()
	defer conn.Close()

	s.readResponse(reader)
	s.send(conn, "EHLO client.example")
	s.readResponse(reader)
	s.send(conn, "MAIL FROM:<someone@example.com>")
	s.readResponse(reader)
	s.send(conn, "RCPT TO:<nobody@inclusions.zone>")
	resp := s.readResponse(reader)
	s.True(strings.HasPrefix(resp, "550"), "unknown recipient should be rejected, got %q", resp)
}

func (s *SMTPIntegrationTestSuite) TestSMTP_DeliveryStoresMessage() {
	resp := s.deliver("smtp-it-1@sponsor.example", "info@inclusions.zone")
	s.True(strings.HasPrefix(resp, "250"), "delivery should succeed, got %q", resp)

	var messages []models.EmailMessage
	require.Eventually(s.T(), func() bool {
		s.db.Find(&messages)
		return len(messages) == 1
	}, 5*time.Second, 100*time.Millisecond)

	msg := messages[0]
	s.Equal("info@inclusions.zone", msg.Account)
	s.Equal("smtp-it-1@sponsor.example", msg.ProviderMessageID)
	s.Equal("lena@sponsor.example", msg.FromEmail)
	s.Equal("Sponsoring Anfrage", msg.Subject)
	s.Nil(msg.Classification, "delivered mail starts unanalyzed")
}

func (s *SMTPIntegrationTestSuite) TestSMTP_RedeliveryIsDeduplicated() {
	first := s.deliver("smtp-it-2@sponsor.example", "info@inclusions.zone")
	s.True(strings.HasPrefix(first, "250"))

	second := s.deliver("smtp-it-2@sponsor.example", "info@inclusions.zone")
	s.True(strings.HasPrefix(second, "250"), "duplicate delivery is accepted but skipped")

	var count int64
	require.Eventually(s.T(), func() bool {
		s.db.Model(&models.EmailMessage{}).Count(&count)
		return count >= 1
	}, 5*time.Second, 100*time.Millisecond)
	s.Equal(int64(1), count)
}

func (s *SMTPIntegrationTestSuite) TestSMTP_SecondConfiguredAccount() {
	resp := s.deliver("smtp-it-3@sponsor.example", "booking@inclusions.zone")
	s.True(strings.HasPrefix(resp, "250"))

	var msg models.EmailMessage
	require.Eventually(s.T(), func() bool {
		return s.db.Where("provider_message_id = ?", "smtp-it-3@sponsor.example").First(&msg).Error == nil
	}, 5*time.Second, 100*time.Millisecond)
	s.Equal("booking@inclusions.zone", msg.Account)
}
