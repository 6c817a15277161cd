package routes

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/nbgate/internal/metrics"
	"github.com/fr0stylo/nbgate/internal/netbilling"
)

// DefaultMemberPath is the mount point of the emulated nbmember.cgi.
const DefaultMemberPath = "/nbmember"

const (
	maxCommandBody     = 4 << 20
	msgBodyTooLarge    = "ERROR: Invalid request."
	contentTypeCommand = "text/plain; charset=utf-8"
)

// MemberRoutes exposes the member control interface.
type MemberRoutes struct {
	protocol *netbilling.Protocol
	prefix   string
}

// NewMemberRoutes constructs the control interface routes under prefix.
func NewMemberRoutes(protocol *netbilling.Protocol, prefix string) *MemberRoutes {
	prefix = "/" + strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "/" {
		prefix = DefaultMemberPath
	}
	return &MemberRoutes{protocol: protocol, prefix: prefix}
}

// RegisterRoutes registers the control interface.
func (m *MemberRoutes) RegisterRoutes(s *echo.Echo) {
	g := s.Group(m.prefix)
	g.GET("/:site_tag", m.handleCommand)
	g.POST("/:site_tag", m.handleCommand)
}

func (m *MemberRoutes) handleCommand(c echo.Context) error {
	req := c.Request()
	cmd := c.QueryParam("cmd")

	var body string
	if req.Method == http.MethodPost {
		raw, err := io.ReadAll(io.LimitReader(req.Body, maxCommandBody+1))
		if err != nil {
			return fmt.Errorf("read command body: %w", err)
		}
		if len(raw) > maxCommandBody {
			metrics.ObserveControlCommand(commandLabel(req.Method, cmd), http.StatusRequestEntityTooLarge)
			return c.Blob(http.StatusRequestEntityTooLarge, contentTypeCommand, []byte(msgBodyTooLarge))
		}
		body = string(raw)
	}

	resp := m.protocol.Handle(req.Context(), netbilling.Request{
		Method:  req.Method,
		Command: cmd,
		Body:    body,
		SiteTag: c.Param("site_tag"),
		Keyword: c.QueryParam("keyword"),
	})
	metrics.ObserveControlCommand(commandLabel(req.Method, cmd), resp.Status)

	return c.Blob(resp.Status, resp.ContentType, []byte(resp.Body))
}

func commandLabel(method, cmd string) string {
	if _, err := netbilling.ParseCommand(method, cmd); err != nil {
		return "invalid"
	}
	return netbilling.CommandBase(cmd)
}
