package rest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-drive-api/internal/application/ports"
	"file-drive-api/internal/domain/identity"
	"file-drive-api/internal/interface/api/rest/dto/webhook"
)

const (
	IDHeader        = "X-Webhook-ID"
	TimestampHeader = "X-Webhook-Timestamp"
	SignatureHeader = "X-Webhook-Signature"

	maxWebhookBody = int64(1 << 20)

	// SignatureTolerance bounds how far an event timestamp may drift from now.
	SignatureTolerance = 5 * time.Minute
)

type WebhookController struct {
	userService ports.UserService
	secret      []byte
	issuer      string
	logger      *zap.Logger
	now         func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewWebhookController(
	r *gin.Engine,
	userService ports.UserService,
	secret string,
	issuer string,
	logger *zap.Logger,
) *WebhookController {
	wc := &WebhookController{
		userService: userService,
		secret:      []byte(secret),
		issuer:      issuer,
		logger:      logger,
		now:         time.Now,
		seen:        make(map[string]time.Time),
	}

	r.POST(RouteIdentityWebhook, wc.IdentityWebhookHandler)

	return wc
}

// Sign returns the signature header value for an event: HMAC-SHA256 over
// "<id>.<timestamp>.<body>".
func Sign(secret []byte, id, timestamp string, body []byte) string {
	return "sha256=" + hex.EncodeToString(mac(secret, id, timestamp, body))
}

func mac(secret []byte, id, timestamp string, body []byte) []byte {
	m := hmac.New(sha256.New, secret)
	m.Write([]byte(id + "." + timestamp + "."))
	m.Write(body)
	return m.Sum(nil)
}

func (wc *WebhookController) verifySignature(id, timestamp string, body []byte, header string) bool {
	got, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(header), "sha256="))
	if err != nil || len(got) == 0 {
		return false
	}
	return hmac.Equal(got, mac(wc.secret, id, timestamp, body))
}

func (wc *WebhookController) freshTimestamp(timestamp string) bool {
	sec, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	drift := wc.now().Sub(time.Unix(sec, 0))
	return drift <= SignatureTolerance && drift >= -SignatureTolerance
}

func (wc *WebhookController) delivered(id string) bool {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	_, ok := wc.seen[id]
	return ok
}

// markDelivered remembers id for twice the tolerance window; older events
// fail the timestamp check before they get here.
func (wc *WebhookController) markDelivered(id string) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	now := wc.now()
	for k, at := range wc.seen {
		if now.Sub(at) > 2*SignatureTolerance {
			delete(wc.seen, k)
		}
	}
	wc.seen[id] = now
}

func (wc *WebhookController) IdentityWebhookHandler(c *gin.Context) {
	if len(wc.secret) == 0 {
		c.JSON(
			http.StatusServiceUnavailable,
			gin.H{"error": "webhook is not configured"},
		)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}
	if int64(len(body)) > maxWebhookBody {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload too large"})
		return
	}

	id := strings.TrimSpace(c.GetHeader(IDHeader))
	timestamp := strings.TrimSpace(c.GetHeader(TimestampHeader))
	if id == "" || !wc.freshTimestamp(timestamp) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing event id or stale timestamp"})
		return
	}
	if !wc.verifySignature(id, timestamp, body, c.GetHeader(SignatureHeader)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	if wc.delivered(id) {
		wc.logger.Info("webhook event already delivered", zap.String("event_id", id))
		c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
		return
	}

	var e webhook.Event
	if err = json.Unmarshal(body, &e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	var ok bool
	switch e.Type {
	case webhook.EventUserCreated, webhook.EventUserUpdated:
		ok = wc.handleUser(c, e)
	case webhook.EventMembershipCreated, webhook.EventMembershipDeleted:
		ok = wc.handleMembership(c, e)
	default:
		wc.logger.Debug("webhook event ignored", zap.String("type", e.Type))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if ok {
		wc.markDelivered(id)
	}
}

func (wc *WebhookController) handleUser(c *gin.Context, e webhook.Event) bool {
	var d webhook.UserData
	if err := json.Unmarshal(e.Data, &d); err != nil || d.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data.id is required"})
		return false
	}

	if _, err := wc.userService.UpsertUser(c.Request.Context(), webhook.ToDomainUser(wc.issuer, d)); err != nil {
		writeServiceError(c, wc.logger, "UpsertUser()", err, "failed to store user")
		return false
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
	return true
}

func (wc *WebhookController) handleMembership(c *gin.Context, e webhook.Event) bool {
	var d webhook.MembershipData
	if err := json.Unmarshal(e.Data, &d); err != nil ||
		d.Organization.ID == "" || d.PublicUserData.UserID == "" {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "data.organization.id and data.public_user_data.user_id are required"},
		)
		return false
	}

	token := identity.TokenIdentifier(wc.issuer, d.PublicUserData.UserID)

	var err error
	if e.Type == webhook.EventMembershipCreated {
		_, err = wc.userService.AddOrgMembership(c.Request.Context(), token, d.Organization.ID)
	} else {
		_, err = wc.userService.RemoveOrgMembership(c.Request.Context(), token, d.Organization.ID)
	}
	if err != nil {
		writeServiceError(c, wc.logger, "OrgMembership()", err, "failed to update membership")
		return false
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
	return true
}
