package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/orderdesk/orderdesk/internal/domain"
)

// webAppDataKey is the domain-separation constant mandated by the
// Telegram Web App login protocol: the bot token is first keyed through
// HMAC-SHA256 under this literal before signing the data-check string.
const webAppDataKey = "WebAppData"

// TelegramVerifier validates signed initData assertions issued by the
// Telegram mini-app host. It is stateless; every call is a pure function
// of the input, the configured secret, and the wall clock.
type TelegramVerifier struct {
	botToken string
	maxAge   time.Duration
	nowFn    func() time.Time
}

// NewTelegramVerifier builds a verifier for the given bot token. An
// empty token leaves the verifier constructible but every Verify call
// fails, which keeps the credential strategy ordering intact when the
// platform secret is not configured.
func NewTelegramVerifier(botToken string, maxAge time.Duration) *TelegramVerifier {
	return &TelegramVerifier{
		botToken: botToken,
		maxAge:   maxAge,
		nowFn:    time.Now,
	}
}

// Verify checks the assertion signature and freshness, then extracts the
// asserted identity. The signature is checked before any field of the
// payload is trusted.
func (v *TelegramVerifier) Verify(initData string) (domain.TelegramIdentity, error) {
	if v.botToken == "" {
		return domain.TelegramIdentity{}, fmt.Errorf("%w: bot token is not configured", domain.ErrUnauthorized)
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return domain.TelegramIdentity{}, fmt.Errorf("%w: malformed init data", domain.ErrUnauthorized)
	}

	suppliedHash := values.Get("hash")
	if suppliedHash == "" {
		return domain.TelegramIdentity{}, fmt.Errorf("%w: missing hash", domain.ErrUnauthorized)
	}

	pairs := make([]string, 0, len(values))
	for key, fieldValues := range values {
		if key == "hash" {
			continue
		}
		for _, fieldValue := range fieldValues {
			pairs = append(pairs, key+"="+fieldValue)
		}
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secretKey := hmacSHA256([]byte(webAppDataKey), []byte(v.botToken))
	computed := hmacSHA256(secretKey, []byte(dataCheckString))

	supplied, err := hex.DecodeString(suppliedHash)
	if err != nil || !hmac.Equal(computed, supplied) {
		return domain.TelegramIdentity{}, fmt.Errorf("%w: invalid init data signature", domain.ErrUnauthorized)
	}

	authDateRaw := values.Get("auth_date")
	if authDateRaw == "" {
		return domain.TelegramIdentity{}, fmt.Errorf("%w: missing auth_date", domain.ErrUnauthorized)
	}
	authDate, err := strconv.ParseInt(authDateRaw, 10, 64)
	if err != nil {
		return domain.TelegramIdentity{}, fmt.Errorf("%w: invalid auth_date", domain.ErrUnauthorized)
	}
	now := v.nowFn().Unix()
	age := now - authDate
	if age < 0 {
		age = -age
	}
	if age > int64(v.maxAge.Seconds()) {
		return domain.TelegramIdentity{}, fmt.Errorf("%w: init data is expired", domain.ErrUnauthorized)
	}

	userRaw := values.Get("user")
	if userRaw == "" {
		return domain.TelegramIdentity{}, fmt.Errorf("%w: missing user payload", domain.ErrUnauthorized)
	}
	return parseTelegramUser(userRaw)
}

func parseTelegramUser(raw string) (domain.TelegramIdentity, error) {
	var payload struct {
		ID        int64  `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Username  string `json:"username"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return domain.TelegramIdentity{}, fmt.Errorf("%w: invalid user payload", domain.ErrUnauthorized)
	}
	if payload.ID <= 0 {
		return domain.TelegramIdentity{}, fmt.Errorf("%w: user id is missing", domain.ErrUnauthorized)
	}
	if strings.TrimSpace(payload.FirstName) == "" {
		return domain.TelegramIdentity{}, fmt.Errorf("%w: user first_name is missing", domain.ErrUnauthorized)
	}

	identity := domain.TelegramIdentity{
		TelegramID: payload.ID,
		Name:       strings.TrimSpace(payload.FirstName + " " + payload.LastName),
	}
	if strings.TrimSpace(payload.Username) != "" {
		username := payload.Username
		identity.Username = &username
	}
	return identity, nil
}

func hmacSHA256(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}
