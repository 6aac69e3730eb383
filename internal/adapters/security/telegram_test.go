package security

import (
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/orderdesk/orderdesk/internal/domain"
)

const testBotToken = "123456:test-bot-token"

// signInitData builds a correctly signed initData string for the given
// fields, mirroring what the Telegram client would produce.
func signInitData(t *testing.T, botToken string, values url.Values) string {
	t.Helper()
	pairs := make([]string, 0, len(values))
	for key, fieldValues := range values {
		for _, fieldValue := range fieldValues {
			pairs = append(pairs, key+"="+fieldValue)
		}
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secretKey := hmacSHA256([]byte(webAppDataKey), []byte(botToken))
	digest := hmacSHA256(secretKey, []byte(dataCheckString))

	signed := url.Values{}
	for key, fieldValues := range values {
		signed[key] = fieldValues
	}
	signed.Set("hash", hex.EncodeToString(digest))
	return signed.Encode()
}

func freshAssertion(t *testing.T, userJSON string) string {
	t.Helper()
	return signInitData(t, testBotToken, url.Values{
		"user":      {userJSON},
		"auth_date": {strconv.FormatInt(time.Now().Unix(), 10)},
		"query_id":  {"AAE1"},
	})
}

func TestTelegramVerifier_ValidAssertion(t *testing.T) {
	t.Parallel()
	verifier := NewTelegramVerifier(testBotToken, time.Hour)

	initData := freshAssertion(t, `{"id":42,"first_name":"Ada","last_name":"Lovelace","username":"ada"}`)
	identity, err := verifier.Verify(initData)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if identity.TelegramID != 42 {
		t.Fatalf("TelegramID = %d, want 42", identity.TelegramID)
	}
	if identity.Name != "Ada Lovelace" {
		t.Fatalf("Name = %q, want %q", identity.Name, "Ada Lovelace")
	}
	if identity.Username == nil || *identity.Username != "ada" {
		t.Fatalf("Username = %v, want ada", identity.Username)
	}
}

func TestTelegramVerifier_FirstNameOnly(t *testing.T) {
	t.Parallel()
	verifier := NewTelegramVerifier(testBotToken, time.Hour)

	identity, err := verifier.Verify(freshAssertion(t, `{"id":7,"first_name":"Grace"}`))
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if identity.Name != "Grace" {
		t.Fatalf("Name = %q, want %q", identity.Name, "Grace")
	}
	if identity.Username != nil {
		t.Fatalf("Username = %v, want nil", identity.Username)
	}
}

func TestTelegramVerifier_TamperedPayload(t *testing.T) {
	t.Parallel()
	verifier := NewTelegramVerifier(testBotToken, time.Hour)

	initData := freshAssertion(t, `{"id":42,"first_name":"Ada"}`)
	tampered := strings.Replace(initData, "Ada", "Eve", 1)
	if _, err := verifier.Verify(tampered); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Verify(tampered) error = %v, want ErrUnauthorized", err)
	}
}

func TestTelegramVerifier_WrongBotToken(t *testing.T) {
	t.Parallel()
	verifier := NewTelegramVerifier("another:token", time.Hour)

	initData := freshAssertion(t, `{"id":42,"first_name":"Ada"}`)
	if _, err := verifier.Verify(initData); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Verify() error = %v, want ErrUnauthorized", err)
	}
}

func TestTelegramVerifier_StaleAuthDate(t *testing.T) {
	t.Parallel()
	verifier := NewTelegramVerifier(testBotToken, time.Minute)

	stale := strconv.FormatInt(time.Now().Add(-2*time.Hour).Unix(), 10)
	initData := signInitData(t, testBotToken, url.Values{
		"user":      {`{"id":42,"first_name":"Ada"}`},
		"auth_date": {stale},
	})
	if _, err := verifier.Verify(initData); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Verify(stale) error = %v, want ErrUnauthorized", err)
	}
}

func TestTelegramVerifier_MissingFields(t *testing.T) {
	t.Parallel()
	verifier := NewTelegramVerifier(testBotToken, time.Hour)

	cases := map[string]string{
		"no hash": "user=%7B%22id%22%3A42%7D&auth_date=1700000000",
		"no auth_date": signInitData(t, testBotToken, url.Values{
			"user": {`{"id":42,"first_name":"Ada"}`},
		}),
		"no user": signInitData(t, testBotToken, url.Values{
			"auth_date": {strconv.FormatInt(time.Now().Unix(), 10)},
		}),
	}
	for name, initData := range cases {
		if _, err := verifier.Verify(initData); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("%s: Verify() error = %v, want ErrUnauthorized", name, err)
		}
	}
}

func TestTelegramVerifier_InvalidUserPayload(t *testing.T) {
	t.Parallel()
	verifier := NewTelegramVerifier(testBotToken, time.Hour)

	cases := map[string]string{
		"not json":         `not-json`,
		"zero id":          `{"id":0,"first_name":"Ada"}`,
		"negative id":      `{"id":-5,"first_name":"Ada"}`,
		"blank first name": `{"id":42,"first_name":"   "}`,
	}
	for name, userJSON := range cases {
		if _, err := verifier.Verify(freshAssertion(t, userJSON)); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("%s: Verify() error = %v, want ErrUnauthorized", name, err)
		}
	}
}

func TestTelegramVerifier_EmptyBotToken(t *testing.T) {
	t.Parallel()
	verifier := NewTelegramVerifier("", time.Hour)

	if _, err := verifier.Verify("anything"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Verify() error = %v, want ErrUnauthorized", err)
	}
}
