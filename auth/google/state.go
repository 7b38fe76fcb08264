package google

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// ErrInvalidState rejects callback states we did not issue
var ErrInvalidState = errors.New("invalid oauth state", errors.CategoryAuth).
	WithTextCode("INVALID_STATE")

// ErrStateExpired rejects callback states past their TTL
var ErrStateExpired = errors.New("oauth state expired", errors.CategoryAuth).
	WithTextCode("STATE_EXPIRED")

// OAuthState is carried through the provider round trip. It pins the
// callback to a browser session and remembers where to land afterwards.
type OAuthState struct {
	Nonce       string `json:"n"`
	RedirectURL string `json:"r,omitempty"`
	IssuedAt    int64  `json:"iat"`
	ExpiresAt   int64  `json:"exp"`
}

// StateManager signs and verifies the OAuth state parameter
type StateManager struct {
	hmacKey []byte
	ttl     time.Duration
}

// NewStateManager creates a state manager signing with the given key
func NewStateManager(hmacKey []byte, ttl time.Duration) *StateManager {
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	return &StateManager{
		hmacKey: hmacKey,
		ttl:     ttl,
	}
}

// Encode signs the state into an opaque URL-safe token
func (sm *StateManager) Encode(state *OAuthState) (string, error) {
	if state == nil {
		return "", ErrInvalidState
	}

	if state.IssuedAt == 0 {
		state.IssuedAt = time.Now().Unix()
	}
	if state.ExpiresAt == 0 {
		state.ExpiresAt = time.Now().Add(sm.ttl).Unix()
	}
	if state.Nonce == "" {
		state.Nonce = uuid.NewString()
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to marshal state")
	}

	mac := hmac.New(sha256.New, sm.hmacKey)
	mac.Write(payload)
	signature := mac.Sum(nil)

	return base64.URLEncoding.EncodeToString(append(signature, payload...)), nil
}

// Decode verifies the signature and TTL and returns the state
func (sm *StateManager) Decode(token string) (*OAuthState, error) {
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidState
	}

	if len(data) < sha256.Size {
		return nil, ErrInvalidState
	}

	signature := data[:sha256.Size]
	payload := data[sha256.Size:]

	mac := hmac.New(sha256.New, sm.hmacKey)
	mac.Write(payload)
	if !hmac.Equal(signature, mac.Sum(nil)) {
		return nil, ErrInvalidState
	}

	var state OAuthState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, ErrInvalidState
	}

	if time.Now().Unix() > state.ExpiresAt {
		return nil, ErrStateExpired
	}

	return &state, nil
}
