package session

import (
	"context"
	"time"

	"steward/core"
	"steward/pkg/resthttp"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Static reviewer session with a fixed token. An empty token means
// signed out, which turns every panel operation into a no-op.
func Static(token string) core.ReviewerSession {
	return staticSession(token)
}

type staticSession string

func (s staticSession) SignedIn() bool {
	return s != ""
}

func (s staticSession) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

// OAuthConfig reviewer token exchange config
type OAuthConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
}

const tokenCacheKey = "reviewer_token"

// OAuth reviewer session fetching short lived tokens from the auth
// provider, cached until shortly before expiry.
func OAuth(cfg OAuthConfig) core.ReviewerSession {
	return &oauthSession{
		cfg:    cfg,
		tokens: gcache.New(1).LRU().Build(),
		sf:     &singleflight.Group{},
	}
}

type oauthSession struct {
	cfg    OAuthConfig
	tokens gcache.Cache
	sf     *singleflight.Group
}

func (s *oauthSession) SignedIn() bool {
	return s.cfg.TokenURL != "" && s.cfg.ClientID != ""
}

func (s *oauthSession) Token(ctx context.Context) (string, error) {
	if v, err := s.tokens.Get(tokenCacheKey); err == nil {
		return v.(string), nil
	}

	token, err, _ := s.sf.Do(tokenCacheKey, func() (interface{}, error) {
		body := map[string]string{
			"client_id":     s.cfg.ClientID,
			"client_secret": s.cfg.ClientSecret,
		}

		var resp struct {
			Token     string `json:"token"`
			ExpiresIn int64  `json:"expires_in"`
		}

		if err := resthttp.Execute(resthttp.Request(ctx), "POST", s.cfg.TokenURL, body, &resp); err != nil {
			return "", err
		}

		ttl := time.Duration(resp.ExpiresIn) * time.Second
		if ttl > time.Minute {
			_ = s.tokens.SetWithExpire(tokenCacheKey, resp.Token, ttl-30*time.Second)
		}

		return resp.Token, nil
	})

	if err != nil {
		return "", err
	}

	return token.(string), nil
}
