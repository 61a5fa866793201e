package session

import (
	"context"
	"errors"
	"time"

	"steward/core"

	"github.com/asaskevich/govalidator"
	"github.com/bluele/gcache"
	"github.com/golang-jwt/jwt"
	"golang.org/x/sync/singleflight"
)

// Config server session config
type Config struct {
	JWTSecret string
	Issuers   []string
	Admins    []string
	Capacity  int
}

// New new server session
func New(cfg Config) core.Session {
	var s core.Session = &session{
		secret:  []byte(cfg.JWTSecret),
		issuers: cfg.Issuers,
		admins:  cfg.Admins,
		sf:      &singleflight.Group{},
	}

	if cfg.Capacity > 0 {
		s = &cacheSession{
			Session: s,
			tokens:  gcache.New(cfg.Capacity).LRU().Build(),
		}
	}

	return s
}

type session struct {
	secret  []byte
	issuers []string
	admins  []string
	sf      *singleflight.Group
}

type claims struct {
	jwt.StandardClaims
	Scope   string `json:"scp,omitempty"`
	Name    string `json:"name,omitempty"`
	Role    string `json:"role,omitempty"`
	BoardID string `json:"bid,omitempty"`
}

func (s *session) Login(ctx context.Context, accessToken string) (*core.User, error) {
	user, err, _ := s.sf.Do(accessToken, func() (interface{}, error) {
		var claim claims
		_, err := jwt.ParseWithClaims(accessToken, &claim, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}

			return s.secret, nil
		})
		if err != nil {
			return nil, err
		}

		if len(s.issuers) > 0 && !govalidator.IsIn(claim.Issuer, s.issuers...) {
			return nil, errors.New("invalid issuer")
		}

		if claim.Subject == "" {
			return nil, errors.New("missing subject")
		}

		role := core.UserRole(claim.Role)
		if role != core.UserRoleAgent {
			role = core.UserRoleReviewer
		}

		user := &core.User{
			ID:      claim.Subject,
			Name:    claim.Name,
			Role:    role,
			BoardID: claim.BoardID,
			IsAdmin: govalidator.IsIn(claim.Subject, s.admins...),
		}

		return user, nil
	})

	if err != nil {
		return nil, err
	}

	return user.(*core.User), nil
}

type cacheSession struct {
	core.Session
	tokens gcache.Cache
}

func (s *cacheSession) Login(ctx context.Context, accessToken string) (*core.User, error) {
	if v, err := s.tokens.Get(accessToken); err == nil {
		return v.(*core.User), nil
	}

	user, err := s.Session.Login(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	_ = s.tokens.SetWithExpire(accessToken, user, time.Minute)
	return user, nil
}
