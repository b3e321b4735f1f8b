package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"Admin-Console/internal/app/apiclient"
	"Admin-Console/internal/app/ds"
	"Admin-Console/internal/app/session"

	"github.com/sirupsen/logrus"
)

var ErrNoToken = errors.New("auth provider returned no access token")

// API - часть apiclient.Client, нужная провайдеру аутентификации
type API interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
	PostJSON(ctx context.Context, path string, body, out any) error
}

// Authenticator - клиент эндпоинтов /auth/*
type Authenticator struct {
	client API
}

func New(client API) *Authenticator {
	return &Authenticator{client: client}
}

// SignIn обменивает учетные данные на токен доступа
func (a *Authenticator) SignIn(ctx context.Context, req ds.LoginRequest) (*ds.TokenResponse, error) {
	var resp struct {
		Data ds.TokenResponse `json:"data"`
	}
	if err := a.client.PostJSON(ctx, "auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if resp.Data.AccessToken == "" {
		return nil, ErrNoToken
	}
	if resp.Data.TokenType == "" {
		resp.Data.TokenType = "Bearer"
	}
	return &resp.Data, nil
}

// SignOut завершает сессию у провайдера. Токен берется из контекста запроса.
func (a *Authenticator) SignOut(ctx context.Context) error {
	if err := a.client.PostJSON(ctx, "auth/logout", nil, nil); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// Info загружает данные сессии. Ответ может быть обернут в data.
func (a *Authenticator) Info(ctx context.Context) (*ds.SessionData, error) {
	var raw map[string]json.RawMessage
	if err := a.client.GetJSON(ctx, "auth/info", nil, &raw); err != nil {
		return nil, fmt.Errorf("session info: %w", err)
	}

	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("session info: %w", err)
	}
	if _, hasUser := raw["user"]; !hasUser {
		if wrapped, ok := raw["data"]; ok {
			payload = wrapped
		}
	}

	var data ds.SessionData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("%w: decode session info: %w", apiclient.ErrTransport, err)
	}
	return &data, nil
}

// Restore восстанавливает сессию по токену. При ошибке хранилище сбрасывается.
func (a *Authenticator) Restore(ctx context.Context, store *session.Store, token string) error {
	store.Begin(token)

	data, err := a.Info(apiclient.ContextWithToken(ctx, token))
	if err != nil {
		store.Clear()
		logrus.Warnf("Session restore failed: %v", err)
		return err
	}

	store.Authenticate(token, data)
	logrus.WithField("user", data.User.Key()).Debug("Session restored")
	return nil
}
