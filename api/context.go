package api

import (
	"context"
	"errors"

	"github.com/rpupo63/catalog-admin/dashboard"
)

type keyType string

const (
	workspaceKey keyType = "workspace"
	usernameKey  keyType = "username"
)

// ctxWithSession adds the signed-in session to the context
func ctxWithSession(ctx context.Context, sess session) context.Context {
	ctx = context.WithValue(ctx, workspaceKey, sess.workspace)
	return context.WithValue(ctx, usernameKey, sess.username)
}

// ctxGetWorkspace retrieves the session workspace from the context
func ctxGetWorkspace(ctx context.Context) (*dashboard.Workspace, error) {
	if ctxValue := ctx.Value(workspaceKey); ctxValue == nil {
		return nil, errors.New("workspace not found in context")
	} else if ws, ok := ctxValue.(*dashboard.Workspace); !ok {
		return nil, errors.New("value is not of type `*dashboard.Workspace`")
	} else {
		return ws, nil
	}
}

// ctxGetUsername retrieves the signed-in username from the context
func ctxGetUsername(ctx context.Context) string {
	username, _ := ctxGetStringValue(ctx, usernameKey)
	return username
}

// ctxGetStringValue is a helper function to retrieve string values from the context by key
func ctxGetStringValue(ctx context.Context, key keyType) (string, error) {
	if ctxValue := ctx.Value(key); ctxValue == nil {
		return "", errors.New("key not found in context")
	} else if valueAsString, ok := ctxValue.(string); !ok {
		return "", errors.New("value is not of type `string`")
	} else {
		return valueAsString, nil
	}
}
