package paramstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ssmAPI is the minimal AWS SSM interface required by Client.
// *ssm.Client from aws-sdk-go-v2 satisfies this interface.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Client reads parameters under a fixed prefix, e.g. /genki-chat/prod.
type Client struct {
	api    ssmAPI
	prefix string
}

// New creates a Client scoped to the given parameter prefix.
func New(api ssmAPI, prefix string) (*Client, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return nil, errors.New("paramstore: prefix must not be empty")
	}
	return &Client{api: api, prefix: prefix}, nil
}

// Get returns the decrypted value of the parameter at <prefix>/<name>.
func (c *Client) Get(ctx context.Context, name string) (string, error) {
	if c.api == nil {
		return "", errors.New("paramstore: client not initialized")
	}
	name = strings.Trim(strings.TrimSpace(name), "/")
	if name == "" {
		return "", errors.New("paramstore: name is required")
	}
	full := c.prefix + "/" + name

	withDecryption := true
	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &full,
		WithDecryption: &withDecryption,
	})
	if err != nil {
		return "", fmt.Errorf("paramstore: get parameter %q: %w", full, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("paramstore: parameter %q missing value", full)
	}
	return *out.Parameter.Value, nil
}
