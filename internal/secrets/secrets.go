// Package secrets fills the upstream credentials from HashiCorp Vault.
package secrets

import (
	"context"
	"fmt"
	"reflect"

	vaultApi "github.com/hashicorp/vault/api"
	"github.com/mirzahilmi/interaktifkredi/internal/common/config"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"
)

// Load reads the KV v2 secret named by cfg and copies its values into the
// empty fields of upstream. Values already present, typically from the
// environment, are kept. Without a Vault address Load does nothing.
func Load(ctx context.Context, cfg config.Vault, upstream *config.Upstream) error {
	if cfg.URL == "" {
		return nil
	}

	vaultConfig := vaultApi.DefaultConfig()
	vaultConfig.Address = cfg.URL
	vault, err := vaultApi.NewClient(vaultConfig)
	if err != nil {
		return err
	}
	vault.SetToken(cfg.Token)

	secret, err := vault.KVv2(cfg.Mount).Get(ctx, cfg.SecretPath)
	if err != nil {
		return fmt.Errorf("read vault secret %s/%s: %w", cfg.Mount, cfg.SecretPath, err)
	}

	filled, err := apply(secret.Data, upstream)
	if err != nil {
		return err
	}
	log.Info().
		Str("path", cfg.Mount+"/"+cfg.SecretPath).
		Int("filled", filled).
		Msg("loaded upstream credentials from vault")
	return nil
}

type credentials struct {
	BearerToken string              `mapstructure:"bearer_token"`
	Keys        config.FunctionKeys `mapstructure:",squash"`
}

// apply decodes data and fills the empty string fields of upstream. It
// returns how many fields were filled.
func apply(data map[string]any, upstream *config.Upstream) (int, error) {
	var creds credentials
	if err := mapstructure.WeakDecode(data, &creds); err != nil {
		return 0, fmt.Errorf("decode vault secret: %w", err)
	}

	filled := 0
	if upstream.BearerToken == "" && creds.BearerToken != "" {
		upstream.BearerToken = creds.BearerToken
		filled++
	}

	dst := reflect.ValueOf(&upstream.Keys).Elem()
	src := reflect.ValueOf(creds.Keys)
	for i := range dst.NumField() {
		field := dst.Field(i)
		if field.Kind() != reflect.String || field.String() != "" {
			continue
		}
		if value := src.Field(i).String(); value != "" {
			field.SetString(value)
			filled++
		}
	}
	return filled, nil
}
