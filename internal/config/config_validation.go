// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// groupErrors maps the top-level field of a view to its sentinel.
var groupErrors = map[string]error{
	"App":     ErrInvalidAppConfigs,
	"Adapter": ErrInvalidAdapterConfigs,
	"Storage": ErrInvalidStorageConfigs,
	"Sync":    ErrInvalidSyncConfigs,
	"Workers": ErrInvalidWorkerConfigs,
	"Server":  ErrInvalidServerConfigs,
	"Log":     ErrInvalidLogConfigs,
}

func (cfg *ClientConfig) validate() error {
	return validateView(cfg)
}

func (cfg *ServerConfig) validate() error {
	return validateView(cfg)
}

// validateView runs struct validation and converts every failed field into
// the sentinel of its configuration group.
func validateView(view any) error {
	err := validate.Struct(view)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("error validating config: %w", err)
	}

	var joined error
	for _, fe := range fieldErrs {
		joined = errors.Join(joined, fmt.Errorf("%w: %s failed on '%s'", groupError(fe.StructNamespace()), fe.Namespace(), fe.Tag()))
	}
	return joined
}

func groupError(namespace string) error {
	// "ClientConfig.Adapter.BaseURL" → "Adapter"
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		if err, ok := groupErrors[parts[1]]; ok {
			return err
		}
	}
	return ErrInvalidAppConfigs
}
