// Calllogd - Call Detail Record and Queue Statistics Persistence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/calllogd

package main

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// parseNamedArgs turns name=value pairs into pgx named arguments. Values stay
// strings except the literal NULL, which binds nil.
func parseNamedArgs(pairs []string) (pgx.NamedArgs, error) {
	named := pgx.NamedArgs{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("argument %q is not name=value", pair)
		}
		name = strings.TrimPrefix(strings.TrimSpace(name), "@")
		if name == "" {
			return nil, fmt.Errorf("argument %q has an empty name", pair)
		}
		if _, dup := named[name]; dup {
			return nil, fmt.Errorf("argument %q given twice", name)
		}
		if value == "NULL" {
			named[name] = nil
			continue
		}
		named[name] = value
	}
	return named, nil
}
