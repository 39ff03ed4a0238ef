// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output flattens inventories into rows and runs them through the
// attribute, filter and sort pipeline before emitting text, json or yaml.
package output
