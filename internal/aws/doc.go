// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package aws loads AWS SDK configuration and defines the narrow EC2 and
// CloudFormation client interfaces the collectors are written against.
package aws
