// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// clara is a terminal chat client for the Clara assistant.
package main

import "github.com/jeranaias/clara-tui/internal/cli"

func main() {
	cli.Main()
}
