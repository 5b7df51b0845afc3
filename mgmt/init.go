/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"github.com/named-data/udcn/core"
)

// DefaultStatsPort is the default port of the statistics service.
const DefaultStatsPort = 6364

var statsEnabled = true
var statsBind = "127.0.0.1"
var statsPort uint16 = DefaultStatsPort

// Configure configures the management system.
func Configure() {
	statsEnabled = core.GetConfigBoolDefault("mgmt.stats.enabled", true)
	statsBind = core.GetConfigStringDefault("mgmt.stats.bind", "127.0.0.1")
	statsPort = core.GetConfigUint16Default("mgmt.stats.port", DefaultStatsPort)
}

// StatsEnabled returns whether the statistics service should be started.
func StatsEnabled() bool {
	return statsEnabled
}

// ConfiguredStatsServer returns the configured statistics service address.
func ConfiguredStatsServer() StatsServerConfig {
	return StatsServerConfig{Bind: statsBind, Port: statsPort}
}
