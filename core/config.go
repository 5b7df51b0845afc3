/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml"
)

var config = emptyConfig()

func emptyConfig() *toml.Tree {
	tree, _ := toml.TreeFromMap(map[string]interface{}{})
	return tree
}

// LoadConfig loads the configuration from the specified file. Files ending in .yml or .yaml are
// read as YAML, everything else as TOML. An empty file name keeps the built-in defaults.
func LoadConfig(file string) error {
	if file == "" {
		config = emptyConfig()
		return nil
	}

	var tree *toml.Tree
	var err error
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yml", ".yaml":
		tree, err = loadYamlConfig(file)
	default:
		tree, err = toml.LoadFile(file)
	}
	if err != nil {
		return fmt.Errorf("unable to load configuration file %s: %w", file, err)
	}
	config = tree
	return nil
}

// LoadConfigString loads the configuration from an in-memory TOML document.
func LoadConfigString(doc string) error {
	tree, err := toml.Load(doc)
	if err != nil {
		return err
	}
	config = tree
	return nil
}

func loadYamlConfig(file string) (*toml.Tree, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	values := make(map[string]interface{})
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return toml.TreeFromMap(values)
}

func configInt64(key string) (int64, bool) {
	switch v := config.Get(key).(type) {
	case int64:
		return v, true
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case int:
		return int64(v), true
	}
	return 0, false
}

// GetConfigIntDefault returns the integer configuration value at the specified key or the specified default value if it does not exist.
func GetConfigIntDefault(key string, def int) int {
	val, ok := configInt64(key)
	if ok && val >= math.MinInt32 && val <= math.MaxInt32 {
		return int(val)
	}
	return def
}

// GetConfigStringDefault returns the string configuration value at the specified key or the specified default value if it does not exist.
func GetConfigStringDefault(key string, def string) string {
	if val, ok := config.Get(key).(string); ok {
		return val
	}
	return def
}

// GetConfigBoolDefault returns the boolean configuration value at the specified key or the specified default value if it does not exist.
func GetConfigBoolDefault(key string, def bool) bool {
	if val, ok := config.Get(key).(bool); ok {
		return val
	}
	return def
}

// GetConfigUint16Default returns the integer configuration value at the specified key or the specified default value if it does not exist.
func GetConfigUint16Default(key string, def uint16) uint16 {
	val, ok := configInt64(key)
	if ok && val > 0 && val <= math.MaxUint16 {
		return uint16(val)
	}
	return def
}
