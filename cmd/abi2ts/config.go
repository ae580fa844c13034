package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// namingFlags maps each naming flag to the value of the "naming" key that
// selects it.
var namingFlags = map[string]string{
	"pascal-case": "pascal",
	"camel-case":  "camel",
	"snake-case":  "snake",
}

// keyAliases are configuration keys that differ from their flag name.
var keyAliases = map[string]string{
	"type-mapping": "type_mappings",
}

// yamlConfig loads a YAML configuration file as a kong resolver.
//
// Keys are flag names, with "-" or "_" as separator. A section named after
// a command applies to that command only and wins over top-level keys:
//
//	naming: camel
//	export: true
//	type_mappings:
//	  uint64: bigint
//	serve:
//	  listen: ":8080"
func yamlConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	if values == nil {
		values = map[string]any{}
	}

	return kong.ResolverFunc(func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if flag.Name == "config" || flag.Name == "help" {
			return nil, nil
		}

		section := ""
		if parent != nil && parent.Command != nil {
			section = parent.Command.Name
		}

		if conv, ok := namingFlags[flag.Name]; ok {
			if namingOnCommandLine(kctx) {
				return nil, nil
			}
			if v, ok := lookup(values, section, "naming"); ok {
				if fmt.Sprint(v) == conv {
					return "true", nil
				}
				return nil, nil
			}
		}

		keys := []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")}
		if alias, ok := keyAliases[flag.Name]; ok {
			keys = append(keys, alias)
		}
		v, ok := lookup(values, section, keys...)
		if !ok {
			return nil, nil
		}
		return flagValue(v), nil
	}), nil
}

// namingOnCommandLine reports whether a naming flag was given explicitly,
// in which case the configured naming must not add a second one.
func namingOnCommandLine(kctx *kong.Context) bool {
	if kctx == nil {
		return false
	}
	for _, p := range kctx.Path {
		if p.Flag == nil {
			continue
		}
		if _, ok := namingFlags[p.Flag.Name]; ok {
			return true
		}
	}
	return false
}

func lookup(values map[string]any, section string, keys ...string) (any, bool) {
	if section != "" {
		if sub, ok := values[section].(map[string]any); ok {
			for _, k := range keys {
				if v, ok := sub[k]; ok {
					return v, true
				}
			}
		}
	}
	for _, k := range keys {
		if v, ok := values[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// flagValue renders a YAML value in the textual form kong parses: maps as
// "k=v;k=v" and lists comma separated.
func flagValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + fmt.Sprint(v[k])
		}
		return strings.Join(parts, ";")
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = fmt.Sprint(e)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
